package param

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat32RoundTrip(t *testing.T) {
	f := NewFloat32(1.5)
	require.Equal(t, float32(1.5), f.Load())
	f.Store(-2.25)
	require.Equal(t, float32(-2.25), f.Load())
}

func TestFloat32ConcurrentAccess(t *testing.T) {
	f := NewFloat32(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v float32) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Store(v)
				_ = f.Load()
			}
		}(float32(i))
	}
	wg.Wait()
}

func TestSmoothedConvergesToTarget(t *testing.T) {
	s := NewSmoothed(0, 0.1)
	s.SetTarget(1)
	for i := 0; i < 200; i++ {
		s.Next()
	}
	require.InDelta(t, 1.0, float64(s.Current()), 1e-3)
}

func TestSmoothedSnapsExactlyOntoTarget(t *testing.T) {
	s := NewSmoothed(0.7, 0.01)
	s.SetTarget(0)
	for i := 0; i < 3000; i++ {
		s.Next()
	}
	require.Equal(t, float32(0), s.Current())
}

func TestSmoothedNeverOvershootsMonotonicTarget(t *testing.T) {
	s := NewSmoothed(0, 0.05)
	s.SetTarget(1)
	prev := float32(0)
	for i := 0; i < 500; i++ {
		v := s.Next()
		require.GreaterOrEqual(t, v, prev)
		require.LessOrEqual(t, v, float32(1.0001))
		prev = v
	}
}
