package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLFODepthZeroYieldsZeroBlock(t *testing.T) {
	l := NewLFO(48000)
	l.SetFrequency(4)
	l.SetDepth(0)

	buf := make([]float32, 512)
	for i := range buf {
		buf[i] = 0.7 // poison value to prove Generate overwrites it
	}
	l.Generate(buf)
	for _, v := range buf {
		require.Equal(t, float32(0), v)
	}
}

func TestLFODepthScalesOutput(t *testing.T) {
	l := NewLFO(48000)
	l.SetFrequency(4)
	l.SetDepth(0.3)

	buf := make([]float32, 48000)
	l.Generate(buf)

	var peak float64
	for _, v := range buf {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	require.InDelta(t, 0.3, peak, 0.01)
}
