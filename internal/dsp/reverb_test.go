package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestReverbBoundedOverSilenceAfterImpulse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewReverbEffect(48000)
		r.SetSize(rapid.Float32Range(0, 1).Draw(rt, "size"))
		r.SetDamping(rapid.Float32Range(0, 1).Draw(rt, "damping"))
		r.SetDryWet(rapid.Float32Range(0, 1).Draw(rt, "mix"))

		r.Process(1)
		for i := 0; i < int(10*48000); i += 64 {
			out := r.Process(0)
			require.False(rt, math.IsNaN(float64(out)))
			require.False(rt, math.IsInf(float64(out), 0))
			require.LessOrEqual(rt, math.Abs(float64(out)), 1.0+1e-3)
		}
	})
}

func TestDCBlockerRemovesOffset(t *testing.T) {
	blocker := NewDCBlocker()
	var last float32
	for i := 0; i < 20000; i++ {
		last = blocker.Process(0.5)
	}
	require.Less(t, math.Abs(float64(last)), 0.01)
}
