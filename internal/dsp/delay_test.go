package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelayImpulseResponsePosition(t *testing.T) {
	const sr = 48000.0
	d := NewDelayLine(sr)
	d.SetDelayTime(0.25)
	d.SetFeedback(0)
	d.SetDryWet(1.0)

	expected := impulseDelaySamples(0.25, sr)
	peakIdx, peakVal := -1, float32(0)
	for n := 0; n < expected+200; n++ {
		in := float32(0)
		if n == 0 {
			in = 1
		}
		out := d.Process(in)
		if math.Abs(float64(out)) > math.Abs(float64(peakVal)) {
			peakVal = out
			peakIdx = n
		}
	}
	require.InDelta(t, expected, peakIdx, 1)
}

func TestDelayFeedbackBoundedOverSilence(t *testing.T) {
	const sr = 48000.0
	d := NewDelayLine(sr)
	d.SetDelayTime(0.05)
	d.SetFeedback(0.95)
	d.SetDryWet(1.0)

	d.Process(1) // single impulse
	for i := 0; i < int(10*sr); i++ {
		out := d.Process(0)
		require.False(t, math.IsNaN(float64(out)))
		require.False(t, math.IsInf(float64(out), 0))
		require.LessOrEqual(t, math.Abs(float64(out)), 1.0+1e-3)
	}
}
