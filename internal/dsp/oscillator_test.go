package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOscillatorZeroFrequencyIsDC(t *testing.T) {
	osc := NewOscillator(48000)
	osc.SetFrequency(0)
	osc.SetWaveform(WaveSine)

	first := osc.GenerateSample()
	require.InDelta(t, float64(sineAt(0)), float64(first), 1e-5)

	for i := 0; i < 100; i++ {
		v := osc.GenerateSample()
		require.InDelta(t, float64(first), float64(v), 1e-5)
	}
}

func TestOscillatorOutputBounded(t *testing.T) {
	for _, w := range []Waveform{WaveSine, WaveSquare, WaveSaw, WaveTriangle} {
		osc := NewOscillator(48000)
		osc.SetWaveform(w)
		osc.SetFrequency(440)
		for i := 0; i < 4800; i++ {
			v := osc.GenerateSample()
			require.False(t, math.IsNaN(float64(v)))
			require.LessOrEqual(t, math.Abs(float64(v)), 1.2)
		}
	}
}

func TestOscillatorResetPhase(t *testing.T) {
	osc := NewOscillator(48000)
	osc.SetFrequency(220)
	osc.SetWaveform(WaveSine)
	for i := 0; i < 37; i++ {
		osc.GenerateSample()
	}
	osc.ResetPhase()
	v := osc.GenerateSample()
	require.InDelta(t, float64(sineAt(0)), float64(v), 1e-5)
}
