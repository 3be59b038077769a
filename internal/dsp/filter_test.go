package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func genSine(freq, sampleRate float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
	}
	return out
}

func rmsOf(xs []float32) float64 {
	var sum float64
	for _, x := range xs {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func TestFilterAtNyquistPassesInputMostly(t *testing.T) {
	const sr = 48000.0
	f := NewLowPassFilter(sr)
	f.SetCutoff(float32(sr / 2))
	f.SetResonance(0)

	in := genSine(1000, sr, 4096)
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}

	settleFrom := 512
	attenDB := 20 * math.Log10(rmsOf(out[settleFrom:]) / rmsOf(in[settleFrom:]))
	require.Greater(t, attenDB, -6.0)
}

func TestFilterAt20HzAttenuatesKHzSine(t *testing.T) {
	const sr = 48000.0
	f := NewLowPassFilter(sr)
	f.SetCutoff(20)
	f.SetResonance(0)

	in := genSine(1000, sr, 8192)
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}

	settleFrom := 1024
	attenDB := 20 * math.Log10(rmsOf(out[settleFrom:]) / rmsOf(in[settleFrom:]))
	require.LessOrEqual(t, attenDB, -30.0)
}

func TestFilterNeverProducesNaN(t *testing.T) {
	f := NewLowPassFilter(48000)
	f.SetResonance(MaxResonance)
	f.SetCutoff(20000)
	for i := 0; i < 48000; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		v := f.Process(x)
		require.False(t, math.IsNaN(float64(v)))
		require.False(t, math.IsInf(float64(v), 0))
	}
}
