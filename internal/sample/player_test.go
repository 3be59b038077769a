package sample

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResampleStereoNoOpWhenRatesMatch(t *testing.T) {
	src := []float32{0.1, -0.1, 0.2, -0.2}
	out := resampleStereo(src, 48000, 48000)
	require.Equal(t, src, out)
}

func TestResampleStereoChangesLength(t *testing.T) {
	src := make([]float32, 2*1000)
	for i := range src {
		src[i] = 0.5
	}
	out := resampleStereo(src, 44100, 48000)
	require.InDelta(t, 1000*48000/44100, len(out)/2, 2)
}

func TestProcessSilentWhenNotLoaded(t *testing.T) {
	p := NewPlayer()
	p.Play()
	out := make([]float32, 128)
	for i := range out {
		out[i] = 1 // poison value to prove Process overwrites it
	}
	p.Process(out)
	for _, v := range out {
		require.Equal(t, float32(0), v)
	}
}

func TestProcessAutoStopsAtEnd(t *testing.T) {
	p := NewPlayer()
	p.frames = []float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3} // 3 stereo frames
	p.Play()

	out := make([]float32, 8) // 4 frames requested, only 3 available
	p.Process(out)

	require.Equal(t, []float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3, 0, 0}, out)
	require.False(t, p.IsPlaying())
}

func TestProcessLoops(t *testing.T) {
	p := NewPlayer()
	p.frames = []float32{0.5, 0.5}
	p.SetLoop(true)
	p.Play()

	out := make([]float32, 6)
	p.Process(out)

	require.Equal(t, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, out)
	require.True(t, p.IsPlaying())
}
