package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEnvelopeContinuity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attack := rapid.Float32Range(0.001, 2).Draw(rt, "attack")
		release := rapid.Float32Range(0.001, 2).Draw(rt, "release")
		env := NewEnvelope(48000, attack, release)
		env.Trigger()

		buf := make([]float32, 2000)
		env.Generate(buf)

		if rapid.Bool().Draw(rt, "releaseMidway") {
			env.Release()
			env.Generate(buf)
		}

		maxStep := float32(1.0 / (minOf(attack, release) * 48000))
		for i := 1; i < len(buf); i++ {
			step := buf[i] - buf[i-1]
			if step < 0 {
				step = -step
			}
			require.LessOrEqual(rt, step, maxStep+1e-4)
		}
	})
}

func minOf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func TestTriggerThenImmediateReleaseReachesIdleWithZeroTimes(t *testing.T) {
	env := NewEnvelope(48000, 0, 0)
	env.Trigger()
	buf := make([]float32, 1)
	env.Generate(buf)
	require.Equal(t, float32(1), buf[0]) // attack=0 snaps straight to sustain level 1

	env.Release()
	env.Generate(buf)
	require.Equal(t, float32(0), buf[0])
	require.False(t, env.IsActive())
}

func TestRetriggerDuringReleaseIsContinuous(t *testing.T) {
	env := NewEnvelope(48000, 0.01, 0.5)
	env.Trigger()
	buf := make([]float32, int(0.005*48000))
	env.Generate(buf)

	env.Release()
	mid := make([]float32, 100)
	env.Generate(mid)
	levelBeforeRetrigger := env.Level()

	env.Trigger()
	one := make([]float32, 1)
	env.Generate(one)

	// Continuous means the retriggered attack advances by exactly one
	// attack step, 1/(attack*SR), from the level it was released at.
	require.InDelta(t, float64(levelBeforeRetrigger), float64(one[0]), 1.0/(0.01*48000)+1e-6)
}
