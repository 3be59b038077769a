package sink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type constSource struct{ value float32 }

func (c constSource) Process(out []float32) {
	for i := range out {
		out[i] = c.value
	}
}

// Scenario 6: underrun tolerance.
func TestDriverSurvivesConsecutiveWriteFailures(t *testing.T) {
	sim := NewSimulatedSink()
	failuresLeft := 5
	sim.FaultInjector = func(callIndex int, frames []int16) (int, bool) {
		if failuresLeft > 0 {
			failuresLeft--
			return 0, false
		}
		return 0, true
	}

	require.NoError(t, sim.Open("", 48000, 64))
	driver := NewDriver(sim, 48000, 64, constSource{value: 0.25})

	ctx, cancel := context.WithCancel(context.Background())
	driver.Start(ctx)

	require.Eventually(t, func() bool {
		return sim.RecoverCalls() >= 5
	}, time.Second, time.Millisecond)

	cancel()
	driver.Stop()

	require.Equal(t, uint64(5), driver.Stats().Underruns())
}

func TestFloatToInt16Clamps(t *testing.T) {
	in := []float32{-2, -1, 0, 1, 2}
	out := make([]int16, len(in))
	floatToInt16(in, out)
	require.Equal(t, int16(-32767), out[0])
	require.Equal(t, int16(-32767), out[1])
	require.Equal(t, int16(0), out[2])
	require.Equal(t, int16(32767), out[3])
	require.Equal(t, int16(32767), out[4])
}
