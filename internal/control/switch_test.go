package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
)

func TestMomentarySwitchPressAfterDebounce(t *testing.T) {
	reader := gpio.NewSimulatedReader()
	presses := 0
	sw := NewMomentarySwitch(reader, 4, func() { presses++ }, nil)

	reader.SetLevel(4, gpio.Low)
	sw.poll()
	require.Equal(t, 0, presses, "press must not fire before the debounce window")

	time.Sleep(debounceWindow + 5*time.Millisecond)
	sw.poll()
	require.Equal(t, 1, presses)
	require.True(t, sw.IsPressed())
}

func TestMomentarySwitchIgnoresBounceDuringPress(t *testing.T) {
	reader := gpio.NewSimulatedReader()
	releases := 0
	sw := NewMomentarySwitch(reader, 4, nil, func() { releases++ })

	reader.SetLevel(4, gpio.Low)
	sw.poll()
	time.Sleep(debounceWindow + 5*time.Millisecond)
	sw.poll()
	require.True(t, sw.IsPressed())

	// A single-poll glitch back to High never survives the debounce
	// window, so no release is emitted.
	reader.SetLevel(4, gpio.High)
	sw.poll()
	reader.SetLevel(4, gpio.Low)
	sw.poll()
	require.Equal(t, 0, releases)
	require.True(t, sw.IsPressed())
}

func TestMomentarySwitchReleaseAfterMinimumPress(t *testing.T) {
	reader := gpio.NewSimulatedReader()
	presses, releases := 0, 0
	sw := NewMomentarySwitch(reader, 4, func() { presses++ }, func() { releases++ })

	reader.SetLevel(4, gpio.Low)
	sw.poll()
	time.Sleep(debounceWindow + 5*time.Millisecond)
	sw.poll()
	require.Equal(t, 1, presses)

	// Hold past the minimum press duration, then release.
	time.Sleep(minPressDuration)
	reader.SetLevel(4, gpio.High)
	sw.poll()
	time.Sleep(debounceWindow + 5*time.Millisecond)
	sw.poll()
	require.Equal(t, 1, releases)
	require.False(t, sw.IsPressed())
}
