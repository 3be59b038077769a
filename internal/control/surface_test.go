package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parkredding/poor-house-dub-v2/internal/engine"
	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
	"github.com/parkredding/poor-house-dub-v2/internal/sample"
)

func newTestSurface(t *testing.T) (*Surface, *gpio.SimulatedReader, *engine.Engine) {
	t.Helper()
	reader := gpio.NewSimulatedReader()
	eng := engine.New(48000, 64)
	player := sample.NewPlayer()
	surf := NewSurface(eng, player, reader, DefaultPinMap(), nil, nil)
	return surf, reader, eng
}

// Scenario 3: bank switch + param. Drives the encoder's onTick directly
// (rather than through its polling goroutine) so the test is
// deterministic; encoder.go's quadrature decode itself is covered by
// TestRotaryEncoderQuadratureDecode.
func TestBankSwitchAndParam(t *testing.T) {
	surf, _, eng := newTestSurface(t)

	// Shift press -> Bank B -> rotate enc1 +1 -> release += 0.1.
	surf.onShiftPress()
	require.Equal(t, BankB, surf.bank)

	surf.encoders[0].onTick(DirCW)
	require.InDelta(t, 0.6, eng.Snapshot().Release, 1e-6)

	// Shift release -> Bank A -> rotate enc1 +1 -> volume += 0.02.
	surf.onShiftRelease()
	require.Equal(t, BankA, surf.bank)

	surf.encoders[0].onTick(DirCW)
	require.InDelta(t, 0.72, eng.Snapshot().Volume, 1e-6)
	require.InDelta(t, 0.6, eng.Snapshot().Release, 1e-6)
}

func TestSecretModeGestureTogglesSampleMode(t *testing.T) {
	var gotSample *bool
	reader := gpio.NewSimulatedReader()
	eng := engine.New(48000, 64)
	player := sample.NewPlayer()
	surf := NewSurface(eng, player, reader, DefaultPinMap(), nil, func(useSample bool) {
		v := useSample
		gotSample = &v
	})

	for i := 0; i < 5; i++ {
		surf.onShiftPress()
		surf.onShiftRelease()
	}

	require.NotNil(t, gotSample)
	require.True(t, *gotSample)
}

func TestGestureWindowExpires(t *testing.T) {
	fired := 0
	g := NewGesture(3, 20*time.Millisecond, func() { fired++ })
	g.RecordPress()
	time.Sleep(30 * time.Millisecond)
	g.RecordPress()
	g.RecordPress()
	require.Equal(t, 0, fired)

	g.RecordPress()
	g.RecordPress()
	g.RecordPress()
	require.Equal(t, 1, fired)
}
