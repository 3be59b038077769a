package control

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
)

func TestRotaryEncoderQuadratureDecode(t *testing.T) {
	reader := gpio.NewSimulatedReader()
	reader.SetLevel(1, gpio.High) // CLK idle high
	reader.SetLevel(2, gpio.High) // DT idle high

	var got []Direction
	enc := NewRotaryEncoder(reader, 1, 2, func(d Direction) { got = append(got, d) })
	enc.lastClk = gpio.High

	// CW: DT stays High (differs from CLK) when CLK falls, per the
	// "DT != CLK -> +1" decode rule.
	reader.SetLevel(1, gpio.Low)
	enc.poll()
	require.Equal(t, []Direction{DirCW}, got)

	// Return to idle.
	reader.SetLevel(1, gpio.High)
	enc.poll()

	// CCW: DT also Low (matches CLK) when CLK falls.
	reader.SetLevel(2, gpio.Low)
	reader.SetLevel(1, gpio.Low)
	enc.poll()
	require.Equal(t, []Direction{DirCW, DirCCW}, got)
}
