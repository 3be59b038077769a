// Package control implements the dub siren's control surface: rotary
// encoders, debounced momentary switches, the bank-mapped parameter
// table, and the secret-mode gesture detector. Each input primitive
// owns its own polling goroutine (T_ctrl_i in the concurrency model)
// and re-derives its state from current pin levels, so a missed poll
// tick never desyncs it.
package control

import (
	"context"
	"time"

	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
)

// pollInterval is the encoder/switch poll cadence.
const pollInterval = time.Millisecond

// Direction is a single detent's rotation direction.
type Direction int

const (
	DirCW  Direction = 1
	DirCCW Direction = -1
)

// RotaryEncoder polls a CLK/DT pin pair and reports quadrature ticks.
// Idle state is HIGH on both pins (internal pull-ups); a CLK edge with
// DT reading the opposite level is a clockwise tick, DT matching CLK is
// counter-clockwise.
type RotaryEncoder struct {
	reader     gpio.Reader
	clkLine    int
	dtLine     int
	onTick     func(Direction)
	lastClk    gpio.Level
}

// NewRotaryEncoder constructs an encoder bound to the given logical
// CLK/DT lines. onTick is invoked from the encoder's own polling
// goroutine, never concurrently with itself.
func NewRotaryEncoder(reader gpio.Reader, clkLine, dtLine int, onTick func(Direction)) *RotaryEncoder {
	return &RotaryEncoder{
		reader:  reader,
		clkLine: clkLine,
		dtLine:  dtLine,
		onTick:  onTick,
		lastClk: gpio.High,
	}
}

// Run polls until ctx is cancelled. Intended to be launched as its own
// goroutine (one per encoder, per the concurrency model).
func (e *RotaryEncoder) Run(ctx context.Context) {
	clk, err := e.reader.Read(e.clkLine)
	if err == nil {
		e.lastClk = clk
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.poll()
		}
	}
}

func (e *RotaryEncoder) poll() {
	clk, err := e.reader.Read(e.clkLine)
	if err != nil {
		return
	}
	if clk == e.lastClk {
		return
	}
	e.lastClk = clk
	if clk != gpio.Low {
		// Only the falling edge of CLK is treated as the detent tick;
		// decoding on both edges would double-count.
		return
	}

	dt, err := e.reader.Read(e.dtLine)
	if err != nil {
		return
	}

	dir := DirCCW
	if dt != clk {
		dir = DirCW
	}
	if e.onTick != nil {
		e.onTick(dir)
	}
}
