// Package gpio abstracts the control surface's digital inputs (rotary
// encoder quadrature pins and momentary switches) behind a small
// interface, so internal/control can run identically against real
// Linux GPIO character-device lines or an in-memory simulation used by
// --simulate and by tests.
package gpio

// Level is a single GPIO line's logic level.
type Level int

const (
	Low  Level = 0
	High Level = 1
)

// Reader is the control surface's view of a bank of input lines. The
// control primitives poll it at their own cadence; there is no edge
// event API.
type Reader interface {
	// Read returns the current level of the given line.
	Read(line int) (Level, error)

	// Close releases the underlying chip handle or simulation.
	Close() error
}
