//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

func microsToDuration(us int) time.Duration { return time.Duration(us) * time.Microsecond }

// CdevReader is the real Linux backend, built on go-gpiocdev's character
// device line requests. The "line" addressed by Read is the BCM GPIO
// offset itself, matching the pin numbers in the control surface's pin
// map directly — there is no separate logical-to-offset table.
type CdevReader struct {
	chip       string
	lines      map[int]*gpiocdev.Line
	debounceUs int
}

// NewCdevReader opens lines on chip (e.g. "gpiochip0") lazily, on first
// Read for each offset.
func NewCdevReader(chip string, debounceUs int) *CdevReader {
	return &CdevReader{
		chip:       chip,
		lines:      make(map[int]*gpiocdev.Line),
		debounceUs: debounceUs,
	}
}

func (r *CdevReader) inputOpts() []gpiocdev.LineReqOption {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	if r.debounceUs > 0 {
		opts = append(opts, gpiocdev.WithDebounce(microsToDuration(r.debounceUs)))
	}
	return opts
}

func (r *CdevReader) requestInput(offset int) (*gpiocdev.Line, error) {
	if l, ok := r.lines[offset]; ok {
		return l, nil
	}
	l, err := gpiocdev.RequestLine(r.chip, offset, r.inputOpts()...)
	if err != nil {
		return nil, fmt.Errorf("gpio: request offset %d: %w", offset, err)
	}
	r.lines[offset] = l
	return l, nil
}

func (r *CdevReader) Read(line int) (Level, error) {
	l, err := r.requestInput(line)
	if err != nil {
		return Low, err
	}
	v, err := l.Value()
	if err != nil {
		return Low, fmt.Errorf("gpio: read offset %d: %w", line, err)
	}
	if v != 0 {
		return High, nil
	}
	return Low, nil
}

func (r *CdevReader) Close() error {
	var firstErr error
	for _, l := range r.lines {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.lines = map[int]*gpiocdev.Line{}
	return firstErr
}
