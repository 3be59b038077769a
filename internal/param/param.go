// Package param implements the lock-free parameter exchange between
// control-surface goroutines (the writers) and the audio callback (the
// single reader). Every carrier is a single machine word written with
// atomic stores and read with atomic loads — no mutex ever sits on the
// audio path.
package param

import (
	"math"
	"sync/atomic"
)

// Float32 is a single-writer, many-reader atomic carrier for a float32
// parameter. The control surface calls Store; the audio thread calls
// Load (directly, or via a Smoothed for parameters that need zipper-free
// ramping).
type Float32 struct {
	bits atomic.Uint32
}

// NewFloat32 constructs a carrier initialised to v.
func NewFloat32(v float32) *Float32 {
	f := &Float32{}
	f.Store(v)
	return f
}

// Store atomically sets the carrier's value.
func (f *Float32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}

// Load atomically reads the carrier's value.
func (f *Float32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

// Int32 is a single-writer, many-reader atomic carrier for an integer or
// enum-like parameter (e.g. Waveform, PitchEnvMode indices).
type Int32 struct {
	v atomic.Int32
}

// NewInt32 constructs a carrier initialised to v.
func NewInt32(v int32) *Int32 {
	i := &Int32{}
	i.Store(v)
	return i
}

// Store atomically sets the carrier's value.
func (i *Int32) Store(v int32) { i.v.Store(v) }

// Load atomically reads the carrier's value.
func (i *Int32) Load() int32 { return i.v.Load() }

// Bool is a single-writer, many-reader atomic carrier for a boolean
// parameter (e.g. gate state visible outside the engine's internal
// mutex).
type Bool struct {
	v atomic.Bool
}

// NewBool constructs a carrier initialised to v.
func NewBool(v bool) *Bool {
	b := &Bool{}
	b.Store(v)
	return b
}

// Store atomically sets the carrier's value.
func (b *Bool) Store(v bool) { b.v.Store(v) }

// Load atomically reads the carrier's value.
func (b *Bool) Load() bool { return b.v.Load() }
