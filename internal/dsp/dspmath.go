// Package dsp implements the signal-generation and signal-processing
// primitives that make up the synthesizer's audio graph: oscillator, LFO,
// envelope, resonant low-pass filter, tape delay, chamber reverb and DC
// blocker. Every type here is allocation-free once constructed and safe to
// call from the audio callback.
package dsp

import "math"

// sineTableSize trades memory for phase resolution; with linear
// interpolation a 4096-entry table keeps the worst-case error below
// 3e-7, well under the noise floor of 16-bit output.
const sineTableSize = 4096

// sineTable carries one guard entry past the end so the interpolation
// in sineAt never has to wrap its second index.
var sineTable [sineTableSize + 1]float32

func init() {
	for i := range sineTable {
		sineTable[i] = float32(math.Sin(2 * math.Pi * float64(i) / sineTableSize))
	}
}

// sineAt returns sin(2*pi*phase) with phase measured in turns rather
// than radians, matching how the oscillators track phase. Any finite
// phase is accepted; it is wrapped into [0,1) first.
func sineAt(phase float32) float32 {
	phase -= float32(math.Floor(float64(phase)))
	if phase >= 1 {
		// A tiny negative phase rounds up to exactly 1 in float32.
		phase = 0
	}
	pos := phase * sineTableSize
	i := int(pos)
	frac := pos - float32(i)
	return sineTable[i] + frac*(sineTable[i+1]-sineTable[i])
}

// softSat is a cubic-rational soft saturator: x*(27+x^2)/(27+9x^2),
// which tracks tanh closely on [-3, 3] and is clamped to +/-1 beyond.
// Monotonic and cheap, which is all the feedback paths need.
func softSat(x float32) float32 {
	if x >= 3 {
		return 1
	}
	if x <= -3 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// blepCorrection is the polynomial band-limited step residual applied
// around a waveform discontinuity. phase is the normalised position in
// [0,1) and inc the per-sample phase increment; outside the one-sample
// neighbourhood on either side of the step it contributes nothing.
func blepCorrection(phase, inc float32) float32 {
	switch {
	case inc <= 0:
		return 0
	case phase < inc:
		// Just after the step: ramp the residual in from -1.
		u := phase/inc - 1
		return -u * u
	case phase > 1-inc:
		// Just before the step: ramp the residual out toward +1.
		u := (phase-1)/inc + 1
		return u * u
	default:
		return 0
	}
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// antiDenormal is added to every recursive filter/reverb accumulator to
// keep subnormal floats from stalling the FPU.
const antiDenormal = float32(1e-20)
