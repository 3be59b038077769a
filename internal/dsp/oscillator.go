package dsp

// Oscillator generates one of four waveforms, applying PolyBLEP
// correction at discontinuities in Square/Saw/Triangle to keep aliasing
// below roughly -60dB up to SR/4. Output is always in [-1, 1].
type Oscillator struct {
	sampleRate float32
	phase      float32 // [0, 1)
	frequency  float32 // Hz
	waveform   Waveform
}

// NewOscillator constructs an oscillator for the given sample rate.
func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{sampleRate: float32(sampleRate), waveform: WaveSine}
}

// SetFrequency sets the oscillator frequency in Hz. Negative values are
// clamped to 0 (DC).
func (o *Oscillator) SetFrequency(hz float32) {
	if hz < 0 {
		hz = 0
	}
	o.frequency = hz
}

// SetWaveform selects the waveform; out-of-range indices wrap mod
// NumWaveforms.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w.Normalize()
}

// Frequency returns the oscillator's current frequency in Hz, as last
// set by SetFrequency (used by tests asserting on the pitch-envelope
// ramp's instantaneous frequency).
func (o *Oscillator) Frequency() float32 { return o.frequency }

// ResetPhase returns the oscillator to phase 0, used on trigger so each
// note starts without a click relative to the previous cycle.
func (o *Oscillator) ResetPhase() {
	o.phase = 0
}

// GenerateSample advances the oscillator by one sample and returns it.
func (o *Oscillator) GenerateSample() float32 {
	dt := o.frequency / o.sampleRate

	var out float32
	switch o.waveform.Normalize() {
	case WaveSine:
		out = sineAt(o.phase)
	case WaveSquare:
		if o.phase < 0.5 {
			out = 1
		} else {
			out = -1
		}
		out += blepCorrection(o.phase, dt)
		out -= blepCorrection(wrap01(o.phase+0.5), dt)
	case WaveSaw:
		out = 2*o.phase - 1
		out -= blepCorrection(o.phase, dt)
	case WaveTriangle:
		// Naive triangle blended with a BLEP-corrected square, the square
		// weighted by 2*dt so its share grows with frequency (no BLAMP
		// correction is applied to the triangle's corners).
		var sq float32
		if o.phase < 0.5 {
			sq = 1
		} else {
			sq = -1
		}
		sq += blepCorrection(o.phase, dt)
		sq -= blepCorrection(wrap01(o.phase+0.5), dt)
		out = 2*dt*sq + (1-2*dt)*triangleRaw(o.phase)
	}

	o.phase = wrap01(o.phase + dt)
	return out
}

// triangleRaw is the naive (unfiltered) triangle wave used as the base
// for the blended triangle above.
func triangleRaw(phase float32) float32 {
	if phase < 0.5 {
		return 4*phase - 1
	}
	return 3 - 4*phase
}

func wrap01(phase float32) float32 {
	if phase >= 1 {
		return phase - 1
	}
	if phase < 0 {
		return phase + 1
	}
	return phase
}
