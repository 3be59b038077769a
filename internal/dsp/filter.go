package dsp

import "math"

// Filter bounds, matching spec.md §3/§4.1 exactly.
const (
	MinCutoffHz  = 20.0
	MaxResonance = 0.95
)

// LowPassFilter is a one-pole resonant low-pass:
//
//	y[n] = y[n-1] + a*(x[n] - y[n-1] + q*(y[n-1] - y[n-2]))
//
// stable for resonance < 1.
type LowPassFilter struct {
	sampleRate float32
	cutoff     float32
	resonance  float32
	alpha      float32
	y1, y2     float32
}

// NewLowPassFilter constructs a filter at the given sample rate with a
// default cutoff of 1kHz and zero resonance.
func NewLowPassFilter(sampleRate float64) *LowPassFilter {
	f := &LowPassFilter{sampleRate: float32(sampleRate)}
	f.SetCutoff(1000)
	return f
}

// SetCutoff sets the cutoff frequency in Hz, clamped to
// [20, 0.9*SR/2] as required by spec.md §4.1.
func (f *LowPassFilter) SetCutoff(hz float32) {
	maxHz := f.sampleRate * 0.45
	hz = clamp(hz, MinCutoffHz, maxHz)
	f.cutoff = hz
	f.alpha = 1 - float32(math.Exp(-2*math.Pi*float64(hz)/float64(f.sampleRate)))
}

// SetResonance sets the resonance/Q factor, clamped to [0, 0.95].
func (f *LowPassFilter) SetResonance(q float32) {
	f.resonance = clamp(q, 0, MaxResonance)
}

// Process filters a single sample.
func (f *LowPassFilter) Process(x float32) float32 {
	y0 := f.y1 + f.alpha*(x-f.y1+f.resonance*(f.y1-f.y2)) + antiDenormal
	f.y2 = f.y1
	f.y1 = y0
	return y0
}
