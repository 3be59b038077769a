package dsp

// LFO is a low-frequency oscillator sharing the Oscillator's waveform
// generation, typically run at 0-20Hz, with an output depth scale and a
// block-fill entry point for the engine's per-block modulation pass.
type LFO struct {
	osc   Oscillator
	depth float32
}

// NewLFO constructs an LFO for the given sample rate, depth 0 (silent)
// and sine waveform by default.
func NewLFO(sampleRate float64) *LFO {
	return &LFO{osc: Oscillator{sampleRate: float32(sampleRate), waveform: WaveSine}}
}

// SetFrequency sets the LFO rate in Hz.
func (l *LFO) SetFrequency(hz float32) { l.osc.SetFrequency(hz) }

// SetWaveform selects the LFO's waveform.
func (l *LFO) SetWaveform(w Waveform) { l.osc.SetWaveform(w) }

// SetDepth scales the LFO's output; depth 0 yields an all-zero block.
func (l *LFO) SetDepth(d float32) { l.depth = clamp(d, 0, 1) }

// Generate fills buf with N samples of LFO output, each in
// [-depth, depth].
func (l *LFO) Generate(buf []float32) {
	if l.depth == 0 {
		for i := range buf {
			buf[i] = 0
		}
		// Still advance phase so re-enabling depth resumes in sync.
		for range buf {
			l.osc.GenerateSample()
		}
		return
	}
	for i := range buf {
		buf[i] = l.osc.GenerateSample() * l.depth
	}
}
