// Package engine orchestrates the DSP graph (oscillator -> envelope gate
// -> resonant low-pass filter, LFO-modulated -> tape delay -> chamber
// reverb -> DC blocker -> gain -> stereo interleave) into the single
// allocation-free Process call the audio sink driver invokes once per
// block. It owns every piece of DSP state and is the only thing that may
// mutate it; the parameter carriers in internal/param are the sole
// crossing surface from control-thread writers.
package engine

import (
	"math"
	"sync"

	"github.com/parkredding/poor-house-dub-v2/internal/dsp"
	"github.com/parkredding/poor-house-dub-v2/internal/param"
)

// One-pole smoothing coefficients for zipper-sensitive parameters. Small
// values (close to 0) ramp slowly (volume, delay time); base frequency
// and filter cutoff move a little faster without audible stepping.
const (
	volumeSmoothCoeff = 0.01
	freqSmoothCoeff   = 0.05
	filterSmoothCoeff = 0.05
	delaySmoothCoeff  = 0.01
)

const gateEpsilon = 1e-3

// Engine is the real-time DSP graph. All fields are either fixed-size
// DSP primitives allocated once in New, or atomic parameter carriers; no
// allocation happens in Process.
type Engine struct {
	sampleRate float64

	carriers *carriers

	osc       *dsp.Oscillator
	lfo       *dsp.LFO
	envelope  *dsp.Envelope
	filter    *dsp.LowPassFilter
	delay     *dsp.DelayLine
	reverb    *dsp.ReverbEffect
	dcBlocker *dsp.DCBlocker

	// triggerMu serialises Trigger/Release against each other only; the
	// audio thread never takes it (spec.md §4.2).
	triggerMu sync.Mutex

	// pitchEnvSamples counts samples since the last Trigger while the
	// amplitude envelope is in its Attack stage, driving the one-octave
	// pitch-envelope ramp described in spec.md §4.2.
	pitchEnvSamples int

	// snapFrequency asks the audio thread to jump the base-frequency
	// smoother straight onto its target at the start of the next block.
	// Set by Trigger so a new note starts at the selected pitch; the
	// smoother's ramp is for encoder sweeps during a held note.
	snapFrequency param.Bool

	// scratch block buffers, sized once in New and reused every Process
	// call.
	oscBuf, lfoBuf, envBuf []float32
}

// New constructs an Engine with every DSP primitive pre-allocated for
// sampleRate and ready to process blocks of up to maxBlockSize frames.
func New(sampleRate float64, maxBlockSize int) *Engine {
	e := &Engine{
		sampleRate: sampleRate,
		carriers:   newCarriers(),
		osc:        dsp.NewOscillator(sampleRate),
		lfo:        dsp.NewLFO(sampleRate),
		envelope:   dsp.NewEnvelope(sampleRate, 0.01, 0.5),
		filter:     dsp.NewLowPassFilter(sampleRate),
		delay:      dsp.NewDelayLine(sampleRate),
		reverb:     dsp.NewReverbEffect(sampleRate),
		dcBlocker:  dsp.NewDCBlocker(),
		oscBuf:     make([]float32, maxBlockSize),
		lfoBuf:     make([]float32, maxBlockSize),
		envBuf:     make([]float32, maxBlockSize),
	}
	e.lfo.SetDepth(0.3)
	e.lfo.SetFrequency(4)
	e.applyInitialParameters()
	return e
}

func (e *Engine) applyInitialParameters() {
	e.filter.SetCutoff(e.carriers.filterFreq.Current())
	e.filter.SetResonance(e.carriers.filterRes.Load())
	e.delay.SetFeedback(e.carriers.delayFeedback.Load())
	e.reverb.SetDryWet(e.carriers.reverbMix.Load())
	e.reverb.SetSize(e.carriers.reverbSize.Load())
	e.envelope.SetAttackTime(e.carriers.attackTime.Load())
	e.envelope.SetReleaseTime(e.carriers.releaseTime.Load())
	e.osc.SetFrequency(e.carriers.baseFrequency.Current())
	e.osc.SetWaveform(dsp.Waveform(e.carriers.oscWaveform.Load()))
	e.lfo.SetWaveform(dsp.Waveform(e.carriers.lfoWaveform.Load()))
}

// Trigger starts a new note: the amplitude envelope jumps to Attack from
// its current level and the oscillator phase resets, and (if a pitch
// envelope mode is active) the pitch-ramp sample counter restarts.
// Re-triggering during Release is allowed and restarts Attack from
// whatever level the envelope currently holds.
func (e *Engine) Trigger() {
	e.triggerMu.Lock()
	defer e.triggerMu.Unlock()
	e.envelope.Trigger()
	e.osc.ResetPhase()
	e.pitchEnvSamples = 0
	e.snapFrequency.Store(true)
}

// Release ends the current note: the amplitude envelope jumps to Release
// from its current level. Releasing while already Idle is a no-op
// (handled inside dsp.Envelope).
func (e *Engine) Release() {
	e.triggerMu.Lock()
	defer e.triggerMu.Unlock()
	e.envelope.Release()
}

// SetVolume sets the target volume [0,1]; smoothed on the audio thread.
func (e *Engine) SetVolume(v float32) { e.carriers.volume.SetTarget(clamp(v, VolumeMin, VolumeMax)) }

// SetFrequency sets the oscillator's target base frequency in Hz;
// smoothed on the audio thread.
func (e *Engine) SetFrequency(hz float32) {
	if hz < dsp.MinCutoffHz {
		hz = dsp.MinCutoffHz
	}
	e.carriers.baseFrequency.SetTarget(hz)
}

// SetAttackTime sets the amplitude envelope's attack time in seconds.
func (e *Engine) SetAttackTime(seconds float32) {
	if seconds < 0 {
		seconds = 0
	}
	e.carriers.attackTime.Store(seconds)
}

// SetReleaseTime sets the amplitude envelope's release time in seconds,
// clamped to [0.01, 5.0] per spec.md §4.6's bank table.
func (e *Engine) SetReleaseTime(seconds float32) {
	e.carriers.releaseTime.Store(clamp(seconds, ReleaseMin, ReleaseMax))
}

// SetFilterCutoff sets the filter's target cutoff frequency in Hz.
func (e *Engine) SetFilterCutoff(hz float32) {
	e.carriers.filterFreq.SetTarget(clamp(hz, FilterFreqMin, FilterFreqMax))
}

// SetFilterResonance sets the filter's resonance [0, 0.95].
func (e *Engine) SetFilterResonance(q float32) {
	e.carriers.filterRes.Store(clamp(q, FilterResMin, FilterResMax))
}

// SetDelayFeedback sets the delay line's feedback gain [0, 0.95].
func (e *Engine) SetDelayFeedback(g float32) {
	e.carriers.delayFeedback.Store(clamp(g, DelayFeedbackMin, DelayFeedbackMax))
}

// SetDelayTime sets the delay line's target time in seconds.
func (e *Engine) SetDelayTime(seconds float32) {
	e.carriers.delayTime.SetTarget(clamp(seconds, DelayTimeMin, DelayTimeMax))
}

// SetDelayMix sets the delay line's dry/wet mix [0,1], exposed directly
// (not control-surface mapped, but used by the impulse-response test in
// spec.md §8).
func (e *Engine) SetDelayMix(mix float32) { e.delay.SetDryWet(clamp(mix, 0, 1)) }

// SetReverbMix sets the reverb's dry/wet mix [0,1].
func (e *Engine) SetReverbMix(mix float32) {
	e.carriers.reverbMix.Store(clamp(mix, ReverbMixMin, ReverbMixMax))
}

// SetReverbSize sets the reverb's room-size parameter [0,1].
func (e *Engine) SetReverbSize(size float32) {
	e.carriers.reverbSize.Store(clamp(size, ReverbSizeMin, ReverbSizeMax))
}

// SetOscWaveformIndex sets the oscillator's waveform by index, wrapped
// mod dsp.NumWaveforms so an out-of-range index never panics.
func (e *Engine) SetOscWaveformIndex(idx int32) {
	e.carriers.oscWaveform.Store(int32(dsp.Waveform(idx).Normalize()))
}

// SetLFOWaveformIndex sets the LFO's waveform by index, wrapped the same
// way as SetOscWaveformIndex.
func (e *Engine) SetLFOWaveformIndex(idx int32) {
	e.carriers.lfoWaveform.Store(int32(dsp.Waveform(idx).Normalize()))
}

// SetPitchEnvelopeMode sets the pitch-envelope mode directly.
func (e *Engine) SetPitchEnvelopeMode(mode dsp.PitchEnvMode) {
	e.carriers.pitchEnvMode.Store(int32(mode))
}

// CyclePitchEnvelope advances None -> Up -> Down -> None and returns the
// new mode, for the control surface's pitch-env button to log.
func (e *Engine) CyclePitchEnvelope() dsp.PitchEnvMode {
	next := dsp.CyclePitchEnvMode(dsp.PitchEnvMode(e.carriers.pitchEnvMode.Load()))
	e.carriers.pitchEnvMode.Store(int32(next))
	return next
}

// Snapshot returns the current value of every control-surface parameter,
// for logging and testing.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Volume:         e.carriers.volume.Target(),
		FilterFreq:     e.carriers.filterFreq.Target(),
		FilterRes:      e.carriers.filterRes.Load(),
		DelayFeedback:  e.carriers.delayFeedback.Load(),
		ReverbMix:      e.carriers.reverbMix.Load(),
		Release:        e.carriers.releaseTime.Load(),
		DelayTime:      e.carriers.delayTime.Target(),
		ReverbSize:     e.carriers.reverbSize.Load(),
		OscWaveformIdx: e.carriers.oscWaveform.Load(),
		LFOWaveformIdx: e.carriers.lfoWaveform.Load(),
	}
}

// IsActive reports whether the amplitude envelope is still producing
// audible output.
func (e *Engine) IsActive() bool { return e.envelope.IsActive() }

// Process fills out (2*len(out)/2 = N stereo frames, interleaved L/R,
// mono duplicated to both channels) by running one block through the
// full DSP graph. out must have even length; n = len(out)/2 frames are
// produced. Process never allocates and never blocks.
func (e *Engine) Process(out []float32) {
	n := len(out) / 2
	osc := e.oscBuf[:n]
	lfo := e.lfoBuf[:n]
	env := e.envBuf[:n]

	e.applyControlParameters()

	e.fillOscillator(osc, n)
	e.lfo.Generate(lfo)
	e.envelope.Generate(env)

	for i := 0; i < n; i++ {
		fc := e.carriers.filterFreq.Next()
		modulated := fc * float32(math.Pow(2, float64(lfo[i])*2))
		modulated = clamp(modulated, 100, 8000)
		e.filter.SetCutoff(modulated)

		filtered := e.filter.Process(osc[i])

		if env[i] < gateEpsilon {
			filtered = 0
		} else {
			filtered *= env[i]
		}

		delayed := e.delay.Process(filtered)
		reverbed := e.reverb.Process(delayed)
		dcBlocked := e.dcBlocker.Process(reverbed)

		sampleVolume := e.carriers.volume.Next()
		v := clamp(dcBlocked*sampleVolume, -1, 1)
		out[2*i] = v
		out[2*i+1] = v
	}
}

// applyControlParameters pushes the non-smoothed parameter carriers into
// the DSP primitives that own their own internal state (resonance,
// feedback, mix, waveform selection, envelope times). Called once per
// block; each of these is a plain atomic load so it is cheap even though
// most blocks see no change.
func (e *Engine) applyControlParameters() {
	e.filter.SetResonance(e.carriers.filterRes.Load())
	e.delay.SetFeedback(e.carriers.delayFeedback.Load())
	e.delay.SetDelayTime(e.carriers.delayTime.Next())
	e.reverb.SetDryWet(e.carriers.reverbMix.Load())
	e.reverb.SetSize(e.carriers.reverbSize.Load())
	e.envelope.SetAttackTime(e.carriers.attackTime.Load())
	e.envelope.SetReleaseTime(e.carriers.releaseTime.Load())
	e.osc.SetWaveform(dsp.Waveform(e.carriers.oscWaveform.Load()))
	e.lfo.SetWaveform(dsp.Waveform(e.carriers.lfoWaveform.Load()))
}

// fillOscillator generates n samples of the oscillator's output,
// applying the pitch-envelope override (if active) sample-by-sample
// during the Attack stage, per spec.md §4.2's "Pitch envelope" rule.
func (e *Engine) fillOscillator(osc []float32, n int) {
	if e.snapFrequency.Load() {
		e.snapFrequency.Store(false)
		e.carriers.baseFrequency.SnapToTarget()
	}

	mode := dsp.PitchEnvMode(e.carriers.pitchEnvMode.Load())

	attackSamples := e.carriers.attackTime.Load() * float32(e.sampleRate)
	if attackSamples < 1 {
		attackSamples = 1
	}

	for i := 0; i < n; i++ {
		f0 := e.carriers.baseFrequency.Next()

		freq := f0
		if mode != dsp.PitchEnvNone && e.envelope.IsAttacking() {
			progress := clamp(float32(e.pitchEnvSamples)/attackSamples, 0, 1)
			var octaveOffset float32
			if mode == dsp.PitchEnvUp {
				octaveOffset = progress - 1
			} else {
				octaveOffset = 1 - progress
			}
			freq = f0 * float32(math.Pow(2, float64(octaveOffset)))
			if freq < dsp.MinCutoffHz {
				freq = dsp.MinCutoffHz
			}
			e.pitchEnvSamples++
		}

		e.osc.SetFrequency(freq)
		osc[i] = e.osc.GenerateSample()
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
