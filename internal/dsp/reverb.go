package dsp

import "math"

// Early-reflection tap delays in milliseconds (13-59ms per spec.md §4.1).
var earlyTapsMs = [8]float32{13, 19, 23, 31, 37, 43, 51, 59}

// Input diffusion allpass delays in milliseconds.
const (
	inputAP1Ms = 5.0
	inputAP2Ms = 8.9
	outputAPMs = 6.7
	diffuseG   = 0.5
)

// Comb delays in milliseconds, spread 29.7-57.1ms to avoid harmonic
// relationships that would ring metallically.
var combDelaysMs = [6]float32{29.7, 33.6, 41.3, 46.8, 51.2, 57.1}

// combFilter is one damped, LFO-wobbled comb line in the parallel bank.
type combFilter struct {
	buffer      []float32
	pos         int
	dampState   float32
	wobblePhase float32
	wobbleHz    float32
}

// allpassFilter is one diffusion stage.
type allpassFilter struct {
	buffer []float32
	pos    int
}

// earlyLine is a single fixed-delay tap used for the early-reflections
// sum.
type earlyLine struct {
	buffer []float32
	pos    int
}

// ReverbEffect is the prescribed chamber reverb: 8 fixed early-reflection
// taps, 2 input diffusion allpasses, 6 damped/wobbled comb filters, 1
// output diffusion allpass (spec.md §4.1).
type ReverbEffect struct {
	sampleRate float32

	early   [8]earlyLine
	inputAP [2]allpassFilter
	combs   [6]combFilter
	outAP   allpassFilter

	size     float32 // [0,1] -> feedback gain
	damping  float32 // [0,1]
	dryWet   float32
	feedback float32 // derived from size, clamped < 0.98
}

const (
	earlyLevel          = 0.15
	reverbFeedbackBase  = 0.4
	reverbFeedbackRange = 0.45
	reverbFeedbackMax   = 0.98
)

// NewReverbEffect constructs a chamber reverb for the given sample rate.
func NewReverbEffect(sampleRate float64) *ReverbEffect {
	sr := float32(sampleRate)
	r := &ReverbEffect{sampleRate: sr}

	for i, ms := range earlyTapsMs {
		r.early[i].buffer = make([]float32, msToSamples(ms, sr)+1)
	}
	r.inputAP[0].buffer = make([]float32, msToSamples(inputAP1Ms, sr)+1)
	r.inputAP[1].buffer = make([]float32, msToSamples(inputAP2Ms, sr)+1)
	r.outAP.buffer = make([]float32, msToSamples(outputAPMs, sr)+1)

	// Sub-0.3Hz random-ish initial phases (deterministic, evenly spread)
	// so the six combs don't beat in lock-step.
	for i, ms := range combDelaysMs {
		r.combs[i].buffer = make([]float32, msToSamples(ms, sr)+1)
		r.combs[i].wobbleHz = 0.2 + float32(i)*0.017
		r.combs[i].wobblePhase = float32(i) / float32(len(combDelaysMs))
	}

	r.SetSize(0.5)
	r.SetDamping(0.5)
	r.SetDryWet(0.25)
	return r
}

func msToSamples(ms, sampleRate float32) int {
	return int(ms * sampleRate / 1000.0)
}

// SetSize sets the room-size parameter [0,1], mapping to a feedback gain
// of 0.4+size*0.45, clamped below 0.98 so the combs can never
// self-oscillate.
func (r *ReverbEffect) SetSize(size float32) {
	r.size = clamp(size, 0, 1)
	fb := reverbFeedbackBase + r.size*reverbFeedbackRange
	if fb > reverbFeedbackMax {
		fb = reverbFeedbackMax
	}
	r.feedback = fb
}

// SetDamping sets the in-feedback one-pole low-pass damping [0,1].
func (r *ReverbEffect) SetDamping(damping float32) {
	r.damping = clamp(damping, 0, 1)
}

// SetDryWet sets the dry/wet mix [0,1].
func (r *ReverbEffect) SetDryWet(mix float32) {
	r.dryWet = clamp(mix, 0, 1)
}

func (e *earlyLine) process(input float32) float32 {
	out := e.buffer[e.pos]
	e.buffer[e.pos] = input + antiDenormal
	e.pos++
	if e.pos >= len(e.buffer) {
		e.pos = 0
	}
	return out
}

func (a *allpassFilter) process(input float32) float32 {
	delayed := a.buffer[a.pos]
	out := -input + delayed
	a.buffer[a.pos] = input + delayed*diffuseG + antiDenormal
	a.pos++
	if a.pos >= len(a.buffer) {
		a.pos = 0
	}
	return out
}

// Process runs one sample through the full chamber topology and returns
// the wet signal already mixed with dry per spec.md §4.1 step 5.
func (r *ReverbEffect) Process(input float32) float32 {
	var early float32
	for i := range r.early {
		early += r.early[i].process(input)
	}
	early *= earlyLevel

	diffused := input
	diffused = r.inputAP[0].process(diffused)
	diffused = r.inputAP[1].process(diffused)

	dampCoeff := 1 - r.damping*0.5

	var combSum float32
	for i := range r.combs {
		c := &r.combs[i]
		delayed := c.buffer[c.pos]

		c.wobblePhase += c.wobbleHz / r.sampleRate
		if c.wobblePhase >= 1 {
			c.wobblePhase -= 1
		}
		// The wobble scales the comb's feedback gain by at most +/-0.09%;
		// the comb's read position itself is fixed.
		wobble := sineAt(c.wobblePhase) * 0.3

		c.dampState = delayed*dampCoeff + c.dampState*(1-dampCoeff)
		fb := c.dampState * r.feedback * (1 + wobble*0.003)
		fb = softSat(fb)

		c.buffer[c.pos] = diffused + fb + antiDenormal
		c.pos++
		if c.pos >= len(c.buffer) {
			c.pos = 0
		}
		combSum += delayed
	}

	outDiffused := r.outAP.process(combSum / float32(len(r.combs)))

	wet := early + outDiffused
	y := input*(1-r.dryWet) + wet*r.dryWet
	return clampFinite(y)
}

func clampFinite(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return clamp(v, -1, 1)
}
