package dsp

import "math"

const (
	maxDelaySeconds   = 2.0
	delayTimeSmoothCo = 0.002 // one-pole coefficient for the time-smoother
	delayWobbleHz     = 0.37  // slow LFO imparting tape-style wobble
	delayWobbleDepth  = 0.3   // samples; sub-sample so echoes stay put
)

// DelayLine is a tape-style delay: a circular buffer read at a fractional,
// LFO-wobbled position with soft-saturated feedback. Buffer length is
// fixed at construction time (max 2s at the configured sample rate), so
// Process never allocates.
type DelayLine struct {
	sampleRate  float32
	buffer      []float32
	writePos    int
	timeSm      smoother // seconds, smoothed to avoid zipper on sweep
	feedback    float32
	dryWet      float32
	wobblePhase float32
}

// NewDelayLine constructs a delay line sized for maxDelaySeconds at the
// given sample rate, defaulting to 250ms, no feedback, fully dry.
func NewDelayLine(sampleRate float64) *DelayLine {
	sr := float32(sampleRate)
	d := &DelayLine{
		sampleRate: sr,
		buffer:     make([]float32, int(maxDelaySeconds*sr)+1),
		timeSm:     newSmoother(0.25, delayTimeSmoothCo),
	}
	return d
}

// SetDelayTime sets the target delay in seconds, clamped to
// [0.001, 2.0], smoothed internally to avoid zipper noise when swept.
func (d *DelayLine) SetDelayTime(seconds float32) {
	d.timeSm.setTarget(clamp(seconds, 0.001, maxDelaySeconds))
}

// SetFeedback sets the feedback gain, clamped to [0, 0.95] so the line
// always decays.
func (d *DelayLine) SetFeedback(g float32) {
	d.feedback = clamp(g, 0, 0.95)
}

// SetDryWet sets the dry/wet mix, clamped to [0, 1].
func (d *DelayLine) SetDryWet(mix float32) {
	d.dryWet = clamp(mix, 0, 1)
}

func (d *DelayLine) readInterpolated(delaySamples float32) float32 {
	n := float32(len(d.buffer))
	readPos := float32(d.writePos) - delaySamples
	for readPos < 0 {
		readPos += n
	}
	i0 := int(readPos)
	frac := readPos - float32(i0)
	i1 := i0 + 1
	if i1 >= len(d.buffer) {
		i1 = 0
	}
	if i0 >= len(d.buffer) {
		i0 = 0
	}
	return d.buffer[i0]*(1-frac) + d.buffer[i1]*frac
}

// Process runs one sample through the delay line and returns the mixed
// dry/wet output.
func (d *DelayLine) Process(input float32) float32 {
	delaySeconds := d.timeSm.next()

	d.wobblePhase += delayWobbleHz / d.sampleRate
	if d.wobblePhase >= 1 {
		d.wobblePhase -= 1
	}
	wobble := sineAt(d.wobblePhase) * delayWobbleDepth

	delaySamples := delaySeconds*d.sampleRate + wobble
	if delaySamples < 1 {
		delaySamples = 1
	}

	read := d.readInterpolated(delaySamples)
	feedbackSample := softSat(read * d.feedback)

	write := clamp(input+feedbackSample, -1, 1)
	d.buffer[d.writePos] = write + antiDenormal
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}

	return input*(1-d.dryWet) + read*d.dryWet
}

// impulseDelaySamples is exposed only for tests that verify the delay
// law in spec.md §8 ("output has single impulse at n = round(t*SR)").
func impulseDelaySamples(seconds float64, sampleRate float64) int {
	return int(math.Round(seconds * sampleRate))
}
