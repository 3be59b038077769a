package dsp

// EnvelopeStage is the AR envelope's current phase.
type EnvelopeStage int32

const (
	EnvIdle EnvelopeStage = iota
	EnvAttack
	EnvSustain
	EnvRelease
)

// activeEpsilon is the level below which the envelope is considered
// silent for gating purposes (spec: "env[i] < 1e-3").
const activeEpsilon = 1e-3

// Envelope is a two-stage attack/release envelope generator. Level is
// continuous across every stage transition: Trigger jumps to Attack from
// whatever level the envelope currently holds (no click), and Release
// jumps to Release from the current level the same way.
type Envelope struct {
	sampleRate  float32
	stage       EnvelopeStage
	level       float32
	attackTime  float32 // seconds
	releaseTime float32 // seconds
}

// NewEnvelope constructs an idle envelope with the given default
// attack/release times in seconds.
func NewEnvelope(sampleRate float64, attackSeconds, releaseSeconds float32) *Envelope {
	return &Envelope{
		sampleRate:  float32(sampleRate),
		stage:       EnvIdle,
		attackTime:  attackSeconds,
		releaseTime: releaseSeconds,
	}
}

// SetAttackTime sets the attack ramp duration in seconds. Negative
// values are clamped to 0; an attack time of 0 makes the attack jump
// straight to full level on its first sample, so the per-sample
// increment never divides by zero.
func (e *Envelope) SetAttackTime(seconds float32) {
	if seconds < 0 {
		seconds = 0
	}
	e.attackTime = seconds
}

// SetReleaseTime sets the release ramp duration in seconds, clamped the
// same way as SetAttackTime.
func (e *Envelope) SetReleaseTime(seconds float32) {
	if seconds < 0 {
		seconds = 0
	}
	e.releaseTime = seconds
}

// Trigger starts (or restarts) the attack phase from the current level,
// so re-triggering during Release never produces a discontinuity.
func (e *Envelope) Trigger() {
	e.stage = EnvAttack
}

// Release starts the release phase from the current level. A release
// while already Idle is a no-op.
func (e *Envelope) Release() {
	if e.stage == EnvIdle {
		return
	}
	e.stage = EnvRelease
}

// IsActive reports whether the envelope is still producing audible
// output.
func (e *Envelope) IsActive() bool {
	return e.stage != EnvIdle || e.level > activeEpsilon
}

// IsAttacking reports whether the envelope is currently in its Attack
// stage, used by the engine to drive the pitch-envelope ramp.
func (e *Envelope) IsAttacking() bool { return e.stage == EnvAttack }

// Stage returns the envelope's current stage.
func (e *Envelope) Stage() EnvelopeStage { return e.stage }

// Level returns the envelope's current level without advancing it.
func (e *Envelope) Level() float32 { return e.level }

func (e *Envelope) stepAttack() {
	if e.attackTime <= 0 {
		e.level = 1
		e.stage = EnvSustain
		return
	}
	e.level += 1.0 / (e.attackTime * e.sampleRate)
	if e.level >= 1 {
		e.level = 1
		e.stage = EnvSustain
	}
}

func (e *Envelope) stepRelease() {
	if e.releaseTime <= 0 {
		e.level = 0
		e.stage = EnvIdle
		return
	}
	e.level -= 1.0 / (e.releaseTime * e.sampleRate)
	if e.level <= 0 {
		e.level = 0
		e.stage = EnvIdle
	}
}

// Generate fills buf with N successive envelope samples, advancing the
// state machine one step per sample.
func (e *Envelope) Generate(buf []float32) {
	for i := range buf {
		switch e.stage {
		case EnvAttack:
			e.stepAttack()
		case EnvRelease:
			e.stepRelease()
		case EnvSustain:
			e.level = 1
		case EnvIdle:
			e.level = 0
		}
		buf[i] = e.level
	}
}
