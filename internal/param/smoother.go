package param

// Smoothed is a one-pole target-follower read only by the audio thread.
// The control thread writes a target via SetTarget (itself backed by a
// Float32 carrier so it is safe to call from any goroutine); the audio
// thread calls Next once per sample to advance current toward target and
// read the ramped value. This is how spec.md §4.3 avoids zipper noise on
// volume, delay time, base frequency and filter cutoff without putting a
// lock on the audio path.
type Smoothed struct {
	target      Float32
	current     float32
	coefficient float32
}

// NewSmoothed constructs a smoother starting at initial with the given
// one-pole coefficient (0,1]; larger values track the target faster.
func NewSmoothed(initial, coefficient float32) *Smoothed {
	s := &Smoothed{current: initial, coefficient: coefficient}
	s.target.Store(initial)
	return s
}

// SetTarget atomically sets the value the smoother ramps toward. Safe to
// call from any goroutine.
func (s *Smoothed) SetTarget(v float32) { s.target.Store(v) }

// snapEpsilon is the residual below which Next locks current onto the
// target exactly, so a ramp terminates instead of chasing the target
// through ever-smaller (eventually subnormal) float steps.
const snapEpsilon = 1e-6

// Next advances current toward the latest target by coefficient and
// returns it. Must only be called from the audio thread.
func (s *Smoothed) Next() float32 {
	t := s.target.Load()
	s.current += (t - s.current) * s.coefficient
	if diff := s.current - t; diff < snapEpsilon && diff > -snapEpsilon {
		s.current = t
	}
	return s.current
}

// Current returns the smoother's last-computed value without advancing
// it.
func (s *Smoothed) Current() float32 { return s.current }

// SnapToTarget jumps current straight onto the latest target, skipping
// the ramp. Must only be called from the audio thread; writers that
// want a snap signal it through a separate flag the audio thread acts
// on.
func (s *Smoothed) SnapToTarget() {
	s.current = s.target.Load()
}

// Target returns the value most recently written by SetTarget, without
// waiting for the audio thread to ramp toward it. Control-surface
// snapshots read this so a parameter change is visible to the control
// thread immediately (spec.md §8 scenario 3), even though the audio
// thread itself only ever sees the smoothed Current/Next values.
func (s *Smoothed) Target() float32 { return s.target.Load() }
