package dsp

// smoother is a one-pole target-follower used internally by effects
// (e.g. DelayLine's delay time) to avoid zipper noise when a parameter is
// swept. It is distinct from param.Smoothed, which crosses the
// control-thread/audio-thread boundary; this one lives entirely on the
// audio thread.
type smoother struct {
	target, current, coefficient float32
}

func newSmoother(initial, coefficient float32) smoother {
	return smoother{target: initial, current: initial, coefficient: coefficient}
}

func (s *smoother) setTarget(v float32) { s.target = v }

// next advances current toward target by coefficient and returns it.
func (s *smoother) next() float32 {
	s.current += (s.target - s.current) * s.coefficient
	return s.current
}
