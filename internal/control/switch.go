package control

import (
	"context"
	"time"

	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
)

// debounceWindow and minPressDuration follow spec.md's MomentarySwitch
// contract: a level must hold steady for debounceWindow before it's
// accepted as a state change, and a press must last minPressDuration
// before its matching release is emitted, to reject contact bounce.
const (
	debounceWindow   = 10 * time.Millisecond
	minPressDuration = 30 * time.Millisecond
)

// MomentarySwitch polls a single pin, idle HIGH / pressed LOW, and
// emits onPress/onRelease once the level has been stable long enough.
type MomentarySwitch struct {
	reader gpio.Reader
	line   int

	onPress   func()
	onRelease func()

	pressed        bool
	candidate      gpio.Level
	candidateSince time.Time
	pressedSince   time.Time
}

// NewMomentarySwitch constructs a switch bound to the given logical
// line. Either callback may be nil.
func NewMomentarySwitch(reader gpio.Reader, line int, onPress, onRelease func()) *MomentarySwitch {
	return &MomentarySwitch{
		reader:    reader,
		line:      line,
		onPress:   onPress,
		onRelease: onRelease,
		candidate: gpio.High,
	}
}

// Run polls until ctx is cancelled. The switch's state is seeded from
// the current pin level first, so a button already held at startup is
// not reported as a fresh press.
func (s *MomentarySwitch) Run(ctx context.Context) {
	if level, err := s.reader.Read(s.line); err == nil {
		now := time.Now()
		s.pressed = level == gpio.Low
		s.candidate = level
		s.candidateSince = now
		s.pressedSince = now
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *MomentarySwitch) poll() {
	level, err := s.reader.Read(s.line)
	if err != nil {
		return
	}
	now := time.Now()

	currentlyPressed := level == gpio.Low
	if currentlyPressed == s.pressed {
		// Steady state; reset the candidate tracker so a transient
		// glitch back toward the current state doesn't fast-track a
		// future transition.
		s.candidate = level
		s.candidateSince = now
		return
	}

	if level != s.candidate {
		s.candidate = level
		s.candidateSince = now
		return
	}
	if now.Sub(s.candidateSince) < debounceWindow {
		return
	}

	// Debounced transition confirmed.
	if currentlyPressed {
		s.pressed = true
		s.pressedSince = now
		if s.onPress != nil {
			s.onPress()
		}
		return
	}

	if now.Sub(s.pressedSince) < minPressDuration {
		// Too short to be a real press; treat as bounce and stay
		// pressed until a release survives the minimum duration.
		s.candidate = gpio.Low
		s.candidateSince = now
		return
	}
	s.pressed = false
	if s.onRelease != nil {
		s.onRelease()
	}
}

// IsPressed reports the switch's last debounced state.
func (s *MomentarySwitch) IsPressed() bool { return s.pressed }
