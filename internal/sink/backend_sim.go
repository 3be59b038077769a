package sink

import "sync"

// SimulatedSink is the headless/`--simulate` backend, grounded on the
// teacher's no-op headless player: it discards nothing, instead
// recording every written frame so tests can assert on engine output
// without a real audio device. FaultInjector, if set before Open,
// lets a test force Write to fail on chosen calls (spec.md §8
// scenario 6, "underrun tolerance"); Recover always succeeds.
type SimulatedSink struct {
	mu          sync.Mutex
	frames      []int16
	writeCalls  int
	recoverHits int

	// FaultInjector is consulted on every Write; returning a non-zero
	// short count simulates a partial write, and ok=false simulates a
	// hard failure the Driver must recover from.
	FaultInjector func(callIndex int, frames []int16) (shortBy int, ok bool)
}

func NewSimulatedSink() *SimulatedSink { return &SimulatedSink{} }

func (s *SimulatedSink) Open(device string, sampleRate, blockSize int) error { return nil }

func (s *SimulatedSink) Write(frames []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeCalls++
	total := len(frames) / 2

	if s.FaultInjector != nil {
		shortBy, ok := s.FaultInjector(s.writeCalls, frames)
		if !ok {
			return 0, errUnderrun
		}
		if shortBy > 0 {
			written := total - shortBy
			if written < 0 {
				written = 0
			}
			s.frames = append(s.frames, frames[:written*2]...)
			return written, errShortWrite
		}
	}

	s.frames = append(s.frames, frames...)
	return total, nil
}

func (s *SimulatedSink) Recover(cause error) error {
	s.mu.Lock()
	s.recoverHits++
	s.mu.Unlock()
	return nil
}

func (s *SimulatedSink) Close() error { return nil }

// Frames returns a copy of every frame accepted so far, for test
// assertions against the synthesized waveform.
func (s *SimulatedSink) Frames() []int16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int16, len(s.frames))
	copy(out, s.frames)
	return out
}

// RecoverCalls reports how many times Recover was invoked.
func (s *SimulatedSink) RecoverCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recoverHits
}

type sinkError string

func (e sinkError) Error() string { return string(e) }

const (
	errUnderrun   sinkError = "sink: simulated underrun"
	errShortWrite sinkError = "sink: simulated short write"
)
