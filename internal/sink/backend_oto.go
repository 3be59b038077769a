package sink

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoRingFrames sizes the byte ring between Write (pushed by the Driver's
// goroutine) and Read (pulled by oto's own playback goroutine); a few
// blocks of headroom absorbs oto's pull cadence without the ring ever
// needing to grow.
const otoRingFrames = 4

// OtoSink adapts the engine's push-style Write into oto/v3's pull-style
// io.Reader player: Write fills a small ring buffer, oto's background
// goroutine drains it through Read. It negotiates stereo S16LE to match
// the Driver's int16 conversion.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player

	mu       sync.Mutex
	notEmpty *sync.Cond
	ring     []byte
	size     int
	head     int
	fill     int
	closed   bool
}

func NewOtoSink() *OtoSink {
	s := &OtoSink{}
	s.notEmpty = sync.NewCond(&s.mu)
	return s
}

func (s *OtoSink) Open(device string, sampleRate, blockSize int) error {
	s.size = otoRingFrames * blockSize * 2 * 2 // frames * stereo * bytes/sample
	s.ring = make([]byte, s.size)

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("oto: new context: %w", err)
	}
	<-ready

	s.ctx = ctx
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return nil
}

// Read implements io.Reader for oto's internal playback goroutine. It
// blocks until at least one full frame is available, copying out zero
// fill only if the sink has been closed underneath it.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.fill == 0 && !s.closed {
		s.notEmpty.Wait()
	}
	if s.fill == 0 && s.closed {
		return 0, nil
	}

	n := len(p)
	if n > s.fill {
		n = s.fill
	}
	for i := 0; i < n; i++ {
		p[i] = s.ring[(s.head+i)%s.size]
	}
	s.head = (s.head + n) % s.size
	s.fill -= n
	return n, nil
}

// Write pushes one block's worth of interleaved int16 stereo frames into
// the ring as raw little-endian bytes. If the ring has no room (oto's
// consumer has fallen behind), the oldest unread bytes are dropped and
// an error is returned alongside the full frame count, so the Driver
// counts it as an underrun (not as a short write).
func (s *OtoSink) Write(frames []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byteLen := len(frames) * 2
	free := s.size - s.fill
	dropped := byteLen > free
	if dropped {
		overflow := byteLen - free
		s.head = (s.head + overflow) % s.size
		s.fill -= overflow
	}

	tail := (s.head + s.fill) % s.size
	for i, sample := range frames {
		lo := byte(sample)
		hi := byte(sample >> 8)
		s.ring[(tail+2*i)%s.size] = lo
		s.ring[(tail+2*i+1)%s.size] = hi
	}
	s.fill += byteLen
	if s.fill > s.size {
		s.fill = s.size
	}
	s.notEmpty.Signal()

	if dropped {
		return len(frames) / 2, fmt.Errorf("oto: ring overflow, dropped oldest frames")
	}
	return len(frames) / 2, nil
}

// Recover is a no-op: the ring already self-heals overflow by dropping
// the oldest bytes, and oto's Read loop never returns a hard error.
func (s *OtoSink) Recover(cause error) error { return nil }

// Close wakes any blocked Read and closes the oto player right away.
// Bytes still in the ring that oto has not read yet are discarded: Close
// does not wait for them to play.
func (s *OtoSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.notEmpty.Broadcast()
	s.mu.Unlock()

	if s.player != nil {
		_ = s.player.Close()
	}
	return nil
}
