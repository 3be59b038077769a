// Package sink drives the external audio sink: it pulls blocks from a
// BlockSource (the engine, or the sample player in "custom audio" mode),
// converts float32 to clamped int16 stereo-interleaved frames, and writes
// them to a Sink. It owns the dedicated real-time goroutine and recovers
// from underruns without ever surfacing them as errors to the caller.
package sink

// Sink is the external audio-sink contract (spec.md §6): open by device
// name, negotiate rate/channels/format/period, write interleaved 16-bit
// frames, recover from underrun.
type Sink interface {
	// Open negotiates the device for the given sample rate, stereo
	// S16_LE frames, and a period near blockSize frames. Returns a
	// diagnostic error on negotiation failure (init-fatal per spec.md
	// §7).
	Open(device string, sampleRate, blockSize int) error

	// Write writes N interleaved stereo int16 frames (len(frames) ==
	// 2*N). Returns the number of frames written and a non-nil error on
	// underrun/short write.
	Write(frames []int16) (framesWritten int, err error)

	// Recover attempts to re-prepare the sink after a failed Write. Must
	// be callable repeatedly.
	Recover(cause error) error

	// Close releases the sink, draining any buffered frames first.
	Close() error
}

// BlockSource produces one block of stereo float32 samples per call, in
// [-1, 1], interleaved L/R. Both engine.Engine and sample.Player satisfy
// this.
type BlockSource interface {
	Process(out []float32)
}
