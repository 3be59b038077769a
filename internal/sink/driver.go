package sink

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Driver owns the dedicated audio goroutine (spec.md §4.4, §5 "T_audio").
// Each iteration pulls one block from the active BlockSource, converts it
// to clamped int16 stereo frames, and writes it to the Sink. Underruns
// and short writes are recovered in-loop and counted; they are never
// returned to the caller.
type Driver struct {
	sink       Sink
	sampleRate int
	blockSize  int

	source atomic.Pointer[BlockSource]
	stats  *Stats

	floatBuf []float32
	intBuf   []int16

	runningCh chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewDriver constructs a driver around an already-open Sink. source is
// the initial BlockSource (normally the engine); SetSource can switch to
// the sample player for "custom audio" mode without stopping the driver.
func NewDriver(s Sink, sampleRate, blockSize int, source BlockSource) *Driver {
	d := &Driver{
		sink:       s,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		stats:      newStats(),
		floatBuf:   make([]float32, blockSize*2),
		intBuf:     make([]int16, blockSize*2),
		runningCh:  make(chan struct{}),
	}
	d.source.Store(&source)
	return d
}

// SetSource atomically swaps the active BlockSource; safe to call while
// the driver is running (spec.md §4.6's sample-playback mode switch).
func (d *Driver) SetSource(source BlockSource) {
	d.source.Store(&source)
}

// Stats returns the driver's rolling diagnostic counters.
func (d *Driver) Stats() *Stats { return d.stats }

// Start launches the audio goroutine. ctx cancellation is the cooperative
// stop signal (spec.md §5 "Cancellation").
func (d *Driver) Start(ctx context.Context) {
	d.wg.Add(1)
	go d.loop(ctx)
}

// Stop signals the audio goroutine to exit and blocks until it has
// drained the sink and returned.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.runningCh) })
	d.wg.Wait()
}

// blockPeriod paces the loop to the block's real-time duration for sinks
// whose Write doesn't itself block (the simulated sink, and oto's ring,
// which overwrites its oldest bytes instead of waiting); a blocking sink
// (ALSA) naturally self-paces and this floor simply never triggers.
func (d *Driver) blockPeriod() time.Duration {
	return time.Duration(d.blockSize) * time.Second / time.Duration(d.sampleRate)
}

func (d *Driver) loop(ctx context.Context) {
	defer d.wg.Done()
	defer func() {
		if err := d.sink.Close(); err != nil {
			log.Error("sink close failed", "err", err)
		}
	}()

	period := d.blockPeriod()
	nextDeadline := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.runningCh:
			return
		default:
		}

		blockStart := time.Now()

		source := *d.source.Load()
		source.Process(d.floatBuf)
		floatToInt16(d.floatBuf, d.intBuf)

		// Compute time is measured before the sink write: the write is
		// expected to block for most of the period, so including it would
		// pin the ratio at 1 and hide how close DSP is to the deadline.
		d.stats.recordBlockTiming(time.Since(blockStart), period)

		d.writeWithRecovery()

		nextDeadline = nextDeadline.Add(period)
		if sleep := time.Until(nextDeadline); sleep > 0 {
			time.Sleep(sleep)
		} else {
			nextDeadline = time.Now()
		}
	}
}

// writeWithRecovery writes the current int buffer, counting every
// failed attempt as an underrun and re-preparing the sink before the
// retry, matching spec.md §4.4/§7's "recover, count, continue" policy.
// Persistent failure beyond one retry drops the block silently
// (spec.md §5 "Timeouts": "silent output preferred over crash").
func (d *Driver) writeWithRecovery() {
	for attempt := 0; attempt < 2; attempt++ {
		n, err := d.sink.Write(d.intBuf)
		if err == nil && n == len(d.intBuf)/2 {
			return
		}

		d.stats.recordUnderrun()
		if n > 0 && n < len(d.intBuf)/2 {
			d.stats.recordShortWrite()
		}

		if recoverErr := d.sink.Recover(err); recoverErr != nil {
			log.Warn("sink recovery failed, continuing silently", "err", recoverErr)
			return
		}
	}
	log.Warn("sink write failed after recovery, dropping block")
}

// floatToInt16 converts a clamped [-1,1] float32 block to S16_LE samples.
func floatToInt16(in []float32, out []int16) {
	const scale = 32767.0
	for i, v := range in {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = int16(v * scale)
	}
}

