package sink

import (
	"math"
	"sync/atomic"
	"time"
)

// Stats is the driver's rolling diagnostic counters, modeled on the
// periodic-report pattern used elsewhere in the retrieved pack for audio
// troubleshooting: an underrun counter, a short-write counter, and an
// exponential moving average of compute-time-per-block versus the
// block's real-time budget. All fields are safe to read concurrently
// with the audio goroutine.
type Stats struct {
	underruns   atomic.Uint64
	shortWrites atomic.Uint64
	cpuRatio    atomic.Uint64 // math.Float64bits of the EMA
}

func newStats() *Stats {
	return &Stats{}
}

// Underruns returns the total number of recovered sink underruns.
func (s *Stats) Underruns() uint64 { return s.underruns.Load() }

// ShortWrites returns the total number of recovered short writes.
func (s *Stats) ShortWrites() uint64 { return s.shortWrites.Load() }

func (s *Stats) recordUnderrun() { s.underruns.Add(1) }

func (s *Stats) recordShortWrite() { s.shortWrites.Add(1) }

// cpuEMACoeff weights each block's measured ratio against the running
// average; ~2s worth of blocks at the default 256/48000 cadence.
const cpuEMACoeff = 1.0 / 375 // 375 blocks * 256/48000 s = 2s

func (s *Stats) recordBlockTiming(computeTime, blockBudget time.Duration) {
	if blockBudget <= 0 {
		return
	}
	ratio := float64(computeTime) / float64(blockBudget)
	for {
		old := s.cpuRatio.Load()
		oldF := math.Float64frombits(old)
		newF := oldF + (ratio-oldF)*cpuEMACoeff
		if s.cpuRatio.CompareAndSwap(old, math.Float64bits(newF)) {
			return
		}
	}
}

// CPULoad returns the rolling CPU-time/wall-time ratio, 0 meaning idle
// and 1 meaning the driver is using all of its available block time.
func (s *Stats) CPULoad() float64 { return math.Float64frombits(s.cpuRatio.Load()) }

