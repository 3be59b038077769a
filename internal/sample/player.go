// Package sample implements the dub siren's custom-sample playback
// mode (spec.md §4.7): load an MP3 file once at startup, decode and
// resample it to the engine's sample rate, and play it back in place of
// the synthesizer when the control surface's secret-mode gesture
// activates it.
package sample

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/go-mp3"
)

// Player holds one fully-decoded stereo sample in memory and serves
// Process calls from whichever goroutine the sink driver runs on. Load
// happens once, off the audio thread, before Process is ever called
// concurrently with it.
type Player struct {
	mu     sync.RWMutex
	frames []float32 // interleaved stereo, in [-1, 1]
	gain   float32

	playing  atomic.Bool
	playhead atomic.Uint64
	loop     atomic.Bool
}

// NewPlayer constructs an empty, unloaded player. Process is silence
// until Load succeeds.
func NewPlayer() *Player {
	p := &Player{gain: 1}
	return p
}

// Load reads path entirely into memory, decodes it as MP3, duplicates
// mono to stereo if needed, and linearly resamples to targetSampleRate.
// The decoded frames are stored once; Load is not safe to call
// concurrently with Process, and is expected to run during startup or
// from the control surface's own goroutine while the sink is paused on
// this source.
func (p *Player) Load(path string, targetSampleRate int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sample: open %q: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("sample: decode %q: %w", path, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("sample: read %q: %w", path, err)
	}

	// go-mp3 always decodes to stereo 16-bit little-endian PCM.
	sourceFrames := len(raw) / 4
	stereo := make([]float32, sourceFrames*2)
	for i := 0; i < sourceFrames; i++ {
		l := int16(raw[4*i]) | int16(raw[4*i+1])<<8
		r := int16(raw[4*i+2]) | int16(raw[4*i+3])<<8
		stereo[2*i] = float32(l) / 32768
		stereo[2*i+1] = float32(r) / 32768
	}

	resampled := resampleStereo(stereo, dec.SampleRate(), targetSampleRate)

	p.mu.Lock()
	p.frames = resampled
	p.mu.Unlock()

	p.playhead.Store(0)
	p.playing.Store(false)
	return nil
}

// resampleStereo linearly interpolates a stereo-interleaved buffer from
// srcRate to dstRate; a no-op copy when the rates already match.
func resampleStereo(src []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || srcRate <= 0 {
		out := make([]float32, len(src))
		copy(out, src)
		return out
	}

	srcFrames := len(src) / 2
	ratio := float64(srcRate) / float64(dstRate)
	dstFrames := int(float64(srcFrames) / ratio)
	out := make([]float32, dstFrames*2)

	for i := 0; i < dstFrames; i++ {
		srcPos := float64(i) * ratio
		i0 := int(srcPos)
		frac := float32(srcPos - float64(i0))
		i1 := i0 + 1
		if i1 >= srcFrames {
			i1 = srcFrames - 1
		}
		if i0 >= srcFrames {
			i0 = srcFrames - 1
		}
		out[2*i] = src[2*i0]*(1-frac) + src[2*i1]*frac
		out[2*i+1] = src[2*i0+1]*(1-frac) + src[2*i1+1]*frac
	}
	return out
}

// Play resets the playhead to the start and marks the sample playing.
func (p *Player) Play() {
	p.playhead.Store(0)
	p.playing.Store(true)
}

// Stop clears the playing flag; the playhead position is left as-is so
// a future Play always restarts from 0 regardless.
func (p *Player) Stop() { p.playing.Store(false) }

// SetLoop controls whether reaching the end of the sample restarts
// playback instead of auto-stopping.
func (p *Player) SetLoop(loop bool) { p.loop.Store(loop) }

// SetGain sets the linear output gain applied during Process.
func (p *Player) SetGain(g float32) { p.gain = g }

// IsPlaying reports whether the sample is currently playing.
func (p *Player) IsPlaying() bool { return p.playing.Load() }

// Process fills out (a block of interleaved stereo float32 frames) from
// the loaded sample, advancing the playhead. If not playing or nothing
// is loaded, out is filled with silence. Reaching the end auto-stops
// unless looping is enabled.
func (p *Player) Process(out []float32) {
	p.mu.RLock()
	frames := p.frames
	p.mu.RUnlock()

	n := len(out) / 2
	if !p.playing.Load() || len(frames) == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}

	totalFrames := len(frames) / 2
	pos := int(p.playhead.Load())
	gain := p.gain

	for i := 0; i < n; i++ {
		if pos >= totalFrames {
			if p.loop.Load() {
				pos = 0
			} else {
				p.playing.Store(false)
				for ; i < n; i++ {
					out[2*i] = 0
					out[2*i+1] = 0
				}
				break
			}
		}
		out[2*i] = frames[2*pos] * gain
		out[2*i+1] = frames[2*pos+1] * gain
		pos++
	}

	p.playhead.Store(uint64(pos))
}
