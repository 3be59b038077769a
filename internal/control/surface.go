package control

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parkredding/poor-house-dub-v2/internal/engine"
	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
	"github.com/parkredding/poor-house-dub-v2/internal/sample"
)

// Bank selects which half of the parameter table an encoder mutates.
type Bank int

const (
	BankA Bank = iota
	BankB
)

func (b Bank) String() string {
	if b == BankB {
		return "B"
	}
	return "A"
}

// PinMap is the logical line assignment for every control-surface input,
// matching spec.md §4.6's BCM pin table (illustrative numbers; a real
// deployment only needs to avoid the I2S pins 18/19/21).
type PinMap struct {
	Enc1CLK, Enc1DT int
	Enc2CLK, Enc2DT int
	Enc3CLK, Enc3DT int
	Enc4CLK, Enc4DT int
	Enc5CLK, Enc5DT int
	Trigger         int
	PitchEnv        int
	Shift           int
	Shutdown        int
}

// DefaultPinMap is the I2S-safe 5-encoder map from spec.md §4.6.
func DefaultPinMap() PinMap {
	return PinMap{
		Enc1CLK: 17, Enc1DT: 2,
		Enc2CLK: 27, Enc2DT: 22,
		Enc3CLK: 23, Enc3DT: 24,
		Enc4CLK: 20, Enc4DT: 26,
		Enc5CLK: 14, Enc5DT: 13,
		Trigger:  4,
		PitchEnv: 10,
		Shift:    15,
		Shutdown: 3,
	}
}

// encoderBinding pairs one physical encoder with its Bank A and Bank B
// mutation, so a single onTick dispatches to whichever the shift state
// currently selects.
type encoderBinding struct {
	name           string
	applyA, applyB func(dir Direction)
}

// Surface is the dub siren's control-surface state machine: it owns the
// engine reference, the current bank/shift state, five encoders, four
// switches, and the secret-mode gesture detector, exactly as spec.md
// §4.6 lays out.
type Surface struct {
	eng    *engine.Engine
	player *sample.Player

	mu               sync.Mutex
	bank             Bank
	customSampleMode bool

	encoders []*RotaryEncoder
	switches []*MomentarySwitch
	secret   *Gesture

	shutdownFn  func()
	onSetSource func(useSample bool)
}

// NewSurface wires five encoders and four switches onto reader using
// pins, driving eng (and, once a secret-mode gesture is triggered,
// player). onSetSource is called to flip the sink between the engine
// and the sample player when custom-sample mode toggles.
func NewSurface(eng *engine.Engine, player *sample.Player, reader gpio.Reader, pins PinMap, shutdownFn func(), onSetSource func(useSample bool)) *Surface {
	s := &Surface{
		eng:         eng,
		player:      player,
		shutdownFn:  shutdownFn,
		onSetSource: onSetSource,
	}

	bindings := s.bankBindings()

	s.encoders = []*RotaryEncoder{
		NewRotaryEncoder(reader, pins.Enc1CLK, pins.Enc1DT, s.dispatch(bindings[0])),
		NewRotaryEncoder(reader, pins.Enc2CLK, pins.Enc2DT, s.dispatch(bindings[1])),
		NewRotaryEncoder(reader, pins.Enc3CLK, pins.Enc3DT, s.dispatch(bindings[2])),
		NewRotaryEncoder(reader, pins.Enc4CLK, pins.Enc4DT, s.dispatch(bindings[3])),
		NewRotaryEncoder(reader, pins.Enc5CLK, pins.Enc5DT, s.dispatch(bindings[4])),
	}

	triggerSwitch := NewMomentarySwitch(reader, pins.Trigger, s.onTriggerPress, s.onTriggerRelease)
	pitchEnvSwitch := NewMomentarySwitch(reader, pins.PitchEnv, s.onPitchEnvPress, nil)
	shiftSwitch := NewMomentarySwitch(reader, pins.Shift, s.onShiftPress, s.onShiftRelease)
	shutdownSwitch := NewMomentarySwitch(reader, pins.Shutdown, s.onShutdownPress, nil)

	s.switches = []*MomentarySwitch{triggerSwitch, pitchEnvSwitch, shiftSwitch, shutdownSwitch}

	// Five presses of Shift within two seconds toggles custom-sample
	// mode (spec.md §4.6's "secret mode detector", concretized per
	// SPEC_FULL.md 1.3).
	s.secret = NewGesture(5, 2*time.Second, s.toggleCustomSampleMode)

	return s
}

// bankBindings returns, per encoder slot, the Bank A and Bank B mutation
// closures from spec.md §4.6's bank table.
func (s *Surface) bankBindings() [5]encoderBinding {
	return [5]encoderBinding{
		{
			name: "volume/release",
			applyA: func(dir Direction) { s.bump("volume", 0.02, dir, s.eng.Snapshot().Volume, engine.VolumeMin, engine.VolumeMax, s.eng.SetVolume) },
			applyB: func(dir Direction) { s.bump("release", 0.1, dir, s.eng.Snapshot().Release, engine.ReleaseMin, engine.ReleaseMax, s.eng.SetReleaseTime) },
		},
		{
			name: "filterFreq/delayTime",
			applyA: func(dir Direction) { s.bump("filterFreq", 50, dir, s.eng.Snapshot().FilterFreq, engine.FilterFreqMin, engine.FilterFreqMax, s.eng.SetFilterCutoff) },
			applyB: func(dir Direction) { s.bump("delayTime", 0.05, dir, s.eng.Snapshot().DelayTime, engine.DelayTimeMin, engine.DelayTimeMax, s.eng.SetDelayTime) },
		},
		{
			name: "filterRes/reverbSize",
			applyA: func(dir Direction) { s.bump("filterRes", 0.02, dir, s.eng.Snapshot().FilterRes, engine.FilterResMin, engine.FilterResMax, s.eng.SetFilterResonance) },
			applyB: func(dir Direction) { s.bump("reverbSize", 0.02, dir, s.eng.Snapshot().ReverbSize, engine.ReverbSizeMin, engine.ReverbSizeMax, s.eng.SetReverbSize) },
		},
		{
			name: "delayFeedback/oscWaveform",
			applyA: func(dir Direction) { s.bump("delayFeedback", 0.02, dir, s.eng.Snapshot().DelayFeedback, engine.DelayFeedbackMin, engine.DelayFeedbackMax, s.eng.SetDelayFeedback) },
			applyB: func(dir Direction) { s.bumpWaveform("oscWaveformIdx", dir, s.eng.Snapshot().OscWaveformIdx, s.eng.SetOscWaveformIndex) },
		},
		{
			name: "reverbMix/lfoWaveform",
			applyA: func(dir Direction) { s.bump("reverbMix", 0.02, dir, s.eng.Snapshot().ReverbMix, engine.ReverbMixMin, engine.ReverbMixMax, s.eng.SetReverbMix) },
			applyB: func(dir Direction) { s.bumpWaveform("lfoWaveformIdx", dir, s.eng.Snapshot().LFOWaveformIdx, s.eng.SetLFOWaveformIndex) },
		},
	}
}

// dispatch routes an encoder tick to the binding's Bank A or Bank B
// closure based on the current shift state.
func (s *Surface) dispatch(b encoderBinding) func(Direction) {
	return func(dir Direction) {
		s.mu.Lock()
		bank := s.bank
		s.mu.Unlock()

		if bank == BankB {
			b.applyB(dir)
		} else {
			b.applyA(dir)
		}
	}
}

// bump applies one detent of movement to a float parameter, clamps it,
// writes it to the engine, and logs the new value with the current bank
// tag (spec.md §4.6: "[Bank X] name: value").
func (s *Surface) bump(name string, step float32, dir Direction, current, lo, hi float32, set func(float32)) {
	next := current + step*float32(dir)
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	set(next)

	s.mu.Lock()
	bank := s.bank
	s.mu.Unlock()
	log.Infof("[Bank %s] %s: %v", bank, name, next)
}

// bumpWaveform applies one detent of movement to a waveform index,
// wrapping modulo the waveform count rather than clamping.
func (s *Surface) bumpWaveform(name string, dir Direction, current int32, set func(int32)) {
	next := current + int32(dir)
	set(next)

	s.mu.Lock()
	bank := s.bank
	s.mu.Unlock()
	log.Infof("[Bank %s] %s: %v", bank, name, next)
}

func (s *Surface) onTriggerPress() {
	if s.customSampleModeActive() {
		s.player.Play()
		return
	}
	s.eng.Trigger()
}

func (s *Surface) onTriggerRelease() {
	if s.customSampleModeActive() {
		return
	}
	s.eng.Release()
}

func (s *Surface) onPitchEnvPress() {
	mode := s.eng.CyclePitchEnvelope()
	log.Info("pitch envelope", "mode", mode)
}

func (s *Surface) onShiftPress() {
	s.mu.Lock()
	s.bank = BankB
	s.mu.Unlock()

	if s.secret != nil {
		s.secret.RecordPress()
	}
}

func (s *Surface) onShiftRelease() {
	s.mu.Lock()
	s.bank = BankA
	s.mu.Unlock()
}

func (s *Surface) onShutdownPress() {
	log.Warn("shutdown button pressed")
	if s.shutdownFn != nil {
		s.shutdownFn()
	}
}

func (s *Surface) toggleCustomSampleMode() {
	s.mu.Lock()
	s.customSampleMode = !s.customSampleMode
	active := s.customSampleMode
	s.mu.Unlock()

	log.Info("custom sample mode", "active", active)
	if s.onSetSource != nil {
		s.onSetSource(active)
	}
}

func (s *Surface) customSampleModeActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customSampleMode
}

// Start launches every encoder's and switch's polling goroutine.
func (s *Surface) Start(ctx context.Context) {
	for _, e := range s.encoders {
		go e.Run(ctx)
	}
	for _, sw := range s.switches {
		go sw.Run(ctx)
	}
}
