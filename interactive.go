package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/parkredding/poor-house-dub-v2/internal/engine"
	"github.com/parkredding/poor-house-dub-v2/internal/sample"
	"github.com/parkredding/poor-house-dub-v2/internal/sink"
)

// runInteractive drives the synth from the keyboard so it can be played
// and tuned on a bench with no GPIO hardware attached. When stdin is a
// terminal it is put into raw mode for single-keypress control; when it
// is not (piped input, no tty), a line-command fallback is used instead.
// It returns a channel that closes when the user quits or stdin reaches
// EOF.
func runInteractive(eng *engine.Engine, player *sample.Player, driver *sink.Driver) <-chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer close(quit)

		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			log.Warn("raw terminal unavailable, using line commands", "err", err)
			lineSession(eng, player, driver)
			return
		}
		defer term.Restore(fd, oldState)

		keySession(eng, player, driver)
	}()

	return quit
}

// keySession is the raw-mode loop: one keypress, one action. Output uses
// explicit \r\n since raw mode disables the terminal's own translation.
func keySession(eng *engine.Engine, player *sample.Player, driver *sink.Driver) {
	fmt.Print(keyHelp)

	nudge := func(name string, current, step, lo, hi float32, set func(float32)) {
		next := clampF(current+step, lo, hi)
		set(next)
		fmt.Printf("%s: %.3f\r\n", name, next)
	}

	gate := false
	useSample := false
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		snap := eng.Snapshot()
		switch buf[0] {
		case 'q', 0x03, 0x04: // q, Ctrl-C, Ctrl-D
			return
		case ' ':
			gate = !gate
			switch {
			case gate && useSample:
				player.Play()
				fmt.Print("sample: play\r\n")
			case gate:
				eng.Trigger()
				fmt.Print("gate: on\r\n")
			default:
				eng.Release()
				fmt.Print("gate: off\r\n")
			}
		case 'p':
			fmt.Printf("pitch envelope: %d\r\n", eng.CyclePitchEnvelope())
		case 'w':
			idx := snap.OscWaveformIdx + 1
			eng.SetOscWaveformIndex(idx)
			fmt.Printf("osc waveform: %d\r\n", eng.Snapshot().OscWaveformIdx)
		case 'e':
			idx := snap.LFOWaveformIdx + 1
			eng.SetLFOWaveformIndex(idx)
			fmt.Printf("lfo waveform: %d\r\n", eng.Snapshot().LFOWaveformIdx)
		case '-':
			nudge("volume", snap.Volume, -0.02, engine.VolumeMin, engine.VolumeMax, eng.SetVolume)
		case '=':
			nudge("volume", snap.Volume, 0.02, engine.VolumeMin, engine.VolumeMax, eng.SetVolume)
		case '[':
			nudge("filterFreq", snap.FilterFreq, -50, engine.FilterFreqMin, engine.FilterFreqMax, eng.SetFilterCutoff)
		case ']':
			nudge("filterFreq", snap.FilterFreq, 50, engine.FilterFreqMin, engine.FilterFreqMax, eng.SetFilterCutoff)
		case ';':
			nudge("filterRes", snap.FilterRes, -0.02, engine.FilterResMin, engine.FilterResMax, eng.SetFilterResonance)
		case '\'':
			nudge("filterRes", snap.FilterRes, 0.02, engine.FilterResMin, engine.FilterResMax, eng.SetFilterResonance)
		case ',':
			nudge("delayFeedback", snap.DelayFeedback, -0.02, engine.DelayFeedbackMin, engine.DelayFeedbackMax, eng.SetDelayFeedback)
		case '.':
			nudge("delayFeedback", snap.DelayFeedback, 0.02, engine.DelayFeedbackMin, engine.DelayFeedbackMax, eng.SetDelayFeedback)
		case '9':
			nudge("reverbMix", snap.ReverbMix, -0.02, engine.ReverbMixMin, engine.ReverbMixMax, eng.SetReverbMix)
		case '0':
			nudge("reverbMix", snap.ReverbMix, 0.02, engine.ReverbMixMin, engine.ReverbMixMax, eng.SetReverbMix)
		case 's':
			useSample = !useSample
			if useSample {
				driver.SetSource(player)
			} else {
				player.Stop()
				driver.SetSource(eng)
			}
			fmt.Printf("custom sample mode: %v\r\n", useSample)
		case 'h', '?':
			fmt.Print(keyHelp)
		}
	}
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const keyHelp = "interactive keys:\r\n" +
	"  space      toggle the gate (trigger / release)\r\n" +
	"  p          cycle pitch envelope None -> Up -> Down\r\n" +
	"  w / e      next oscillator / LFO waveform\r\n" +
	"  - / =      volume down / up\r\n" +
	"  [ / ]      filter cutoff down / up\r\n" +
	"  ; / '      filter resonance down / up\r\n" +
	"  , / .      delay feedback down / up\r\n" +
	"  9 / 0      reverb mix down / up\r\n" +
	"  s          toggle custom-sample output\r\n" +
	"  h or ?     show this help\r\n" +
	"  q          quit\r\n"

// lineSession is the fallback when stdin is not a terminal: one command
// per line, useful for scripted smoke tests over a pipe.
func lineSession(eng *engine.Engine, player *sample.Player, driver *sink.Driver) {
	fmt.Println("interactive mode (line commands); 'help' lists commands")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !handleCommand(eng, player, driver, strings.Fields(scanner.Text())) {
			return
		}
	}
}

// handleCommand executes one command line; it returns false when the
// session should end.
func handleCommand(eng *engine.Engine, player *sample.Player, driver *sink.Driver, fields []string) bool {
	if len(fields) == 0 {
		return true
	}

	arg := func() (float32, bool) {
		if len(fields) < 2 {
			fmt.Printf("%s needs a numeric argument\n", fields[0])
			return 0, false
		}
		v, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			fmt.Printf("bad argument %q\n", fields[1])
			return 0, false
		}
		return float32(v), true
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return false
	case "help":
		fmt.Print(lineHelp)
	case "t", "trigger":
		eng.Trigger()
	case "r", "release":
		eng.Release()
	case "p", "pitchenv":
		mode := eng.CyclePitchEnvelope()
		log.Info("pitch envelope", "mode", mode)
	case "volume":
		if v, ok := arg(); ok {
			eng.SetVolume(v)
		}
	case "freq":
		if v, ok := arg(); ok {
			eng.SetFrequency(v)
		}
	case "attack":
		if v, ok := arg(); ok {
			eng.SetAttackTime(v)
		}
	case "rel":
		if v, ok := arg(); ok {
			eng.SetReleaseTime(v)
		}
	case "cutoff":
		if v, ok := arg(); ok {
			eng.SetFilterCutoff(v)
		}
	case "res":
		if v, ok := arg(); ok {
			eng.SetFilterResonance(v)
		}
	case "dtime":
		if v, ok := arg(); ok {
			eng.SetDelayTime(v)
		}
	case "dfb":
		if v, ok := arg(); ok {
			eng.SetDelayFeedback(v)
		}
	case "dmix":
		if v, ok := arg(); ok {
			eng.SetDelayMix(v)
		}
	case "rsize":
		if v, ok := arg(); ok {
			eng.SetReverbSize(v)
		}
	case "rmix":
		if v, ok := arg(); ok {
			eng.SetReverbMix(v)
		}
	case "wave":
		if v, ok := arg(); ok {
			eng.SetOscWaveformIndex(int32(v))
		}
	case "lfowave":
		if v, ok := arg(); ok {
			eng.SetLFOWaveformIndex(int32(v))
		}
	case "sample":
		driver.SetSource(player)
		player.Play()
	case "synth":
		player.Stop()
		driver.SetSource(eng)
	case "show":
		fmt.Printf("%+v\n", eng.Snapshot())
	default:
		fmt.Printf("unknown command %q; 'help' lists commands\n", fields[0])
	}
	return true
}

const lineHelp = `commands:
  t | trigger        start the tone
  r | release        end the tone
  p | pitchenv       cycle pitch envelope None -> Up -> Down
  volume V           output volume [0,1]
  freq HZ            oscillator base frequency
  attack S           envelope attack time in seconds
  rel S              envelope release time in seconds
  cutoff HZ          filter cutoff
  res Q              filter resonance [0,0.95]
  dtime S            delay time in seconds
  dfb G              delay feedback [0,0.95]
  dmix M             delay dry/wet [0,1]
  rsize S            reverb size [0,1]
  rmix M             reverb dry/wet [0,1]
  wave N             oscillator waveform index 0..3
  lfowave N          LFO waveform index 0..3
  sample             switch output to the loaded custom sample and play it
  synth              switch output back to the synthesizer
  show               print the current parameter snapshot
  q | quit           exit
`
