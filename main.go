// Command poor-house-dub runs the real-time dub-siren synthesizer: it
// reads the control surface (rotary encoders and momentary switches,
// real GPIO or simulated), drives the DSP engine, and streams audio to
// a sink (oto, raw ALSA, or a simulated in-memory sink for testing and
// --simulate).
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/parkredding/poor-house-dub-v2/internal/config"
	"github.com/parkredding/poor-house-dub-v2/internal/control"
	"github.com/parkredding/poor-house-dub-v2/internal/engine"
	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
	"github.com/parkredding/poor-house-dub-v2/internal/sample"
	"github.com/parkredding/poor-house-dub-v2/internal/sink"
)

func main() {
	cfg, exitCode, ok := config.Parse(os.Args[1:])
	if !ok {
		os.Exit(exitCode)
	}

	if err := run(cfg); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(config.ExitInitFailed)
	}
}

func run(cfg *config.Config) error {
	log.Info("starting", "sampleRate", cfg.SampleRate, "bufferSize", cfg.BufferSize, "simulate", cfg.Simulate)

	eng := engine.New(float64(cfg.SampleRate), cfg.BufferSize)
	player := sample.NewPlayer()
	if err := player.Load(cfg.SamplePath, cfg.SampleRate); err != nil {
		// A missing/undecodable sample at the conventional default path
		// is fine (custom-sample mode just plays silence), but a path
		// the user asked for must load.
		if cfg.SampleExplicit {
			return err
		}
		log.Warn("sample preload failed", "path", cfg.SamplePath, "err", err)
	}

	audioSink, deviceName, err := openSink(cfg)
	if err != nil {
		return err
	}
	if err := audioSink.Open(deviceName, cfg.SampleRate, cfg.BufferSize); err != nil {
		return err
	}

	driver := sink.NewDriver(audioSink, cfg.SampleRate, cfg.BufferSize, eng)

	reader := openGPIO(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownRequested := make(chan struct{}, 1)
	surface := control.NewSurface(eng, player, reader, control.DefaultPinMap(),
		func() {
			select {
			case shutdownRequested <- struct{}{}:
			default:
			}
		},
		func(useSample bool) {
			if useSample {
				driver.SetSource(player)
			} else {
				player.Stop()
				driver.SetSource(eng)
			}
		},
	)

	var interactiveDone <-chan struct{}
	if cfg.Interactive {
		interactiveDone = runInteractive(eng, player, driver)
	} else {
		surface.Start(ctx)
	}

	driver.Start(ctx)
	log.Info("running", "device", cfg.Device)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sig:
		log.Info("signal received, shutting down")
	case <-shutdownRequested:
		log.Info("shutdown button pressed, shutting down")
	case <-interactiveDone:
		log.Info("interactive session ended, shutting down")
	}

	cancel()
	driver.Stop()
	if err := reader.Close(); err != nil {
		log.Warn("gpio close failed", "err", err)
	}

	stats := driver.Stats()
	log.Info("stopped", "underruns", stats.Underruns(), "shortWrites", stats.ShortWrites(), "cpuLoad", stats.CPULoad())
	return nil
}

// openSink picks the sink backend from the device string: "alsa" or
// "alsa:NAME" selects the raw ALSA backend (NAME defaulting to the
// "default" PCM), anything else goes to the portable oto backend.
func openSink(cfg *config.Config) (sink.Sink, string, error) {
	if cfg.Simulate {
		return sink.NewSimulatedSink(), cfg.Device, nil
	}
	if cfg.Device == "alsa" || strings.HasPrefix(cfg.Device, "alsa:") {
		s, err := newALSASink()
		return s, strings.TrimPrefix(strings.TrimPrefix(cfg.Device, "alsa"), ":"), err
	}
	return sink.NewOtoSink(), cfg.Device, nil
}

func openGPIO(cfg *config.Config) gpio.Reader {
	if cfg.Simulate || cfg.Interactive {
		return gpio.NewSimulatedReader()
	}
	return newCdevReader(cfg)
}
