package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, code, ok := Parse(nil)
	if !ok || code != ExitOK {
		t.Fatalf("Parse(nil) = (%v, %d, %v), want ok", cfg, code, ok)
	}
	if cfg.SampleRate != 48000 || cfg.BufferSize != 256 || cfg.GPIOChip != "gpiochip0" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Simulate || cfg.Interactive {
		t.Fatalf("simulate/interactive should default false: %+v", cfg)
	}
	if cfg.SamplePath != "assets/audio/custom.mp3" || cfg.SampleExplicit {
		t.Fatalf("sample path should default to the conventional location, not explicit: %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, code, ok := Parse([]string{
		"--sample-rate", "44100",
		"-b", "128",
		"--simulate",
		"--sample", "/tmp/x.mp3",
	})
	if !ok || code != ExitOK {
		t.Fatalf("Parse() = (%v, %d, %v), want ok", cfg, code, ok)
	}
	if cfg.SampleRate != 44100 || cfg.BufferSize != 128 || !cfg.Simulate || cfg.SamplePath != "/tmp/x.mp3" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.SampleExplicit {
		t.Fatalf("--sample should mark the path explicit: %+v", cfg)
	}
}

func TestParseHelpReturnsExitOKWithoutConfig(t *testing.T) {
	cfg, code, ok := Parse([]string{"--help"})
	if ok || cfg != nil || code != ExitOK {
		t.Fatalf("Parse(--help) = (%v, %d, %v), want (nil, ExitOK, false)", cfg, code, ok)
	}
}

func TestParseRejectsNonPositiveSampleRate(t *testing.T) {
	cfg, code, ok := Parse([]string{"--sample-rate", "0"})
	if ok || cfg != nil || code != ExitBadArgs {
		t.Fatalf("Parse(bad sample-rate) = (%v, %d, %v), want (nil, ExitBadArgs, false)", cfg, code, ok)
	}
}

func TestParseRejectsNonPositiveBufferSize(t *testing.T) {
	cfg, code, ok := Parse([]string{"--buffer-size", "-1"})
	if ok || cfg != nil || code != ExitBadArgs {
		t.Fatalf("Parse(bad buffer-size) = (%v, %d, %v), want (nil, ExitBadArgs, false)", cfg, code, ok)
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	cfg, code, ok := Parse([]string{"--not-a-real-flag"})
	if ok || cfg != nil || code != ExitBadArgs {
		t.Fatalf("Parse(unknown flag) = (%v, %d, %v), want (nil, ExitBadArgs, false)", cfg, code, ok)
	}
}
