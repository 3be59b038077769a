// Package config parses the command line into a Config, the way the
// rest of the retrieved pack uses spf13/pflag for its tools (see
// gen_packets.go's long option list): GNU-style long/short flags, a
// custom Usage banner, explicit exit codes on bad input.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Exit codes per spec.md §6.
const (
	ExitOK         = 0
	ExitInitFailed = 1
	ExitBadArgs    = 2
)

// Config holds every startup parameter for the synthesizer process.
type Config struct {
	SampleRate  int
	BufferSize  int
	Device      string
	Simulate    bool
	Interactive bool
	SamplePath  string
	// SampleExplicit marks that --sample was passed on the command
	// line, which makes a failed load init-fatal instead of a warning.
	SampleExplicit bool
	GPIOChip       string
	DebounceUs     int
}

// Parse parses args (normally os.Args[1:]) into a Config. On --help it
// prints usage and returns (nil, ExitOK, false) so the caller can exit
// 0 without treating it as an error; on a parse failure it returns
// (nil, ExitBadArgs, false).
func Parse(args []string) (cfg *Config, exitCode int, ok bool) {
	fs := pflag.NewFlagSet("poor-house-dub", pflag.ContinueOnError)

	sampleRate := fs.IntP("sample-rate", "r", 48000, "Audio sample rate in Hz.")
	bufferSize := fs.IntP("buffer-size", "b", 256, "Block size in frames.")
	device := fs.StringP("device", "d", "", "Audio output device (backend-specific name, empty for default).")
	simulate := fs.BoolP("simulate", "s", false, "Run with simulated GPIO and audio sink instead of real hardware.")
	interactive := fs.BoolP("interactive", "i", false, "Run an interactive terminal session instead of reading GPIO.")
	samplePath := fs.StringP("sample", "p", "assets/audio/custom.mp3", "Path to an MP3 file to preload for custom-sample playback mode.")
	gpioChip := fs.String("gpio-chip", "gpiochip0", "GPIO character device chip name.")
	debounceUs := fs.Int("debounce-us", 0, "Hardware debounce time for GPIO lines, in microseconds (0 disables).")
	help := fs.BoolP("help", "h", false, "Display this help text.")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "poor-house-dub: a real-time dub-siren synthesizer")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, ExitBadArgs, false
	}
	if *help {
		fs.Usage()
		return nil, ExitOK, false
	}

	if *sampleRate <= 0 {
		fmt.Fprintln(os.Stderr, "poor-house-dub: --sample-rate must be positive")
		return nil, ExitBadArgs, false
	}
	if *bufferSize <= 0 {
		fmt.Fprintln(os.Stderr, "poor-house-dub: --buffer-size must be positive")
		return nil, ExitBadArgs, false
	}

	return &Config{
		SampleRate:     *sampleRate,
		BufferSize:     *bufferSize,
		Device:         *device,
		Simulate:       *simulate,
		Interactive:    *interactive,
		SamplePath:     *samplePath,
		SampleExplicit: fs.Changed("sample"),
		GPIOChip:       *gpioChip,
		DebounceUs:     *debounceUs,
	}, ExitOK, true
}
