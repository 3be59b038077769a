//go:build linux && cgo

package main

import (
	"github.com/parkredding/poor-house-dub-v2/internal/config"
	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
	"github.com/parkredding/poor-house-dub-v2/internal/sink"
)

func newALSASink() (sink.Sink, error) {
	return sink.NewALSASink(), nil
}

func newCdevReader(cfg *config.Config) gpio.Reader {
	return gpio.NewCdevReader(cfg.GPIOChip, cfg.DebounceUs)
}
