//go:build !(linux && cgo)

package main

import (
	"fmt"

	"github.com/parkredding/poor-house-dub-v2/internal/config"
	"github.com/parkredding/poor-house-dub-v2/internal/gpio"
	"github.com/parkredding/poor-house-dub-v2/internal/sink"
)

func newALSASink() (sink.Sink, error) {
	return nil, fmt.Errorf("alsa backend requires linux with cgo enabled")
}

func newCdevReader(cfg *config.Config) gpio.Reader {
	return gpio.NewSimulatedReader()
}
