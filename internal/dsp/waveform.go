package dsp

// Waveform selects the oscillator's generation algorithm. The numeric
// value is the wire-level index used by the control surface and is taken
// mod NumWaveforms so an out-of-range index can never panic (spec: "An
// invalid waveform index is taken mod 4").
type Waveform int32

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	NumWaveforms
)

// Normalize wraps w into the valid [0, NumWaveforms) range.
func (w Waveform) Normalize() Waveform {
	n := int32(w) % int32(NumWaveforms)
	if n < 0 {
		n += int32(NumWaveforms)
	}
	return Waveform(n)
}

// PitchEnvMode selects how the oscillator's base frequency is overridden
// during the attack phase of a trigger.
type PitchEnvMode int32

const (
	PitchEnvNone PitchEnvMode = iota
	PitchEnvUp
	PitchEnvDown
	numPitchEnvModes
)

// CyclePitchEnvMode advances None -> Up -> Down -> None.
func CyclePitchEnvMode(m PitchEnvMode) PitchEnvMode {
	return (m + 1) % numPitchEnvModes
}
