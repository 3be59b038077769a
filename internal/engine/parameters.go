package engine

import "github.com/parkredding/poor-house-dub-v2/internal/param"

// Declared ranges for every control-surface parameter, per spec.md §4.6's
// bank table. Exported so internal/control can clamp encoder sweeps to
// the same bounds the engine itself enforces (defence in depth — the
// engine clamps again on write, per spec.md §4.2 "Parameter writes that
// violate bounds are clamped silently").
const (
	VolumeMin, VolumeMax               = 0.0, 1.0
	FilterFreqMin, FilterFreqMax       = 20.0, 20000.0
	FilterResMin, FilterResMax         = 0.0, 0.95
	DelayFeedbackMin, DelayFeedbackMax = 0.0, 0.95
	ReverbMixMin, ReverbMixMax         = 0.0, 1.0
	ReleaseMin, ReleaseMax             = 0.01, 5.0
	DelayTimeMin, DelayTimeMax         = 0.001, 2.0
	ReverbSizeMin, ReverbSizeMax       = 0.0, 1.0
)

// carriers holds one atomic parameter carrier per control-surface
// parameter (spec.md §4.3: "One carrier per parameter"). The audio
// thread reads these each block; zipper-sensitive ones are read through
// a param.Smoothed instead of directly.
type carriers struct {
	volume        *param.Smoothed
	filterFreq    *param.Smoothed
	filterRes     *param.Float32
	delayFeedback *param.Float32
	reverbMix     *param.Float32

	releaseTime   *param.Float32
	delayTime     *param.Smoothed
	reverbSize    *param.Float32
	oscWaveform   *param.Int32
	lfoWaveform   *param.Int32

	baseFrequency *param.Smoothed
	attackTime    *param.Float32
	pitchEnvMode  *param.Int32
}

func newCarriers() *carriers {
	return &carriers{
		volume:        param.NewSmoothed(0.7, volumeSmoothCoeff),
		filterFreq:    param.NewSmoothed(4000, filterSmoothCoeff),
		filterRes:     param.NewFloat32(0.2),
		delayFeedback: param.NewFloat32(0.3),
		reverbMix:     param.NewFloat32(0),

		releaseTime: param.NewFloat32(0.5),
		delayTime:   param.NewSmoothed(0.25, delaySmoothCoeff),
		reverbSize:  param.NewFloat32(0.5),
		oscWaveform: param.NewInt32(0),
		lfoWaveform: param.NewInt32(0),

		baseFrequency: param.NewSmoothed(220, freqSmoothCoeff),
		attackTime:    param.NewFloat32(0.01),
		pitchEnvMode:  param.NewInt32(0),
	}
}

// Snapshot is a plain-value read of every control-surface parameter,
// used for logging and for tests that want to assert on the whole
// parameter set at once (spec.md §3 "Parameters struct").
type Snapshot struct {
	Volume         float32
	FilterFreq     float32
	FilterRes      float32
	DelayFeedback  float32
	ReverbMix      float32
	Release        float32
	DelayTime      float32
	ReverbSize     float32
	OscWaveformIdx int32
	LFOWaveformIdx int32
}
