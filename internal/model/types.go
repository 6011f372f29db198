// Package model holds the canonical data types shared across the decode,
// store, spectrogram, forensics and export packages. It has no internal
// dependencies so that every other internal package, and the public
// audioforensics package, can depend on it without creating an import
// cycle.
package model

// TrackInfo describes the track currently held by the Sample Store.
type TrackInfo struct {
	Duration   float64 `json:"duration"`    // seconds
	SampleRate int     `json:"sample_rate"` // Hz
	Channels   int     `json:"channels"`    // >= 1
}

// SampleBuffer holds interleaved floating-point samples in [-1.0, +1.0].
type SampleBuffer struct {
	Samples    []float32 `json:"samples"`
	SampleRate int       `json:"sample_rate"`
	Channels   int       `json:"channels"`
}

// SpectrogramResult is a magnitude-in-decibels time-frequency matrix.
// Data is indexed [frame][bin]; every row has identical length.
type SpectrogramResult struct {
	Data    [][]float32 `json:"data"`
	Times   []float64   `json:"times"`    // frame start times, seconds
	MaxFreq float64     `json:"max_freq"` // Hz, Nyquist-clamped
}

// Forensics bundles the results of the five forensic sub-analyses.
type Forensics struct {
	ENFPresent     bool      `json:"enf_present"`
	ENFStrengthDB  float64   `json:"enf_strength_db"`
	GridFreq       int       `json:"grid_freq"` // 50 or 60 (0 for an empty or silent signal), meaningless when ENFPresent is false
	SpliceTimes    []float64 `json:"splice_times"`
	SNRDB          float64   `json:"snr_db"`
	DynamicRangeDB float64   `json:"dynamic_range_db"`
	HasClipping    bool      `json:"has_clipping"`
	ClippedCount   int64     `json:"clipped_count"`
}

// AudioSamples is the wire-shaped result of get_audio_samples.
type AudioSamples struct {
	Samples    []float32 `json:"samples"`
	SampleRate int       `json:"sample_rate"`
	Channels   int       `json:"channels"`
}
