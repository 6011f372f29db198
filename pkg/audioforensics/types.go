package audioforensics

import "github.com/himanishpuri/audioforensics/internal/model"

// TrackInfo describes the track currently held by the Sample Store.
type TrackInfo = model.TrackInfo

// SampleBuffer holds interleaved floating-point samples in [-1.0, +1.0].
type SampleBuffer = model.SampleBuffer

// Forensics bundles the results of the five forensic sub-analyses.
type Forensics = model.Forensics

// AudioSamples is the wire-shaped result of get_audio_samples.
type AudioSamples = model.AudioSamples

// SpectrogramResult is the wire-shaped result of compute_spectrogram.
type SpectrogramResult = model.SpectrogramResult
