package audioforensics

import "context"

// Service is the stable command surface exposed to a UI or other caller.
// Every method corresponds to one row of the command table: load_audio,
// compute_spectrogram, analyze_forensics, get_audio_samples, export_audio.
type Service interface {
	// LoadAudio decodes path and makes it the current track, replacing
	// whatever track was previously loaded. A failed decode leaves the
	// previous track (if any) intact.
	LoadAudio(ctx context.Context, path string) (TrackInfo, error)

	// ComputeSpectrogram computes a magnitude-in-decibels matrix over the
	// mono mix of the current track, truncated to maxFreq. maxFreq <= 0
	// fails with InvalidParameter; picking a default belongs to the caller.
	ComputeSpectrogram(ctx context.Context, maxFreq float64) (SpectrogramResult, error)

	// AnalyzeForensics runs the full forensic battery over the mono mix of
	// the current track; clipping is counted over all channels.
	AnalyzeForensics(ctx context.Context) (Forensics, error)

	// GetAudioSamples returns the interleaved samples of the current track.
	GetAudioSamples(ctx context.Context) (AudioSamples, error)

	// ExportAudio writes [startS, endS) of the current track to outPath as
	// a 16-bit PCM WAV file.
	ExportAudio(ctx context.Context, outPath string, startS, endS float64) error
}

// Logger defines the logging interface used by the service. This allows
// callers to provide their own logger implementation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
