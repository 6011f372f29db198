package audioforensics

import (
	"context"
	"runtime"

	"github.com/himanishpuri/audioforensics/internal/decode"
	"github.com/himanishpuri/audioforensics/internal/export"
	"github.com/himanishpuri/audioforensics/internal/forensics"
	"github.com/himanishpuri/audioforensics/internal/spectrogram"
	"github.com/himanishpuri/audioforensics/internal/store"
)

// engine implements Service. It owns the single-slot Sample Store and
// dispatches each command to the appropriate internal package; it holds no
// other mutable state.
type engine struct {
	store   *store.Store
	cfg     *Config
	workers int
}

// New constructs a Service with the given options applied over
// defaultConfig().
func New(opts ...Option) Service {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = defaultLoggerAdapter{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &engine{
		store:   store.New(),
		cfg:     cfg,
		workers: workers,
	}
}

func (e *engine) LoadAudio(ctx context.Context, path string) (TrackInfo, error) {
	e.cfg.Logger.Infof("decoding %s", path)

	result, err := decode.Decode(path, e.cfg.MaxDecodedBytes)
	if err != nil {
		e.cfg.Logger.Warnf("decode failed for %s: %v", path, err)
		return TrackInfo{}, err
	}

	info := TrackInfo{
		Duration:   result.Info.Duration,
		SampleRate: result.Info.SampleRate,
		Channels:   result.Info.Channels,
	}
	buffer := SampleBuffer{
		Samples:    result.Samples,
		SampleRate: result.Info.SampleRate,
		Channels:   result.Info.Channels,
	}

	e.store.Put(info, buffer)
	e.cfg.Logger.Infof("loaded %s: %.2fs, %dHz, %dch", path, info.Duration, info.SampleRate, info.Channels)
	return info, nil
}

func (e *engine) ComputeSpectrogram(ctx context.Context, maxFreq float64) (SpectrogramResult, error) {
	if maxFreq <= 0 {
		return SpectrogramResult{}, &Error{Kind: KindInvalidParameter, Message: "max_freq must be > 0"}
	}

	mono, info, err := e.store.MonoMix()
	if err != nil {
		return SpectrogramResult{}, err
	}

	nyquist := float64(info.SampleRate) / 2
	if maxFreq > nyquist {
		maxFreq = nyquist
	}

	spec, err := spectrogram.Compute(ctx, mono, info.SampleRate, maxFreq, e.workers)
	if err != nil {
		return SpectrogramResult{}, err
	}
	return spec, nil
}

func (e *engine) AnalyzeForensics(ctx context.Context) (Forensics, error) {
	mono, info, err := e.store.MonoMix()
	if err != nil {
		return Forensics{}, err
	}
	buffer, err := e.store.Samples()
	if err != nil {
		return Forensics{}, err
	}

	return forensics.Analyze(ctx, buffer.Samples, mono, info.SampleRate, e.workers)
}

func (e *engine) GetAudioSamples(ctx context.Context) (AudioSamples, error) {
	buffer, err := e.store.Samples()
	if err != nil {
		return AudioSamples{}, err
	}
	return AudioSamples{
		Samples:    buffer.Samples,
		SampleRate: buffer.SampleRate,
		Channels:   buffer.Channels,
	}, nil
}

func (e *engine) ExportAudio(ctx context.Context, outPath string, startS, endS float64) error {
	info, err := e.store.Info()
	if err != nil {
		return err
	}
	buffer, err := e.store.Samples()
	if err != nil {
		return err
	}

	if err := export.Export(outPath, buffer, info.Duration, startS, endS); err != nil {
		e.cfg.Logger.Warnf("export to %s failed: %v", outPath, err)
		return err
	}
	e.cfg.Logger.Infof("exported [%.3f,%.3f) to %s", startS, endS, outPath)
	return nil
}
