package audioforensics

import "github.com/himanishpuri/audioforensics/pkg/logger"

// Config holds configuration options for the forensics engine.
type Config struct {
	// MaxDecodedBytes is the byte ceiling a decoded SampleBuffer may not
	// exceed. Decoding fails with OutOfMemory past this point.
	// Default: 2 GiB.
	MaxDecodedBytes int64

	// Workers bounds the size of the parallel pool used for per-frame STFT
	// and windowed-statistics fan-out. Default: runtime.NumCPU().
	Workers int

	// Logger is the logger instance to use. If nil, a default logger is
	// created.
	Logger Logger
}

// Option is a functional option for configuring the engine.
type Option func(*Config)

// WithMaxDecodedBytes sets the decode memory ceiling.
func WithMaxDecodedBytes(n int64) Option {
	return func(c *Config) {
		c.MaxDecodedBytes = n
	}
}

// WithWorkers sets the size of the parallel worker pool.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		MaxDecodedBytes: 2 << 30, // 2 GiB
		Workers:         0,       // resolved against runtime.NumCPU() at service construction
		Logger:          nil,
	}
}

// defaultLoggerAdapter wraps the package-level default logger so the engine always
// has a Logger to call into when the caller does not supply one.
type defaultLoggerAdapter struct{}

func (defaultLoggerAdapter) Infof(format string, args ...any)  { logger.Infof(format, args...) }
func (defaultLoggerAdapter) Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func (defaultLoggerAdapter) Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func (defaultLoggerAdapter) Debugf(format string, args ...any) { logger.Debugf(format, args...) }
