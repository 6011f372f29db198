// Package store implements the process-lifetime single-slot cache that
// holds at most one decoded track. Every other core component reads from
// it; none retains a view past the call that returned it.
package store

import (
	"sync"

	"github.com/himanishpuri/audioforensics/internal/model"
)

// Store is a single-slot cache for the current decoded track, guarded for
// concurrent access. Writers (decode) acquire exclusive access; readers
// (spectrogram, forensics, export) acquire shared access.
type Store struct {
	mu sync.RWMutex

	info   model.TrackInfo
	buffer model.SampleBuffer
	loaded bool

	monoCache []float32
	monoValid bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Put atomically replaces any previous occupant. The previous buffer's
// backing array is released (by dropping the only reference) before Put
// returns. The mono-mix cache is invalidated.
func (s *Store) Put(info model.TrackInfo, buffer model.SampleBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.info = info
	s.buffer = buffer
	s.loaded = true
	s.monoCache = nil
	s.monoValid = false
}

// Info returns the current track's metadata, or NoTrack if the store is
// empty.
func (s *Store) Info() (model.TrackInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.TrackInfo{}, model.ErrNoTrack
	}
	return s.info, nil
}

// Samples returns the interleaved sample buffer of the current track, or
// NoTrack if the store is empty. The returned slice is a read-only view
// into store-owned memory; callers must not retain it past the call that
// requested it.
func (s *Store) Samples() (model.SampleBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.SampleBuffer{}, model.ErrNoTrack
	}
	return s.buffer, nil
}

// MonoMix returns an arithmetic-mean mono signal of the current track. If
// the track is already mono it returns a non-owning view of the buffer
// with no extra allocation. Otherwise it materializes and caches the mix;
// the cache is invalidated whenever Put runs.
func (s *Store) MonoMix() ([]float32, model.TrackInfo, error) {
	s.mu.RLock()
	if !s.loaded {
		s.mu.RUnlock()
		return nil, model.TrackInfo{}, model.ErrNoTrack
	}
	info := s.info
	channels := s.buffer.Channels
	if channels == 1 {
		mono := s.buffer.Samples
		s.mu.RUnlock()
		return mono, info, nil
	}
	if s.monoValid {
		mono := s.monoCache
		s.mu.RUnlock()
		return mono, info, nil
	}
	samples := s.buffer.Samples
	s.mu.RUnlock()

	mono := mixToMono(samples, channels)

	s.mu.Lock()
	// Re-check: a concurrent Put between RUnlock and Lock would have
	// invalidated the slot we computed against, so only cache if the
	// buffer we mixed is still current.
	if s.loaded && s.buffer.Channels == channels && len(s.buffer.Samples) == len(samples) &&
		(len(samples) == 0 || &s.buffer.Samples[0] == &samples[0]) {
		s.monoCache = mono
		s.monoValid = true
	}
	s.mu.Unlock()

	return mono, info, nil
}

func mixToMono(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	mono := make([]float32, frames)
	inv := 1.0 / float32(channels)
	for i := 0; i < frames; i++ {
		var sum float32
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			sum += samples[base+ch]
		}
		mono[i] = sum * inv
	}
	return mono
}
