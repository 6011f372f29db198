package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/himanishpuri/audioforensics/internal/model"
)

func TestEmptyStoreReturnsNoTrack(t *testing.T) {
	s := New()

	if _, err := s.Info(); !errors.Is(err, model.ErrNoTrack) {
		t.Errorf("expected ErrNoTrack, got %v", err)
	}
	if _, err := s.Samples(); !errors.Is(err, model.ErrNoTrack) {
		t.Errorf("expected ErrNoTrack, got %v", err)
	}
	if _, _, err := s.MonoMix(); !errors.Is(err, model.ErrNoTrack) {
		t.Errorf("expected ErrNoTrack, got %v", err)
	}
}

func TestPutThenInfoAndSamples(t *testing.T) {
	s := New()
	info := model.TrackInfo{Duration: 1.5, SampleRate: 8000, Channels: 2}
	buffer := model.SampleBuffer{Samples: []float32{0.1, 0.2, 0.3, 0.4}, SampleRate: 8000, Channels: 2}

	s.Put(info, buffer)

	gotInfo, err := s.Info()
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if gotInfo != info {
		t.Errorf("expected %+v, got %+v", info, gotInfo)
	}

	gotBuf, err := s.Samples()
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(gotBuf.Samples) != len(buffer.Samples) {
		t.Errorf("expected %d samples, got %d", len(buffer.Samples), len(gotBuf.Samples))
	}
}

func TestMonoMixOfMonoTrackIsIdentity(t *testing.T) {
	s := New()
	samples := []float32{0.1, -0.2, 0.3}
	s.Put(model.TrackInfo{SampleRate: 8000, Channels: 1}, model.SampleBuffer{Samples: samples, SampleRate: 8000, Channels: 1})

	mono, _, err := s.MonoMix()
	if err != nil {
		t.Fatalf("MonoMix failed: %v", err)
	}
	for i, v := range mono {
		if v != samples[i] {
			t.Errorf("expected identity mix at %d, got %v want %v", i, v, samples[i])
		}
	}
}

func TestMonoMixOfStereoAveragesChannels(t *testing.T) {
	s := New()
	// L=1.0, R=-1.0 for frame 0 -> mono 0; L=0.5, R=0.5 for frame 1 -> mono 0.5
	samples := []float32{1.0, -1.0, 0.5, 0.5}
	s.Put(model.TrackInfo{SampleRate: 8000, Channels: 2}, model.SampleBuffer{Samples: samples, SampleRate: 8000, Channels: 2})

	mono, _, err := s.MonoMix()
	if err != nil {
		t.Fatalf("MonoMix failed: %v", err)
	}
	if len(mono) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(mono))
	}
	if mono[0] != 0 {
		t.Errorf("expected frame 0 to mix to 0, got %v", mono[0])
	}
	if mono[1] != 0.5 {
		t.Errorf("expected frame 1 to mix to 0.5, got %v", mono[1])
	}
}

func TestPutInvalidatesMonoCache(t *testing.T) {
	s := New()
	s.Put(model.TrackInfo{SampleRate: 8000, Channels: 2}, model.SampleBuffer{Samples: []float32{1, 1, 1, 1}, SampleRate: 8000, Channels: 2})

	if _, _, err := s.MonoMix(); err != nil {
		t.Fatalf("MonoMix failed: %v", err)
	}

	s.Put(model.TrackInfo{SampleRate: 8000, Channels: 2}, model.SampleBuffer{Samples: []float32{0, 0, 0, 0}, SampleRate: 8000, Channels: 2})

	mono, _, err := s.MonoMix()
	if err != nil {
		t.Fatalf("MonoMix failed: %v", err)
	}
	for _, v := range mono {
		if v != 0 {
			t.Errorf("expected mono mix to reflect the replaced buffer, got %v", v)
		}
	}
}

func TestConcurrentPutAndMonoMixDoesNotRace(t *testing.T) {
	s := New()
	s.Put(model.TrackInfo{SampleRate: 8000, Channels: 2}, model.SampleBuffer{Samples: make([]float32, 4000), SampleRate: 8000, Channels: 2})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.MonoMix()
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Put(model.TrackInfo{SampleRate: 8000, Channels: 2}, model.SampleBuffer{Samples: make([]float32, 4000), SampleRate: 8000, Channels: 2})
		}()
	}
	wg.Wait()
}
