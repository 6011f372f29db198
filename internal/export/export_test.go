package export

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/himanishpuri/audioforensics/internal/model"
)

func sineSamples(freq float64, sampleRate, n int, channels int) []float32 {
	out := make([]float32, n*channels)
	for i := 0; i < n; i++ {
		v := float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = v
		}
	}
	return out
}

func TestExportWritesReadableWAV(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")

	sampleRate := 8000
	channels := 1
	buffer := model.SampleBuffer{
		Samples:    sineSamples(440, sampleRate, sampleRate, channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}

	if err := Export(outPath, buffer, 1.0, 0, 1.0); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("failed to open exported file: %v", err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("exported file is not a valid WAV")
	}
	dec.ReadInfo()
	if int(dec.SampleRate) != sampleRate {
		t.Errorf("expected sample rate %d, got %d", sampleRate, dec.SampleRate)
	}
	if int(dec.NumChans) != channels {
		t.Errorf("expected %d channel(s), got %d", channels, dec.NumChans)
	}
	if int(dec.BitDepth) != wavBitDepth {
		t.Errorf("expected bit depth %d, got %d", wavBitDepth, dec.BitDepth)
	}
}

func TestExportRangeClampedToDuration(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")

	sampleRate := 8000
	buffer := model.SampleBuffer{
		Samples:    sineSamples(440, sampleRate, sampleRate, 1),
		SampleRate: sampleRate,
		Channels:   1,
	}

	if err := Export(outPath, buffer, 1.0, -5, 50); err != nil {
		t.Fatalf("Export with out-of-range bounds failed: %v", err)
	}
}

func TestExportEmptyRangeFails(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")

	buffer := model.SampleBuffer{Samples: sineSamples(440, 8000, 8000, 1), SampleRate: 8000, Channels: 1}

	err := Export(outPath, buffer, 1.0, 0.8, 0.2)
	if !errors.Is(err, model.ErrEmptyRange) {
		t.Errorf("expected ErrEmptyRange, got %v", err)
	}
}

func TestExportLeavesNoTempFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")

	buffer := model.SampleBuffer{Samples: sineSamples(440, 8000, 8000, 1), SampleRate: 8000, Channels: 1}
	Export(outPath, buffer, 1.0, 0.9, 0.1) // invalid range, expected to fail

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("expected no leftover files after a failed export, found %s", e.Name())
	}
}
