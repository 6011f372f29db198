package forensics

import (
	"context"
	"math"
	"testing"
)

func sineWave(freq float64, sampleRate, n int, amp float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amp * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

func TestDetectENFPresentAt60Hz(t *testing.T) {
	sampleRate := 8000
	signal := sineWave(60, sampleRate, sampleRate*5, 0.2)

	present, strengthDB, gridFreq := detectENF(signal, sampleRate)
	if !present {
		t.Errorf("expected ENF to be detected, strength=%.2f dB", strengthDB)
	}
	if gridFreq != 60 {
		t.Errorf("expected grid frequency 60, got %d", gridFreq)
	}
}

func TestDetectENFAbsentInWhiteNoiseLikeSignal(t *testing.T) {
	sampleRate := 8000
	n := sampleRate * 5
	signal := make([]float32, n)
	// A two-tone mix well away from the 50/60 Hz candidates stands in for
	// noise: it avoids any grid-frequency coincidence without requiring a
	// random source.
	for i := range signal {
		t := float64(i) / float64(sampleRate)
		signal[i] = float32(0.1*math.Sin(2*math.Pi*440*t) + 0.1*math.Sin(2*math.Pi*1200*t))
	}

	present, _, _ := detectENF(signal, sampleRate)
	if present {
		t.Error("did not expect ENF to be detected in a signal with no grid hum")
	}
}

func TestDetectENFSilentSignalReturnsZeroedFiniteMetrics(t *testing.T) {
	sampleRate := 8000
	signal := make([]float32, sampleRate*2) // all-zero, non-empty

	present, strengthDB, gridFreq := detectENF(signal, sampleRate)
	if present {
		t.Error("did not expect ENF to be detected in a silent signal")
	}
	if math.IsInf(strengthDB, 0) || math.IsNaN(strengthDB) {
		t.Errorf("expected a finite strength for a silent signal, got %v", strengthDB)
	}
	if strengthDB != 0 {
		t.Errorf("expected zeroed strength for a silent signal, got %v", strengthDB)
	}
	if gridFreq != 0 {
		t.Errorf("expected grid_freq 0 for a silent signal, got %v", gridFreq)
	}
}

func TestDetectENFEmptySignal(t *testing.T) {
	present, strengthDB, gridFreq := detectENF(nil, 8000)
	if present || strengthDB != 0 || gridFreq != 0 {
		t.Errorf("expected zero-value result for empty signal, got present=%v strength=%v grid=%v", present, strengthDB, gridFreq)
	}
}

func TestDetectSplicesFindsInsertedDiscontinuity(t *testing.T) {
	sampleRate := 8000
	signal := sineWave(440, sampleRate, sampleRate*2, 0.3)

	// Insert a single-sample edit artifact well clear of either edge: a
	// continuous tone with one abrupt outlier sample, as a cut-and-paste
	// edit would produce.
	spliceIdx := sampleRate
	signal[spliceIdx] += 0.9
	seamTime := float64(spliceIdx) / float64(sampleRate)

	events, err := detectSplices(context.Background(), signal, sampleRate, 2)
	if err != nil {
		t.Fatalf("detectSplices failed: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one splice event at the seam")
	}

	closest := events[0]
	for _, e := range events {
		if math.Abs(e-seamTime) < math.Abs(closest-seamTime) {
			closest = e
		}
	}
	if math.Abs(closest-seamTime) > 0.05 {
		t.Errorf("expected an event near seam %.3fs, closest was %.3fs", seamTime, closest)
	}
}

func TestDetectSplicesCleanSignalHasNoEvents(t *testing.T) {
	sampleRate := 8000
	signal := sineWave(440, sampleRate, sampleRate*2, 0.3)

	events, err := detectSplices(context.Background(), signal, sampleRate, 2)
	if err != nil {
		t.Fatalf("detectSplices failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no splice events in a clean tone, got %v", events)
	}
}

func TestDetectSplicesTooShortReturnsEmpty(t *testing.T) {
	events, err := detectSplices(context.Background(), []float32{0.1}, 8000, 1)
	if err != nil {
		t.Fatalf("detectSplices failed: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty (non-nil) slice, got %v", events)
	}
}

func TestDetectClippingFullScaleSquareWave(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}

	hasClipping, count := detectClipping(samples)
	if !hasClipping {
		t.Error("expected clipping to be detected")
	}
	if count != int64(len(samples)) {
		t.Errorf("expected all %d samples clipped, got %d", len(samples), count)
	}
}

func TestDetectClippingCountsAcrossAllChannels(t *testing.T) {
	// Interleaved stereo: left channel clipped, right channel clean.
	interleaved := []float32{1.0, 0.1, -1.0, 0.2, 0.995, 0.3}

	_, count := detectClipping(interleaved)
	if count != 3 {
		t.Errorf("expected 3 clipped samples counted across channels, got %d", count)
	}
}

func TestEstimateSNRAllZeroSignalReturnsZero(t *testing.T) {
	signal := make([]float32, 1000)

	snr := estimateSNR(signal)
	if snr != 0 {
		t.Errorf("expected SNR 0 for an all-zero signal, got %v", snr)
	}
}

func TestEstimateSNRCleanToneHasHighSNR(t *testing.T) {
	sampleRate := 8000
	signal := sineWave(440, sampleRate, sampleRate, 0.5)

	snr := estimateSNR(signal)
	if snr < 20 {
		t.Errorf("expected a high SNR for a pure tone, got %.2f dB", snr)
	}
}

func TestDynamicRangeEmptySignalReturnsZero(t *testing.T) {
	if dr := dynamicRange(nil); dr != 0 {
		t.Errorf("expected 0 for empty signal, got %v", dr)
	}
}

func TestDynamicRangeFullScaleSquareWaveIsNearZero(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}

	dr := dynamicRange(samples)
	if dr > 1 {
		t.Errorf("expected near-zero dynamic range for a full-scale square wave, got %.2f dB", dr)
	}
}

func TestAnalyzeAggregatesAllSubAnalyses(t *testing.T) {
	sampleRate := 8000
	mono := sineWave(440, sampleRate, sampleRate*2, 0.4)
	interleaved := mono // mono track: interleaved == mono

	result, err := Analyze(context.Background(), interleaved, mono, sampleRate, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.SpliceTimes == nil {
		t.Error("expected a non-nil (possibly empty) splice slice")
	}
	if result.SNRDB <= 0 {
		t.Errorf("expected positive SNR for a clean tone, got %v", result.SNRDB)
	}
}
