// Package spectrogram computes a magnitude-in-decibels time-frequency
// matrix from a mono signal via a windowed short-time Fourier transform.
package spectrogram

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/himanishpuri/audioforensics/internal/model"
	"github.com/mjibson/go-dsp/fft"
	"golang.org/x/sync/errgroup"
)

const (
	// WindowSize is the STFT frame length N.
	WindowSize = 2048
	// HopSize is the STFT hop H = N/4, i.e. 75% overlap.
	HopSize = WindowSize / 4

	dbFloor = -200.0
	epsilon = 1e-10
)

var hannWindow = precomputeHann(WindowSize)

func precomputeHann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// Compute runs the STFT over mono, truncating output bins to maxFreq.
// maxFreq <= 0 or above Nyquist is the caller's responsibility to reject
// or clamp before calling; Compute itself clamps silently to Nyquist.
// Frames are computed in parallel across a bounded worker pool; the
// returned matrix preserves frame order regardless of completion order.
func Compute(ctx context.Context, mono []float32, sampleRate int, maxFreq float64, workers int) (model.SpectrogramResult, error) {
	nyquist := float64(sampleRate) / 2
	if maxFreq <= 0 || maxFreq > nyquist {
		maxFreq = nyquist
	}

	if len(mono) < WindowSize {
		return model.SpectrogramResult{Data: [][]float32{}, Times: []float64{}, MaxFreq: maxFreq}, nil
	}

	numFrames := (len(mono)-WindowSize)/HopSize + 1
	numBins := WindowSize/2 + 1
	cutoffBin := numBins
	for k := 0; k < numBins; k++ {
		if float64(k)*float64(sampleRate)/WindowSize > maxFreq {
			cutoffBin = k
			break
		}
	}

	data := make([][]float32, numFrames)
	times := make([]float64, numFrames)
	for m := 0; m < numFrames; m++ {
		times[m] = float64(m*HopSize) / float64(sampleRate)
	}

	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for m := 0; m < numFrames; m++ {
		m := m
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data[m] = computeFrame(mono, m*HopSize, cutoffBin)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.SpectrogramResult{}, err
	}

	return model.SpectrogramResult{Data: data, Times: times, MaxFreq: maxFreq}, nil
}

func computeFrame(mono []float32, start, cutoffBin int) []float32 {
	windowed := make([]complex128, WindowSize)
	for n := 0; n < WindowSize; n++ {
		windowed[n] = complex(float64(mono[start+n])*hannWindow[n], 0)
	}

	spectrum := fft.FFT(windowed)

	row := make([]float32, cutoffBin)
	for k := 0; k < cutoffBin; k++ {
		mag := cmplx.Abs(spectrum[k])
		db := 20 * math.Log10(math.Max(mag, epsilon))
		if math.IsNaN(db) || db < dbFloor {
			db = dbFloor
		}
		row[k] = float32(db)
	}
	return row
}
