package forensics

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	enfThresholdDB  = 6.0
	enfBandHalfHz   = 0.5
	enfSideOffsetHz = 3.0
	enfSideHalfHz   = 1.0 // each side band is 2 Hz wide, centred at f±3
	enfPowerFloor   = 1e-12
)

var enfCandidates = [2]int{50, 60}

// detectENF estimates power-grid hum presence via a high-resolution,
// zero-padded whole-signal FFT. fftSize is the next power of two at least
// as large as the signal itself and as 10x the sample rate, guaranteeing a
// bin spacing of sampleRate/fftSize <= 0.1 Hz.
func detectENF(mono []float32, sampleRate int) (present bool, strengthDB float64, gridFreq int) {
	if len(mono) == 0 || sampleRate <= 0 {
		return false, 0, 0
	}

	minSize := len(mono)
	if r := sampleRate * 10; r > minSize {
		minSize = r
	}
	fftSize := nextPow2(minSize)
	padded := make([]float64, fftSize)
	for i, v := range mono {
		padded[i] = float64(v)
	}

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, padded)

	freqRes := float64(sampleRate) / float64(fftSize)
	bandPower := func(center, halfWidth float64) float64 {
		lo := int(math.Round((center - halfWidth) / freqRes))
		hi := int(math.Round((center + halfWidth) / freqRes))
		if lo < 0 {
			lo = 0
		}
		if hi >= len(coeffs) {
			hi = len(coeffs) - 1
		}
		var sum, n float64
		for k := lo; k <= hi; k++ {
			m := cmplx.Abs(coeffs[k])
			sum += m * m
			n++
		}
		if n == 0 {
			return 0
		}
		return sum / n
	}

	// A silent (or near-silent) signal has negligible power everywhere,
	// including at the candidate bands; there is no hum to detect and the
	// band/side ratio is meaningless, so report zeroed metrics rather than
	// letting it through to the log10 below.
	if bandPower(float64(enfCandidates[0]), enfBandHalfHz) < enfPowerFloor &&
		bandPower(float64(enfCandidates[1]), enfBandHalfHz) < enfPowerFloor {
		return false, 0, 0
	}

	bestStrength := math.Inf(-1)
	bestFreq := 0
	for _, f := range enfCandidates {
		band := bandPower(float64(f), enfBandHalfHz)
		if band < enfPowerFloor {
			band = enfPowerFloor
		}
		sideLo := bandPower(float64(f)-enfSideOffsetHz, enfSideHalfHz)
		sideHi := bandPower(float64(f)+enfSideOffsetHz, enfSideHalfHz)
		sideMean := (sideLo + sideHi) / 2
		if sideMean < enfPowerFloor {
			sideMean = enfPowerFloor
		}
		strength := 10 * math.Log10(band/sideMean)
		if strength > bestStrength {
			bestStrength = strength
			bestFreq = f
		}
	}

	return bestStrength >= enfThresholdDB, bestStrength, bestFreq
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
