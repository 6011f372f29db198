package forensics

import (
	"math"
	"sort"
)

// estimateSNR splits the mono signal by its median absolute value: samples
// above the median are treated as signal, the lowest 10% by absolute value
// as noise.
func estimateSNR(mono []float32) float64 {
	n := len(mono)
	if n == 0 {
		return 0
	}

	abs := make([]float64, n)
	for i, v := range mono {
		abs[i] = math.Abs(float64(v))
	}
	sorted := append([]float64(nil), abs...)
	sort.Float64s(sorted)
	median := percentile(sorted, 0.5)
	noiseCutoff := percentile(sorted, 0.10)

	var signalSum, signalN, noiseSum, noiseN float64
	for i, a := range abs {
		x := float64(mono[i])
		if a > median {
			signalSum += x * x
			signalN++
		}
		if a <= noiseCutoff {
			noiseSum += x * x
			noiseN++
		}
	}

	if signalN == 0 {
		return 0
	}

	signalPower := signalSum / signalN
	var noisePower float64
	if noiseN > 0 {
		noisePower = noiseSum / noiseN
	}
	if noisePower < 1e-12 {
		noisePower = 1e-12
	}

	snr := 10 * math.Log10(signalPower/noisePower)
	return clamp(snr, 0, 120)
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
