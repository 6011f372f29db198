package forensics

import "math"

// dynamicRange computes peak/RMS ratio in dB, clamped to [0, 120].
func dynamicRange(mono []float32) float64 {
	if len(mono) == 0 {
		return 0
	}

	var peak float64
	var sumSq float64
	for _, v := range mono {
		av := math.Abs(float64(v))
		if av > peak {
			peak = av
		}
		sumSq += float64(v) * float64(v)
	}
	rms := math.Sqrt(sumSq / float64(len(mono)))
	if rms < 1e-12 {
		rms = 1e-12
	}
	if peak == 0 {
		return 0
	}

	return clamp(20*math.Log10(peak/rms), 0, 120)
}
