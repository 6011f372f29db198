// Package forensics implements the five forensic sub-analyses of a track:
// ENF (power-grid hum) detection, splice/edit detection, clipping
// detection, SNR estimation, and dynamic range. Clipping is counted over
// the interleaved samples of all channels; the others run over the mono mix.
package forensics

import (
	"context"

	"github.com/himanishpuri/audioforensics/internal/model"
)

// Analyze runs the full forensic battery. interleaved is the raw,
// multi-channel buffer (clipping is defined over all channels); mono is
// its arithmetic-mean mix (every other sub-analysis is defined over mono).
func Analyze(ctx context.Context, interleaved []float32, mono []float32, sampleRate int, workers int) (model.Forensics, error) {
	present, strengthDB, gridFreq := detectENF(mono, sampleRate)

	spliceTimes, err := detectSplices(ctx, mono, sampleRate, workers)
	if err != nil {
		return model.Forensics{}, err
	}

	hasClipping, clippedCount := detectClipping(interleaved)
	snrDB := estimateSNR(mono)
	drDB := dynamicRange(mono)

	return model.Forensics{
		ENFPresent:     present,
		ENFStrengthDB:  strengthDB,
		GridFreq:       gridFreq,
		SpliceTimes:    spliceTimes,
		SNRDB:          snrDB,
		DynamicRangeDB: drDB,
		HasClipping:    hasClipping,
		ClippedCount:   clippedCount,
	}, nil
}
