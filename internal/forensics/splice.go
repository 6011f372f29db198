package forensics

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

const (
	spliceWindowSeconds = 0.1 // 100ms
	spliceK             = 6.0
	spliceCoalesceMs    = 50.0
	spliceEdgeMs        = 10.0
)

// detectSplices locates suspicious discontinuities in the mono signal.
// First differences are computed once; local mean/stddev of their
// magnitude over a sliding 100ms window is computed in parallel per
// window, then candidates are thresholded and coalesced sequentially.
func detectSplices(ctx context.Context, mono []float32, sampleRate int, workers int) ([]float64, error) {
	if len(mono) < 2 || sampleRate <= 0 {
		return []float64{}, nil
	}

	absDiffs := make([]float64, len(mono)-1)
	for i := 1; i < len(mono); i++ {
		absDiffs[i-1] = math.Abs(float64(mono[i]) - float64(mono[i-1]))
	}

	windowSamples := int(spliceWindowSeconds * float64(sampleRate))
	if windowSamples < 1 {
		windowSamples = 1
	}
	half := windowSamples / 2

	means := make([]float64, len(absDiffs))
	stddevs := make([]float64, len(absDiffs))

	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	const chunkSize = 4096
	for start := 0; start < len(absDiffs); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > len(absDiffs) {
			end = len(absDiffs)
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			for i := start; i < end; i++ {
				lo := i - half
				if lo < 0 {
					lo = 0
				}
				hi := i + half
				if hi > len(absDiffs) {
					hi = len(absDiffs)
				}
				mean, std := stat.MeanStdDev(absDiffs[lo:hi], nil)
				means[i] = mean
				stddevs[i] = std
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	edgeSamples := int(spliceEdgeMs / 1000 * float64(sampleRate))
	var candidateIdx []int
	for i, d := range absDiffs {
		if i < edgeSamples || i >= len(absDiffs)-edgeSamples {
			continue
		}
		if d > means[i]+spliceK*stddevs[i] {
			candidateIdx = append(candidateIdx, i)
		}
	}

	sort.Ints(candidateIdx)
	coalesceSamples := int(spliceCoalesceMs / 1000 * float64(sampleRate))

	var events []float64
	var lastIdx = -1 - coalesceSamples
	for _, idx := range candidateIdx {
		if idx-lastIdx <= coalesceSamples {
			continue
		}
		events = append(events, float64(idx)/float64(sampleRate))
		lastIdx = idx
	}
	if events == nil {
		events = []float64{}
	}
	return events, nil
}
