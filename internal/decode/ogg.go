package decode

import (
	"io"

	"github.com/himanishpuri/audioforensics/internal/model"
	"github.com/jfreymuth/oggvorbis"
)

const oggReadChunkFrames = 8192

func decodeOgg(r io.Reader, maxBytes int64) (Result, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "invalid Ogg Vorbis stream", Cause: err}
	}

	channels := dec.Channels()
	sampleRate := dec.SampleRate()
	if channels <= 0 || sampleRate <= 0 {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "missing stream parameters"}
	}

	var samples []float32
	buf := make([]float32, oggReadChunkFrames*channels)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			if cerr := checkByteCeiling(len(samples)/channels, channels, maxBytes); cerr != nil {
				return Result{}, cerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "corrupt Vorbis packet", Cause: err}
		}
		if n == 0 {
			break
		}
	}

	for i, v := range samples {
		if v > 1 {
			samples[i] = 1
		} else if v < -1 {
			samples[i] = -1
		}
	}

	frames := len(samples) / channels
	return Result{
		Info: model.TrackInfo{
			Duration:   float64(frames) / float64(sampleRate),
			SampleRate: sampleRate,
			Channels:   channels,
		},
		Samples:  samples,
		Channels: channels,
	}, nil
}
