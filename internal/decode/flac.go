package decode

import (
	"io"

	"github.com/himanishpuri/audioforensics/internal/model"
	"github.com/mewkiz/flac"
)

func decodeFLAC(r io.Reader, maxBytes int64) (Result, error) {
	stream, err := flac.New(r)
	if err != nil {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "invalid FLAC stream", Cause: err}
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels == 0 || info.SampleRate == 0 {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "missing STREAMINFO"}
	}
	fullScale := float32(int64(1) << uint(info.BitsPerSample-1))

	perChannel := make([][]int32, channels)
	for i := range perChannel {
		perChannel[i] = make([]int32, 0, info.NSamples)
	}

	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "corrupt FLAC frame", Cause: err}
		}
		for ch := 0; ch < channels; ch++ {
			perChannel[ch] = append(perChannel[ch], f.Subframes[ch].Samples...)
		}
		if err := checkByteCeiling(len(perChannel[0]), channels, maxBytes); err != nil {
			return Result{}, err
		}
	}

	frames := len(perChannel[0])
	samples := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			samples[i*channels+ch] = float32(perChannel[ch][i]) / fullScale
		}
	}

	return Result{
		Info: model.TrackInfo{
			Duration:   float64(frames) / float64(info.SampleRate),
			SampleRate: int(info.SampleRate),
			Channels:   channels,
		},
		Samples:  samples,
		Channels: channels,
	}, nil
}
