package decode

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/himanishpuri/audioforensics/internal/model"
)

const wavChunkFrames = 8192

func decodeWAV(r io.Reader, maxBytes int64) (Result, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "not a valid RIFF/WAVE file"}
	}

	format := dec.Format()
	if format == nil || format.SampleRate <= 0 {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "missing fmt chunk"}
	}
	channels := format.NumChannels
	bitDepth := int(dec.BitDepth)
	isFloat := dec.WavAudioFormat == 3

	var samples []float32
	for {
		chunk := &audio.IntBuffer{
			Format:         format,
			Data:           make([]int, wavChunkFrames*channels),
			SourceBitDepth: bitDepth,
		}
		n, err := dec.PCMBuffer(chunk)
		if err != nil && err != io.EOF {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "corrupt PCM frame", Cause: err}
		}
		if n == 0 {
			break
		}
		samples = append(samples, pcmToFloat32(chunk.Data[:n], bitDepth, isFloat)...)
		if err := checkByteCeiling(len(samples)/channels, channels, maxBytes); err != nil {
			return Result{}, err
		}
		if n < len(chunk.Data) {
			break
		}
	}

	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}
	duration := float64(frames) / float64(format.SampleRate)

	return Result{
		Info: model.TrackInfo{
			Duration:   duration,
			SampleRate: format.SampleRate,
			Channels:   channels,
		},
		Samples:  samples,
		Channels: channels,
	}, nil
}

// pcmToFloat32 normalizes integer PCM samples by the format's full-scale
// value. IEEE float PCM (32-bit, format tag 3) round-trips through
// go-audio's IntBuffer as the float32 bit pattern reinterpreted as an
// int32; it is passed through and clamped to [-1, 1] rather than rescaled.
func pcmToFloat32(data []int, bitDepth int, isFloat bool) []float32 {
	samples := make([]float32, len(data))
	if isFloat {
		for i, v := range data {
			f := math.Float32frombits(uint32(int32(v)))
			switch {
			case math.IsNaN(float64(f)), math.IsInf(float64(f), 0):
				samples[i] = 0
			case f > 1:
				samples[i] = 1
			case f < -1:
				samples[i] = -1
			default:
				samples[i] = f
			}
		}
		return samples
	}

	fullScale := float32(int64(1) << uint(bitDepth-1))
	for i, v := range data {
		samples[i] = float32(v) / fullScale
	}
	return samples
}
