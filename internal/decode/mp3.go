package decode

import (
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/himanishpuri/audioforensics/internal/model"
)

const mp3ReadChunkBytes = 32 * 1024

// decodeMP3 decodes an MPEG-1/2 Layer III stream. go-mp3 always produces
// 16-bit signed little-endian stereo PCM regardless of the source channel
// count, so the canonical buffer here is always 2-channel.
func decodeMP3(r io.Reader, maxBytes int64) (Result, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "invalid MP3 stream", Cause: err}
	}

	const channels = 2
	sampleRate := dec.SampleRate()
	if sampleRate <= 0 {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "missing sample rate"}
	}

	var samples []float32
	var carry []byte
	buf := make([]byte, mp3ReadChunkBytes)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(carry) > 0 {
				chunk = append(carry, chunk...)
				carry = nil
			}
			// pcm16LEToFloat32 needs whole 16-bit samples; hold back a
			// trailing odd byte until the next read completes its pair.
			if len(chunk)%2 != 0 {
				carry = append(carry, chunk[len(chunk)-1])
				chunk = chunk[:len(chunk)-1]
			}
			samples = append(samples, pcm16LEToFloat32(chunk)...)
			if cerr := checkByteCeiling(len(samples)/channels, channels, maxBytes); cerr != nil {
				return Result{}, cerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "corrupt MP3 frame", Cause: err}
		}
		if n == 0 {
			break
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

func pcm16LEToFloat32(b []byte) []float32 {
	const fullScale = 1 << 15
	n := len(b) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
		out[i] = float32(v) / fullScale
	}
	return out
}
