package decode

import (
	"bytes"
	"io"

	gomp4 "github.com/abema/go-mp4"
	"github.com/himanishpuri/audioforensics/internal/model"
	aacdecoder "github.com/skrashevich/go-aac/pkg/decoder"
)

type sampleLoc struct {
	offset uint64
	size   uint32
}

// decodeM4A demuxes the first AAC audio track from an MPEG-4 container and
// decodes every elementary-stream frame with the AAC decoder. The whole
// input is read into memory first, since gomp4 random-accesses the
// chunk/sample tables and r need not support seeking.
func decodeM4A(r io.Reader, maxBytes int64) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, &model.Error{Kind: model.KindIoError, Message: "read m4a", Cause: err}
	}
	rs := bytes.NewReader(data)

	info, err := gomp4.Probe(rs)
	if err != nil {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "mp4 probe failed", Cause: err}
	}

	track, err := findAudioTrack(info)
	if err != nil {
		return Result{}, err
	}

	asc, err := audioSpecificConfig(rs)
	if err != nil {
		return Result{}, err
	}

	dec := aacdecoder.New()
	if err := dec.SetASC(asc); err != nil {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "AudioSpecificConfig rejected", Cause: err}
	}

	sampleRate := int(track.Timescale)
	if dec.Config.SampleRate > 0 {
		sampleRate = dec.Config.SampleRate
	}
	channels := dec.Config.ChanConfig
	if channels < 1 {
		channels = 1
	}

	locations := buildSampleLocations(track)

	var samples []float32
	var maxRawSize uint32
	for _, loc := range locations {
		if loc.size > maxRawSize {
			maxRawSize = loc.size
		}
	}
	rawBuf := make([]byte, maxRawSize)

	for _, loc := range locations {
		if _, err := rs.Seek(int64(loc.offset), io.SeekStart); err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "AAC sample offset out of range", Cause: err}
		}
		raw := rawBuf[:loc.size]
		if _, err := io.ReadFull(rs, raw); err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "truncated AAC sample", Cause: err}
		}
		pcm, err := dec.DecodeFrame(raw)
		if err != nil {
			return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "corrupt AAC frame", Cause: err}
		}
		samples = append(samples, pcm...)
		if cerr := checkByteCeiling(len(samples)/channels, channels, maxBytes); cerr != nil {
			return Result{}, cerr
		}
	}

	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}
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

func findAudioTrack(info *gomp4.ProbeInfo) (*gomp4.Track, error) {
	for _, t := range info.Tracks {
		if t.Codec == gomp4.CodecMP4A {
			return t, nil
		}
	}
	return nil, &model.Error{Kind: model.KindUnsupportedFormat, Message: "no AAC audio track found"}
}

func audioSpecificConfig(rs io.ReadSeeker) ([]byte, error) {
	paths := []gomp4.BoxPath{
		{gomp4.BoxTypeMoov(), gomp4.BoxTypeTrak(), gomp4.BoxTypeMdia(), gomp4.BoxTypeMinf(), gomp4.BoxTypeStbl(), gomp4.BoxTypeStsd(), gomp4.BoxTypeMp4a(), gomp4.BoxTypeEsds()},
		{gomp4.BoxTypeMoov(), gomp4.BoxTypeTrak(), gomp4.BoxTypeMdia(), gomp4.BoxTypeMinf(), gomp4.BoxTypeStbl(), gomp4.BoxTypeStsd(), gomp4.BoxTypeMp4a(), gomp4.BoxTypeWave(), gomp4.BoxTypeEsds()},
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, &model.Error{Kind: model.KindIoError, Message: "seek", Cause: err}
	}

	bips, err := gomp4.ExtractBoxesWithPayload(rs, nil, paths)
	if err != nil {
		return nil, &model.Error{Kind: model.KindMalformedInput, Message: "extract esds box failed", Cause: err}
	}

	for _, bip := range bips {
		if bip.Info.Type != gomp4.BoxTypeEsds() {
			continue
		}
		esds, ok := bip.Payload.(*gomp4.Esds)
		if !ok {
			continue
		}
		for _, desc := range esds.Descriptors {
			if desc.Tag == gomp4.DecSpecificInfoTag && len(desc.Data) >= 2 {
				return desc.Data, nil
			}
		}
	}
	return nil, &model.Error{Kind: model.KindMalformedInput, Message: "AudioSpecificConfig not found"}
}

func buildSampleLocations(track *gomp4.Track) []sampleLoc {
	result := make([]sampleLoc, 0, len(track.Samples))
	sampleIdx := 0

	for _, chunk := range track.Chunks {
		off := chunk.DataOffset
		for j := uint32(0); j < chunk.SamplesPerChunk; j++ {
			if sampleIdx >= len(track.Samples) {
				return result
			}
			sz := track.Samples[sampleIdx].Size
			result = append(result, sampleLoc{offset: off, size: sz})
			off += uint64(sz)
			sampleIdx++
		}
	}
	return result
}
