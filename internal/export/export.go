// Package export writes a time range of a sample buffer to a 16-bit PCM
// WAV file, atomically.
package export

import (
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/himanishpuri/audioforensics/internal/model"
	"github.com/himanishpuri/audioforensics/pkg/utils"
)

const (
	wavBitDepth    = 16
	wavFormatPCM   = 1
	pcm16FullScale = 32767
)

// Export writes the inclusive-exclusive range [startS, endS) of buffer to
// outPath as a 16-bit PCM RIFF/WAVE file. The range is clipped to
// [0, duration]; if after clipping endS <= startS, it fails with
// EmptyRange. The file is written to a temporary sibling and renamed on
// successful flush; on any write error the temporary is removed and the
// original (if any) is left untouched.
func Export(outPath string, buffer model.SampleBuffer, duration, startS, endS float64) error {
	if startS < 0 {
		startS = 0
	}
	if endS > duration {
		endS = duration
	}
	if endS <= startS {
		return model.ErrEmptyRange
	}

	channels := buffer.Channels
	sampleRate := buffer.SampleRate
	startFrame := int(math.Floor(startS * float64(sampleRate)))
	endFrame := int(math.Floor(endS * float64(sampleRate)))
	totalFrames := len(buffer.Samples) / channels
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > totalFrames {
		endFrame = totalFrames
	}
	if endFrame <= startFrame {
		return model.ErrEmptyRange
	}

	data := make([]int, (endFrame-startFrame)*channels)
	for i := range data {
		v := buffer.Samples[startFrame*channels+i]
		data[i] = clampPCM16(v)
	}

	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, ".export-*.wav.tmp")
	if err != nil {
		return ioOrPermissionError(err)
	}
	tmpPath := tmp.Name()

	if err := writeWAV(tmp, data, sampleRate, channels); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioOrPermissionError(err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ioOrPermissionError(err)
	}

	if err := utils.MoveFile(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return ioOrPermissionError(err)
	}

	return nil
}

func writeWAV(f *os.File, data []int, sampleRate, channels int) error {
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func clampPCM16(x float32) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int(math.Round(float64(x) * pcm16FullScale))
}

func ioOrPermissionError(err error) error {
	if os.IsPermission(err) {
		return &model.Error{Kind: model.KindPermissionDenied, Message: "export", Cause: err}
	}
	return &model.Error{Kind: model.KindIoError, Message: "export", Cause: err}
}
