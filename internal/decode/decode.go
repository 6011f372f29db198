// Package decode turns a supported audio container/codec into a canonical
// interleaved float32 sample buffer plus track metadata. Each backend
// materializes the full buffer in memory; there is no streaming-on-demand.
package decode

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/himanishpuri/audioforensics/internal/model"
)

// Result is the canonical decode output: a track's metadata plus its
// interleaved samples.
type Result struct {
	Info     model.TrackInfo
	Samples  []float32
	Channels int
}

// Decode reads path, selects a backend by filename extension (falling back
// to magic-byte sniffing when the extension is missing or unrecognized),
// and returns the canonical sample buffer. maxBytes bounds the decoded
// buffer size; exceeding it fails with OutOfMemory before the full file is
// materialized.
func Decode(path string, maxBytes int64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, &model.Error{Kind: model.KindFileNotFound, Message: path, Cause: err}
		}
		if os.IsPermission(err) {
			return Result{}, &model.Error{Kind: model.KindPermissionDenied, Message: path, Cause: err}
		}
		return Result{}, &model.Error{Kind: model.KindIoError, Message: path, Cause: err}
	}
	defer f.Close()

	format := formatFromExt(path)
	if format == "" {
		format, err = sniff(f)
		if err != nil {
			return Result{}, err
		}
	}

	var result Result
	switch format {
	case "wav":
		result, err = decodeWAV(f, maxBytes)
	case "mp3":
		result, err = decodeMP3(f, maxBytes)
	case "flac":
		result, err = decodeFLAC(f, maxBytes)
	case "ogg":
		result, err = decodeOgg(f, maxBytes)
	case "m4a":
		result, err = decodeM4A(f, maxBytes)
	default:
		return Result{}, &model.Error{Kind: model.KindUnsupportedFormat, Message: format}
	}
	if err != nil {
		return Result{}, err
	}

	if result.Info.SampleRate <= 0 {
		return Result{}, &model.Error{Kind: model.KindMalformedInput, Message: "missing sample rate"}
	}
	return result, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "wav"
	case ".mp3":
		return "mp3"
	case ".flac":
		return "flac"
	case ".ogg":
		return "ogg"
	case ".m4a":
		return "m4a"
	default:
		return ""
	}
}

// sniff inspects the first bytes of the file for a known magic number and
// rewinds the reader regardless of outcome.
func sniff(f *os.File) (string, error) {
	defer f.Seek(0, 0)

	head := make([]byte, 12)
	n, _ := f.Read(head)
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, []byte("RIFF")):
		return "wav", nil
	case bytes.HasPrefix(head, []byte("fLaC")):
		return "flac", nil
	case bytes.HasPrefix(head, []byte("OggS")):
		return "ogg", nil
	case bytes.HasPrefix(head, []byte{0xFF, 0xFB}), bytes.HasPrefix(head, []byte{0xFF, 0xFA}), bytes.HasPrefix(head, []byte("ID3")):
		return "mp3", nil
	case len(head) >= 8 && bytes.Equal(head[4:8], []byte("ftyp")):
		return "m4a", nil
	default:
		return "", &model.Error{Kind: model.KindUnsupportedFormat, Message: "could not identify container format"}
	}
}

func checkByteCeiling(frames, channels int, maxBytes int64) error {
	const bytesPerSample = 4 // float32
	total := int64(frames) * int64(channels) * bytesPerSample
	if maxBytes > 0 && total > maxBytes {
		return &model.Error{Kind: model.KindOutOfMemory, Message: fmt.Sprintf("decoded size %d exceeds ceiling %d", total, maxBytes)}
	}
	return nil
}
