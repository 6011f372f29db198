package audioforensics

import "github.com/himanishpuri/audioforensics/internal/model"

// Kind is a stable, machine-readable error classification.
type Kind = model.Kind

const (
	KindUnknown           = model.KindUnknown
	KindFileNotFound      = model.KindFileNotFound
	KindUnsupportedFormat = model.KindUnsupportedFormat
	KindMalformedInput    = model.KindMalformedInput
	KindInvalidParameter  = model.KindInvalidParameter
	KindEmptyRange        = model.KindEmptyRange
	KindNoTrack           = model.KindNoTrack
	KindOutOfMemory       = model.KindOutOfMemory
	KindIoError           = model.KindIoError
	KindPermissionDenied  = model.KindPermissionDenied
)

// Error is the engine's machine-readable error type. It wraps an optional
// underlying cause while keeping a stable Kind for callers that branch on
// error category rather than message text.
type Error = model.Error

// Sentinel values for errors.Is comparisons against a specific kind, e.g.
// errors.Is(err, audioforensics.ErrNoTrack).
var (
	ErrFileNotFound      = model.ErrFileNotFound
	ErrUnsupportedFormat = model.ErrUnsupportedFormat
	ErrMalformedInput    = model.ErrMalformedInput
	ErrInvalidParameter  = model.ErrInvalidParameter
	ErrEmptyRange        = model.ErrEmptyRange
	ErrNoTrack           = model.ErrNoTrack
	ErrOutOfMemory       = model.ErrOutOfMemory
	ErrIoError           = model.ErrIoError
	ErrPermissionDenied  = model.ErrPermissionDenied
)
