package raster

import "errors"

// Decode failures. Decoders wrap these with format context, so callers
// match them with errors.Is.
var (
	// ErrTooSmall means the buffer is shorter than the format's minimum
	// header.
	ErrTooSmall = errors.New("buffer too small")

	// ErrBadSignature means required magic bytes are absent and the format
	// has no fallback variant.
	ErrBadSignature = errors.New("bad signature")

	// ErrInvalidDimensions means the declared size is zero, negative or
	// beyond MaxDimension, and no fallback dimension table resolved it.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrUnrecognizedVariant means sniffing exhausted every known and
	// fallback variant for the format.
	ErrUnrecognizedVariant = errors.New("unrecognized variant")
)
