package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input has no FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates a header the decoder cannot use:
	// no COMM chunk, zero channels or an unsupported bit depth.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
