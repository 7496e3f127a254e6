// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidChannels   = errors.New("source reports no channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
