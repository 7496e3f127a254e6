// SPDX-License-Identifier: EPL-2.0

package features

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid feature configuration")

// Config fixes the shape of every extracted feature matrix.
type Config struct {
	SampleRate  int     // Hz, signals are resampled to it
	ClipSamples int     // signals are padded or truncated to this length
	NFFT        int     // STFT window length
	HopLength   int     // STFT step
	NumMels     int     // mel bands
	NumMFCC     int     // cepstral coefficients kept
	FMin        float64 // lowest mel edge in Hz
	FMax        float64 // highest mel edge in Hz, 0 means SampleRate/2
}

// DefaultConfig suits one-second spoken digits at 8 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:  8000,
		ClipSamples: 8000,
		NFFT:        256,
		HopLength:   128,
		NumMels:     40,
		NumMFCC:     13,
	}
}

// Frames is the number of STFT frames per clip.
func (c Config) Frames() int {
	return 1 + (c.ClipSamples-c.NFFT)/c.HopLength
}

func (c Config) fmax() float64 {
	if c.FMax <= 0 {
		return float64(c.SampleRate) / 2
	}
	return c.FMax
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.NFFT <= 0 || c.HopLength <= 0:
		return fmt.Errorf("%w: nfft %d, hop %d", ErrInvalidConfig, c.NFFT, c.HopLength)
	case c.ClipSamples < c.NFFT:
		return fmt.Errorf("%w: clip of %d samples is shorter than nfft %d", ErrInvalidConfig, c.ClipSamples, c.NFFT)
	case c.NumMels <= 0:
		return fmt.Errorf("%w: %d mel bands", ErrInvalidConfig, c.NumMels)
	case c.NumMFCC <= 0 || c.NumMFCC > c.NumMels:
		return fmt.Errorf("%w: %d MFCCs from %d mel bands", ErrInvalidConfig, c.NumMFCC, c.NumMels)
	case c.FMin < 0 || c.FMin >= c.fmax() || c.fmax() > float64(c.SampleRate)/2:
		return fmt.Errorf("%w: mel range %v-%v Hz at %d Hz", ErrInvalidConfig, c.FMin, c.fmax(), c.SampleRate)
	}
	return nil
}
