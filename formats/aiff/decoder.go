// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec, err := readHeader(rs)
	if err != nil {
		return nil, err
	}

	src, err := pcm.NewSource(dec, int(dec.BitDepth), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return src, nil
}

// Probe reads the COMM chunk, which carries the frame count.
func (Decoder) Probe(rs io.ReadSeeker) (audio.Info, error) {
	dec, err := readHeader(rs)
	if err != nil {
		return audio.Info{}, err
	}

	return audio.Info{
		SampleRate: dec.SampleRate,
		Channels:   int(dec.NumChans),
		Frames:     int64(dec.NumSampleFrames),
	}, nil
}

func readHeader(rs io.ReadSeeker) (*aiff.Decoder, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return dec, nil
}
