// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/internal/pcm"
)

// Format tags from the fmt chunk.
const (
	pcmFormat        = 1
	floatFormat      = 3
	extensibleFormat = 0xFFFE
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
	if dec.WavAudioFormat != pcmFormat {
		return nil, ErrOnlyPCMSupported
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	src, err := pcm.NewSource(dec, int(dec.BitDepth), true)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return src, nil
}

// Probe reads the fmt chunk and the size of the data chunk without decoding
// any samples. Float and extensible WAVs probe fine although Decode
// rejects them.
func (Decoder) Probe(rs io.ReadSeeker) (audio.Info, error) {
	dec, err := readHeader(rs)
	if err != nil {
		return audio.Info{}, err
	}

	switch dec.WavAudioFormat {
	case pcmFormat, floatFormat, extensibleFormat:
	default:
		return audio.Info{}, fmt.Errorf("%w: format tag %#x", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return audio.Info{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	frameSize := int64(dec.NumChans) * int64((dec.BitDepth+7)/8)

	return audio.Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Frames:     dec.PCMLen() / frameSize,
	}, nil
}

func readHeader(rs io.ReadSeeker) (*gowav.Decoder, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 || dec.BitDepth == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return dec, nil
}
