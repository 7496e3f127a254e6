// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audprep/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	frameBuf []float32
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	want := (len(dst) / channels) * channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.frameBuf) < want {
		s.frameBuf = make([]float32, want)
	}
	s.frameBuf = s.frameBuf[:want]

	// oggvorbis counts in interleaved samples, not frames
	n, err := s.dec.Read(s.frameBuf)
	if n == 0 {
		return 0, err
	}

	copy(dst, s.frameBuf[:n])

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:      dec,
		frameBuf: make([]float32, 4096),
	}, nil
}

// Probe reads the identification header and, for seekable input, the
// granule position of the last page.
func (Decoder) Probe(rs io.ReadSeeker) (audio.Info, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return audio.Info{}, fmt.Errorf("%w", err)
	}

	return audio.Info{
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
		Frames:     max(dec.Length(), 0),
	}, nil
}
