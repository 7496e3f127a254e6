// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM readers of github.com/go-audio to the
// float32 audio.Source used across this module.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders that Source
// needs. Tests substitute their own.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM into float32 samples in [-1,1].
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	offset     int // subtracted before scaling; 128 for unsigned 8-bit
	intBuf     *goaudio.IntBuffer
}

// NewSource wraps dec. unsigned8 marks 8-bit data stored as unsigned bytes,
// as WAV does; AIFF stores it signed.
func NewSource(dec Reader, bitDepth int, unsigned8 bool) (*Source, error) {
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: missing format", ErrUnsupportedBitDepth)
	}

	scale, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	s := &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
	}
	if bitDepth == 8 && unsigned8 {
		s.offset = 128
	}

	return s, nil
}

// FullScale returns the magnitude of the most negative sample at bitDepth.
func FullScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 128.0, nil
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-s.offset) / s.scale
	}

	// short read without an error is the end of the data chunk
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. The go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
