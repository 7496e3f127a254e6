// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Prober reads only enough of a container to describe the stream it holds.
// Frames is zero when the container does not record its length.
type Prober interface {
	Probe(r io.ReadSeeker) (Info, error)
}

// Info describes an audio stream without decoding it.
type Info struct {
	SampleRate int
	Channels   int
	Frames     int64
}

// Duration returns the stream length in seconds.
func (i Info) Duration() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are file extensions without the leading dot.
type Registry struct {
	codecs map[string]Decoder
	mtx    *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Lookup returns the decoder registered for the extension of path.
func (r *Registry) Lookup(path string) (Decoder, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}

	return d, nil
}

// ProbeFile opens path and describes its stream. Decoders that also
// implement Prober are asked for the header only; the rest are decoded in
// full and their frames counted. A prober that reports zero frames gets the
// same decode fallback.
func (r *Registry) ProbeFile(path string) (Info, error) {
	d, err := r.Lookup(path)
	if err != nil {
		return Info{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	if p, ok := d.(Prober); ok {
		info, err := p.Probe(f)
		if err != nil {
			return Info{}, fmt.Errorf("probing %s: %w", path, err)
		}
		if info.Frames > 0 {
			return info, nil
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return Info{}, fmt.Errorf("%w", err)
		}
	}

	src, err := d.Decode(f)
	if err != nil {
		return Info{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	frames, err := CountFrames(src)
	if err != nil {
		return Info{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return Info{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		Frames:     frames,
	}, nil
}

// CountFrames drains src and returns how many frames it produced.
func CountFrames(src Source) (int64, error) {
	channels := src.Channels()
	if channels <= 0 {
		return 0, ErrInvalidChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := make([]float32, size)
	var samples int64

	for {
		n, err := src.ReadSamples(buf)
		samples += int64(n)

		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// Some decoders return (0, nil) at the end of the stream.
			break
		}
	}

	return samples / int64(channels), nil
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
