// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes src to one channel by averaging each frame.
type MonoMixer struct {
	src Source
	in  []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with up to len(dst) mono frames.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if channels == 1 || len(dst) == 0 {
		return m.src.ReadSamples(dst)
	}
	if channels <= 0 {
		return 0, ErrInvalidChannels
	}

	want := len(dst) * channels
	if cap(m.in) < want {
		m.in = make([]float32, want)
	}
	in := m.in[:want]

	n, err := m.src.ReadSamples(in)
	frames := n / channels

	if channels == 2 {
		for i := range frames {
			dst[i] = 0.5 * (in[2*i] + in[2*i+1])
		}
		return frames, err
	}

	scale := 1 / float32(channels)
	for i := range frames {
		var sum float32
		for _, x := range in[i*channels : (i+1)*channels] {
			sum += x
		}
		dst[i] = sum * scale
	}

	return frames, err
}
