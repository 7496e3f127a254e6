// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/audprep/internal/audiotest"
)

func TestMonoMixer_Mixing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(ch int) float32
		want     float32
	}{
		{"mono passthrough", 1, func(int) float32 { return 0.5 }, 0.5},
		{"stereo average", 2, func(ch int) float32 { return []float32{0.4, 0.6}[ch] }, 0.5},
		{"quad average", 4, func(ch int) float32 { return float32(ch) * 0.1 }, 0.15},
		{"opposite phase cancels", 2, func(ch int) float32 { return []float32{1, -1}[ch] }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_ int, ch int) float32 {
				return tt.value(ch)
			})
			mixer := NewMonoMixer(src)

			if mixer.Channels() != 1 {
				t.Errorf("Channels() = %d, want 1", mixer.Channels())
			}
			if mixer.SampleRate() != 8000 {
				t.Errorf("SampleRate() = %d, want 8000", mixer.SampleRate())
			}

			buf := make([]float32, 10)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 10 {
				t.Fatalf("ReadSamples() n = %d, want 10", n)
			}

			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_DrainsToEOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 25))
	buf := make([]float32, 10)
	total := 0

	for {
		n, err := mixer.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 25 {
		t.Errorf("read %d frames, want 25", total)
	}
}

func TestMonoMixer_EmptyAndLargeBuffers(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 20000))

	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}

	buf := make([]float32, 16384)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 16384 {
		t.Errorf("ReadSamples() n = %d, want 16384", n)
	}
}
