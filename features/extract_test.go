// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sine(rate, n int, freq float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestConfig_Frames(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.Equal(t, 1+(8000-256)/128, cfg.Frames())

	cfg.ClipSamples, cfg.NFFT, cfg.HopLength = 1000, 200, 100
	require.Equal(t, 9, cfg.Frames())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig().Validate())

	broken := []func(*Config){
		func(c *Config) { c.SampleRate = 0 },
		func(c *Config) { c.NFFT = 0 },
		func(c *Config) { c.HopLength = -1 },
		func(c *Config) { c.ClipSamples = c.NFFT - 1 },
		func(c *Config) { c.NumMels = 0 },
		func(c *Config) { c.NumMFCC = c.NumMels + 1 },
		func(c *Config) { c.FMax = float64(c.SampleRate) },
		func(c *Config) { c.FMin = 5000 },
	}

	for i, mutate := range broken {
		cfg := DefaultConfig()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "case %d", i)
	}
}

func TestExtract_Shape(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	ext, err := NewExtractor(cfg)
	require.NoError(t, err)

	for _, n := range []int{0, 1000, cfg.ClipSamples, 3 * cfg.ClipSamples} {
		mel, mfcc := ext.Extract(sine(cfg.SampleRate, n, 440))

		require.Len(t, mel, cfg.Frames(), "signal of %d samples", n)
		require.Len(t, mfcc, cfg.Frames())
		require.Len(t, mel[0], cfg.NumMels)
		require.Len(t, mfcc[0], cfg.NumMFCC)
	}
}

func TestExtract_ToneLandsInItsBand(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	ext, err := NewExtractor(cfg)
	require.NoError(t, err)

	const freq = 1000.0
	mel, _ := ext.Extract(sine(cfg.SampleRate, cfg.ClipSamples, freq))

	lo, hi := hzToMel(cfg.FMin), hzToMel(cfg.fmax())
	want, best := 0, math.Inf(1)
	for m := range cfg.NumMels {
		center := melToHz(lo + (hi-lo)*float64(m+1)/float64(cfg.NumMels+1))
		if d := math.Abs(center - freq); d < best {
			want, best = m, d
		}
	}

	row := mel[len(mel)/2]
	got := 0
	for m, v := range row {
		if v > row[got] {
			got = m
		}
	}

	require.InDelta(t, want, got, 1, "peak band")
}

func TestExtract_SilenceIsFlat(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	ext, err := NewExtractor(cfg)
	require.NoError(t, err)

	mel, mfcc := ext.Extract(make([]float32, cfg.ClipSamples))

	for _, row := range mel {
		for _, v := range row {
			require.InDelta(t, -100, v, 1e-3)
		}
	}
	for _, row := range mfcc {
		for k := 1; k < len(row); k++ {
			require.InDelta(t, 0, row[k], 1e-3)
		}
	}
}

func TestDCTMatrix_Orthonormal(t *testing.T) {
	t.Parallel()

	const n = 8
	m := dctMatrix(n, n)

	for i := range n {
		for j := range n {
			var dot float64
			for k := range n {
				dot += m[i][k] * m[j][k]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, dot, 1e-9, "row %d . row %d", i, j)
		}
	}
}

func TestMelFilterbank(t *testing.T) {
	t.Parallel()

	filters := melFilterbank(8000, 256, 40, 0, 4000)
	require.Len(t, filters, 40)

	for m, row := range filters {
		require.Len(t, row, 129)

		var sum float64
		for _, w := range row {
			require.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		require.Positive(t, sum, "filter %d covers no bins", m)
	}
}

func TestMelScale(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1000, hzToMel(1000), 0.5)
	for _, f := range []float64{0, 300, 4000, 11025} {
		require.InDelta(t, f, melToHz(hzToMel(f)), 1e-6)
	}
}
