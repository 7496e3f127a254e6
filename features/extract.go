// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Extractor computes mel spectrograms and MFCCs for a fixed Config. It
// keeps scratch buffers, so one Extractor must not be shared between
// goroutines.
type Extractor struct {
	cfg     Config
	fft     *fourier.FFT
	window  []float64
	filters [][]float64
	dct     [][]float64

	clip  []float64
	frame []float64
	coeff []complex128
}

func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		cfg:     cfg,
		fft:     fourier.NewFFT(cfg.NFFT),
		window:  hann(cfg.NFFT),
		filters: melFilterbank(cfg.SampleRate, cfg.NFFT, cfg.NumMels, cfg.FMin, cfg.fmax()),
		dct:     dctMatrix(cfg.NumMFCC, cfg.NumMels),
		clip:    make([]float64, cfg.ClipSamples),
		frame:   make([]float64, cfg.NFFT),
		coeff:   make([]complex128, cfg.NFFT/2+1),
	}, nil
}

func (e *Extractor) Config() Config { return e.cfg }

// Extract returns the log-mel spectrogram (frames x NumMels, in dB) and
// the MFCCs (frames x NumMFCC) of signal, which must already be mono at
// Config.SampleRate.
func (e *Extractor) Extract(signal []float32) (melSpec, mfcc [][]float32) {
	mel := e.melPower(signal)
	powerToDB(mel)

	melSpec = make([][]float32, len(mel))
	mfcc = make([][]float32, len(mel))
	for t, row := range mel {
		melSpec[t] = make([]float32, len(row))
		for i, v := range row {
			melSpec[t][i] = float32(v)
		}

		mfcc[t] = make([]float32, len(e.dct))
		for k, basis := range e.dct {
			var sum float64
			for i, v := range row {
				sum += basis[i] * v
			}
			mfcc[t][k] = float32(sum)
		}
	}

	return melSpec, mfcc
}

// melPower is the mel-filtered power STFT of the padded or truncated clip.
func (e *Extractor) melPower(signal []float32) [][]float64 {
	clear(e.clip)
	for i := range min(len(signal), len(e.clip)) {
		e.clip[i] = float64(signal[i])
	}

	frames := e.cfg.Frames()
	out := make([][]float64, frames)

	for t := range frames {
		start := t * e.cfg.HopLength
		for i, w := range e.window {
			e.frame[i] = e.clip[start+i] * w
		}
		e.coeff = e.fft.Coefficients(e.coeff, e.frame)

		row := make([]float64, len(e.filters))
		for m, filter := range e.filters {
			var sum float64
			for k, c := range e.coeff {
				if filter[k] == 0 {
					continue
				}
				a := cmplx.Abs(c)
				sum += filter[k] * a * a
			}
			row[m] = sum
		}
		out[t] = row
	}

	return out
}
