// SPDX-License-Identifier: EPL-2.0

package features

import "math"

func hzToMel(f float64) float64 { return 2595 * math.Log10(1+f/700) }
func melToHz(m float64) float64 { return 700 * (math.Pow(10, m/2595) - 1) }

// hann is the periodic Hann window, the usual choice for STFT analysis.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// melFilterbank returns numMels triangular filters over the nfft/2+1
// power-spectrum bins, each scaled to unit area (Slaney norm).
func melFilterbank(sampleRate, nfft, numMels int, fmin, fmax float64) [][]float64 {
	bins := nfft/2 + 1

	lo, hi := hzToMel(fmin), hzToMel(fmax)
	edges := make([]float64, numMels+2)
	for i := range edges {
		edges[i] = melToHz(lo + (hi-lo)*float64(i)/float64(numMels+1))
	}

	binHz := float64(sampleRate) / float64(nfft)

	filters := make([][]float64, numMels)
	for m := range filters {
		left, center, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)

		row := make([]float64, bins)
		for k := range row {
			f := float64(k) * binHz
			up := (f - left) / (center - left)
			down := (right - f) / (right - center)
			row[k] = math.Max(0, math.Min(up, down)) * norm
		}
		filters[m] = row
	}

	return filters
}

// dctMatrix is the orthonormal DCT-II basis, numCoeffs rows of n columns.
func dctMatrix(numCoeffs, n int) [][]float64 {
	out := make([][]float64, numCoeffs)
	for k := range out {
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}

		row := make([]float64, n)
		for i := range row {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(n)))
		}
		out[k] = row
	}
	return out
}

// powerToDB converts in place, 10*log10(max(x, amin)), then clips
// everything more than topDB below the peak.
func powerToDB(spec [][]float64) {
	const (
		amin  = 1e-10
		topDB = 80
	)

	peak := math.Inf(-1)
	for _, row := range spec {
		for i, x := range row {
			row[i] = 10 * math.Log10(math.Max(x, amin))
			peak = math.Max(peak, row[i])
		}
	}

	floor := peak - topDB
	for _, row := range spec {
		for i, x := range row {
			row[i] = math.Max(x, floor)
		}
	}
}
