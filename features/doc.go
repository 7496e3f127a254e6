// SPDX-License-Identifier: EPL-2.0

// Package features turns a tree of labelled recordings into the feature
// record that package dataset loads.
//
// Every clip is resampled to mono at Config.SampleRate and padded with
// silence or truncated to Config.ClipSamples, so all clips give
// Config.Frames() STFT frames. Per frame the extractor computes a
// Hann-windowed power spectrum, applies a mel filterbank and converts to
// decibels (mel_specs), then keeps the first NumMFCC coefficients of an
// orthonormal DCT-II of that (MFCCs).
//
//	rec, err := features.BuildRecord(ctx, "recordings_transformed", nil, features.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	return rec.WriteFile("data.json")
package features
