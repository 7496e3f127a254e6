// SPDX-License-Identifier: EPL-2.0

// Package audprep prepares spoken-utterance audio for classifier training.
//
// The module is split by concern:
//
//   - audio: Source, Decoder and Prober interfaces, the format registry,
//     resampling and mono mixing
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders and
//     header probers
//   - filestats: per-file duration and sample-rate statistics for a tree
//   - transform: raw speaker-organised trees to mono, resampled,
//     utterance-organised "_transformed" trees
//   - features: MFCC and mel-spectrogram extraction into a JSON record
//   - dataset: loading that record and splitting it into train, validation
//     and test partitions
//
// This package ties the formats together:
//
//	reg := audprep.NewRegistry()
//	info, err := reg.ProbeFile("recordings/jackson/0_jackson_0.wav")
//	fmt.Println(info.SampleRate, info.Duration())
//
// The cmd/audprep command exposes each step on the command line.
package audprep
