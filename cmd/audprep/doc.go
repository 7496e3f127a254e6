// SPDX-License-Identifier: EPL-2.0

// Command audprep prepares spoken-utterance recordings for a classifier:
//
//	audprep stats recordings                 per-file duration and sample rate
//	audprep transform recordings             mono 8 kHz copy grouped by utterance
//	audprep features recordings_transformed data.json
//	audprep split data.json --out splits.h5  train/validation/test partitions
//
// Settings come from flags, AUDPREP_* environment variables and an
// audprep.yaml file, in that order of precedence.
package main
