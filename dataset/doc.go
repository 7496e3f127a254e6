// SPDX-License-Identifier: EPL-2.0

// Package dataset loads precomputed feature records and splits them into
// train, validation and test partitions.
//
// A record is a JSON object holding one or more feature sets (MFCCs,
// mel_specs) as nested numeric arrays with the sample axis first, and a
// labels array with one integer class per sample:
//
//	{"mapping": ["0", "1"], "labels": [0, 1], "MFCCs": [[[...]], [[...]]]}
//
// Splitting follows the usual two-stage recipe: test is carved from the
// whole set first, then validation from the remainder.
package dataset
