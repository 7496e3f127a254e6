// SPDX-License-Identifier: EPL-2.0

// Package filestats collects per-file duration and sample-rate statistics
// for a tree of audio samples.
//
// Each file becomes one Row labelled with its parent directory. Raw trees
// are organised by speaker and transformed trees by utterance, so the label
// column is named after whichever the root path indicates: ColumnUtterance
// when it contains the marker (DefaultMarker unless overridden),
// ColumnSpeaker otherwise.
//
//	table, err := filestats.Scan(ctx, "recordings_transformed")
//	table.WriteCSV(os.Stdout)
package filestats
