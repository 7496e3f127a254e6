// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes and probes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported. The frame count comes
// straight from the COMM chunk, so probing never touches sample data.
package aiff
