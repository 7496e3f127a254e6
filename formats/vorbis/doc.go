// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes and probes Ogg Vorbis files with
// github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved as float32 in [-1,1]. Probe reports the
// stream length when the input can seek; otherwise Frames is zero and
// audio.Registry.ProbeFile falls back to decoding.
package vorbis
