// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes and probes MP3 files with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the source reports two channels
// regardless of the file's own channel mode. Mix down with audio.MonoMixer
// when mono is needed.
//
//	f, _ := os.Open("clip.mp3")
//	info, err := mp3.Decoder{}.Probe(f)
//	fmt.Println(info.SampleRate, info.Duration())
package mp3
