// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming primitives the rest of audprep is
// built on.
//
// A Source yields interleaved float32 samples in [-1, 1]. Decoders turn a
// file into a Source; Resampler and MonoMixer wrap a Source and are
// Sources themselves, so they chain:
//
//	src, err := registry.Lookup(path) // then Decode
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 8000))
//
// ReadMono and ResampleToMono16 drain such a chain into memory.
//
// # Registry and probing
//
// A Registry maps file extensions to decoders. ProbeFile describes a file
// without keeping its samples: decoders that implement Prober read the
// header only, the rest are decoded and their frames counted. A prober
// that cannot tell the length from the header reports zero frames and
// gets the same fallback.
//
//	info, err := registry.ProbeFile("speaker/0_theo_1.wav")
//	fmt.Println(info.SampleRate, info.Duration())
//
// # End of stream
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly
// together with the last samples. Any other error is a decode failure.
package audio
