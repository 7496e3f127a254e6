// SPDX-License-Identifier: EPL-2.0

// Package wav decodes, probes and writes WAV files.
//
// Decoding and probing are backed by github.com/go-audio/wav. Decoding
// accepts integer PCM at 8, 16, 24 or 32 bits, any channel count and sample
// rate. Probing also accepts IEEE float and WAVE_FORMAT_EXTENSIBLE files.
// Writing produces mono 16-bit PCM.
//
// # Probing
//
// Probe reads the fmt chunk and the size of the data chunk, which is all
// that is needed for duration and sample rate:
//
//	f, _ := os.Open("0_theo_1.wav")
//	info, err := wav.Decoder{}.Probe(f)
//	fmt.Println(info.SampleRate, info.Duration())
//
// # Decoding
//
//	src, err := wav.Decoder{}.Decode(f)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Inputs that cannot seek are buffered in memory first.
//
// # Writing
//
//	err := wav.WriteFile("out.wav", 8000, samples)
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrOnlyPCMSupported: Decode got a format tag other than integer PCM
//   - ErrUnsupportedWavLayout: header fields missing, no data chunk, or a
//     compressed format tag that Probe cannot size
package wav
