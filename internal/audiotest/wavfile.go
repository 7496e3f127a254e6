// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WAV16 returns a canonical 44-byte-header PCM16 WAV holding samples
// (interleaved when channels > 1).
func WAV16(sampleRate, channels int, samples []int16) []byte {
	return wavBytes(1, 16, sampleRate, channels, len(samples), samples)
}

// WAVFloat32 returns an IEEE float (format tag 3) WAV holding samples.
func WAVFloat32(sampleRate, channels int, samples []float32) []byte {
	return wavBytes(3, 32, sampleRate, channels, len(samples), samples)
}

func wavBytes(tag, bits uint16, sampleRate, channels, count int, samples any) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	blockAlign := numChannels * bits / 8
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(count) * uint32(bits/8)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// Tone returns frames*channels interleaved samples of a sine at freq Hz.
func Tone(sampleRate, channels, frames int, freq float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * 16000)
		for c := range channels {
			out[i*channels+c] = v
		}
	}

	return out
}

// WriteWAVFile writes a mono tone of the given length to root/rel,
// creating parent directories, and returns the full path.
func WriteWAVFile(t testing.TB, root, rel string, sampleRate, frames int) string {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	data := WAV16(sampleRate, 1, Tone(sampleRate, 1, frames, 440))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
