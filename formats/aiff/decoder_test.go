// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"
)

// extended encodes a positive integer rate as an 80-bit IEEE 754 extended
// float, the way the COMM chunk stores it.
func extended(rate uint64) []byte {
	out := make([]byte, 10)
	e := 63 - bits.LeadingZeros64(rate)
	binary.BigEndian.PutUint16(out[0:2], uint16(16383+e))
	binary.BigEndian.PutUint64(out[2:10], rate<<(63-e))

	return out
}

func createAIFFFile(sampleRate, channels int, samples []int16) []byte {
	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(len(samples)/channels))
	binary.Write(comm, binary.BigEndian, int16(16))
	comm.Write(extended(uint64(sampleRate)))

	ssnd := new(bytes.Buffer)
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	binary.Write(ssnd, binary.BigEndian, samples)

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not AIFF data"),
		"empty":   {},
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%s) error = %v, want ErrNotAiffFile", name, err)
		}
		if _, err := (Decoder{}).Probe(bytes.NewReader(data)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Probe(%s) error = %v, want ErrNotAiffFile", name, err)
		}
	}
}

func TestDecoder_Probe(t *testing.T) {
	t.Parallel()

	data := createAIFFFile(8000, 2, make([]int16, 8000))

	info, err := Decoder{}.Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if info.SampleRate != 8000 || info.Channels != 2 {
		t.Errorf("Probe() = %d Hz / %d ch, want 8000 Hz / 2 ch", info.SampleRate, info.Channels)
	}
	if info.Frames != 4000 {
		t.Errorf("Probe() frames = %d, want 4000", info.Frames)
	}
	if info.Duration() != 0.5 {
		t.Errorf("Duration() = %v, want 0.5", info.Duration())
	}
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	samples := []int16{16384, -16384, 0, 32767}
	// bytes.Buffer cannot seek
	src, err := Decoder{}.Decode(bytes.NewBuffer(createAIFFFile(16000, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 16000 || src.Channels() != 1 {
		t.Errorf("got %d Hz / %d ch, want 16000 Hz / 1 ch", src.SampleRate(), src.Channels())
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(samples))
	}
	if buf[0] != 0.5 || buf[1] != -0.5 || buf[2] != 0 {
		t.Errorf("ReadSamples() = %v, want [0.5 -0.5 0 ...]", buf[:n])
	}
}

func TestExtended(t *testing.T) {
	t.Parallel()

	// 44100 Hz as written by common encoders
	want := []byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}
	if got := extended(44100); !bytes.Equal(got, want) {
		t.Errorf("extended(44100) = %x, want %x", got, want)
	}
}
