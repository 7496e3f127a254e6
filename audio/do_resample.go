// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audprep/utils"
)

// ResampleToMono16 resamples src to targetRate, mixes it down to one channel
// and collects the result as 16-bit PCM.
//
// The returned rate is always targetRate. io.EOF from the pipeline is the
// normal end of stream and is not returned.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := audio.ResampleToMono16(src, 8000, 4096)
//	if err != nil {
//	    return err
//	}
//	// pcm16 now contains mono 16-bit PCM at 8kHz
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	var pcm16 []int16

	err := drainMono(src, targetRate, bufferSize, func(buf []float32) {
		for _, x := range buf {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}
	})
	if err != nil {
		return nil, targetRate, err
	}

	return pcm16, targetRate, nil
}

// ReadMono is ResampleToMono16 without the integer conversion: samples stay
// float32 in [-1,1], which is what feature extraction wants.
func ReadMono(src Source, targetRate int, bufferSize int) ([]float32, error) {
	var out []float32

	err := drainMono(src, targetRate, bufferSize, func(buf []float32) {
		out = append(out, buf...)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func drainMono(src Source, targetRate int, bufferSize int, emit func([]float32)) error {
	if targetRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, targetRate)
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	// resample -> mono
	var pipeline Source = NewMonoMixer(src)
	if src.SampleRate() != targetRate {
		pipeline = NewMonoMixer(NewResampler(src, targetRate))
	}

	buf := make([]float32, bufferSize)
	for {
		n, err := pipeline.ReadSamples(buf)
		if n > 0 {
			emit(buf[:n])
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n == 0 {
			return nil
		}
	}
}
