// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audprep/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation, keeping the channel layout. When downsampling, every
// source frame first passes through a one-pole low-pass filter.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// win[1] and win[2] bracket the output position; win[0] and win[3]
	// are the outer interpolation taps. live marks frames that came from
	// src rather than edge duplication.
	win     [4][]float32
	live    [4]bool
	pos     float64
	started bool

	in      []float32
	off, n  int
	srcDone bool

	lp *lowPass
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
	}

	size := src.BufSize()
	if size < channels || channels <= 0 {
		size = 4096
	}
	if channels > 0 {
		size -= size % channels
	}
	r.in = make([]float32, size)

	for i := range r.win {
		r.win[i] = make([]float32, max(channels, 0))
	}
	if r.step > 1 {
		r.lp = &lowPass{alpha: 0.5, state: make([]float32, max(channels, 0))}
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with interleaved frames at the target rate. len(dst)
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.live[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

// prime loads the first frames. The first source frame doubles as its own
// left neighbour.
func (r *Resampler) prime() error {
	r.started = true

	ok, err := r.readFrame(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.win[0], r.win[1])
	r.live[0], r.live[1] = true, true

	for i := 2; i < len(r.win); i++ {
		if err := r.load(i); err != nil {
			return err
		}
	}

	return nil
}

// shift drops the oldest frame and reads one more into the last slot.
func (r *Resampler) shift() error {
	oldest := r.win[0]
	copy(r.win[:], r.win[1:])
	copy(r.live[:], r.live[1:])
	r.win[3] = oldest

	return r.load(3)
}

// load reads the next source frame into slot i, repeating slot i-1 once
// the source is exhausted.
func (r *Resampler) load(i int) error {
	ok, err := r.readFrame(r.win[i])
	if err != nil {
		return err
	}
	r.live[i] = ok
	if !ok {
		copy(r.win[i], r.win[i-1])
	}
	return nil
}

func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for r.off >= r.n {
		if r.srcDone {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.n, r.off = n-n%r.channels, 0

		switch {
		case err == io.EOF, err == nil && n == 0:
			r.srcDone = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.off:r.off+r.channels])
	r.off += r.channels

	if r.lp != nil {
		r.lp.apply(dst)
	}

	return true, nil
}

// lowPass is y[n] = a*x[n] + (1-a)*y[n-1] per channel, seeded with the
// first frame so the output does not ramp up from zero.
type lowPass struct {
	alpha  float32
	state  []float32
	primed bool
}

func (f *lowPass) apply(frame []float32) {
	if !f.primed {
		copy(f.state, frame)
		f.primed = true
	}
	for c, x := range frame {
		y := f.alpha*x + (1-f.alpha)*f.state[c]
		f.state[c] = y
		frame[c] = y
	}
}
