// SPDX-License-Identifier: EPL-2.0

// Package transform rewrites a speaker-organised recording tree into an
// utterance-organised tree of mono PCM16 WAV files at one sample rate.
//
// A file named 3_theo_12.mp3 anywhere under the source ends up as
// <dst>/3/3_theo_12.wav.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"

	"github.com/ik5/audprep"
	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/formats/wav"
)

const (
	DefaultSampleRate = 8000
	DefaultSuffix     = "_transformed"
	defaultBufferSize = 4096
)

var (
	ErrSameTree = errors.New("destination must differ from source")
	ErrLocked   = errors.New("destination is being written by another run")
)

// Report counts what Run did.
type Report struct {
	Written     int
	Skipped     []string // no utterance token in the name
	Unsupported int      // extension with no registered decoder
}

type options struct {
	sampleRate int
	bufferSize int
	registry   *audio.Registry
}

type Option func(*options)

func WithSampleRate(rate int) Option {
	return func(o *options) { o.sampleRate = rate }
}

func WithBufferSize(size int) Option {
	return func(o *options) { o.bufferSize = size }
}

func WithRegistry(reg *audio.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// LockPath is the lock file guarding dst. It sits next to the tree so it
// is never mistaken for a sample.
func LockPath(dst string) string {
	return filepath.Clean(dst) + ".lock"
}

// DefaultDestination is where Run writes when no destination is given.
func DefaultDestination(src string) string {
	return filepath.Clean(src) + DefaultSuffix
}

// Utterance returns the class encoded in a recording's file name: the
// text before the first underscore of the stem.
func Utterance(name string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	utt, _, found := strings.Cut(stem, "_")
	if !found || utt == "" {
		return "", false
	}
	return utt, true
}

// Run converts every decodable file under src. An empty dst means
// DefaultDestination(src). The first file that fails to decode or write
// stops the run; files already written stay in place. Concurrent runs into
// the same dst fail with ErrLocked.
func Run(ctx context.Context, src, dst string, opts ...Option) (Report, error) {
	o := &options{sampleRate: DefaultSampleRate, bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = audprep.NewRegistry()
	}
	if o.sampleRate <= 0 {
		return Report{}, fmt.Errorf("%w: %d", audio.ErrInvalidSampleRate, o.sampleRate)
	}

	if dst == "" {
		dst = DefaultDestination(src)
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return Report{}, fmt.Errorf("%w: %s", ErrSameTree, src)
	}

	lockPath := LockPath(dst)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return Report{}, fmt.Errorf("%w", err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Report{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WithError(err).WithField("lock", lockPath).Warn("failed to release lock")
		}
	}()

	var report Report

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if filepath.Clean(path) == filepath.Clean(dst) {
				return filepath.SkipDir
			}
			return nil
		}

		dec, err := o.registry.Lookup(path)
		if err != nil {
			report.Unsupported++
			return nil
		}

		utt, ok := Utterance(path)
		if !ok {
			log.WithField("path", path).Warn("no utterance in file name, skipping")
			report.Skipped = append(report.Skipped, path)
			return nil
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		out := filepath.Join(dst, utt, stem+".wav")
		if err := convert(dec, path, out, o); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		log.WithFields(log.Fields{"src": path, "dst": out}).Debug("transformed")
		report.Written++
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("%w", err)
	}

	log.WithFields(log.Fields{
		"src":         src,
		"dst":         dst,
		"written":     report.Written,
		"skipped":     len(report.Skipped),
		"unsupported": report.Unsupported,
	}).Info("transform finished")

	return report, nil
}

func convert(dec audio.Decoder, in, out string, o *options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return err
	}
	defer src.Close()

	pcm, rate, err := audio.ResampleToMono16(src, o.sampleRate, o.bufferSize)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	return wav.WriteFile(out, rate, pcm)
}
