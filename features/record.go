// SPDX-License-Identifier: EPL-2.0

package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ik5/audprep"
	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/dataset"
)

var ErrNoSamples = errors.New("no decodable audio files found")

// Record is the JSON document dataset.Load reads. Labels index Mapping;
// Files records where every sample came from.
type Record struct {
	Mapping  []string      `json:"mapping"`
	Labels   []int         `json:"labels"`
	MFCCs    [][][]float32 `json:"MFCCs"`
	MelSpecs [][][]float32 `json:"mel_specs"`
	Files    []string      `json:"files"`
}

type sample struct {
	path  string
	label string
}

// BuildRecord extracts features from every decodable file under root. The
// class of a file is the name of its parent directory; classes are
// numbered in sorted order. A nil registry means audprep.NewRegistry().
func BuildRecord(ctx context.Context, root string, reg *audio.Registry, cfg Config) (*Record, error) {
	ext, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = audprep.NewRegistry()
	}

	var samples []sample
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, err := reg.Lookup(path); err != nil {
			return nil
		}

		samples = append(samples, sample{path: path, label: filepath.Base(filepath.Dir(path))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoSamples)
	}

	rec := &Record{}
	for _, s := range samples {
		if !slices.Contains(rec.Mapping, s.label) {
			rec.Mapping = append(rec.Mapping, s.label)
		}
	}
	slices.Sort(rec.Mapping)

	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		signal, err := decodeMono(reg, s.path, cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}

		mel, mfcc := ext.Extract(signal)

		label, _ := slices.BinarySearch(rec.Mapping, s.label)
		rec.Labels = append(rec.Labels, label)
		rec.MelSpecs = append(rec.MelSpecs, mel)
		rec.MFCCs = append(rec.MFCCs, mfcc)
		rec.Files = append(rec.Files, s.path)

		log.WithFields(log.Fields{"path": s.path, "label": s.label}).Debug("features extracted")
	}

	log.WithFields(log.Fields{
		"root":    root,
		"samples": len(rec.Labels),
		"classes": len(rec.Mapping),
	}).Info("record built")

	return rec, nil
}

func decodeMono(reg *audio.Registry, path string, rate int) ([]float32, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return audio.ReadMono(src, rate, 4096)
}

func (r *Record) WriteJSON(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// WriteFile writes the record as JSON to path.
func (r *Record) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	return r.WriteJSON(f)
}

// Dataset returns the chosen feature set as a dataset without a JSON
// round trip.
func (r *Record) Dataset(feature dataset.Feature) (*dataset.Dataset, error) {
	var values [][][]float32
	switch feature {
	case dataset.MFCCs:
		values = r.MFCCs
	case dataset.MelSpecs:
		values = r.MelSpecs
	default:
		_, err := dataset.ParseFeature(string(feature))
		return nil, err
	}

	shape := []int{len(values), 0, 0}
	if len(values) > 0 {
		shape[1] = len(values[0])
		if shape[1] > 0 {
			shape[2] = len(values[0][0])
		}
	}

	data := make([]float32, 0, shape[0]*shape[1]*shape[2])
	for i, matrix := range values {
		if len(matrix) != shape[1] {
			return nil, fmt.Errorf("%w: sample %d has %d frames, want %d",
				dataset.ErrRaggedArray, i, len(matrix), shape[1])
		}
		for j, row := range matrix {
			if len(row) != shape[2] {
				return nil, fmt.Errorf("%w: sample %d frame %d has %d values, want %d",
					dataset.ErrRaggedArray, i, j, len(row), shape[2])
			}
			data = append(data, row...)
		}
	}

	x, err := dataset.NewTensor(shape, data)
	if err != nil {
		return nil, err
	}

	return dataset.New(x, slices.Clone(r.Labels))
}
