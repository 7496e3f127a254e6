// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"slices"
)

// Feature selects one of the feature sets stored in a record.
type Feature string

const (
	MFCCs    Feature = "MFCCs"
	MelSpecs Feature = "mel_specs"

	// LabelsKey holds the integer class of every sample.
	LabelsKey = "labels"
	// MappingKey optionally names the classes, indexed by label.
	MappingKey = "mapping"
)

// Features lists the recognised feature sets.
var Features = []Feature{MFCCs, MelSpecs}

// ParseFeature validates a feature-set name.
func ParseFeature(name string) (Feature, error) {
	f := Feature(name)
	if !slices.Contains(Features, f) {
		return "", fmt.Errorf("%q: %w (want one of %v)", name, ErrUnknownFeature, Features)
	}

	return f, nil
}

// Dataset is a feature tensor and one label per sample.
type Dataset struct {
	X Tensor
	Y []int
}

// New pairs features with labels, checking that the counts agree.
func New(x Tensor, y []int) (*Dataset, error) {
	if x.Len() != len(y) {
		return nil, fmt.Errorf("%w: %d feature rows, %d labels", ErrLengthMismatch, x.Len(), len(y))
	}

	return &Dataset{X: x, Y: y}, nil
}

func (d *Dataset) Len() int { return len(d.Y) }

// Take copies the samples at idx into a new Dataset.
func (d *Dataset) Take(idx []int) *Dataset {
	y := make([]int, len(idx))
	for i, j := range idx {
		y[i] = d.Y[j]
	}

	return &Dataset{X: d.X.Take(idx), Y: y}
}
