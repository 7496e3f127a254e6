// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
)

// Load reads the JSON record at path and returns the selected feature set
// with its labels.
func Load(path string, feature Feature) (*Dataset, error) {
	if _, err := ParseFeature(string(feature)); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	ds, err := Decode(f, feature)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"feature": feature,
		"shape":   ds.X.Shape,
	}).Info("Datasets loaded")

	return ds, nil
}

// Decode parses a JSON record from r.
func Decode(r io.Reader, feature Feature) (*Dataset, error) {
	if _, err := ParseFeature(string(feature)); err != nil {
		return nil, err
	}

	var record map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	rawX, ok := record[string(feature)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, feature)
	}
	rawY, ok := record[LabelsKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, LabelsKey)
	}

	var values any
	if err := json.Unmarshal(rawX, &values); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	x, err := flatten(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", feature, err)
	}

	y, err := decodeLabels(rawY)
	if err != nil {
		return nil, err
	}

	return New(x, y)
}

// flatten infers the shape from the first element along every axis and
// then checks that every other element agrees with it.
func flatten(v any) (Tensor, error) {
	var shape []int
	for cur := v; ; {
		arr, ok := cur.([]any)
		if !ok {
			break
		}
		shape = append(shape, len(arr))
		if len(arr) == 0 {
			break
		}
		cur = arr[0]
	}
	if len(shape) == 0 {
		return Tensor{}, fmt.Errorf("%w: value is not an array", ErrRaggedArray)
	}

	data := make([]float32, 0, product(shape))

	var walk func(v any, depth int) error
	walk = func(v any, depth int) error {
		if depth == len(shape) {
			n, ok := v.(float64)
			if !ok {
				return fmt.Errorf("%w: %T at depth %d", ErrRaggedArray, v, depth)
			}
			data = append(data, float32(n))
			return nil
		}

		arr, ok := v.([]any)
		if !ok || len(arr) != shape[depth] {
			return fmt.Errorf("%w: axis %d wants %d elements", ErrRaggedArray, depth, shape[depth])
		}
		for _, e := range arr {
			if err := walk(e, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(v, 0); err != nil {
		return Tensor{}, err
	}

	return Tensor{Shape: shape, Data: data}, nil
}

func decodeLabels(raw json.RawMessage) ([]int, error) {
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLabel, err)
	}

	labels := make([]int, len(values))
	for i, v := range values {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: index %d is %v", ErrInvalidLabel, i, v)
		}
		labels[i] = int(n)
	}

	return labels, nil
}
