// SPDX-License-Identifier: EPL-2.0

// Package h5 reads and writes feature records as HDF5 files. The dataset
// names mirror the JSON record keys. It needs cgo and libhdf5.
package h5

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/weaviate/hdf5"

	"github.com/ik5/audprep/dataset"
)

var ErrUnsupportedByteSize = errors.New("unsupported HDF5 element size")

// Load reads the feature set and labels from the HDF5 file at path.
func Load(path string, feature dataset.Feature) (*dataset.Dataset, error) {
	if _, err := dataset.ParseFeature(string(feature)); err != nil {
		return nil, err
	}

	file, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	x, err := readFloats(file, string(feature))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	y, err := readInts(file, dataset.LabelsKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ds, err := dataset.New(x, y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"feature": feature,
		"shape":   x.Shape,
	}).Info("Datasets loaded")

	return ds, nil
}

// WritePartitions stores every partition as X_<name> and y_<name>
// datasets, truncating any existing file.
func WritePartitions(path string, parts *dataset.Partitions) error {
	file, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	for _, p := range []struct {
		name string
		ds   *dataset.Dataset
	}{
		{"train", parts.Train},
		{"val", parts.Val},
		{"test", parts.Test},
	} {
		if err := writeFloats(file, "X_"+p.name, p.ds.X); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := writeInts(file, "y_"+p.name, p.ds.Y); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func openDataset(file *hdf5.File, name string) (*hdf5.Dataset, []int, uint, error) {
	ds, err := file.OpenDataset(name)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %q: %w", dataset.ErrMissingKey, name, err)
	}

	dims, _, err := ds.Space().SimpleExtentDims()
	if err != nil {
		ds.Close()
		return nil, nil, 0, fmt.Errorf("%s: %w", name, err)
	}

	dtype, err := ds.Datatype()
	if err != nil {
		ds.Close()
		return nil, nil, 0, fmt.Errorf("%s: %w", name, err)
	}

	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}

	return ds, shape, dtype.Size(), nil
}

func readFloats(file *hdf5.File, name string) (dataset.Tensor, error) {
	ds, shape, byteSize, err := openDataset(file, name)
	if err != nil {
		return dataset.Tensor{}, err
	}
	defer ds.Close()

	n := 1
	for _, d := range shape {
		n *= d
	}

	var data []float32
	switch byteSize {
	case 4:
		data = make([]float32, n)
		err = ds.Read(&data)
	case 8:
		wide := make([]float64, n)
		err = ds.Read(&wide)
		data = make([]float32, n)
		for i, v := range wide {
			data[i] = float32(v)
		}
	default:
		return dataset.Tensor{}, fmt.Errorf("%s: %w: %d", name, ErrUnsupportedByteSize, byteSize)
	}
	if err != nil {
		return dataset.Tensor{}, fmt.Errorf("%s: %w", name, err)
	}

	return dataset.NewTensor(shape, data)
}

func readInts(file *hdf5.File, name string) ([]int, error) {
	ds, shape, byteSize, err := openDataset(file, name)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if len(shape) != 1 {
		return nil, fmt.Errorf("%s: %w: shape %v", name, dataset.ErrInvalidLabel, shape)
	}

	out := make([]int, shape[0])
	switch byteSize {
	case 4:
		narrow := make([]int32, shape[0])
		err = ds.Read(&narrow)
		for i, v := range narrow {
			out[i] = int(v)
		}
	case 8:
		wide := make([]int64, shape[0])
		err = ds.Read(&wide)
		for i, v := range wide {
			out[i] = int(v)
		}
	default:
		return nil, fmt.Errorf("%s: %w: %d", name, ErrUnsupportedByteSize, byteSize)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return out, nil
}

func writeFloats(file *hdf5.File, name string, t dataset.Tensor) error {
	dims := make([]uint, len(t.Shape))
	for i, d := range t.Shape {
		dims[i] = uint(d)
	}

	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer space.Close()

	ds, err := file.CreateDataset(name, hdf5.T_NATIVE_FLOAT, space)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer ds.Close()

	data := t.Data
	if err := ds.Write(&data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func writeInts(file *hdf5.File, name string, values []int) error {
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(values))}, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer space.Close()

	ds, err := file.CreateDataset(name, hdf5.T_NATIVE_INT64, space)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer ds.Close()

	wide := make([]int64, len(values))
	for i, v := range values {
		wide[i] = int64(v)
	}
	if err := ds.Write(&wide); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
