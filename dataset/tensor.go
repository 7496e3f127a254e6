// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"slices"
)

// Tensor is a dense row-major float32 array. The first axis indexes
// samples.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor checks that data holds exactly as many values as shape
// describes.
func NewTensor(shape []int, data []float32) (Tensor, error) {
	if len(shape) == 0 {
		return Tensor{}, fmt.Errorf("%w: tensor needs at least one axis", ErrShapeMismatch)
	}
	if n := product(shape); n != len(data) {
		return Tensor{}, fmt.Errorf("%w: shape %v wants %d values, got %d", ErrShapeMismatch, shape, n, len(data))
	}

	return Tensor{Shape: shape, Data: data}, nil
}

// Len is the size of the first axis.
func (t Tensor) Len() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return t.Shape[0]
}

// RowSize is the number of values in one sample.
func (t Tensor) RowSize() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return product(t.Shape[1:])
}

// Row returns sample i. The slice aliases t.Data.
func (t Tensor) Row(i int) []float32 {
	size := t.RowSize()
	return t.Data[i*size : (i+1)*size]
}

// Take copies the samples at idx, in that order, into a new tensor.
func (t Tensor) Take(idx []int) Tensor {
	size := t.RowSize()
	data := make([]float32, 0, len(idx)*size)
	for _, i := range idx {
		data = append(data, t.Row(i)...)
	}

	shape := slices.Clone(t.Shape)
	shape[0] = len(idx)

	return Tensor{Shape: shape, Data: data}
}

// ExpandDims appends an axis of size 1, the channel axis a convolutional
// model expects. Data is shared.
func (t Tensor) ExpandDims() Tensor {
	return Tensor{
		Shape: append(slices.Clone(t.Shape), 1),
		Data:  t.Data,
	}
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
