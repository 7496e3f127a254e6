// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTensor(t *testing.T) {
	t.Parallel()

	_, err := NewTensor([]int{2, 3}, make([]float32, 6))
	require.NoError(t, err)

	_, err = NewTensor([]int{2, 3}, make([]float32, 5))
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewTensor(nil, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTensor_RowAndTake(t *testing.T) {
	t.Parallel()

	x, err := NewTensor([]int{3, 2, 2}, []float32{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	})
	require.NoError(t, err)

	require.Equal(t, 3, x.Len())
	require.Equal(t, 4, x.RowSize())
	require.Equal(t, []float32{4, 5, 6, 7}, x.Row(1))

	sub := x.Take([]int{2, 0})
	require.Equal(t, []int{2, 2, 2}, sub.Shape)
	require.Equal(t, []float32{8, 9, 10, 11, 0, 1, 2, 3}, sub.Data)
	require.Equal(t, []int{3, 2, 2}, x.Shape, "Take must not touch the source shape")
}

func TestTensor_ExpandDims(t *testing.T) {
	t.Parallel()

	x := Tensor{Shape: []int{2, 3}, Data: make([]float32, 6)}
	e := x.ExpandDims()

	require.Equal(t, []int{2, 3, 1}, e.Shape)
	require.Equal(t, []int{2, 3}, x.Shape)
	require.Equal(t, x.RowSize(), e.RowSize())
}
