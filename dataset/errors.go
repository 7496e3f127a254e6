// SPDX-License-Identifier: EPL-2.0

package dataset

import "errors"

var (
	ErrUnknownFeature    = errors.New("unknown feature set")
	ErrMissingKey        = errors.New("record has no such key")
	ErrRaggedArray       = errors.New("feature array is not rectangular and numeric")
	ErrInvalidLabel      = errors.New("labels must be integers")
	ErrLengthMismatch    = errors.New("feature and label counts differ")
	ErrShapeMismatch     = errors.New("tensor shape does not match its data")
	ErrInvalidProportion = errors.New("split proportion must be in (0, 1)")
	ErrEmptyPartition    = errors.New("split would leave a partition empty")
)
