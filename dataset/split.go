// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	log "github.com/sirupsen/logrus"
)

// Partitions holds the three splits of a dataset.
type Partitions struct {
	Train *Dataset
	Val   *Dataset
	Test  *Dataset
}

// ExpandDims appends a trailing axis of size 1 to every partition's
// features.
func (p *Partitions) ExpandDims() {
	for _, ds := range []*Dataset{p.Train, p.Val, p.Test} {
		ds.X = ds.X.ExpandDims()
	}
}

type SplitOption func(*splitConfig)

type splitConfig struct {
	rng *rand.Rand
}

// WithSeed makes the shuffle reproducible.
func WithSeed(seed uint64) SplitOption {
	return func(c *splitConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand shuffles with the given generator.
func WithRand(rng *rand.Rand) SplitOption {
	return func(c *splitConfig) {
		c.rng = rng
	}
}

func newSplitConfig(opts []SplitOption) splitConfig {
	c := splitConfig{}
	for _, o := range opts {
		o(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// TrainTestSplit shuffles ds and carves off ceil(testSize*N) samples for
// test. The rest, in shuffled order, is train.
func TrainTestSplit(ds *Dataset, testSize float64, rng *rand.Rand) (train, test *Dataset, err error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidProportion, testSize)
	}

	n := ds.Len()
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest <= 0 || nTrain <= 0 {
		return nil, nil, fmt.Errorf("%w: %d samples at test size %v gives %d train, %d test",
			ErrEmptyPartition, n, testSize, nTrain, nTest)
	}

	perm := rng.Perm(n)

	return ds.Take(perm[nTest:]), ds.Take(perm[:nTest]), nil
}

// SplitThreeWay carves test out of ds, then validation out of what is
// left. valSizeOfRemainder is a share of the remainder, so validation ends
// up with roughly valSizeOfRemainder*(1-testSize) of ds.
func SplitThreeWay(ds *Dataset, testSize, valSizeOfRemainder float64, opts ...SplitOption) (*Partitions, error) {
	c := newSplitConfig(opts)

	rest, test, err := TrainTestSplit(ds, testSize, c.rng)
	if err != nil {
		return nil, fmt.Errorf("test split: %w", err)
	}

	train, val, err := TrainTestSplit(rest, valSizeOfRemainder, c.rng)
	if err != nil {
		return nil, fmt.Errorf("validation split: %w", err)
	}

	return &Partitions{Train: train, Val: val, Test: test}, nil
}

// CreateTrainTest loads the record at path and splits it three ways. The
// features of every partition gain a trailing channel axis.
func CreateTrainTest(path string, feature Feature, testSize, valSizeOfRemainder float64, opts ...SplitOption) (*Partitions, error) {
	ds, err := Load(path, feature)
	if err != nil {
		return nil, err
	}

	parts, err := SplitThreeWay(ds, testSize, valSizeOfRemainder, opts...)
	if err != nil {
		return nil, err
	}
	parts.ExpandDims()

	log.WithFields(log.Fields{
		"train": parts.Train.Len(),
		"val":   parts.Val.Len(),
		"test":  parts.Test.Len(),
	}).Info("Dataset split")

	return parts, nil
}
