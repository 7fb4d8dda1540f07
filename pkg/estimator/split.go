package estimator

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// Partition holds row indexes of the training and held-out sets.
type Partition struct {
	Train []int
	Test  []int
}

// Split shuffles n row indexes with seed and holds out ceil(n*testFraction)
// of them. Both sides must end up non-empty.
func Split(n int, testFraction float64, seed int64) (Partition, error) {
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest
	if n < 2 || nTest < 1 || nTrain < 1 {
		return Partition{}, errors.Wrapf(ErrTooFewRows, "%d rows with test fraction %v", n, testFraction)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Partition{
		Train: perm[nTest:],
		Test:  perm[:nTest],
	}, nil
}
