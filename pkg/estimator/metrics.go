package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func MeanAbsoluteError(truth, pred []float64) (float64, error) {
	if len(truth) != len(pred) {
		return 0, errors.Wrapf(ErrShape, "%d truths, %d predictions", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return 0, ErrTooFewRows
	}
	diff := make([]float64, len(truth))
	floats.SubTo(diff, truth, pred)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}
	return stat.Mean(diff, nil), nil
}
