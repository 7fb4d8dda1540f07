package estimator

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Evaluation of one fit. Predictions covers every input row, including the
// ones the model was trained on, so ranking from it is optimistic.
type Evaluation struct {
	Predictions        []float64
	Partition          Partition
	HeldOutPredictions []float64
	MAE                float64
}

// Evaluate fits a Regressor on the training partition of (X, y) and scores it
// on the held-out partition.
func Evaluate(X *mat.Dense, y []float64, p Params) (*Evaluation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, _ := X.Dims()
	if rows != len(y) {
		return nil, errors.Wrapf(ErrShape, "%d feature rows, %d targets", rows, len(y))
	}

	part, err := Split(rows, p.TestFraction, p.Seed)
	if err != nil {
		return nil, err
	}

	trainX, trainY := selectRows(X, y, part.Train)
	testX, testY := selectRows(X, y, part.Test)

	r := NewRegressor(p)
	if err := r.Fit(trainX, trainY); err != nil {
		return nil, err
	}

	held := r.Predict(testX)
	mae, err := MeanAbsoluteError(testY, held)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		Predictions:        r.Predict(X),
		Partition:          part,
		HeldOutPredictions: held,
		MAE:                mae,
	}, nil
}

func selectRows(X *mat.Dense, y []float64, idx []int) (*mat.Dense, []float64) {
	_, cols := X.Dims()
	sub := mat.NewDense(len(idx), cols, nil)
	subY := make([]float64, len(idx))
	for k, i := range idx {
		sub.SetRow(k, X.RawRowView(i))
		subY[k] = y[i]
	}
	return sub, subY
}
