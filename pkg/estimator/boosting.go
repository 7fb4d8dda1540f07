package estimator

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Regressor is a least squares gradient boosted ensemble of regression trees.
type Regressor struct {
	params Params
	init   float64
	trees  []*node
}

func NewRegressor(p Params) *Regressor {
	return &Regressor{params: p}
}

func (r *Regressor) Fit(X mat.Matrix, y []float64) error {
	if err := r.params.Validate(); err != nil {
		return err
	}
	rows, cols := X.Dims()
	if rows != len(y) {
		return errors.Wrapf(ErrShape, "%d feature rows, %d targets", rows, len(y))
	}
	if rows == 0 {
		return ErrTooFewRows
	}

	r.init = stat.Mean(y, nil)
	r.trees = make([]*node, 0, r.params.Trees)

	current := make([]float64, rows)
	for i := range current {
		current[i] = r.init
	}
	residuals := make([]float64, rows)
	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}
	x := make([]float64, cols)

	for m := 0; m < r.params.Trees; m++ {
		for i := range residuals {
			residuals[i] = y[i] - current[i]
		}
		b := treeBuilder{
			X:        X,
			y:        residuals,
			maxDepth: r.params.MaxDepth,
			minLeaf:  r.params.MinSamplesLeaf,
		}
		tree := b.build(idx, 0)
		r.trees = append(r.trees, tree)

		for i := 0; i < rows; i++ {
			mat.Row(x, i, X)
			current[i] += r.params.LearningRate * tree.predict(x)
		}
	}
	return nil
}

func (r *Regressor) PredictRow(x []float64) float64 {
	out := r.init
	for _, t := range r.trees {
		out += r.params.LearningRate * t.predict(x)
	}
	return out
}

func (r *Regressor) Predict(X mat.Matrix) []float64 {
	rows, cols := X.Dims()
	out := make([]float64, rows)
	x := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(x, i, X)
		out[i] = r.PredictRow(x)
	}
	return out
}
