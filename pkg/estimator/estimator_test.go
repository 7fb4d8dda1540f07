package estimator

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func syntheticData(n int, seed int64) (*mat.Dense, []float64) {
	rnd := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 4, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		q := 90 + rnd.Float64()*2
		s1 := 30 + rnd.Float64()
		s2 := 31 + rnd.Float64()
		s3 := 32 + rnd.Float64()
		X.SetRow(i, []float64{q, s1, s2, s3})
		y[i] = s1 + s2 + s3 + 0.5*(q-90) + rnd.NormFloat64()*0.05
	}
	return X, y
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		n, train, test int
	}{
		{20, 16, 4},
		{18, 14, 4},
		{5, 4, 1},
		{2, 1, 1},
	}
	for _, tt := range tests {
		p, err := Split(tt.n, 0.2, 42)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Len(t, p.Train, tt.train, "n=%d", tt.n)
		assert.Len(t, p.Test, tt.test, "n=%d", tt.n)

		all := append(append([]int{}, p.Train...), p.Test...)
		sort.Ints(all)
		for i, v := range all {
			assert.Equal(t, i, v)
		}
	}
}

func TestSplitTooFewRows(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, err := Split(n, 0.2, 42)
		assert.Equal(t, ErrTooFewRows, errors.Cause(err), "n=%d", n)
	}
}

func TestSplitIsSeeded(t *testing.T) {
	a, err := Split(20, 0.2, 38)
	require.NoError(t, err)
	b, err := Split(20, 0.2, 38)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRegressorLearnsStep(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 6, 7, 8})
	y := []float64{1, 1, 1, 10, 10, 10}

	r := NewRegressor(Params{Trees: 1, LearningRate: 1, MaxDepth: 1, MinSamplesLeaf: 1, TestFraction: 0.2})
	require.NoError(t, r.Fit(X, y))

	got := r.Predict(X)
	for i := range y {
		assert.InDelta(t, y[i], got[i], 1e-9)
	}
	assert.InDelta(t, 1.0, r.PredictRow([]float64{4.4}), 1e-9)
	assert.InDelta(t, 10.0, r.PredictRow([]float64{4.6}), 1e-9)
}

func TestRegressorConstantTarget(t *testing.T) {
	X, _ := syntheticData(10, 1)
	y := make([]float64, 10)
	for i := range y {
		y[i] = 95
	}
	r := NewRegressor(DefaultParams())
	require.NoError(t, r.Fit(X, y))
	for _, p := range r.Predict(X) {
		assert.InDelta(t, 95.0, p, 1e-9)
	}
}

func TestRegressorBeatsMean(t *testing.T) {
	X, y := syntheticData(60, 3)
	p := DefaultParams()
	p.Trees = 50

	r := NewRegressor(p)
	require.NoError(t, r.Fit(X, y))
	fitted, err := MeanAbsoluteError(y, r.Predict(X))
	require.NoError(t, err)

	m := stat.Mean(y, nil)
	baseline := make([]float64, len(y))
	for i := range baseline {
		baseline[i] = m
	}
	naive, err := MeanAbsoluteError(y, baseline)
	require.NoError(t, err)

	assert.Less(t, fitted, naive/2)
}

func TestRegressorShapeMismatch(t *testing.T) {
	X, _ := syntheticData(4, 1)
	err := NewRegressor(DefaultParams()).Fit(X, []float64{1, 2})
	assert.Equal(t, ErrShape, errors.Cause(err))
}

func TestMeanAbsoluteError(t *testing.T) {
	mae, err := MeanAbsoluteError([]float64{95, 96, 97}, []float64{95.5, 95, 97})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mae, 1e-12)

	_, err = MeanAbsoluteError([]float64{1}, []float64{1, 2})
	assert.Equal(t, ErrShape, errors.Cause(err))

	_, err = MeanAbsoluteError(nil, nil)
	assert.Equal(t, ErrTooFewRows, err)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	X, y := syntheticData(18, 9)
	p := Params{Trees: 300, LearningRate: 0.05, MaxDepth: 3, MinSamplesLeaf: 1, TestFraction: 0.2, Seed: 42}

	first, err := Evaluate(X, y, p)
	require.NoError(t, err)
	second, err := Evaluate(X, y, p)
	require.NoError(t, err)

	assert.Equal(t, first.Predictions, second.Predictions)
	assert.Equal(t, first.MAE, second.MAE)
	assert.Len(t, first.Predictions, 18)
	assert.Len(t, first.HeldOutPredictions, 4)
	assert.Len(t, first.Partition.Test, 4)
}

func TestEvaluateHeldOutMAE(t *testing.T) {
	X, y := syntheticData(20, 11)
	ev, err := Evaluate(X, y, DefaultParams())
	require.NoError(t, err)

	truth := make([]float64, len(ev.Partition.Test))
	for k, i := range ev.Partition.Test {
		truth[k] = y[i]
		// held-out predictions come from the same model as the full ranking
		assert.InDelta(t, ev.Predictions[i], ev.HeldOutPredictions[k], 1e-12)
	}
	want, err := MeanAbsoluteError(truth, ev.HeldOutPredictions)
	require.NoError(t, err)
	assert.Equal(t, want, ev.MAE)
}

func TestEvaluateTooFewRows(t *testing.T) {
	X := mat.NewDense(1, 4, []float64{90.817, 31, 32, 32})
	_, err := Evaluate(X, []float64{95}, DefaultParams())
	assert.Equal(t, ErrTooFewRows, errors.Cause(err))
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	bad := []func(p *Params){
		func(p *Params) { p.Trees = 0 },
		func(p *Params) { p.LearningRate = 0 },
		func(p *Params) { p.LearningRate = 1.5 },
		func(p *Params) { p.MaxDepth = 0 },
		func(p *Params) { p.MinSamplesLeaf = 0 },
		func(p *Params) { p.TestFraction = 1 },
	}
	for i, mutate := range bad {
		p := DefaultParams()
		mutate(&p)
		assert.Equal(t, ErrInvalidParam, errors.Cause(p.Validate()), "case %d", i)
	}
}
