package estimator

import "github.com/pkg/errors"

var (
	ErrTooFewRows   = errors.New("not enough rows to train and evaluate")
	ErrShape        = errors.New("feature and target sizes don't match")
	ErrInvalidParam = errors.New("invalid estimator parameter")
)

// Params of the gradient boosted ensemble and of the train/test split.
type Params struct {
	Trees          int     `json:"trees"`
	LearningRate   float64 `json:"learningRate"`
	MaxDepth       int     `json:"maxDepth"`
	MinSamplesLeaf int     `json:"minSamplesLeaf"`
	TestFraction   float64 `json:"testFraction"`
	Seed           int64   `json:"seed"`
}

func DefaultParams() Params {
	return Params{
		Trees:          100,
		LearningRate:   0.1,
		MaxDepth:       3,
		MinSamplesLeaf: 1,
		TestFraction:   0.2,
		Seed:           42,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Trees < 1:
		return errors.Wrapf(ErrInvalidParam, "trees must be positive, got %d", p.Trees)
	case p.LearningRate <= 0 || p.LearningRate > 1:
		return errors.Wrapf(ErrInvalidParam, "learning rate must be in (0, 1], got %v", p.LearningRate)
	case p.MaxDepth < 1:
		return errors.Wrapf(ErrInvalidParam, "max depth must be positive, got %d", p.MaxDepth)
	case p.MinSamplesLeaf < 1:
		return errors.Wrapf(ErrInvalidParam, "min samples per leaf must be positive, got %d", p.MinSamplesLeaf)
	case p.TestFraction <= 0 || p.TestFraction >= 1:
		return errors.Wrapf(ErrInvalidParam, "test fraction must be in (0, 1), got %v", p.TestFraction)
	}
	return nil
}
