package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

type Stage string

const (
	StageRetrieval Stage = "retrieval"
	StageAggregate Stage = "aggregation"
	StageJoin      Stage = "join"
	StageEstimate  Stage = "estimation"
)

// ErrNoData means the run was aborted before fitting because nothing usable
// came out of retrieval, aggregation or the join.
var ErrNoData = errors.New("no historical data")

// StageError records which step of the run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *StageError) Cause() error {
	return e.Err
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failing stage of err, or "" when err didn't come from a run.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func IsNoData(err error) bool {
	return errors.Cause(err) == ErrNoData
}
