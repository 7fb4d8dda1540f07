package telemetry

import (
	"github.com/pkg/errors"

	"f1racepredictor/pkg/model"
)

// Reasons a race session could not be turned into laps. Use Reason to
// classify a wrapped error.
var (
	ErrUnreachable     = errors.New("telemetry api unreachable")
	ErrBadResponse     = errors.New("unexpected telemetry api response")
	ErrSessionNotFound = errors.New("race session not found")
	ErrNoLaps          = errors.New("no complete laps in session")
)

// Result is the outcome of fetching one season's race. Either Err is nil and
// Laps holds at least one sample, or Err carries one of the reasons above.
type Result struct {
	Year int
	Laps []model.LapSample
	Err  error
}

func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) Reason() error {
	return Reason(r.Err)
}

// Reason returns the named failure reason behind err, or err itself when it
// is not one of ours.
func Reason(err error) error {
	if err == nil {
		return nil
	}
	return errors.Cause(err)
}
