package pipeline

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"f1racepredictor/pkg/estimator"
	"f1racepredictor/pkg/features"
	"f1racepredictor/pkg/laps"
	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/tracks"
)

type SkippedYear struct {
	Year   int    `json:"year"`
	Reason string `json:"reason"`
}

// Report is the outcome of one prediction run.
type Report struct {
	ID          uuid.UUID                `json:"id"`
	Event       string                   `json:"event"`
	Circuit     string                   `json:"circuit"`
	Profile     string                   `json:"profile,omitempty"`
	Years       []int                    `json:"years"`
	UsedYears   []int                    `json:"usedYears"`
	Skipped     []SkippedYear            `json:"skipped,omitempty"`
	Laps        int                      `json:"laps"`
	// Rows are the joined features the model saw, in registry order.
	Rows        []model.FeatureRow       `json:"rows,omitempty"`
	Predictions []model.PredictionResult `json:"predictions"`
	MAE         float64                  `json:"mae"`
	HeldOut     int                      `json:"heldOut"`
	// InSample is set because the ranking is predicted on every row, training
	// rows included.
	InSample bool `json:"inSample"`
}

func (r *Report) Winner() (model.PredictionResult, bool) {
	if len(r.Predictions) == 0 {
		return model.PredictionResult{}, false
	}
	return r.Predictions[0], true
}

type Options struct {
	Loader   *laps.Loader
	Registry []model.DriverRecord
	Years    []int
	Params   estimator.Params
	Profile  string
	Log      *logrus.Entry
}

// Runner predicts race results for one Grand Prix at a time. It holds no
// state between runs.
type Runner struct {
	loader   *laps.Loader
	registry []model.DriverRecord
	years    []int
	params   estimator.Params
	profile  string
	log      *logrus.Entry
}

func NewRunner(opts Options) *Runner {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{
		loader:   opts.Loader,
		registry: opts.Registry,
		years:    append([]int(nil), opts.Years...),
		params:   opts.Params,
		profile:  opts.Profile,
		log:      log,
	}
}

func (r *Runner) Predict(ctx context.Context, track tracks.Track) (*Report, error) {
	report := &Report{
		ID:       uuid.New(),
		Event:    track.Name,
		Circuit:  track.Circuit,
		Profile:  r.profile,
		Years:    append([]int(nil), r.years...),
		InSample: true,
	}
	log := r.log.WithFields(logrus.Fields{
		"track": track.Name,
		"run":   report.ID,
	})

	log.WithField("years", r.years).Info("loading historic data")
	samples, results := r.loader.Load(ctx, track, r.years)
	for _, res := range results {
		if res.OK() {
			report.UsedYears = append(report.UsedYears, res.Year)
			continue
		}
		report.Skipped = append(report.Skipped, SkippedYear{Year: res.Year, Reason: res.Err.Error()})
	}
	report.Laps = len(samples)
	if len(report.UsedYears) == 0 {
		return report, &StageError{
			Stage: StageRetrieval,
			Err:   errors.Wrapf(ErrNoData, "no data found for %s in given years", track.Name),
		}
	}

	averages := laps.Aggregate(samples)
	if len(averages) == 0 {
		return report, &StageError{
			Stage: StageAggregate,
			Err:   errors.Wrapf(ErrNoData, "no driver averages for %s", track.Name),
		}
	}

	rows, err := features.Join(r.registry, averages)
	if err != nil {
		if err == features.ErrNoFeatures {
			err = errors.Wrap(ErrNoData, err.Error())
		}
		return report, &StageError{Stage: StageJoin, Err: err}
	}
	report.Rows = rows
	log.WithFields(logrus.Fields{
		"drivers": len(averages),
		"rows":    len(rows),
	}).Debug("features joined")

	X, y, err := features.Matrix(rows)
	if err != nil {
		return report, &StageError{Stage: StageJoin, Err: err}
	}

	ev, err := estimator.Evaluate(X, y, r.params)
	if err != nil {
		return report, &StageError{Stage: StageEstimate, Err: err}
	}

	report.Predictions = rank(rows, ev.Predictions)
	report.MAE = ev.MAE
	report.HeldOut = len(ev.Partition.Test)
	log.WithFields(logrus.Fields{
		"mae":     report.MAE,
		"heldOut": report.HeldOut,
	}).Info("prediction ready")
	return report, nil
}

// rank sorts ascending by predicted lap time; equal times keep registry order.
func rank(rows []model.FeatureRow, predicted []float64) []model.PredictionResult {
	results := make([]model.PredictionResult, len(rows))
	for i, row := range rows {
		results[i] = model.PredictionResult{
			Driver:           row.Driver,
			FullName:         row.FullName,
			PredictedLapTime: predicted[i],
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PredictedLapTime < results[j].PredictedLapTime
	})
	return results
}
