package features

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"f1racepredictor/pkg/model"
)

// Columns of the feature matrix, in order.
var Columns = []string{"QualifyingTime", "SectorTime1", "SectorTime2", "SectorTime3"}

var ErrNoFeatures = errors.New("no driver has both a qualifying time and historical laps")

// Join keeps the registry order and drops drivers without historical averages.
// A code appears at most once in the output.
func Join(registry []model.DriverRecord, averages []model.DriverAverage) ([]model.FeatureRow, error) {
	byDriver := make(map[string]model.DriverAverage, len(averages))
	for _, a := range averages {
		byDriver[a.Driver] = a
	}

	seen := map[string]bool{}
	rows := make([]model.FeatureRow, 0, len(registry))
	for _, r := range registry {
		if seen[r.Code] {
			continue
		}
		a, found := byDriver[r.Code]
		if !found {
			continue
		}
		seen[r.Code] = true
		rows = append(rows, model.FeatureRow{
			Driver:         r.Code,
			FullName:       r.FullName,
			QualifyingTime: r.QualifyingTime,
			SectorTime1:    a.SectorTime1,
			SectorTime2:    a.SectorTime2,
			SectorTime3:    a.SectorTime3,
			LapTime:        a.LapTime,
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoFeatures
	}
	return rows, nil
}

// Matrix lays the rows out as an n×len(Columns) feature matrix and the target vector.
func Matrix(rows []model.FeatureRow) (*mat.Dense, []float64, error) {
	if len(rows) == 0 {
		return nil, nil, ErrNoFeatures
	}
	data := make([]float64, 0, len(rows)*len(Columns))
	y := make([]float64, len(rows))
	for i, r := range rows {
		data = append(data, r.Features()...)
		y[i] = r.LapTime
	}
	return mat.NewDense(len(rows), len(Columns), data), y, nil
}
