package laps

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"f1racepredictor/pkg/model"
)

type driverLaps struct {
	lap, s1, s2, s3 []float64
}

// Aggregate averages lap and sector times per driver. The output has one row
// per driver found in samples, sorted by driver code. Each column is sorted
// before averaging so the result doesn't depend on the order of samples.
func Aggregate(samples []model.LapSample) []model.DriverAverage {
	byDriver := map[string]*driverLaps{}
	for _, s := range samples {
		dl, found := byDriver[s.Driver]
		if !found {
			dl = &driverLaps{}
			byDriver[s.Driver] = dl
		}
		dl.lap = append(dl.lap, s.LapTime)
		dl.s1 = append(dl.s1, s.SectorTime1)
		dl.s2 = append(dl.s2, s.SectorTime2)
		dl.s3 = append(dl.s3, s.SectorTime3)
	}

	codes := make([]string, 0, len(byDriver))
	for code := range byDriver {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	averages := make([]model.DriverAverage, 0, len(codes))
	for _, code := range codes {
		dl := byDriver[code]
		averages = append(averages, model.DriverAverage{
			Driver:      code,
			Laps:        len(dl.lap),
			LapTime:     mean(dl.lap),
			SectorTime1: mean(dl.s1),
			SectorTime2: mean(dl.s2),
			SectorTime3: mean(dl.s3),
		})
	}
	return averages
}

func mean(xs []float64) float64 {
	sort.Float64s(xs)
	return stat.Mean(xs, nil)
}
