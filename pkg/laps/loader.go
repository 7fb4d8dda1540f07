package laps

import (
	"context"

	"github.com/sirupsen/logrus"

	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/telemetry"
	"f1racepredictor/pkg/tracks"
)

type Fetcher interface {
	FetchRaceLaps(ctx context.Context, year int, track tracks.Track) telemetry.Result
}

// Loader collects race laps of one Grand Prix over several seasons.
type Loader struct {
	fetcher Fetcher
	log     *logrus.Entry
}

func NewLoader(fetcher Fetcher, log *logrus.Entry) *Loader {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{
		fetcher: fetcher,
		log:     log,
	}
}

// Load returns the laps of every season that could be retrieved, in the order
// of years, plus one Result per requested year. A failing season is skipped.
func (l *Loader) Load(ctx context.Context, track tracks.Track, years []int) ([]model.LapSample, []telemetry.Result) {
	var all []model.LapSample
	results := make([]telemetry.Result, 0, len(years))
	for _, year := range years {
		res := l.fetcher.FetchRaceLaps(ctx, year, track)
		res.Year = year
		if !res.OK() {
			l.log.WithFields(logrus.Fields{
				"year":  year,
				"track": track.Name,
			}).Warnf("[%d - %s] Skipped due to error: %s", year, track.Name, res.Err)
			res.Laps = nil
		} else {
			all = append(all, res.Laps...)
		}
		results = append(results, res)
	}
	return all, results
}
