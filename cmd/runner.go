package cmd

import (
	"f1racepredictor/pkg/config"
	"f1racepredictor/pkg/drivers"
	"f1racepredictor/pkg/laps"
	"f1racepredictor/pkg/pipeline"
	"f1racepredictor/pkg/telemetry"
)

// newRunner builds the pipeline for c. The returned close func releases the
// response cache.
func newRunner(c *config.Config) (*pipeline.Runner, func() error, error) {
	client, err := telemetry.NewClient(telemetry.Options{
		APIDomain: c.APIDomain,
		CacheDir:  c.CacheDir,
		Log:       log.WithField("component", "telemetry"),
	})
	if err != nil {
		return nil, nil, err
	}

	runner := pipeline.NewRunner(pipeline.Options{
		Loader:   laps.NewLoader(client, log.WithField("component", "loader")),
		Registry: drivers.Registry(),
		Years:    c.Years,
		Params:   c.Params(),
		Profile:  c.Profile,
		Log:      log.WithField("component", "pipeline"),
	})
	return runner, client.Close, nil
}
