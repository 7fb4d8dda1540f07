package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"f1racepredictor/pkg/config"
	"f1racepredictor/pkg/report"
	"f1racepredictor/pkg/tracks"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the Grand Prix names that can be predicted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		report.RenderEvents(cmd.OutOrStdout(), tracks.All())
		renderSeasonNote(cmd.OutOrStdout(), cfg)
	},
}

// renderSeasonNote warns about configured seasons that will be skipped.
func renderSeasonNote(w io.Writer, c *config.Config) {
	missing := c.MissingSeasons()
	if len(missing) == 0 {
		return
	}
	years := make([]string, len(missing))
	for i, y := range missing {
		years[i] = fmt.Sprint(y)
	}
	fmt.Fprintf(w, "\nNote: OpenF1 has no race laps before %d, season(s) %s will be skipped.\n",
		config.FirstSeason, strings.Join(years, ", "))
}
