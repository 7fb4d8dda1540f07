package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"f1racepredictor/pkg/helper"
	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/pipeline"
	"f1racepredictor/pkg/tracks"
)

const (
	tablePosition  = "POS"
	tableDriver    = "PIL"
	tableName      = "DRIVER"
	tablePredicted = "PREDICTED (s)"
	tableLap       = "LAP"
	tableGap       = "GAP"
	tableSector1   = "S1"
	tableSector2   = "S2"
	tableSector3   = "S3"
)

// RenderEvents prints the numbered season calendar.
func RenderEvents(w io.Writer, ts tracks.Tracks) {
	fmt.Fprintln(w, "2025 Season Race List (excluding Saudi Arabia):")
	for i, t := range ts {
		fmt.Fprintf(w, "%2d. %s\n", i+1, t.Name)
	}
}

// RenderReport prints the predicted ranking followed by the held-out error.
func RenderReport(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "Predicted 2025 %s GP Results (%s)\n\n", r.Event, seasons(r.UsedYears))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{tablePosition, tableDriver, tableName, tablePredicted, tableLap, tableGap, tableSector1, tableSector2, tableSector3})
	rows := make(map[string]model.FeatureRow, len(r.Rows))
	for _, row := range r.Rows {
		rows[row.Driver] = row
	}
	for i, p := range r.Predictions {
		gap := 0.0
		if i > 0 {
			gap = p.PredictedLapTime - r.Predictions[0].PredictedLapTime
		}
		t.AppendRow(table.Row{
			i + 1,
			p.Driver,
			p.FullName,
			fmt.Sprintf("%.3f", p.PredictedLapTime),
			helper.SecondsToMinutes(p.PredictedLapTime),
			helper.SecondsToDiff(gap),
			// historical sector means, "-" when unknown
			helper.ToSectorTime(rows[p.Driver].SectorTime1),
			helper.ToSectorTime(rows[p.Driver].SectorTime2),
			helper.ToSectorTime(rows[p.Driver].SectorTime3),
		})
	}
	t.Render()

	fmt.Fprintf(w, "\nModel Error (MAE): %.2f seconds (%d held-out drivers)\n", r.MAE, r.HeldOut)
	fmt.Fprintf(w, "Trained on %s laps\n", humanize.Comma(int64(r.Laps)))
	if r.InSample {
		fmt.Fprintln(w, "Note: the ranking includes drivers the model was trained on.")
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "Skipped %d: %s\n", s.Year, s.Reason)
	}
}

// RenderError prints a one line diagnostic naming the failing stage.
func RenderError(w io.Writer, event string, err error) {
	stage := pipeline.StageOf(err)
	switch {
	case pipeline.IsNoData(err):
		fmt.Fprintf(w, "No data found for %s in given years (%s failed): %s\n", event, stage, err)
	case stage != "":
		fmt.Fprintf(w, "Error predicting %s (%s failed): %s\n", event, stage, err)
	default:
		fmt.Fprintf(w, "Error predicting %s: %s\n", event, err)
	}
}

func seasons(years []int) string {
	if len(years) == 0 {
		return "no seasons"
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprint(y)
	}
	return "seasons " + strings.Join(parts, ", ")
}
