package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"f1racepredictor/pkg/notification"
	"f1racepredictor/pkg/report"
	"f1racepredictor/pkg/tracks"
)

var predictCmd = &cobra.Command{
	Use:   "predict [grand prix]",
	Short: "Predict the results of a Grand Prix",
	Long: "Lists the season calendar and predicts the race named as argument, or read from\n" +
		"standard input when no argument is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: runPredict,
}

func addPredictFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("notify", false, "Also send the result to Telegram (TELEGRAM_TOKEN, TELEGRAM_CHAT_ID)")
}

func init() {
	addPredictFlags(predictCmd)
}

// runPredict reports every domain failure on stdout and returns nil so the
// process exits 0; only setup errors are returned.
func runPredict(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	report.RenderEvents(out, tracks.All())
	renderSeasonNote(out, cfg)

	name, err := readEventName(cmd.InOrStdin(), out, args)
	if err != nil {
		return err
	}
	track, err := tracks.GetTrackByName(name)
	if err != nil {
		fmt.Fprintln(out, "Invalid race name.")
		return nil
	}

	runner, closeRunner, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer closeRunner()

	fmt.Fprintf(out, "\nLoading historic data for: %s\n", track)
	r, err := runner.Predict(cmd.Context(), track)
	if err != nil {
		report.RenderError(out, track.Name, err)
		return nil
	}
	fmt.Fprintln(out)
	report.RenderReport(out, r)

	if notify, _ := cmd.Flags().GetBool("notify"); notify {
		m, err := notification.NewTelegramManagerFromEnv(log.WithField("component", "notification"))
		if err != nil {
			log.WithError(err).Error("telegram notifications unavailable")
			return nil
		}
		if err := m.Publish(cmd.Context(), r); err != nil {
			log.WithError(err).Error("publishing prediction")
		}
	}
	return nil
}

func readEventName(in io.Reader, out io.Writer, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	fmt.Fprint(out, "\nPlease enter a Grand Prix name (e.g. 'Japan'): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading grand prix name")
	}
	return strings.TrimSpace(line), nil
}
