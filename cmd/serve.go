package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"f1racepredictor/pkg/webserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve predictions over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, closeRunner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		defer closeRunner()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := webserver.NewManager(cfg.ListenAddress, runner, log.WithField("component", "webserver"))
		return m.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides WEBSERVER_ADDRESS, default :8080)")
}
