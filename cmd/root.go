package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"f1racepredictor/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "f1racepredictor",
	Short: "Predict Grand Prix results from historical race laps",
	Long: "f1racepredictor averages past race lap and sector times per driver, joins them with\n" +
		"hypothetical qualifying times and ranks drivers by a gradient boosted lap time prediction.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd, args)
	},
	Args: cobra.MaximumNArgs(1),
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a JSON config file")
	flags.String("profile", config.ProfileHistory,
		"Seasons and model preset: season (2024) or history (2022-2024, OpenF1 has no 2022 laps so only 2023-2024 are used)")
	flags.String("cache-dir", "", "Response cache directory, \"-\" disables it (overrides F1_CACHE_DIR)")
	flags.String("api", "", "OpenF1 API base URL (overrides F1_API_DOMAIN)")
	flags.IntSlice("years", nil, "Seasons to learn from, e.g. 2023,2024")
	flags.Int("trees", 0, "Number of boosting stages")
	flags.Float64("learning-rate", 0, "Boosting learning rate")
	flags.Int64("seed", 0, "Random seed of the train/test split")
	flags.BoolP("verbose", "v", false, "Debug logging")

	addPredictFlags(rootCmd)

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(serveCmd)
}

var (
	cfg *config.Config
	log = logrus.WithField("app", "f1racepredictor")
)

// setup resolves the configuration: profile, then config file, then
// environment, then flags.
func setup(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stderr)
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	profile, _ := cmd.Flags().GetString("profile")
	c, err := config.ForProfile(profile)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := c.LoadFile(path); err != nil {
			return err
		}
		// an explicit --profile beats the file's
		if cmd.Flags().Changed("profile") {
			p, _ := config.LookupProfile(profile)
			c.ApplyProfile(p)
		}
	}
	c.ApplyEnv(os.Getenv)
	applyFlags(cmd, c)

	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	if missing := c.MissingSeasons(); len(missing) > 0 {
		log.WithField("seasons", missing).Debugf("no OpenF1 data before %d", config.FirstSeason)
	}
	log.WithField("config", *c).Debug("configuration loaded")
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("cache-dir") {
		v, _ := flags.GetString("cache-dir")
		if v == "-" {
			v = ""
		}
		c.CacheDir = v
	}
	if flags.Changed("api") {
		c.APIDomain, _ = flags.GetString("api")
	}
	if flags.Changed("years") {
		c.Years, _ = flags.GetIntSlice("years")
	}
	if flags.Changed("trees") {
		c.Trees, _ = flags.GetInt("trees")
	}
	if flags.Changed("learning-rate") {
		c.LearningRate, _ = flags.GetFloat64("learning-rate")
	}
	if flags.Changed("seed") {
		c.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("listen") {
		c.ListenAddress, _ = flags.GetString("listen")
	}
}
