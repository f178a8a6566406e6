package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdash",
	Short: "Quiz dashboard for data analysis learners",
	Long: "quizdash is a terminal quiz for data analysis topics. It records every " +
		"attempt in a results log and charts your progress per topic.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false, "", "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/quizdash/quizdash.yaml)")
	flags.String("backend", "", "Results backend: csv or sqlite (overrides QUIZDASH_STORE_BACKEND)")
	flags.String("data", "", "Path of the results log (overrides QUIZDASH_DATA)")
	flags.String("questions", "", "Question bank JSON file replacing the built-in questions")
	flags.String("log-file", "", `Log file path, or "off" to disable logging`)
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
