package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Gama646/quizdash/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		topic, _ := cmd.Flags().GetString("topic")
		return runApp(cmd, true, name, topic)
	},
}

func init() {
	playCmd.Flags().String("name", "", "Your name (skips the name prompt)")
	playCmd.Flags().String("topic", "", "Quiz topic (skips the topic menu)")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startQuiz bool, name, topic string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("starting tui")
	return app.Run(app.Options{
		Bank:      e.bank,
		Store:     e.store,
		Logger:    e.logger,
		StartQuiz: startQuiz,
		Name:      name,
		Topic:     topic,
	})
}
