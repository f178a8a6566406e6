package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print stored quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		log, err := e.loadLog(cmd)
		if err != nil {
			return err
		}

		topic, _ := cmd.Flags().GetString("topic")
		if topic != "" {
			log = store.FilterTopic(log, topic)
		}

		out := cmd.OutOrStdout()
		if len(log) == 0 {
			fmt.Fprintln(out, components.EmptyMessage)
			return nil
		}
		lipgloss.Fprintln(out, components.ResultsTable(log, 0, 0, 0))
		fmt.Fprintf(out, "\n%d results\n", len(log))
		return nil
	},
}

func init() {
	resultsCmd.Flags().String("topic", "", "Only show results for this topic")
}
