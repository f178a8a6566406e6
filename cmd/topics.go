package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List quiz topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-30s  %9s\n", "Topic", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 41))

		for _, topic := range e.bank.Topics() {
			questions, err := e.bank.Questions(topic)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-30s  %9d\n", topic, len(questions))
		}

		fmt.Fprintf(out, "\n%d topics\n", e.bank.Len())
		return nil
	},
}
