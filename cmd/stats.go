package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/Gama646/quizdash/internal/screens/dashboard"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
)

const chartWidth = 60

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show average scores per topic, or progress for one topic",
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

		out := cmd.OutOrStdout()
		if len(log) == 0 {
			fmt.Fprintln(out, components.EmptyMessage)
			return nil
		}

		topic, _ := cmd.Flags().GetString("topic")
		if topic != "" {
			byDate := store.AggregateByDate(log, topic)
			if daily, _ := cmd.Flags().GetBool("daily"); daily {
				byDate = store.AggregateByDay(log, topic)
			}
			if len(byDate) == 0 {
				return fmt.Errorf("no results for topic %q", topic)
			}
			fmt.Fprintf(out, "Progress for %s\n\n", topic)
			lipgloss.Fprintln(out, components.NewBarChart(
				components.BarsFrom(store.SortedKeys(byDate), byDate), chartWidth).View())
			return nil
		}

		byTopic := store.AggregateByTopic(log)
		fmt.Fprintln(out, "Average score by topic")
		fmt.Fprintln(out)
		lipgloss.Fprintln(out, components.NewBarChart(
			components.BarsFrom(store.SortedKeys(byTopic), byTopic), chartWidth).View())
		fmt.Fprintln(out)
		fmt.Fprintln(out, dashboard.OverallLine(log))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("topic", "", "Show progress by date for this topic")
	statsCmd.Flags().Bool("daily", false, "With --topic, average per day instead of per attempt time")
}
