package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the results log if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// store.Open has already run Initialize.
		fmt.Fprintf(cmd.OutOrStdout(), "Results %s log ready at %s\n", e.cfg.Store.Backend, e.store.Location())
		return nil
	},
}
