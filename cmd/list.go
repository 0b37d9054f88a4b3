package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scripts in the scripts directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := app.service.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(names) == 0 {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "no scripts in %s\n", app.repo.Dir())
				return err
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
