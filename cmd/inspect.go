package cmd

import (
	"encoding/json"
	"fmt"

	inspectadapter "github.com/bnema/termdemo/internal/adapters/render/inspect"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <script>",
		Short: "Show the configuration every line resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspection, err := app.service.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(inspection)
			}

			rendered, err := app.inspectRenderer(cmd.Context(), inspection, inspectadapter.RenderOptions{})
			if err != nil {
				return fmt.Errorf("render inspection: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
