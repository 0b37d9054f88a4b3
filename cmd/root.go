package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "termdemo",
		Short:         "termdemo: play scripted terminal demos",
		Long:          "termdemo plays TOML scripts as an animated terminal window: typed commands, output, progress bars and a screenshot, with fast-forward and restart.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().String("log-file", "", "Write engine logs to this file")
	_ = app.config.BindPFlag(logFileKey, rootCmd.PersistentFlags().Lookup("log-file"))
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return app.startLogging()
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.stopLogging()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(app),
		newRenderCmd(app),
		newInspectCmd(app),
		newNewCmd(app),
		newListCmd(app),
	)

	return rootCmd
}
