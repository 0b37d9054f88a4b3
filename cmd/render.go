package cmd

import (
	"fmt"

	"github.com/bnema/termdemo/internal/application"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	width    int
	realtime bool
	color    string
}

var colorProfiles = map[string]termenv.Profile{
	"always": termenv.ANSI256,
	"never":  termenv.Ascii,
}

func newRenderCmd(app *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <script>",
		Short: "Play a script headlessly and print the final frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "Window width in cells (default: ui.width)")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "Wait the real delays instead of skipping them")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "Colour output: auto, always or never")

	return cmd
}

func runRender(cmd *cobra.Command, app *app, ref string, opts renderOptions) error {
	ctx := cmd.Context()
	width, height := app.windowSize(opts.width, 0)

	if opts.color != "auto" {
		profile, ok := colorProfiles[opts.color]
		if !ok {
			return fmt.Errorf("invalid --color %q: want auto, always or never", opts.color)
		}
		lipgloss.SetColorProfile(profile)
	}

	script, err := app.service.Load(ctx, ref)
	if err != nil {
		return err
	}

	scr := app.newScreen(script, width, height)
	window, err := application.NewWindow(script, app.windowDeps(scr))
	if err != nil {
		return err
	}
	defer window.Close()

	progress := trackPlayback(window)
	defer progress.stop()

	window.StartIfVisible(ctx)
	window.SetVisible(true)

	if opts.realtime {
		if err := runPlaybackSpinner(ctx, cmd.ErrOrStderr(), script.Name, progress, window.Wait); err != nil {
			return err
		}
	} else {
		window.FastForward()
		if err := window.Wait(ctx); err != nil {
			return err
		}
	}

	// A maximized image would cover the lines of the printed frame.
	window.SetImageMaximized(false)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), scr.Frame())
	return err
}
