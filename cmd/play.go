package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/termdemo/internal/adapters/render/screen"
	"github.com/bnema/termdemo/internal/adapters/render/terminal"
	"github.com/bnema/termdemo/internal/adapters/watch"
	"github.com/bnema/termdemo/internal/application"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotATerminal = errors.New("play needs an interactive terminal; use `termdemo render` to print the final frame")

type playOptions struct {
	watch  bool
	width  int
	height int
}

func newPlayCmd(app *app) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <script>",
		Short: "Play a script in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the script when its file changes")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Window width in cells (default: ui.width, capped by the terminal)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Window height in rows (default: ui.height, capped by the terminal)")

	return cmd
}

func runPlay(cmd *cobra.Command, app *app, ref string, opts playOptions) error {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !isatty.IsTerminal(out.Fd()) {
		return errNotATerminal
	}

	width, height := app.windowSize(opts.width, opts.height)
	if termWidth, termHeight, err := term.GetSize(int(out.Fd())); err == nil {
		width = min(width, termWidth)
		height = min(height, termHeight-1)
	}

	ctx := cmd.Context()
	load := func(ctx context.Context) (*application.Window, *screen.Screen, error) {
		var scr *screen.Screen
		window, err := app.service.Open(ctx, ref, func(script domain.Script) application.WindowDeps {
			scr = app.newScreen(script, width, height)
			return app.windowDeps(scr)
		})
		if err != nil {
			return nil, nil, err
		}
		return window, scr, nil
	}

	window, scr, err := load(ctx)
	if err != nil {
		return err
	}

	termOpts := terminal.Options{
		Width:  width,
		Height: height,
		FPS:    app.config.GetInt(uiFPSKey),
		Logger: app.logger,
		Output: out,
	}

	if opts.watch {
		watcher, err := watch.New(app.repo.Path(ref), watch.WithLogger(app.logger))
		if err != nil {
			window.Close()
			return fmt.Errorf("watch script: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		termOpts.Reload = load
		termOpts.Changes = watcher.Changes()
	}

	return terminal.Run(ctx, window, scr, termOpts)
}

// windowSize applies flag values over the configured window size.
func (a *app) windowSize(width, height int) (int, int) {
	if width <= 0 {
		width = a.config.GetInt(uiWidthKey)
	}
	if height <= 0 {
		height = a.config.GetInt(uiHeightKey)
	}
	return width, height
}
