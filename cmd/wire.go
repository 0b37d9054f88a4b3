package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	inspectadapter "github.com/bnema/termdemo/internal/adapters/render/inspect"
	"github.com/bnema/termdemo/internal/adapters/render/screen"
	tomlrepo "github.com/bnema/termdemo/internal/adapters/repo/toml"
	"github.com/bnema/termdemo/internal/application"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "TERMDEMO"
	uiWidthKey  = "ui.width"
	uiHeightKey = "ui.height"
	uiFPSKey    = "ui.fps"
	logFileKey  = "log.file"
	stylesKey   = "styles"
	logPrefix   = "termdemo"
)

type app struct {
	service         *application.Service
	repo            *tomlrepo.Repository
	config          *viper.Viper
	inspectRenderer func(context.Context, application.Inspection, inspectadapter.RenderOptions) (string, error)
	clock           ports.Clock

	logger  *log.Logger
	logFile *os.File
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(uiWidthKey, screen.DefaultWidth)
	cfg.SetDefault(uiHeightKey, screen.DefaultHeight)
	cfg.SetDefault(uiFPSKey, 30)
	cfg.SetDefault(logFileKey, "")

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire script repository: %w", err)
	}

	return &app{
		service:         application.NewService(repo),
		repo:            repo,
		config:          cfg,
		inspectRenderer: inspectadapter.Render,
		clock:           ports.SystemClock{},
		logger:          log.New(io.Discard, "", 0),
	}, nil
}

// startLogging sends engine logs to the configured file. Without one they
// are dropped, since the terminal belongs to the player.
func (a *app) startLogging() error {
	path := a.config.GetString(logFileKey)
	if path == "" {
		return nil
	}

	f, err := tea.LogToFile(path, logPrefix)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	a.logger = log.Default()

	return nil
}

func (a *app) stopLogging() error {
	if a.logFile == nil {
		return nil
	}

	err := a.logFile.Close()
	a.logFile = nil
	a.logger = log.New(io.Discard, "", 0)
	return err
}

// styles returns the style overrides configured for a mode.
func (a *app) styles(mode domain.Mode) map[string]string {
	return a.config.GetStringMapString(stylesKey + "." + string(mode))
}

// newScreen sizes and styles a screen for script.
func (a *app) newScreen(script domain.Script, width, height int) *screen.Screen {
	mode := domain.ResolveWindow(script.WindowOrDefault()).Mode
	return screen.New(script, screen.Options{
		Width:  width,
		Height: height,
		Styles: a.styles(mode),
	})
}

func (a *app) windowDeps(scr *screen.Screen) application.WindowDeps {
	return application.WindowDeps{
		Surface:  scr,
		Viewport: scr,
		Clock:    a.clock,
		Logger:   a.logger,
	}
}
