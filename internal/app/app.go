package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/wheelsort/internal/ctxlog"
	"github.com/specialistvlad/wheelsort/internal/settings"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer // human-readable progress and summaries
	errW     io.Writer // structured log stream, warnings and errors
	logger   *slog.Logger
	config   *Config
	settings *settings.Classifier
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and resolved
// classifier settings.
func NewApp(outW, errW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	path := config.SettingsPath
	explicit := path != ""
	if !explicit {
		path = settings.DefaultPath
	}

	cls, err := settings.Load(ctx, path, explicit)
	if err != nil {
		// A failure to load settings is a fatal startup error.
		panic(fmt.Errorf("failed to load settings: %w", err))
	}
	logger.Debug("Classifier settings resolved.")

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   config,
		settings: cls,
	}
}

// Settings returns the resolved classifier settings. This is primarily for testing.
func (a *App) Settings() *settings.Classifier {
	return a.settings
}
