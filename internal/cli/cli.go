// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/wheelsort/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("wheelsort", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
wheelsort - classifies build artifacts by size into delivery channels.

Small artifacts go to a size-limited static hosting channel, large ones to
the release-asset channel. The generated release tag is appended to the file
named by GITHUB_OUTPUT.

Usage:
  wheelsort [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	artifactsFlag := flagSet.String("artifacts", "artifacts", "Input root scanned for package archives.")
	aFlag := flagSet.String("a", "", "Input root scanned for package archives (shorthand).")
	repoFlag := flagSet.String("repo", "pypi-repo", "Root for the output channel directories.")
	settingsFlag := flagSet.String("settings", "", "Path to an HCL settings file. Defaults to wheelsort.hcl when present.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Classify and report without copying anything.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	artifacts := *artifactsFlag
	if *aFlag != "" {
		artifacts = *aFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ArtifactsDir: artifacts,
		RepoRoot:     *repoFlag,
		SettingsPath: *settingsFlag,
		DryRun:       *dryRunFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
