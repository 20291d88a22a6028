package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ArtifactsDir is the input root scanned for package archives.
	ArtifactsDir string
	// RepoRoot is where the three output channel directories are created.
	RepoRoot string
	// SettingsPath points at an HCL settings file. Empty means "use the
	// conventional default path if it exists".
	SettingsPath string
	// DryRun classifies and reports without copying anything.
	DryRun bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArtifactsDir == "" {
		return nil, errors.New("ArtifactsDir is a required configuration field and cannot be empty")
	}
	if cfg.RepoRoot == "" {
		return nil, errors.New("RepoRoot is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
