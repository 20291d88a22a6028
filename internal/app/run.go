package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/wheelsort/internal/classify"
	"github.com/specialistvlad/wheelsort/internal/ctxlog"
	"github.com/specialistvlad/wheelsort/internal/fsutil"
	"github.com/specialistvlad/wheelsort/internal/gha"
	"github.com/specialistvlad/wheelsort/internal/report"
)

// Run executes the classification pipeline: validate the environment,
// initialize the output directories, classify and copy the artifacts, then
// report the summary and the release tag. Any error it returns is fatal;
// per-file copy failures are logged inside the classifier and do not
// surface here.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	outputPath, err := a.validate()
	if err != nil {
		return err
	}

	dirs, err := a.initDirectories()
	if err != nil {
		return err
	}

	result, err := a.classify(ctx, dirs)
	if err != nil {
		return err
	}

	return a.report(outputPath, result)
}

// validate checks the run's preconditions: the workflow outputs file must be
// configured and the artifacts root must be an existing directory. It returns
// the outputs file path.
func (a *App) validate() (string, error) {
	outputPath, err := gha.OutputPath()
	if err != nil {
		return "", err
	}

	stat, err := os.Stat(a.config.ArtifactsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Best-effort debug aid: show what the working directory
			// actually contains before giving up.
			fmt.Fprintf(a.errW, "artifacts directory %q does not exist; current directory contains:\n", a.config.ArtifactsDir)
			fsutil.WriteImmediateListing(a.errW, ".")
			return "", fmt.Errorf("artifacts directory %q does not exist", a.config.ArtifactsDir)
		}
		return "", fmt.Errorf("failed to stat artifacts directory %q: %w", a.config.ArtifactsDir, err)
	}
	if !stat.IsDir() {
		return "", fmt.Errorf("artifacts path %q is not a directory", a.config.ArtifactsDir)
	}

	a.logger.Debug("Environment validated.", "artifacts", a.config.ArtifactsDir, "outputs", outputPath)
	return outputPath, nil
}

// channelDirs holds the resolved output directory paths.
type channelDirs struct {
	hosting string
	large   string
	small   string
}

// initDirectories creates the three channel directories under the repository
// root. Creation is idempotent and never touches existing contents.
func (a *App) initDirectories() (channelDirs, error) {
	dirs := channelDirs{
		hosting: filepath.Join(a.config.RepoRoot, a.settings.HostingDir),
		large:   filepath.Join(a.config.RepoRoot, a.settings.LargeDir),
		small:   filepath.Join(a.config.RepoRoot, a.settings.SmallDir),
	}

	for _, dir := range []string{dirs.hosting, dirs.large, dirs.small} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return channelDirs{}, fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}

	a.logger.Debug("Output directories ready.", "root", a.config.RepoRoot)
	return dirs, nil
}

// classify scans the artifacts root and runs the classifier. Discovering zero
// artifacts is a failure: a release with nothing in it means the build step
// upstream produced nothing, and that should stop the pipeline.
func (a *App) classify(ctx context.Context, dirs channelDirs) (*classify.Result, error) {
	files, err := fsutil.FindFilesByExtension(a.config.ArtifactsDir, a.settings.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", a.config.ArtifactsDir, err)
	}

	if len(files) == 0 {
		fmt.Fprintf(a.errW, "no %s artifacts found under %q; full listing:\n", a.settings.Extension, a.config.ArtifactsDir)
		fsutil.WriteRecursiveListing(a.errW, a.config.ArtifactsDir)
		return nil, fmt.Errorf("no %s artifacts found under %q", a.settings.Extension, a.config.ArtifactsDir)
	}

	a.logger.Info("Artifacts discovered.", "count", len(files), "dry_run", a.config.DryRun)

	classifier := classify.New(classify.Config{
		ThresholdBytes:   a.settings.ThresholdBytes,
		LargeDir:         dirs.large,
		SmallDir:         dirs.small,
		HostingDir:       dirs.hosting,
		ProgressInterval: a.settings.ProgressInterval,
		DryRun:           a.config.DryRun,
		ProgressW:        a.outW,
	})

	result := classifier.Run(ctx, files)

	mirrored, err := classifier.MirrorSmall(ctx)
	if err != nil {
		// The hosting channel stays incomplete but the run already has its
		// aggregates; surface the problem and keep going.
		a.logger.Warn("Hosting mirror pass failed.", "error", err)
	} else {
		a.logger.Debug("Hosting mirror pass complete.", "mirrored", mirrored)
	}

	return result, nil
}

// report prints the summary and appends the release tag to the outputs file.
func (a *App) report(outputPath string, result *classify.Result) error {
	report.WriteSummary(a.outW, result)

	tag := report.ReleaseTag(time.Now())
	if err := gha.AppendOutput(outputPath, "release_tag", tag); err != nil {
		return fmt.Errorf("failed to report release tag: %w", err)
	}

	fmt.Fprintf(a.outW, "release_tag=%s written to %s\n", tag, outputPath)
	return nil
}
