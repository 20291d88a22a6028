// Package classify splits build artifacts across the release-asset and
// static-hosting delivery channels based on a size threshold.
package classify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/wheelsort/internal/ctxlog"
	"github.com/specialistvlad/wheelsort/internal/fsutil"
)

// File is a single classified artifact.
type File struct {
	Path string
	Size int64
}

// Aggregate accumulates the count and byte total of one size class.
type Aggregate struct {
	Count int
	Bytes int64
}

func (a *Aggregate) add(size int64) {
	a.Count++
	a.Bytes += size
}

// Result is the outcome of one classification pass.
type Result struct {
	// Discovered is how many artifacts the scan found.
	Discovered int
	// Skipped is how many of those could not be classified (stat or copy
	// failure). Discovered == Large.Count + Small.Count + Skipped.
	Skipped int

	Large Aggregate
	Small Aggregate

	// LargeFiles and SmallFiles hold the successfully classified artifacts
	// in encounter order.
	LargeFiles []File
	SmallFiles []File
}

// Config carries the parameters for one classification run.
type Config struct {
	// ThresholdBytes separates the classes: strictly greater is large.
	ThresholdBytes int64

	// Destination directories. They must already exist.
	LargeDir   string
	SmallDir   string
	HostingDir string

	// ProgressInterval is the number of files between progress lines.
	ProgressInterval int

	// DryRun classifies and aggregates without copying anything.
	DryRun bool

	// ProgressW receives human-readable progress lines.
	ProgressW io.Writer
}

// Classifier performs the per-file classification and the hosting mirror pass.
type Classifier struct {
	cfg Config
}

// New returns a Classifier for the given configuration.
func New(cfg Config) *Classifier {
	if cfg.ProgressW == nil {
		cfg.ProgressW = io.Discard
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 50
	}
	return &Classifier{cfg: cfg}
}

// Run classifies the given files in order. Per-file stat and copy failures
// are logged and skipped; they never abort the run.
func (c *Classifier) Run(ctx context.Context, files []string) *Result {
	logger := ctxlog.FromContext(ctx)
	result := &Result{Discovered: len(files)}

	for i, path := range files {
		if err := c.classifyOne(path, result); err != nil {
			result.Skipped++
			logger.Warn("Skipping artifact.", "file", filepath.Base(path), "error", err)
		}

		processed := i + 1
		if processed%c.cfg.ProgressInterval == 0 || processed == len(files) {
			fmt.Fprintf(c.cfg.ProgressW, "Processed %d/%d artifacts (%d%%)\n",
				processed, len(files), processed*100/len(files))
		}
	}

	return result
}

// classifyOne stats a single artifact, copies it into its class directory and
// updates the matching aggregate. The aggregate is only touched once the copy
// has succeeded, so a skipped file leaves the totals untouched.
func (c *Classifier) classifyOne(path string, result *Result) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat: %w", err)
	}
	size := stat.Size()

	destDir := c.cfg.SmallDir
	if size > c.cfg.ThresholdBytes {
		destDir = c.cfg.LargeDir
	}

	if !c.cfg.DryRun {
		if err := fsutil.CopyFile(path, filepath.Join(destDir, filepath.Base(path))); err != nil {
			return err
		}
	}

	file := File{Path: path, Size: size}
	if size > c.cfg.ThresholdBytes {
		result.Large.add(size)
		result.LargeFiles = append(result.LargeFiles, file)
	} else {
		result.Small.add(size)
		result.SmallFiles = append(result.SmallFiles, file)
	}
	return nil
}

// MirrorSmall copies every regular file currently in the small directory into
// the hosting directory, pre-existing files from earlier runs included. That
// makes the hosting directory a mirror of the small channel at this moment,
// which keeps re-runs additive. It returns the number of files mirrored.
func (c *Classifier) MirrorSmall(ctx context.Context) (int, error) {
	logger := ctxlog.FromContext(ctx)

	if c.cfg.DryRun {
		logger.Debug("Dry run, hosting mirror pass skipped.")
		return 0, nil
	}

	entries, err := os.ReadDir(c.cfg.SmallDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list small-artifact directory: %w", err)
	}

	mirrored := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(c.cfg.SmallDir, entry.Name())
		dst := filepath.Join(c.cfg.HostingDir, entry.Name())
		if err := fsutil.CopyFile(src, dst); err != nil {
			logger.Warn("Failed to mirror artifact into hosting directory.",
				"file", entry.Name(), "error", err)
			continue
		}
		mirrored++
	}

	return mirrored, nil
}
