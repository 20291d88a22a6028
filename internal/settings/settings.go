// Package settings loads the optional wheelsort.hcl file that tunes the
// classifier. Every attribute has a default, so running without a settings
// file is the common case.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/wheelsort/internal/ctxlog"
)

// DefaultPath is the settings file looked for when no -settings flag is given.
const DefaultPath = "wheelsort.hcl"

// Classifier holds the resolved classification parameters.
type Classifier struct {
	// ThresholdBytes separates large from small artifacts. Strictly greater
	// than the threshold is large; exactly at the threshold is small.
	ThresholdBytes int64

	// Extension selects which files under the artifacts root are classified.
	Extension string

	// Directory names created under the repository root.
	HostingDir string
	LargeDir   string
	SmallDir   string

	// ProgressInterval is how many files are processed between progress lines.
	ProgressInterval int
}

// Defaults returns the classifier parameters used when no settings file
// overrides them: Python wheels split at 100 MiB.
func Defaults() *Classifier {
	return &Classifier{
		ThresholdBytes:   100 * 1024 * 1024,
		Extension:        ".whl",
		HostingDir:       "packages",
		LargeDir:         "packages-large",
		SmallDir:         "packages-small",
		ProgressInterval: 50,
	}
}

// settingsFile is the top-level structure of a settings file for decoding.
type settingsFile struct {
	Classifier *classifierBlock `hcl:"classifier,block"`
}

// classifierBlock mirrors Classifier with pointer fields so that an absent
// attribute is distinguishable from an explicit zero.
type classifierBlock struct {
	ThresholdBytes   *int64  `hcl:"threshold_bytes,optional"`
	Extension        *string `hcl:"extension,optional"`
	HostingDir       *string `hcl:"hosting_dir,optional"`
	LargeDir         *string `hcl:"large_dir,optional"`
	SmallDir         *string `hcl:"small_dir,optional"`
	ProgressInterval *int    `hcl:"progress_interval,optional"`
}

// evalContext exposes binary size-unit constants to attribute expressions,
// so thresholds read as `100 * mib` instead of a raw byte count.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"kib": cty.NumberIntVal(1024),
			"mib": cty.NumberIntVal(1024 * 1024),
			"gib": cty.NumberIntVal(1024 * 1024 * 1024),
		},
	}
}

// Load resolves classifier settings from the file at path. When explicit is
// false, path is the conventional default and a missing file simply yields
// Defaults(); when true, the caller named the file and its absence is an error.
func Load(ctx context.Context, path string, explicit bool) (*Classifier, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			logger.Debug("No settings file found, using defaults.", "path", path)
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %q: %w", path, diags)
	}

	var parsed settingsFile
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %q: %w", path, diags)
	}

	cfg := Defaults()
	if block := parsed.Classifier; block != nil {
		if block.ThresholdBytes != nil {
			cfg.ThresholdBytes = *block.ThresholdBytes
		}
		if block.Extension != nil {
			cfg.Extension = *block.Extension
		}
		if block.HostingDir != nil {
			cfg.HostingDir = *block.HostingDir
		}
		if block.LargeDir != nil {
			cfg.LargeDir = *block.LargeDir
		}
		if block.SmallDir != nil {
			cfg.SmallDir = *block.SmallDir
		}
		if block.ProgressInterval != nil {
			cfg.ProgressInterval = *block.ProgressInterval
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %q: %w", path, err)
	}

	logger.Debug("Settings loaded.", "path", path,
		"threshold_bytes", cfg.ThresholdBytes, "extension", cfg.Extension)
	return cfg, nil
}

func (c *Classifier) validate() error {
	if c.ThresholdBytes <= 0 {
		return fmt.Errorf("threshold_bytes must be positive, got %d", c.ThresholdBytes)
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress_interval must be positive, got %d", c.ProgressInterval)
	}
	if c.Extension == "" || !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension must be non-empty and start with a dot, got %q", c.Extension)
	}
	for name, dir := range map[string]string{
		"hosting_dir": c.HostingDir,
		"large_dir":   c.LargeDir,
		"small_dir":   c.SmallDir,
	} {
		if err := validateDirName(name, dir); err != nil {
			return err
		}
	}
	return nil
}

// validateDirName rejects names that would escape the repository root.
func validateDirName(attr, dir string) error {
	if dir == "" || dir == "." || dir == ".." {
		return fmt.Errorf("%s must be a directory name, got %q", attr, dir)
	}
	if strings.ContainsAny(dir, `/\`) {
		return fmt.Errorf("%s must be a single path element, got %q", attr, dir)
	}
	return nil
}
