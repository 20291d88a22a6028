// Package gha writes step outputs to the GitHub Actions outputs file.
package gha

import (
	"fmt"
	"os"
)

// OutputEnvVar names the file that GitHub Actions reads step outputs from.
const OutputEnvVar = "GITHUB_OUTPUT"

// OutputPath returns the path of the outputs file from the environment.
// Its absence means the step cannot report anything downstream, which is a
// precondition failure for the caller.
func OutputPath() (string, error) {
	path := os.Getenv(OutputEnvVar)
	if path == "" {
		return "", fmt.Errorf("%s is not set; cannot report outputs to the workflow", OutputEnvVar)
	}
	return path, nil
}

// AppendOutput appends a single `key=value` line to the outputs file at path.
// Appending (never truncating) preserves outputs written by earlier steps of
// the same job.
func AppendOutput(path, key, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open outputs file %q: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		f.Close()
		return fmt.Errorf("failed to append output %q to %q: %w", key, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush outputs file %q: %w", path, err)
	}
	return nil
}
