package gha

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	t.Run("returns the configured path", func(t *testing.T) {
		t.Setenv(OutputEnvVar, "/tmp/outputs")

		path, err := OutputPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/outputs", path)
	})

	t.Run("missing variable is an error", func(t *testing.T) {
		t.Setenv(OutputEnvVar, "")

		_, err := OutputPath()
		require.Error(t, err)
		assert.ErrorContains(t, err, "GITHUB_OUTPUT is not set")
	})
}

func TestAppendOutput(t *testing.T) {
	t.Parallel()

	t.Run("creates the file when absent", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "outputs")
		require.NoError(t, AppendOutput(path, "release_tag", "wheels-20260823-120000"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "release_tag=wheels-20260823-120000\n", string(content))
	})

	t.Run("appends without truncating earlier outputs", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "outputs")
		require.NoError(t, os.WriteFile(path, []byte("earlier=value\n"), 0o644))

		require.NoError(t, AppendOutput(path, "release_tag", "wheels-20260823-120000"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "earlier=value\nrelease_tag=wheels-20260823-120000\n", string(content))
	})

	t.Run("unwritable path is an error", func(t *testing.T) {
		t.Parallel()

		err := AppendOutput(filepath.Join(t.TempDir(), "no", "such", "dir", "outputs"), "k", "v")
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to open outputs file")
	})
}
