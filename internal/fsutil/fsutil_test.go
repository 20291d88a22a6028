package fsutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with the given content, creating parent
// directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.whl"), "b")
	writeFile(t, filepath.Join(root, "a.whl"), "a")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "nested", "deep", "c.whl"), "c")

	files, err := FindFilesByExtension(root, ".whl")
	require.NoError(t, err)

	// WalkDir visits entries lexically, so the order is deterministic.
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "a.whl"), files[0])
	assert.Equal(t, filepath.Join(root, "b.whl"), files[1])
	assert.Equal(t, filepath.Join(root, "nested", "deep", "c.whl"), files[2])
}

func TestFindFilesByExtension_NoMatches(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"), "x")

	files, err := FindFilesByExtension(root, ".whl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".whl")
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies content and metadata", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.whl")
		dst := filepath.Join(dir, "dst.whl")
		writeFile(t, src, "wheel bytes")

		modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chmod(src, 0o640))
		require.NoError(t, os.Chtimes(src, modTime, modTime))

		require.NoError(t, CopyFile(src, dst))

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "wheel bytes", string(content))

		stat, err := os.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())
		assert.True(t, stat.ModTime().Equal(modTime), "modification time should be preserved")
	})

	t.Run("overwrites existing destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.whl")
		dst := filepath.Join(dir, "dst.whl")
		writeFile(t, src, "new")
		writeFile(t, dst, "old and longer")

		require.NoError(t, CopyFile(src, dst))

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("missing source is an error", func(t *testing.T) {
		dir := t.TempDir()
		err := CopyFile(filepath.Join(dir, "gone.whl"), filepath.Join(dir, "dst.whl"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to open source file")
	})

	t.Run("directory source is an error", func(t *testing.T) {
		dir := t.TempDir()
		err := CopyFile(dir, filepath.Join(dir, "dst.whl"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "not a regular file")
	})
}

func TestWriteImmediateListing(t *testing.T) {
	t.Parallel()

	t.Run("lists entries with directory markers", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.whl"), "a")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		var buf bytes.Buffer
		WriteImmediateListing(&buf, dir)

		assert.Contains(t, buf.String(), "a.whl")
		assert.Contains(t, buf.String(), "sub/")
	})

	t.Run("empty directory", func(t *testing.T) {
		var buf bytes.Buffer
		WriteImmediateListing(&buf, t.TempDir())
		assert.Contains(t, buf.String(), "(empty)")
	})

	t.Run("unreadable directory reports instead of failing", func(t *testing.T) {
		var buf bytes.Buffer
		WriteImmediateListing(&buf, filepath.Join(t.TempDir(), "nope"))
		assert.Contains(t, buf.String(), "could not list")
	})
}

func TestWriteRecursiveListing(t *testing.T) {
	t.Parallel()

	t.Run("lists the full tree relative to root", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "nested", "c.whl"), "c")
		writeFile(t, filepath.Join(root, "a.txt"), "a")

		var buf bytes.Buffer
		WriteRecursiveListing(&buf, root)

		assert.Contains(t, buf.String(), "a.txt")
		assert.Contains(t, buf.String(), "nested/")
		assert.Contains(t, buf.String(), filepath.Join("nested", "c.whl"))
	})

	t.Run("empty root", func(t *testing.T) {
		var buf bytes.Buffer
		WriteRecursiveListing(&buf, t.TempDir())
		assert.Contains(t, buf.String(), "(empty)")
	})
}
