package fsutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies the regular file at src to dst, overwriting any existing
// file. The destination keeps the source's permission bits and modification
// time, so repeated runs produce stable metadata in the output tree.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %q: %w", src, err)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file %q: %w", src, err)
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("source %q is not a regular file", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %q to %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize destination file %q: %w", dst, err)
	}

	// Best effort on an existing destination: Chmod because O_CREATE only
	// applies the mode to newly created files.
	if err := os.Chmod(dst, stat.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", dst, err)
	}
	if err := os.Chtimes(dst, stat.ModTime(), stat.ModTime()); err != nil {
		return fmt.Errorf("failed to set timestamps on %q: %w", dst, err)
	}

	return nil
}
