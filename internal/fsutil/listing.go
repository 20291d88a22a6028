package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteImmediateListing writes the names of the immediate entries of dir to w,
// one per line, directories marked with a trailing slash. It is a best-effort
// debug aid: listing errors are written to w instead of returned.
func WriteImmediateListing(w io.Writer, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "  (could not list %s: %v)\n", dir, err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "  (empty)\n")
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// WriteRecursiveListing writes every path under root to w, one per line.
// Like WriteImmediateListing it never fails; walk errors become lines in the
// output so a CI log still shows as much of the tree as was readable.
func WriteRecursiveListing(w io.Writer, root string) {
	wrote := false
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(w, "  (error at %s: %v)\n", path, err)
			wrote = true
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			rel += "/"
		}
		fmt.Fprintf(w, "  %s\n", rel)
		wrote = true
		return nil
	})
	if !wrote {
		fmt.Fprintf(w, "  (empty)\n")
	}
}
