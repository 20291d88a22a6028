// Package report renders the human-readable run summary and generates the
// release tag handed to the rest of the pipeline.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/specialistvlad/wheelsort/internal/classify"
)

const (
	mib = 1024 * 1024
	gib = 1024 * 1024 * 1024
)

// topLargeCount caps how many of the largest artifacts the summary lists.
const topLargeCount = 5

// firstSmallCount caps how many small artifacts the summary lists, in
// encounter order rather than by size.
const firstSmallCount = 5

// ReleaseTag builds the timestamped identifier for this run. Tags have
// second precision; two runs within the same second collide, which is
// acceptable for a CI pipeline that runs at most a few times per hour.
func ReleaseTag(now time.Time) string {
	return "wheels-" + now.UTC().Format("20060102-150405")
}

// WriteSummary prints the run totals and the per-class highlights to w.
func WriteSummary(w io.Writer, result *classify.Result) {
	classified := result.Large.Count + result.Small.Count
	fmt.Fprintf(w, "Classified %d of %d discovered artifacts", classified, result.Discovered)
	if result.Skipped > 0 {
		fmt.Fprintf(w, " (%d skipped)", result.Skipped)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Large (release assets): %d files, %.2f GiB\n",
		result.Large.Count, float64(result.Large.Bytes)/gib)
	fmt.Fprintf(w, "Small (static hosting): %d files, %.1f MiB\n",
		result.Small.Count, float64(result.Small.Bytes)/mib)

	if len(result.LargeFiles) > 0 {
		fmt.Fprintln(w, "Largest release-channel artifacts:")
		for _, f := range largestFiles(result.LargeFiles, topLargeCount) {
			fmt.Fprintf(w, "  %s (%.1f MB)\n", filepath.Base(f.Path), float64(f.Size)/mib)
		}
	}
	if len(result.SmallFiles) > 0 {
		fmt.Fprintln(w, "First small artifacts:")
		small := result.SmallFiles
		if len(small) > firstSmallCount {
			small = small[:firstSmallCount]
		}
		for _, f := range small {
			fmt.Fprintf(w, "  %s (%.1f MB)\n", filepath.Base(f.Path), float64(f.Size)/mib)
		}
	}
}

// largestFiles returns up to n files by descending size without reordering
// the caller's slice.
func largestFiles(files []classify.File, n int) []classify.File {
	sorted := make([]classify.File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Size > sorted[j].Size })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
