package notes

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/zejiany/bibnote/internal/bibtex"
)

// Run processes every Markdown file directly inside opts.Folder in
// sorted path order, writing one progress line per file to w plus a
// final summary outside dry-run mode. It returns the number of files
// changed and the number found. A bibliography that exists but fails
// to parse stops the batch where it happened.
func Run(w io.Writer, opts Options, cache *bibtex.Cache) (int, int, error) {
	paths, err := markdownFiles(opts.Folder)
	if err != nil {
		return 0, 0, err
	}
	if len(paths) == 0 {
		fmt.Fprintln(w, "No Markdown files found.")
		return 0, 0, nil
	}

	changed := 0
	for _, path := range paths {
		res, err := Process(path, opts, cache)
		if err != nil {
			return changed, len(paths), fmt.Errorf("%s: %w", path, err)
		}

		rel, rerr := filepath.Rel(opts.Folder, path)
		if rerr != nil {
			rel = path
		}
		prefix := "[SKIP]"
		if res.Changed {
			prefix = "[CHANGED]"
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, rel, res.Message)
		if res.Changed && !opts.DryRun {
			changed++
		}
	}

	if !opts.DryRun {
		fmt.Fprintf(w, "\nDone. Files updated: %d/%d\n", changed, len(paths))
	}
	return changed, len(paths), nil
}

// markdownFiles lists Markdown files directly inside folder, sorted by
// path. Subdirectories are not descended into.
func markdownFiles(folder string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.md", "*.markdown"} {
		matches, err := filepath.Glob(filepath.Join(folder, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", folder, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}
