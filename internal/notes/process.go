// Package notes updates the managed reference block of Markdown notes
// from the bibliography declared in their frontmatter, and keeps note
// filenames in sync with their frontmatter date.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/zejiany/bibnote/internal/bibtex"
	"github.com/zejiany/bibnote/internal/frontmatter"
	"github.com/zejiany/bibnote/internal/refblock"
)

// Options control how notes are processed.
type Options struct {
	// Folder is the directory being processed. Relative bibfile paths
	// resolve against it.
	Folder string
	// InlineStyle includes the fixed CSS block in generated output.
	InlineStyle bool
	// DryRun reports planned changes without touching any file.
	DryRun bool
	// Now overrides the clock for reproducible output under test.
	// Nil means time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result reports the outcome of processing one note.
type Result struct {
	// Changed is true when regenerating the reference block produced
	// content different from what the note holds. In dry-run mode it is
	// set even though nothing was written.
	Changed bool
	// Message is the human-readable outcome reported next to the file.
	Message string
}

// datePrefix matches a leading ISO date prefix in a filename stem.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Process regenerates the reference block of a single note. Notes
// without bibliography frontmatter and notes whose declared bib file
// does not exist are skipped with a reason. A bib file that exists but
// cannot be parsed is returned as an error so the caller's batch stops.
func Process(path string, opts Options, cache *bibtex.Cache) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading note: %w", err)
	}
	original := string(raw)

	doc := frontmatter.Parse(original)
	bibfile := doc.Fields.String("bibfile")
	keys := doc.Fields.StringList("citekeys")
	if bibfile == "" || len(keys) == 0 {
		return Result{Message: "No bibfile or citekeys in frontmatter."}, nil
	}

	bibPath := bibfile
	if !filepath.IsAbs(bibPath) {
		bibPath = filepath.Join(opts.Folder, bibfile)
	}
	if _, err := os.Stat(bibPath); err != nil {
		return Result{Message: "Bib file not found: " + bibfile}, nil
	}

	idx, err := cache.Load(bibPath)
	if err != nil {
		return Result{}, err
	}

	block := refblock.Generate(keys, idx, opts.InlineStyle, opts.now())
	updated := doc.Assemble(refblock.Insert(doc.Body, block))
	if updated == original {
		return Result{Message: "No changes."}, nil
	}

	target := renameTarget(path, doc.Fields)

	if opts.DryRun {
		msg := "Would update (dry run)."
		if target != "" {
			msg += " Would rename to: " + target
		}
		return Result{Changed: true, Message: msg}, nil
	}

	backup := backupPath(path)
	if err := os.WriteFile(backup, raw, 0o644); err != nil {
		return Result{}, fmt.Errorf("writing backup: %w", err)
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing note: %w", err)
	}

	msg := "Updated. Backup: " + filepath.Base(backup)
	if target != "" {
		dst := filepath.Join(filepath.Dir(path), target)
		if _, err := os.Stat(dst); err == nil {
			msg += ". Rename skipped: " + target + " exists."
		} else {
			if err := os.Rename(path, dst); err != nil {
				return Result{}, fmt.Errorf("renaming note: %w", err)
			}
			msg += ". Renamed to: " + target
		}
	}
	return Result{Changed: true, Message: msg}, nil
}

// slug returns the filename stem with its extension and any leading
// date prefix removed.
func slug(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return datePrefix.ReplaceAllString(stem, "")
}

// backupPath names the sibling file the original is copied to before
// being overwritten.
func backupPath(path string) string {
	return filepath.Join(filepath.Dir(path), "tmp-"+slug(path)+".bak")
}

// renameTarget computes the filename a note should carry given its
// frontmatter date: the date as an ISO prefix followed by the slug.
// Returns "" when the note has no usable date or already carries the
// right name.
func renameTarget(path string, fields frontmatter.Fields) string {
	date, ok := fields.Date("date")
	if !ok {
		return ""
	}

	base := filepath.Base(path)
	target := date.Format("2006-01-02") + "-" + slug(path) + filepath.Ext(base)
	if target == base {
		return ""
	}
	return target
}
