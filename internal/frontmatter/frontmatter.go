// Package frontmatter extracts YAML metadata blocks from Markdown notes.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Marker delimits a frontmatter block. The text must start with it, and
// the block ends at the next occurrence anywhere in the text.
const Marker = "---"

// Status describes how frontmatter extraction went for one document.
type Status int

const (
	// StatusParsed means a frontmatter block was found and decoded.
	StatusParsed Status = iota
	// StatusAbsent means the text carries no frontmatter delimiters.
	StatusAbsent
	// StatusMalformed means delimiters were found but the block did not
	// decode into a YAML mapping. Callers see the same empty fields as
	// StatusAbsent; the distinction exists for diagnostics.
	StatusMalformed
)

// Document is the result of splitting a note into metadata and body.
//
// For StatusParsed the body is everything after the closing marker and
// the original header text is retained verbatim so the note can be
// reassembled without re-serializing YAML. For StatusAbsent and
// StatusMalformed the body is the full original text and the fields
// are empty.
type Document struct {
	Fields Fields
	Body   string
	Status Status

	header string
}

// Parse splits a note into frontmatter fields and body text.
// It never fails: malformed metadata degrades to an empty mapping with
// the whole text as body.
func Parse(text string) Document {
	if !strings.HasPrefix(text, Marker) {
		return Document{Fields: Fields{}, Body: text, Status: StatusAbsent}
	}

	parts := strings.SplitN(text, Marker, 3)
	if len(parts) < 3 {
		return Document{Fields: Fields{}, Body: text, Status: StatusAbsent}
	}
	block, body := parts[1], parts[2]

	var fields Fields
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil || fields == nil {
		// Not a mapping (or not YAML at all): degrade to no frontmatter.
		return Document{Fields: Fields{}, Body: text, Status: StatusMalformed}
	}

	return Document{
		Fields: fields,
		Body:   body,
		Status: StatusParsed,
		header: Marker + block + Marker,
	}
}

// Assemble recombines the document's original header with a new body.
// For documents without parsed frontmatter the body is returned as is.
func (d Document) Assemble(body string) string {
	return d.header + body
}
