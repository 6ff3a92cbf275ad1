// Package author parses BibTeX author names and renders them in
// abbreviated form.
package author

import "strings"

// Name is one author split into given names and surname.
type Name struct {
	First string // Given names (may be empty)
	Last  string // Surname
}

// Parse splits a single BibTeX author name into a structured Name.
//
// Supported forms:
//   - "Smith"        → last="Smith" (single word = surname only)
//   - "John Smith"   → first="John", last="Smith" (space-separated)
//   - "Smith, John"  → first="John", last="Smith" (comma = Last, First)
//
// A name containing a comma splits at the first comma, so anything
// after a second comma stays with the given names.
func Parse(raw string) Name {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Name{}
	}

	// Comma format: "Last, First"
	if idx := strings.Index(raw, ","); idx >= 0 {
		last := strings.TrimSpace(raw[:idx])
		first := strings.TrimSpace(raw[idx+1:])
		return Name{First: first, Last: last}
	}

	// Space format: the final word is the surname
	words := strings.Fields(raw)
	if len(words) == 1 {
		return Name{Last: words[0]}
	}
	last := words[len(words)-1]
	first := strings.Join(words[:len(words)-1], " ")
	return Name{First: first, Last: last}
}

// Initials reduces the given names to first-rune initials, "J. R. R."
// style. Empty when there are no given names.
func (n Name) Initials() string {
	var out []string
	for _, w := range strings.Fields(n.First) {
		r := []rune(w)
		out = append(out, string(r[0])+".")
	}
	return strings.Join(out, " ")
}

// Abbreviated renders the name as "Last, F. M.", or the bare surname
// when there are no given names.
func (n Name) Abbreviated() string {
	if initials := n.Initials(); initials != "" {
		return n.Last + ", " + initials
	}
	return n.Last
}

// FormatList converts a BibTeX author field (names joined by " and ")
// into its abbreviated display form, preserving author order. Blank
// names are dropped.
func FormatList(field string) string {
	if field == "" {
		return ""
	}

	var out []string
	for _, raw := range strings.Split(field, " and ") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, Parse(raw).Abbreviated())
	}
	return strings.Join(out, " and ")
}
