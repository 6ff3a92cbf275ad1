// Package refblock renders bibliography entries into the managed
// reference block of a Markdown note.
package refblock

import (
	"strings"

	"github.com/zejiany/bibnote/internal/author"
	"github.com/zejiany/bibnote/internal/bibtex"
)

// doiResolver prefixes bare DOIs when building title links.
const doiResolver = "https://doi.org/"

// FormatEntry renders one bibliography entry as a single-line HTML
// fragment: numbered paragraph with the citation key as anchor id,
// small-caps authors, year, linked title, then journal, volume, number
// and pages. Empty and missing fields behave identically and are left
// out; an entry with nothing but a key renders as `1. <p id="key"></p>`.
func FormatEntry(key string, entry bibtex.Entry) string {
	authors := author.FormatList(entry.Field("author"))
	year := entry.Field("year")
	title := normalizeWhitespace(cleanBraces(entry.Field("title")))
	journal := entry.Field("journal")
	volume := entry.Field("volume")
	number := entry.Field("number")
	pages := entry.Field("pages")
	link := entryLink(entry)

	var b strings.Builder
	b.WriteString(`1. <p id="` + key + `">`)
	if authors != "" {
		b.WriteString(` <span style="font-variant: small-caps"> ` + authors + ` </span> `)
	}
	if year != "" {
		b.WriteString(year + " ")
	}
	if title != "" {
		if link != "" {
			b.WriteString(` <a href="` + link + `"> ` + title + `. </a>`)
		} else {
			b.WriteString(" " + title + ". ")
		}
	}
	if journal != "" {
		b.WriteString(" <i> " + journal + "</i>")
	}
	if volume != "" {
		b.WriteString(" <b> " + volume + " </b>")
	}
	if number != "" {
		b.WriteString(" (" + number + ")")
	}
	if pages != "" {
		b.WriteString(" " + pages)
	}
	b.WriteString("</p>")
	return b.String()
}

// cleanBraces strips one pair of outer enclosing braces, then removes
// any remaining brace characters. Cleaning an already-clean string
// returns it unchanged.
func cleanBraces(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "{") && strings.HasSuffix(cleaned, "}") {
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	cleaned = strings.ReplaceAll(cleaned, "{", "")
	cleaned = strings.ReplaceAll(cleaned, "}", "")
	return strings.TrimSpace(cleaned)
}

// normalizeWhitespace collapses whitespace runs to single spaces and
// trims the ends. Fields splits on Unicode whitespace, so non-breaking
// spaces collapse too.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// entryLink picks the target for an entry's title anchor. A DOI
// beginning "10." goes through the resolver; one already mentioning
// doi.org is used verbatim; any other DOI falls back to the url field,
// then to the raw doi string. Without a doi the url field is used,
// which may be empty.
func entryLink(entry bibtex.Entry) string {
	doi := entry.Field("doi")
	url := entry.Field("url")

	if doi != "" {
		if strings.HasPrefix(strings.ToLower(doi), "10.") {
			return doiResolver + doi
		}
		if strings.Contains(doi, "doi.org") {
			return doi
		}
		if url != "" {
			return url
		}
		return doi
	}
	return url
}
