package refblock

import (
	"strings"
	"time"

	"github.com/zejiany/bibnote/internal/bibtex"
)

// Marker lines delimiting the managed region. Everything between them
// belongs to the generator and is replaced wholesale on every update;
// everything outside is never touched.
const (
	BeginMark = "<!-- BEGIN:references -->"
	EndMark   = "<!-- END:references -->"
)

const (
	heading     = "# Reference"
	stampText   = "Generated bibliography markdown file. Date: "
	stampLayout = "2006-01-02 15:04:05"
)

// missingPrefix introduces the notice listing citekeys absent from the
// bibliography.
const missingPrefix = "> **Note:** Missing BibTeX entries for keys: "

// DefaultStyle is the CSS block emitted when inline styling is
// requested. The bytes are fixed, trailing spaces included.
const DefaultStyle = `<style>
p {
  font-family: sans;
}
a:link {
  color: navy; 
  background-color: transparent; 
  text-decoration: none;
}
ol {
columns:1;
}
ol > li::marker {
content:"["counter(list-item) "] ";
}
</style>
`

// Generate builds the full managed block: optional style block,
// heading, generation stamp, one formatted entry per citekey found in
// the index with input order preserved, and a notice naming any keys
// that were not found. The caller supplies the timestamp so output is
// reproducible under test.
func Generate(keys []string, idx bibtex.Index, includeStyle bool, now time.Time) string {
	var lines []string
	if includeStyle {
		lines = append(lines, strings.TrimSpace(DefaultStyle), "")
	}
	lines = append(lines, heading)
	lines = append(lines, stampText+now.Format(stampLayout))

	var missing []string
	for _, key := range keys {
		entry, ok := idx[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		lines = append(lines, FormatEntry(key, entry), "")
	}
	if len(missing) > 0 {
		lines = append(lines, missingPrefix+strings.Join(missing, ", "))
	}

	content := strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n") + "\n"
	return BeginMark + "\n" + content + "\n" + EndMark + "\n"
}
