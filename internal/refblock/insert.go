package refblock

import (
	"regexp"
	"strings"
)

// markedRegion matches the first delimited region, non-greedily and
// across newlines.
var markedRegion = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(BeginMark) + `.*?` + regexp.QuoteMeta(EndMark))

// Insert splices a generated block into body text. When both markers
// are present the first delimited span is replaced and the rest of the
// body is untouched, later marker pairs included. When either marker is
// absent the block is appended after normalizing the body's trailing
// newlines, leaving exactly one blank line before the block. Markers
// present only in the wrong order leave the body unchanged.
func Insert(body, block string) string {
	if strings.Contains(body, BeginMark) && strings.Contains(body, EndMark) {
		loc := markedRegion.FindStringIndex(body)
		if loc == nil {
			return body
		}
		return body[:loc[0]] + strings.TrimSpace(block) + body[loc[1]:]
	}
	return strings.TrimRight(body, "\n") + "\n\n" + block
}
