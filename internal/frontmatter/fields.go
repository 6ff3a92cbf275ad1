package frontmatter

import (
	"strconv"
	"time"
)

// Fields is the decoded frontmatter mapping. Values keep whatever shape
// the YAML decoder produced (strings, numbers, lists, timestamps).
type Fields map[string]any

// dateLayouts are the string forms accepted by Date, tried in order.
// Unquoted ISO dates never reach these: the YAML decoder already
// resolves them into time.Time.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// String returns the named field as a string, or "" when the field is
// missing or not a scalar.
func (f Fields) String(key string) string {
	s, _ := stringify(f[key])
	return s
}

// StringList returns the named field as an ordered list of strings.
// A scalar value is promoted to a one-element list; list elements that
// are not scalars are dropped. Missing fields yield nil.
func (f Fields) StringList(key string) []string {
	v, ok := f[key]
	if !ok {
		return nil
	}

	items, ok := v.([]any)
	if !ok {
		if s, ok := stringify(v); ok {
			return []string{s}
		}
		return nil
	}

	var out []string
	for _, item := range items {
		if s, ok := stringify(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// Date returns the named field as a calendar date. It accepts the
// decoder's native timestamps as well as a handful of common string
// layouts. The second return is false when the field is missing or
// unparseable.
func (f Fields) Date(key string) (time.Time, bool) {
	switch v := f[key].(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// stringify converts a scalar YAML value to its string form.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format("2006-01-02"), true
	default:
		return "", false
	}
}
