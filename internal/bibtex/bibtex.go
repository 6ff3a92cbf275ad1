// Package bibtex reads BibTeX files into an index keyed by citation key.
package bibtex

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one bibliography entry: citation key, entry type, and raw
// field values. Outer value delimiters (braces or quotes) are stripped
// during parsing; inner braces are kept verbatim for render-time
// cleaning.
type Entry struct {
	Key    string
	Type   string
	Fields map[string]string
}

// Field returns the named field's value with surrounding whitespace
// trimmed. A missing field and an empty field are indistinguishable.
func (e Entry) Field(name string) string {
	return strings.TrimSpace(e.Fields[name])
}

// Index maps citation keys to entries for one bibliography file.
// Entries without a key collapse onto the empty key; duplicate keys
// keep the entry that appears last in the file.
type Index map[string]Entry

// ParseFile reads and parses a BibTeX file. The path is assumed to
// exist; callers check for existence first, and any failure here is a
// hard error.
func ParseFile(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bib file: %w", err)
	}
	idx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return idx, nil
}

// Parse parses BibTeX source. Text between entries is ignored, as are
// @comment, @preamble and @string blocks and any @name not followed by
// an opening brace. Structurally broken entries (unterminated braces,
// values or blocks, fields without '=') are errors.
func Parse(data []byte) (Index, error) {
	idx := make(Index)
	p := &parser{src: string(data)}

	for p.seekAt() {
		typ := strings.ToLower(p.ident())
		p.skipSpace()

		switch typ {
		case "comment", "preamble", "string":
			if err := p.skipBlock(typ); err != nil {
				return nil, err
			}
			continue
		case "":
			continue
		}

		if p.peek() != '{' {
			// Stray @name in prose (an email address, say); resync.
			continue
		}

		entry, err := p.entry(typ)
		if err != nil {
			return nil, err
		}
		idx[entry.Key] = entry
	}

	return idx, nil
}

type parser struct {
	src string
	pos int
}

// seekAt advances to the next '@' and consumes it.
func (p *parser) seekAt() bool {
	i := strings.IndexByte(p.src[p.pos:], '@')
	if i < 0 {
		p.pos = len(p.src)
		return false
	}
	p.pos += i + 1
	return true
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpaceByte(p.src[p.pos]) {
		p.pos++
	}
}

// skipBlock consumes the braced or parenthesized body of a @comment,
// @preamble or @string declaration. A naked @comment runs to the end
// of its line.
func (p *parser) skipBlock(typ string) error {
	open := p.peek()
	var closing byte
	switch open {
	case '{':
		closing = '}'
	case '(':
		closing = ')'
	default:
		for p.pos < len(p.src) && p.src[p.pos] != '\n' {
			p.pos++
		}
		return nil
	}

	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("bibtex: unterminated @%s block", typ)
}

// entry parses one @type{key, name = value, ...} entry. The opening
// brace has been checked but not consumed.
func (p *parser) entry(typ string) (Entry, error) {
	p.pos++ // consume '{'

	key, err := p.citationKey(typ)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Key: key, Type: typ, Fields: make(map[string]string)}

	for {
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case '}':
			p.pos++
			return entry, nil
		case 0:
			return Entry{}, fmt.Errorf("bibtex: unterminated entry %q", key)
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return Entry{}, fmt.Errorf("bibtex: malformed field name in entry %q", key)
		}
		p.skipSpace()
		if p.peek() != '=' {
			return Entry{}, fmt.Errorf("bibtex: missing '=' after field %q in entry %q", name, key)
		}
		p.pos++

		value, err := p.value(key)
		if err != nil {
			return Entry{}, err
		}
		entry.Fields[name] = value

		p.skipSpace()
		switch p.peek() {
		case ',', '}':
		case 0:
			return Entry{}, fmt.Errorf("bibtex: unterminated entry %q", key)
		default:
			return Entry{}, fmt.Errorf("bibtex: expected ',' or '}' after field %q in entry %q", name, key)
		}
	}
}

// citationKey reads the key up to the first comma. An entry closed
// without fields leaves the brace for the field loop.
func (p *parser) citationKey(typ string) (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ',':
			key := strings.TrimSpace(p.src[start:p.pos])
			p.pos++
			return key, nil
		case '}':
			return strings.TrimSpace(p.src[start:p.pos]), nil
		}
		p.pos++
	}
	return "", fmt.Errorf("bibtex: unterminated @%s entry", typ)
}

// value reads a field value: one or more braced, quoted or bare pieces
// joined by '#' concatenation.
func (p *parser) value(key string) (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		piece, err := p.valuePiece(key)
		if err != nil {
			return "", err
		}
		b.WriteString(piece)

		p.skipSpace()
		if p.peek() != '#' {
			return b.String(), nil
		}
		p.pos++
	}
}

func (p *parser) valuePiece(key string) (string, error) {
	switch p.peek() {
	case '{':
		return p.braced(key)
	case '"':
		return p.quoted(key)
	case 0:
		return "", fmt.Errorf("bibtex: unterminated value in entry %q", key)
	default:
		return p.bare(), nil
	}
}

// braced reads a brace-balanced group, stripping only the outer pair.
func (p *parser) braced(key string) (string, error) {
	p.pos++ // consume '{'
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("bibtex: unterminated braced value in entry %q", key)
}

func (p *parser) quoted(key string) (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '"' {
			v := p.src[start:p.pos]
			p.pos++
			return v, nil
		}
		p.pos++
	}
	return "", fmt.Errorf("bibtex: unterminated quoted value in entry %q", key)
}

// bare reads an undelimited token: a number or a macro name.
func (p *parser) bare() string {
	start := p.pos
	for p.pos < len(p.src) && !isBareEnd(p.src[p.pos]) {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isBareEnd(b byte) bool {
	return b == ',' || b == '}' || b == '#' || isSpaceByte(b)
}
