// Package mathml converts LaTeX math markup to MathML.
//
// Input is either a single formula, optionally wrapped in $, $$, \( \) or
// \[ \], or a full LaTeX document, in which case every math segment is
// converted and the resulting <math> elements are joined with newlines.
package mathml

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// SyntaxError describes markup that cannot be converted. Offset is a byte
// offset into the input passed to Convert.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("latex: %s at offset %d", e.Msg, e.Offset)
}

func errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Offset: pos, Msg: fmt.Sprintf(format, args...)}
}

// Convert translates LaTeX to MathML.
func Convert(src string) (string, error) {
	if isDocument(src) {
		return convertDocument(src)
	}
	inner, offset, display := stripDelimiters(src)
	return convertFormula(inner, offset, display)
}

func convertFormula(src string, offset int, display string) (string, error) {
	nodes, err := parseFormula(src)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Offset += offset
		}
		return "", err
	}

	root := elem("math", elem("mrow", nodes...))
	setAttr(root, "xmlns", namespace)
	setAttr(root, "display", display)

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render mathml: %w", err)
	}
	return buf.String(), nil
}

func isDocument(src string) bool {
	return strings.Contains(src, `\documentclass`) || strings.Contains(src, `\begin{document}`)
}

func convertDocument(src string) (string, error) {
	segs, err := findSegments(src)
	if err != nil {
		return "", err
	}
	if len(segs) == 0 {
		return "", errorf(0, "no math found in document")
	}
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		m, err := convertFormula(s.text, s.offset, s.display)
		if err != nil {
			return "", err
		}
		out = append(out, m)
	}
	return strings.Join(out, "\n"), nil
}

func stripDelimiters(src string) (string, int, string) {
	t := strings.TrimSpace(src)
	lead := strings.Index(src, t)
	pairs := []struct{ open, close, display string }{
		{"$$", "$$", "block"},
		{`\[`, `\]`, "block"},
		{`\(`, `\)`, "inline"},
		{"$", "$", "inline"},
	}
	for _, d := range pairs {
		if len(t) >= len(d.open)+len(d.close) && strings.HasPrefix(t, d.open) && strings.HasSuffix(t, d.close) {
			return t[len(d.open) : len(t)-len(d.close)], lead + len(d.open), d.display
		}
	}
	return t, lead, "inline"
}

type segment struct {
	text    string
	offset  int
	display string
}

// Document environments holding math, and the matrix-like environment their
// body is parsed as ("" for a plain formula).
var documentMathEnvs = map[string]string{
	"equation":    "",
	"equation*":   "",
	"displaymath": "",
	"align":       "aligned",
	"align*":      "aligned",
	"gather":      "gathered",
	"gather*":     "gathered",
}

func findSegments(src string) ([]segment, error) {
	src = stripComments(src)
	var segs []segment
	i := 0
	for i < len(src) {
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "$$"):
			end := strings.Index(rest[2:], "$$")
			if end < 0 {
				return nil, errorf(i, "unterminated $$")
			}
			segs = append(segs, segment{rest[2 : 2+end], i + 2, "block"})
			i += end + 4
		case rest[0] == '$':
			end := indexUnescaped(rest[1:], '$')
			if end < 0 {
				return nil, errorf(i, "unterminated $")
			}
			segs = append(segs, segment{rest[1 : 1+end], i + 1, "inline"})
			i += end + 2
		case strings.HasPrefix(rest, `\(`), strings.HasPrefix(rest, `\[`):
			closing, display := `\)`, "inline"
			if rest[1] == '[' {
				closing, display = `\]`, "block"
			}
			end := strings.Index(rest[2:], closing)
			if end < 0 {
				return nil, errorf(i, "unterminated %s", rest[:2])
			}
			segs = append(segs, segment{rest[2 : 2+end], i + 2, display})
			i += end + 4
		case strings.HasPrefix(rest, `\begin{`):
			nameEnd := strings.IndexByte(rest, '}')
			if nameEnd < 0 {
				i += len(`\begin{`)
				continue
			}
			name := rest[len(`\begin{`):nameEnd]
			wrap, ok := documentMathEnvs[name]
			if !ok {
				i += nameEnd + 1
				continue
			}
			bodyStart := nameEnd + 1
			endTag := `\end{` + name + `}`
			end := strings.Index(rest[bodyStart:], endTag)
			if end < 0 {
				return nil, errorf(i, `\begin{%s} without matching \end`, name)
			}
			body := rest[bodyStart : bodyStart+end]
			offset := i + bodyStart
			if wrap != "" {
				prefix := `\begin{` + wrap + `}`
				body = prefix + body + `\end{` + wrap + `}`
				offset -= len(prefix)
			}
			segs = append(segs, segment{body, offset, "block"})
			i += bodyStart + end + len(endTag)
		case rest[0] == '\\':
			i += 2
		default:
			i++
		}
	}
	return segs, nil
}

// stripComments blanks out % comments, keeping byte offsets intact.
func stripComments(src string) string {
	b := []byte(src)
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '%':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		}
	}
	return string(b)
}

func indexUnescaped(s string, c byte) int {
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case c:
			return j
		}
	}
	return -1
}
