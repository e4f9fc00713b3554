package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// Markdown renders the view as GitHub-flavored Markdown.
func Markdown(v View) string {
	var b strings.Builder

	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, r := range v.Rows {
		value := mdEscaper.Replace(r.Value)
		if r.NotFound {
			value = "*" + value + "*"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", mdEscaper.Replace(r.Field), value)
	}

	for _, blk := range v.Blocks {
		fmt.Fprintf(&b, "\n## %s\n\n", mdEscaper.Replace(blk.Field))
		if blk.Verbatim {
			fence := "```"
			for strings.Contains(blk.Text, fence) {
				fence += "`"
			}
			fmt.Fprintf(&b, "%s\n%s\n%s\n", fence, blk.Text, fence)
			continue
		}
		lines := strings.Split(strings.TrimSpace(blk.Text), "\n")
		for i, line := range lines {
			lines[i] = mdEscaper.Replace(strings.TrimSpace(line))
		}
		b.WriteString(strings.Join(lines, "  \n"))
		b.WriteString("\n")
	}

	for _, t := range v.Tables {
		fmt.Fprintf(&b, "\n## %s\n\n", mdEscaper.Replace(t.Field))
		cols := make([]string, len(t.Columns))
		sep := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = mdEscaper.Replace(c)
			sep[i] = "---"
		}
		fmt.Fprintf(&b, "| %s |\n|%s|\n", strings.Join(cols, " | "), strings.Join(sep, "|"))
		for _, row := range t.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = mdEscaper.Replace(c)
			}
			fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
		}
	}
	return b.String()
}

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the Markdown form of the view to an HTML fragment.
func HTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(Markdown(v)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
