package parser

import "regexp"

// Each step runs once over the output of the previous one, in this order.
// Later rules assume the glyph codes and noise symbols are already gone.
var normalizeSteps = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\(cid:[0-9]+\)`), ""},
	{regexp.MustCompile(`[§#+]`), ""},
	{regexp.MustCompile(`([a-z0-9])([A-Z])`), "$1 $2"},
	{regexp.MustCompile(`([A-Z])([A-Z][a-z])`), "$1 $2"},
	{regexp.MustCompile(`([a-zA-Z])([0-9])`), "$1 $2"},
	{regexp.MustCompile(`([.,;:!?])(\S)`), "$1 $2"},
	{regexp.MustCompile(` +`), " "},
}

// Normalize repairs common PDF text-extraction damage: glyph-code
// artifacts, decorative symbols and missing spaces between merged words.
// It is a heuristic and will also split camelCase identifiers and
// decimal numbers such as "3.14". Each step is a single pass, so an
// ellipsis changes again on a second call: "end..." becomes "end. .." and
// then "end. . .".
func Normalize(text string) string {
	for _, step := range normalizeSteps {
		text = step.re.ReplaceAllString(text, step.repl)
	}
	return text
}
