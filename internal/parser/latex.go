package parser

import (
	"fmt"
	"os"

	"github.com/dgallion1/docfields/internal/mathml"
	"github.com/dgallion1/docfields/internal/record"
)

// LatexParser converts LaTeX source files to MathML.
type LatexParser struct{}

// Parse reads the file and returns {MathML} on success. A conversion
// failure is not an error: the record carries the raw source and the
// converter's message instead.
func (p *LatexParser) Parse(path string) (*record.Record, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read latex source: %w", err)
	}
	return p.ParseSource(string(src)), nil
}

// ParseSource converts LaTeX held in memory.
func (p *LatexParser) ParseSource(src string) *record.Record {
	rec := record.New()
	out, err := mathml.Convert(src)
	if err != nil {
		return rec.
			Set(record.FieldRawLaTeX, record.Text(src)).
			Set(record.FieldError, record.Text(err.Error()))
	}
	return rec.Set(record.FieldMathML, record.Text(out))
}
