package parser

import (
	"fmt"

	"github.com/dgallion1/docfields/internal/record"
)

// Parser turns a document on disk into a structured record.
type Parser interface {
	Parse(path string) (*record.Record, error)
}

// ForKind returns the field extractor for a document kind. PDF-based kinds
// share the given text extractor.
func ForKind(kind Kind, text *TextExtractor) (Parser, error) {
	if text == nil {
		text = &TextExtractor{}
	}
	switch kind {
	case KindResume:
		return &ResumeParser{Text: text}, nil
	case KindInvoice:
		return &InvoiceParser{Text: text}, nil
	case KindLatex:
		return &LatexParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}
