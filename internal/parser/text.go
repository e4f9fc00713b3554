package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TextExtractor pulls the linear text layer out of a document. PDF is the
// primary format; .docx files are read as a single page.
type TextExtractor struct {
	// FallbackPdftotext retries failed PDFs with the pdftotext binary.
	FallbackPdftotext bool
}

// ExtractText returns the text of every page in page order, each followed
// by a newline. Pages without text contribute only their newline.
func (e *TextExtractor) ExtractText(path string) (string, error) {
	pages, err := e.pages(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return joinPages(pages), nil
}

func (e *TextExtractor) pages(path string) (pages []string, err error) {
	// The PDF and DOCX readers panic on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()

	if strings.ToLower(filepath.Ext(path)) == ".docx" {
		return extractDOCXPages(path)
	}

	pages, err = extractPDFPages(path)
	if err != nil && e.FallbackPdftotext {
		fallback, ferr := extractPdftotext(path)
		if ferr == nil {
			return fallback, nil
		}
		return nil, fmt.Errorf("%w (fallback: %v)", err, ferr)
	}
	return pages, err
}

func joinPages(pages []string) string {
	var buf strings.Builder
	for _, p := range pages {
		buf.WriteString(norm.NFC.String(p))
		buf.WriteByte('\n')
	}
	return buf.String()
}
