package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the document kind that selects a field extractor.
type Kind string

const (
	KindResume  Kind = "resume"
	KindInvoice Kind = "invoice"
	KindLatex   Kind = "latex"
	KindUnknown Kind = "unknown"
)

// Choices lists the kinds a caller may pick when Classify returns KindUnknown.
var Choices = []Kind{KindResume, KindInvoice, KindLatex}

// ErrInvalidKind is returned by ParseKind for anything outside Choices.
var ErrInvalidKind = errors.New("invalid document kind")

var latexExtensions = map[string]bool{
	".tex":   true,
	".latex": true,
	".ltx":   true,
}

// Classify infers the document kind from the file extension and, for PDFs,
// from the file name. It never touches the filesystem. KindUnknown means the
// caller has to ask for one of Choices.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case latexExtensions[ext]:
		return KindLatex
	case ext == ".pdf":
		name := strings.ToLower(filepath.Base(path))
		if strings.Contains(name, "resume") {
			return KindResume
		}
		if strings.Contains(name, "invoice") {
			return KindInvoice
		}
	}
	return KindUnknown
}

// ParseKind accepts an explicit disambiguation choice.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Choices {
		if k == c {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidKind, s, choiceList())
}

func choiceList() string {
	names := make([]string, len(Choices))
	for i, c := range Choices {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
