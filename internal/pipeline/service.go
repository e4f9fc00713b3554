package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dgallion1/docfields/internal/parser"
	"github.com/dgallion1/docfields/internal/record"
	"github.com/google/uuid"
)

// ErrNeedKind means the file name does not determine the document kind and
// the caller has to pick one of parser.Choices.
var ErrNeedKind = errors.New("document kind is ambiguous")

// Result is one finished extraction.
type Result struct {
	ID       string         `json:"id"`
	File     string         `json:"file"`
	Kind     parser.Kind    `json:"kind"`
	Record   *record.Record `json:"record"`
	Duration time.Duration  `json:"-"`
	// Fallback is set when the record is the degraded form for its kind:
	// raw text for a resume, raw source plus error for LaTeX.
	Fallback bool `json:"fallback"`
}

// DurationMs is the extraction time in milliseconds.
func (r *Result) DurationMs() int64 {
	return r.Duration.Milliseconds()
}

// Service runs classification, field extraction, the per-kind fallback and
// schema validation. Each call is independent.
type Service struct {
	text      *parser.TextExtractor
	tokenizer parser.LineItemTokenizer
	stats     *Stats
	log       *slog.Logger
}

func NewService(text *parser.TextExtractor, stats *Stats, log *slog.Logger) *Service {
	if text == nil {
		text = &parser.TextExtractor{}
	}
	if stats == nil {
		stats = NewStats(time.Hour)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{text: text, stats: stats, log: log}
}

// WithTokenizer swaps the invoice line-item heuristic.
func (s *Service) WithTokenizer(t parser.LineItemTokenizer) *Service {
	s.tokenizer = t
	return s
}

// Stats returns the latency window shared by all calls.
func (s *Service) Stats() *Stats {
	return s.stats
}

// Extract builds the record for one file. An unknown kind is resolved with
// parser.Classify; if that is still unknown the call fails with ErrNeedKind.
// Only extraction and file-access failures are returned as errors.
func (s *Service) Extract(path string, kind parser.Kind) (*Result, error) {
	if kind == "" || kind == parser.KindUnknown {
		kind = parser.Classify(path)
		if kind == parser.KindUnknown {
			return nil, ErrNeedKind
		}
	}

	res := &Result{
		ID:   uuid.NewString(),
		File: filepath.Base(path),
		Kind: kind,
	}
	log := s.log.With("extraction_id", res.ID, "kind", kind, "file", res.File)

	start := time.Now()
	rec, fallback, err := s.run(log, path, kind)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	if err := record.Validate(rec, schemaFor(kind)); err != nil {
		log.Error("record failed validation", "error", err)
		return nil, fmt.Errorf("validate %s record: %w", kind, err)
	}

	res.Record = rec
	res.Fallback = fallback
	res.Duration = time.Since(start)
	s.stats.Record(kind, res.Duration, fallback)

	log.Info("extraction complete", "fields", rec.Len(), "fallback", fallback, "duration_ms", res.DurationMs())
	return res, nil
}

func (s *Service) run(log *slog.Logger, path string, kind parser.Kind) (*record.Record, bool, error) {
	switch kind {
	case parser.KindResume:
		text, err := s.text.ExtractText(path)
		if err != nil {
			return nil, false, err
		}
		rec, err := (&parser.ResumeParser{Text: s.text}).ParseText(text)
		if err != nil {
			log.Warn("structured resume parse failed, using raw text", "error", err)
			return record.RawText(text), true, nil
		}
		return rec, false, nil

	case parser.KindInvoice:
		rec, err := (&parser.InvoiceParser{Text: s.text, Tokenizer: s.tokenizer}).Parse(path)
		return rec, false, err

	default:
		p, err := parser.ForKind(kind, s.text)
		if err != nil {
			return nil, false, err
		}
		rec, err := p.Parse(path)
		if err != nil {
			return nil, false, err
		}
		if msg, ok := rec.Get(record.FieldError); ok {
			log.Warn("latex conversion failed, keeping raw source", "error", msg.String())
			return rec, true, nil
		}
		return rec, false, nil
	}
}

func schemaFor(kind parser.Kind) *record.Schema {
	switch kind {
	case parser.KindResume:
		return record.ResumeSchema
	case parser.KindLatex:
		return record.LatexSchema
	default:
		return record.InvoiceSchema
	}
}
