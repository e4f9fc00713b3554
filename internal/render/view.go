// Package render turns a record into a display-ready View and writes it as
// a terminal table, Markdown or HTML. Build is a pure function of its
// arguments; nothing here keeps state between records.
package render

import (
	"strings"

	"github.com/dgallion1/docfields/internal/parser"
	"github.com/dgallion1/docfields/internal/record"
)

// DefaultLongText is the length above which a text field is moved out of
// the summary rows into its own block.
const DefaultLongText = 100

// SeeBelow stands in for a value that is shown as a block or table.
const SeeBelow = "[See below]"

// Options controls how a record is laid out.
type Options struct {
	// LongText is the threshold in runes; 0 means DefaultLongText.
	LongText int
	// Verbatim names long fields that hold markup or source code. Their
	// blocks keep the original text instead of being normalized.
	Verbatim []string
}

// DefaultOptions keeps MathML and LaTeX source verbatim.
func DefaultOptions() Options {
	return Options{
		LongText: DefaultLongText,
		Verbatim: []string{record.FieldMathML, record.FieldRawLaTeX},
	}
}

// Row is one field in the summary table.
type Row struct {
	Field    string
	Value    string
	NotFound bool
}

// Block is a long text field displayed on its own.
type Block struct {
	Field    string
	Text     string
	Verbatim bool
}

// Table is a list-valued field.
type Table struct {
	Field   string
	Columns []string
	Rows    [][]string
}

// View is everything needed to display one record.
type View struct {
	Rows   []Row
	Blocks []Block
	Tables []Table
}

// Build lays out a record. Every field gets a summary row in record order;
// long or multi-line text and line items are referenced with SeeBelow and
// emitted as a Block or Table.
func Build(rec *record.Record, opts Options) View {
	limit := opts.LongText
	if limit <= 0 {
		limit = DefaultLongText
	}
	verbatim := make(map[string]bool, len(opts.Verbatim))
	for _, name := range opts.Verbatim {
		verbatim[name] = true
	}

	var v View
	if rec == nil {
		return v
	}
	for _, f := range rec.Fields() {
		switch f.Value.Kind() {
		case record.KindNotFound:
			v.Rows = append(v.Rows, Row{Field: f.Name, Value: record.NotFoundText, NotFound: true})

		case record.KindItems:
			v.Rows = append(v.Rows, Row{Field: f.Name, Value: SeeBelow})
			t := Table{Field: f.Name, Columns: append([]string(nil), record.LineItemKeys...)}
			for _, item := range f.Value.LineItems() {
				t.Rows = append(t.Rows, item.Values())
			}
			v.Tables = append(v.Tables, t)

		default:
			s := f.Value.String()
			if !isLong(s, limit) {
				v.Rows = append(v.Rows, Row{Field: f.Name, Value: s})
				continue
			}
			v.Rows = append(v.Rows, Row{Field: f.Name, Value: SeeBelow})
			b := Block{Field: f.Name, Text: s, Verbatim: verbatim[f.Name]}
			if !b.Verbatim {
				b.Text = parser.Normalize(s)
			}
			v.Blocks = append(v.Blocks, b)
		}
	}
	return v
}

func isLong(s string, limit int) bool {
	return strings.Contains(s, "\n") || len([]rune(s)) > limit
}
