package parser

import (
	"regexp"

	"github.com/dgallion1/docfields/internal/record"
)

var totalRe = regexp.MustCompile(`(?i)Total\s*[:\-]?\s*\$?([\d,]+\.\d{2})`)

// LineItemTokenizer finds invoice rows in raw text.
type LineItemTokenizer interface {
	Tokenize(text string) []record.LineItem
}

// RegexpTokenizer reads rows from a pattern whose first three capture groups
// are item, quantity and price.
type RegexpTokenizer struct {
	Pattern *regexp.Regexp
}

// DefaultLineItemPattern matches "<word> <integer> $<amount>", e.g.
// "Widget 4 $19.99". Words may contain any Unicode letter or digit. Rows in
// any other layout are skipped.
var DefaultLineItemPattern = regexp.MustCompile(`([\p{L}\p{N}_]+)\s+(\d+)\s+\$([\d,]+\.\d{2})`)

func (t RegexpTokenizer) Tokenize(text string) []record.LineItem {
	var items []record.LineItem
	for _, m := range t.Pattern.FindAllStringSubmatch(text, -1) {
		if len(m) < 4 {
			continue
		}
		items = append(items, record.LineItem{Item: m[1], Quantity: m[2], Price: m[3]})
	}
	return items
}

// InvoiceParser extracts the total and the line-item table of an invoice PDF.
type InvoiceParser struct {
	Text      *TextExtractor
	Tokenizer LineItemTokenizer
}

func (p *InvoiceParser) Parse(path string) (*record.Record, error) {
	text, err := p.Text.ExtractText(path)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text), nil
}

// ParseText builds {Total, Line Items} from raw text. Either field is the
// not-found sentinel when nothing matches; Line Items is never an empty list.
func (p *InvoiceParser) ParseText(text string) *record.Record {
	rec := record.New()

	if m := totalRe.FindStringSubmatch(text); m != nil {
		rec.Set(record.FieldTotal, record.Text(m[1]))
	} else {
		rec.Set(record.FieldTotal, record.NotFound())
	}

	tok := p.Tokenizer
	if tok == nil {
		tok = RegexpTokenizer{Pattern: DefaultLineItemPattern}
	}
	if items := tok.Tokenize(text); len(items) > 0 {
		rec.Set(record.FieldLineItems, record.Items(items))
	} else {
		rec.Set(record.FieldLineItems, record.NotFound())
	}
	return rec
}
