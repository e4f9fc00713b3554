package export

import (
	"bytes"
	"testing"

	"github.com/dgallion1/docfields/internal/record"
	"github.com/xuri/excelize/v2"
)

func readBack(t *testing.T, rec *record.Record) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteXLSXInvoice(t *testing.T) {
	rec := record.New().
		Set(record.FieldTotal, record.Text("1,234.56")).
		Set(record.FieldLineItems, record.Items([]record.LineItem{
			{Item: "Widget", Quantity: "4", Price: "19.99"},
		}))
	f := readBack(t, rec)

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Fields" || sheets[1] != "Line Items" {
		t.Fatalf("expected [Fields Line Items], got %v", sheets)
	}

	rows, err := f.GetRows("Fields")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "Total" || rows[1][1] != "1,234.56" {
		t.Errorf("unexpected total row %v", rows[1])
	}

	items, err := f.GetRows("Line Items")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected header and 1 item, got %d rows", len(items))
	}
	if items[0][0] != "Item" || items[1][0] != "Widget" || items[1][2] != "19.99" {
		t.Errorf("unexpected item rows %v", items)
	}
}

func TestWriteXLSXSentinel(t *testing.T) {
	rec := record.New().
		Set(record.FieldTotal, record.NotFound()).
		Set(record.FieldLineItems, record.NotFound())
	f := readBack(t, rec)

	if sheets := f.GetSheetList(); len(sheets) != 1 {
		t.Errorf("expected only the Fields sheet, got %v", sheets)
	}
	rows, _ := f.GetRows("Fields")
	if rows[2][1] != record.NotFoundText {
		t.Errorf("expected %q, got %q", record.NotFoundText, rows[2][1])
	}
}

func TestWriteXLSXKeepsFullText(t *testing.T) {
	long := "Senior Engineer\nBuilt things, fixedBugs."
	f := readBack(t, record.New().Set(record.FieldExperience, record.Text(long)))
	rows, _ := f.GetRows("Fields")
	if rows[1][1] != long {
		t.Errorf("expected unmodified text, got %q", rows[1][1])
	}
}
