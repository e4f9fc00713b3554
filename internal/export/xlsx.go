// Package export writes records to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/dgallion1/docfields/internal/record"
	"github.com/xuri/excelize/v2"
)

const (
	fieldsSheet = "Fields"
	itemsSheet  = "Line Items"
)

// WriteXLSX writes the record as a workbook. The "Fields" sheet lists every
// field with its full value; a list-valued field is written to its own sheet
// named after the field, with the LineItem keys as header row.
func WriteXLSX(w io.Writer, rec *record.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	setRow(f, fieldsSheet, 1, []string{"Field", "Value"})

	row := 2
	for _, field := range rec.Fields() {
		value := field.Value.String()
		if field.Value.Kind() == record.KindItems {
			sheet, err := writeItems(f, field.Name, field.Value.LineItems())
			if err != nil {
				return err
			}
			value = fmt.Sprintf("See sheet %q", sheet)
		}
		setRow(f, fieldsSheet, row, []string{field.Name, value})
		row++
	}
	_ = f.SetColWidth(fieldsSheet, "A", "A", 18)
	_ = f.SetColWidth(fieldsSheet, "B", "B", 80)

	idx, _ := f.GetSheetIndex(fieldsSheet)
	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeItems(f *excelize.File, name string, items []record.LineItem) (string, error) {
	sheet := sheetName(name)
	if _, err := f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	setRow(f, sheet, 1, record.LineItemKeys)
	for i, item := range items {
		setRow(f, sheet, i+2, item.Values())
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 14)
	return sheet, nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

// sheetName fits a field name into Excel's 31-character sheet name limit.
func sheetName(field string) string {
	if field == "" {
		return itemsSheet
	}
	r := []rune(field)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
