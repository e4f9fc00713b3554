package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable prints the view for a terminal: the summary table, then each
// block under its field name, then each line-item table.
func WriteTable(w io.Writer, v View) error {
	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Field", "Value"})
	summary.SetAutoWrapText(false)
	summary.SetAutoFormatHeaders(false)
	for _, r := range v.Rows {
		summary.Append([]string{r.Field, r.Value})
	}
	summary.Render()

	for _, b := range v.Blocks {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", b.Field, b.Text); err != nil {
			return err
		}
	}

	for _, t := range v.Tables {
		if _, err := fmt.Fprintf(w, "\n%s\n", t.Field); err != nil {
			return err
		}
		tw := tablewriter.NewWriter(w)
		tw.SetHeader(t.Columns)
		tw.SetAutoFormatHeaders(false)
		tw.AppendBulk(t.Rows)
		tw.Render()
	}
	return nil
}
