package report

import (
	"fmt"
	"io"
	"strings"
)

// RenderTable writes an aligned text table of the summary entries:
// asset, name, avg, max, count. A limit <= 0 renders every row.
func RenderTable(w io.Writer, summary []AssetSummary, limit int) error {
	if limit > 0 && limit < len(summary) {
		summary = summary[:limit]
	}

	cols := []string{"asset", "name", "avg", "max", "count"}
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.Asset,
			s.Name,
			fmt.Sprintf("%.2f", s.Avg),
			fmt.Sprintf("%.2f", s.Max),
			fmt.Sprintf("%d", s.Count),
		})
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := writeRow(w, cols, widths); err != nil {
		return err
	}
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	if err := writeRow(w, sep, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, " "), " "))
	return err
}
