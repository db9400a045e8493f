package ui

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Column configures a column in the table.
type Column struct {
	Header       string
	MaxWidth     int    // 0 = unlimited
	Ellipsis     string // default: "…"
	PaddingRight int    // default: 2 spaces
}

// Table renders rows of plain-text cells with padded, optionally truncated
// columns. It carries no styling so output stays grep-able in CI logs.
type Table struct {
	columns []Column
	rows    [][]string

	ShowHeader    bool
	ShowSeparator bool
}

func NewTable(columns ...Column) *Table {
	for i := range columns {
		if columns[i].PaddingRight == 0 {
			columns[i].PaddingRight = 2
		}
		if columns[i].Ellipsis == "" {
			columns[i].Ellipsis = "…"
		}
	}

	return &Table{
		columns:       columns,
		ShowHeader:    true,
		ShowSeparator: true,
	}
}

func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := t.computeWidths()

	if t.ShowHeader {
		headerCells := make([]string, len(t.columns))
		for i, c := range t.columns {
			headerCells[i] = c.Header
		}
		if err := t.writeRow(w, headerCells, widths); err != nil {
			return err
		}
		if t.ShowSeparator {
			if err := t.writeSeparator(w, widths); err != nil {
				return err
			}
		}
	}

	for _, row := range t.rows {
		if err := t.writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) computeWidths() []int {
	widths := make([]int, len(t.columns))

	for i, col := range t.columns {
		widths[i] = cellWidth(col, col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := cellWidth(t.columns[i], t.columns[i].truncate(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func cellWidth(col Column, s string) int {
	w := utf8.RuneCountInString(s)
	if col.MaxWidth > 0 && w > col.MaxWidth {
		return col.MaxWidth
	}
	return w
}

func (t *Table) writeRow(w io.Writer, cells []string, widths []int) error {
	for i, raw := range cells {
		col := t.columns[i]
		cell := col.truncate(raw)

		out := cell + strings.Repeat(" ", max(0, widths[i]-utf8.RuneCountInString(cell)))
		if col.PaddingRight > 0 {
			out += strings.Repeat(" ", col.PaddingRight)
		}

		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (t *Table) writeSeparator(w io.Writer, widths []int) error {
	for i, col := range t.columns {
		dashes := strings.Repeat("-", widths[i])
		if col.PaddingRight > 0 {
			dashes += strings.Repeat(" ", col.PaddingRight)
		}
		if _, err := io.WriteString(w, dashes); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// truncate cuts s to MaxWidth runes, ending with the ellipsis.
func (c Column) truncate(s string) string {
	if c.MaxWidth <= 0 || utf8.RuneCountInString(s) <= c.MaxWidth {
		return s
	}
	ell := c.Ellipsis
	if utf8.RuneCountInString(ell) >= c.MaxWidth {
		return takeRunes(s, c.MaxWidth)
	}
	return takeRunes(s, c.MaxWidth-utf8.RuneCountInString(ell)) + ell
}

func takeRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
