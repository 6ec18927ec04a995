// Package sheet holds the in-memory grid the UI overlays act on.
package sheet

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// CellStyle is a text decoration applied to a cell.
type CellStyle string

const (
	StylePlain     CellStyle = "plain"
	StyleBold      CellStyle = "bold"
	StyleItalic    CellStyle = "italic"
	StyleUnderline CellStyle = "underline"
)

// Styles lists every CellStyle in menu order.
var Styles = []CellStyle{StylePlain, StyleBold, StyleItalic, StyleUnderline}

// Pos addresses a cell.
type Pos struct {
	Row, Col int
}

// Sheet is a rectangular grid of string cells with per-cell color and style.
type Sheet struct {
	Name   string
	Rows   [][]string
	Colors map[Pos]string
	Styles map[Pos]CellStyle
}

// New creates an empty sheet of the given size.
func New(name string, rows, cols int) *Sheet {
	s := &Sheet{
		Name:   name,
		Colors: make(map[Pos]string),
		Styles: make(map[Pos]CellStyle),
	}
	s.Rows = make([][]string, rows)
	for i := range s.Rows {
		s.Rows[i] = make([]string, cols)
	}
	return s
}

// Dims returns the row and column counts.
func (s *Sheet) Dims() (rows, cols int) {
	if len(s.Rows) == 0 {
		return 0, 0
	}
	return len(s.Rows), len(s.Rows[0])
}

// Cell returns the value at p, or "" when p is out of range.
func (s *Sheet) Cell(p Pos) string {
	if p.Row < 0 || p.Row >= len(s.Rows) || p.Col < 0 || p.Col >= len(s.Rows[p.Row]) {
		return ""
	}
	return s.Rows[p.Row][p.Col]
}

// Set writes value at p, ignoring out-of-range positions.
func (s *Sheet) Set(p Pos, value string) {
	if p.Row < 0 || p.Row >= len(s.Rows) || p.Col < 0 || p.Col >= len(s.Rows[p.Row]) {
		return
	}
	s.Rows[p.Row][p.Col] = value
}

// HasData reports whether any cell is non-empty.
func (s *Sheet) HasData() bool {
	for _, row := range s.Rows {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}

// InsertRow inserts an empty row before index at.
func (s *Sheet) InsertRow(at int) {
	_, cols := s.Dims()
	at = min(max(at, 0), len(s.Rows))
	s.Rows = slices.Insert(s.Rows, at, make([]string, cols))
	s.shiftRows(at, 1)
}

// DeleteRow removes row at, keeping at least one row.
func (s *Sheet) DeleteRow(at int) {
	if at < 0 || at >= len(s.Rows) || len(s.Rows) == 1 {
		return
	}
	s.Rows = slices.Delete(s.Rows, at, at+1)
	for p := range s.Colors {
		if p.Row == at {
			delete(s.Colors, p)
		}
	}
	for p := range s.Styles {
		if p.Row == at {
			delete(s.Styles, p)
		}
	}
	s.shiftRows(at+1, -1)
}

// shiftRows moves decorations of rows >= from by delta.
func (s *Sheet) shiftRows(from, delta int) {
	colors := make(map[Pos]string, len(s.Colors))
	for p, c := range s.Colors {
		if p.Row >= from {
			p.Row += delta
		}
		colors[p] = c
	}
	s.Colors = colors

	styles := make(map[Pos]CellStyle, len(s.Styles))
	for p, st := range s.Styles {
		if p.Row >= from {
			p.Row += delta
		}
		styles[p] = st
	}
	s.Styles = styles
}

// ClearCell empties the value and decorations at p.
func (s *Sheet) ClearCell(p Pos) {
	s.Set(p, "")
	delete(s.Colors, p)
	delete(s.Styles, p)
}

// SortColumn sorts every row except the first (header) by column col.
// Numeric values sort before text and compare numerically. Cell colors and
// styles move with their rows.
func (s *Sheet) SortColumn(col int, asc bool) {
	if len(s.Rows) < 3 {
		return
	}
	order := make([]int, len(s.Rows)-1)
	for i := range order {
		order[i] = i + 1
	}
	slices.SortStableFunc(order, func(a, b int) int {
		c := compareCells(cellAt(s.Rows[a], col), cellAt(s.Rows[b], col))
		if !asc {
			c = -c
		}
		return c
	})

	newRow := make(map[int]int, len(order))
	rows := [][]string{s.Rows[0]}
	for i, old := range order {
		rows = append(rows, s.Rows[old])
		newRow[old] = i + 1
	}
	s.Rows = rows

	colors := make(map[Pos]string, len(s.Colors))
	for p, c := range s.Colors {
		if r, ok := newRow[p.Row]; ok {
			p.Row = r
		}
		colors[p] = c
	}
	s.Colors = colors

	styles := make(map[Pos]CellStyle, len(s.Styles))
	for p, st := range s.Styles {
		if r, ok := newRow[p.Row]; ok {
			p.Row = r
		}
		styles[p] = st
	}
	s.Styles = styles
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func compareCells(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(fa, fb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ColumnName returns the spreadsheet letter name for a zero-based column.
func ColumnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

// Ref formats p as A1 notation.
func (p Pos) Ref() string {
	return ColumnName(p.Col) + strconv.Itoa(p.Row+1)
}
