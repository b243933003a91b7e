package domain

import (
	"context"
	"strconv"
)

// Column limits of the host grid.
const (
	MaxColumnsLegacy = 256
	MaxColumns       = 16384
)

// Texts returned instead of a column name when the column is out of range.
const (
	ColumnTooSmallText = "Col less than zero"
	ColumnTooLargeText = "Col too large"
)

// NoCallerSheetText is reported as the sheet when a call did not originate in a cell.
const NoCallerSheetText = "Function not called from cell; macro or toolbar call?"

// Caller describes the cell a call originated from. Row and Col are zero based.
type Caller struct {
	Sheet    string
	Row      int
	Col      int
	FromCell bool
	// Wizard is set when the host evaluates the formula in its function wizard.
	Wizard bool
}

// NoCaller is the caller of a call that did not come from a cell.
func NoCaller() Caller {
	return Caller{Sheet: NoCallerSheetText, Row: -1, Col: -1}
}

// CellCaller returns a caller for the given sheet cell.
func CellCaller(sheet string, row, col int) Caller {
	return Caller{Sheet: sheet, Row: row, Col: col, FromCell: true}
}

// ColumnName converts a zero based column index to its letters, e.g. 0 → A, 26 → AA.
// ok is false when col is out of range, in which case name holds the host's error text.
func ColumnName(col, limit int) (name string, ok bool) {
	if col < 0 {
		return ColumnTooSmallText, false
	}
	if col >= limit {
		return ColumnTooLargeText, false
	}
	var buf [4]byte
	i := len(buf)
	for {
		rem := col % 26
		i--
		buf[i] = byte('A' + rem)
		if col < 26 {
			break
		}
		col = (col-rem)/26 - 1
	}
	return string(buf[i:]), true
}

// A1 renders the caller in A1 notation; with full set the sheet name is prepended.
func (c Caller) A1(full bool) string {
	col, _ := ColumnName(c.Col, MaxColumns)
	s := col + strconv.Itoa(c.Row+1)
	if full {
		return c.Sheet + "!" + s
	}
	return s
}

// R1C1 renders the caller in R1C1 notation; with full set the sheet name is prepended.
func (c Caller) R1C1(full bool) string {
	s := "R" + strconv.Itoa(c.Row+1) + "C" + strconv.Itoa(c.Col+1)
	if full {
		return c.Sheet + "!" + s
	}
	return s
}

type callerKey struct{}

// WithCaller returns a context carrying the caller.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored in ctx, or NoCaller.
func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return NoCaller()
}
