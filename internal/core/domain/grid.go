package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// MaxArgs is the largest number of argument grids the host passes to a callable.
const MaxArgs = 15

// MaxRows is the number of rows in a host sheet. Columns are capped by MaxColumns.
const MaxRows = 1 << 20

// Grid is a rectangular, row-major block of cells.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// Scalar returns a 1×1 grid holding c.
func Scalar(c Cell) Grid {
	return Grid{rows: 1, cols: 1, cells: []Cell{c}}
}

// Row returns a 1×N grid.
func Row(cells ...Cell) (Grid, error) {
	return GridFromRows([][]Cell{cells})
}

// GridFromRows builds a grid from nested rows, which must all have the same length.
func GridFromRows(rows [][]Cell) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	cols := len(rows[0])
	g := Grid{rows: len(rows), cols: cols, cells: make([]Cell, 0, len(rows)*cols)}
	for i, r := range rows {
		if len(r) != cols {
			err := zerr.With(zerr.Wrap(ErrRaggedGrid, fmt.Sprintf("row %d has %d cells, expected %d", i, len(r), cols)), "row", i)
			return Grid{}, err
		}
		g.cells = append(g.cells, r...)
	}
	return g, nil
}

// MustGrid is GridFromRows for literals known to be rectangular.
func MustGrid(rows ...[]Cell) Grid {
	g, err := GridFromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// IsZero reports whether the grid was never initialized.
func (g Grid) IsZero() bool { return g.rows == 0 }

// At returns the cell at row r, column c.
func (g Grid) At(r, c int) Cell {
	return g.cells[r*g.cols+c]
}

// RowCells returns a copy of row r.
func (g Grid) RowCells(r int) []Cell {
	out := make([]Cell, g.cols)
	copy(out, g.cells[r*g.cols:(r+1)*g.cols])
	return out
}

// Equal reports whether both grids share shape and cell values.
func (g Grid) Equal(o Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].Equal(o.cells[i]) {
			return false
		}
	}
	return true
}

// String renders the grid one row per line with tab separated cells.
func (g Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(g.At(r, c).String())
		}
	}
	return b.String()
}

// Args is the fixed-size argument block the host always supplies.
// Unused slots hold a 1×1 empty grid.
type Args [MaxArgs]Grid

// NewArgs fills the leading slots with grids and pads the rest with empty cells.
func NewArgs(grids ...Grid) (Args, error) {
	var a Args
	if len(grids) > MaxArgs {
		err := zerr.Wrap(ErrTooManyArguments, fmt.Sprintf("at most %d argument grids are supported", MaxArgs))
		return a, zerr.With(err, "got", len(grids))
	}
	for i := range a {
		if i < len(grids) && !grids[i].IsZero() {
			a[i] = grids[i]
			continue
		}
		a[i] = Scalar(Empty())
	}
	return a, nil
}
