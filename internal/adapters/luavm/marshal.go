package luavm

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

// lengthField holds the length of a row so trailing empty cells survive the
// round trip. Lua sequences cannot carry trailing nils on their own.
const lengthField = "n"

// maxResultCells bounds the cells of a single returned grid.
const maxResultCells = 1 << 24

// ToRuntimeValue converts g into a scalar, a flat row table or a table of rows.
func (r *Runtime) ToRuntimeValue(g domain.Grid) (ports.Value, error) {
	if g.IsZero() {
		return nil, zerr.Wrap(domain.ErrConversion, domain.ErrEmptyGrid.Error())
	}

	switch {
	case g.Rows() == 1 && g.Cols() == 1:
		return scalarValue(g.At(0, 0)), nil
	case g.Rows() == 1:
		return r.rowValue(g.RowCells(0)), nil
	}

	rows := r.state.CreateTable(g.Rows(), 0)
	for i := 0; i < g.Rows(); i++ {
		rows.RawSetInt(i+1, r.rowValue(g.RowCells(i)))
	}
	return rows, nil
}

func (r *Runtime) rowValue(cells []domain.Cell) *lua.LTable {
	row := r.state.CreateTable(len(cells), 1)
	for i, c := range cells {
		if v := scalarValue(c); v != lua.LNil {
			row.RawSetInt(i+1, v)
		}
	}
	row.RawSetString(lengthField, lua.LNumber(len(cells)))
	return row
}

func scalarValue(c domain.Cell) lua.LValue {
	switch c.Kind {
	case domain.KindText, domain.KindWideText:
		return lua.LString(c.Str)
	case domain.KindNumber:
		return lua.LNumber(c.Num)
	case domain.KindBool:
		return lua.LBool(c.Bool)
	case domain.KindError:
		return lua.LString(c.Code.Text())
	default:
		return lua.LNil
	}
}

// ToGrid converts a scalar, a flat sequence or a sequence of sequences back into a grid.
func (r *Runtime) ToGrid(v ports.Value) (domain.Grid, error) {
	lv, err := asLValue(v)
	if err != nil {
		return domain.Grid{}, err
	}

	table, ok := lv.(*lua.LTable)
	if !ok {
		c, err := cellOf(lv)
		if err != nil {
			return domain.Grid{}, err
		}
		return domain.Scalar(c), nil
	}

	items, err := sequence(table, domain.MaxRows)
	if err != nil {
		return domain.Grid{}, err
	}
	if len(items) == 0 {
		return domain.Scalar(domain.Empty()), nil
	}

	nested := false
	for _, item := range items {
		if _, ok := item.(*lua.LTable); ok {
			nested = true
			break
		}
	}
	if !nested {
		if len(items) > domain.MaxColumns {
			return domain.Grid{}, tooLong(len(items), domain.MaxColumns)
		}
		row, err := cellsOf(items)
		if err != nil {
			return domain.Grid{}, err
		}
		return domain.GridFromRows([][]domain.Cell{row})
	}

	rows := make([][]domain.Cell, len(items))
	total := 0
	for i, item := range items {
		inner, ok := item.(*lua.LTable)
		if !ok {
			err := zerr.Wrap(domain.ErrConversion, fmt.Sprintf("row %d is a %s, expected a sequence", i, item.Type()))
			return domain.Grid{}, zerr.With(err, "row", i)
		}
		values, err := sequence(inner, domain.MaxColumns)
		if err != nil {
			return domain.Grid{}, zerr.With(err, "row", i)
		}
		if total += len(values); total > maxResultCells {
			return domain.Grid{}, zerr.With(tooLong(total, maxResultCells), "row", i)
		}
		if rows[i], err = cellsOf(values); err != nil {
			return domain.Grid{}, zerr.With(err, "row", i)
		}
	}
	if len(rows[0]) == 0 {
		return domain.Grid{}, zerr.Wrap(domain.ErrConversion, domain.ErrEmptyGrid.Error())
	}
	return domain.GridFromRows(rows)
}

// sequence returns the values at keys 1..n. Holes become nil. A table with any
// other key, apart from the length field, is a mapping and is rejected. Tables
// longer than limit are rejected before anything is allocated.
func sequence(t *lua.LTable, limit int) ([]lua.LValue, error) {
	declared := -1
	if n, ok := t.RawGetString(lengthField).(lua.LNumber); ok && n >= 0 && float64(n) == math.Trunc(float64(n)) {
		if float64(n) > float64(limit) {
			return nil, tooLong(float64(n), limit)
		}
		declared = int(n)
	}

	length := 0
	var bad lua.LValue
	var over float64
	t.ForEach(func(k, _ lua.LValue) {
		switch key := k.(type) {
		case lua.LNumber:
			f := float64(key)
			if f >= 1 && f == math.Trunc(f) {
				if f > float64(limit) {
					over = max(over, f)
					return
				}
				length = max(length, int(f))
				return
			}
		case lua.LString:
			if string(key) == lengthField && declared >= 0 {
				return
			}
		}
		if bad == nil {
			bad = k
		}
	})
	if bad != nil {
		err := zerr.Wrap(domain.ErrConversion, fmt.Sprintf("table with key %q is not a sequence", bad.String()))
		return nil, zerr.With(err, "type", "table")
	}
	if over > 0 {
		return nil, tooLong(over, limit)
	}

	length = max(length, declared)
	items := make([]lua.LValue, length)
	for i := range items {
		items[i] = t.RawGetInt(i + 1)
	}
	return items, nil
}

func tooLong[N int | float64](length N, limit int) error {
	err := zerr.Wrap(domain.ErrConversion, fmt.Sprintf("sequence of length %.0f exceeds the limit of %d", float64(length), limit))
	return zerr.With(err, "limit", limit)
}

func cellsOf(values []lua.LValue) ([]domain.Cell, error) {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		c, err := cellOf(v)
		if err != nil {
			return nil, zerr.With(err, "column", i)
		}
		cells[i] = c
	}
	return cells, nil
}

// cellOf converts a scalar. Strings spelling a host error value become error cells,
// and numbers the host cannot store become #NUM!.
func cellOf(v lua.LValue) (domain.Cell, error) {
	switch value := v.(type) {
	case *lua.LNilType:
		return domain.Empty(), nil
	case lua.LBool:
		return domain.Bool(bool(value)), nil
	case lua.LNumber:
		f := float64(value)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.ErrorCell(domain.ErrCodeNum), nil
		}
		return domain.Number(f), nil
	case lua.LString:
		if code, ok := domain.ParseErrorText(string(value)); ok {
			return domain.ErrorCell(code), nil
		}
		return domain.Text(string(value)), nil
	default:
		err := zerr.Wrap(domain.ErrConversion, fmt.Sprintf("unsupported value of type %s", v.Type()))
		return domain.Cell{}, zerr.With(err, "type", v.Type().String())
	}
}

func asLValue(v ports.Value) (lua.LValue, error) {
	switch value := v.(type) {
	case nil:
		return lua.LNil, nil
	case lua.LValue:
		return value, nil
	default:
		err := zerr.Wrap(domain.ErrConversion, "value was not produced by the Lua runtime")
		return nil, zerr.With(err, "type", fmt.Sprintf("%T", v))
	}
}
