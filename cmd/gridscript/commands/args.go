package commands

import (
	"errors"
	"fmt"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// parseGrid reads a command line argument as a YAML flow value: a scalar, a
// sequence (one row) or a sequence of sequences (rows).
func parseGrid(arg string) (domain.Grid, error) {
	var v any
	if err := yaml.Unmarshal([]byte(arg), &v); err != nil {
		return domain.Grid{}, zerr.With(zerr.Wrap(domain.ErrInvalidArgument, err.Error()), "arg", arg)
	}

	items, ok := v.([]any)
	if !ok {
		c, err := parseCell(v)
		if err != nil {
			return domain.Grid{}, zerr.With(err, "arg", arg)
		}
		return domain.Scalar(c), nil
	}

	if len(items) > 0 {
		if _, nested := items[0].([]any); nested {
			rows := make([][]domain.Cell, len(items))
			for i, item := range items {
				row, isRow := item.([]any)
				if !isRow {
					return domain.Grid{}, zerr.With(zerr.Wrap(domain.ErrInvalidArgument, "mixed rows and scalars"), "arg", arg)
				}
				cells, err := parseCells(row)
				if err != nil {
					return domain.Grid{}, zerr.With(zerr.With(err, "row", i), "arg", arg)
				}
				rows[i] = cells
			}
			g, err := domain.GridFromRows(rows)
			if err != nil {
				return domain.Grid{}, argError(err, arg)
			}
			return g, nil
		}
	}

	cells, err := parseCells(items)
	if err != nil {
		return domain.Grid{}, zerr.With(err, "arg", arg)
	}
	g, err := domain.Row(cells...)
	if err != nil {
		return domain.Grid{}, argError(err, arg)
	}
	return g, nil
}

func argError(err error, arg string) error {
	return zerr.With(errors.Join(domain.ErrInvalidArgument, err), "arg", arg)
}

func parseCells(values []any) ([]domain.Cell, error) {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		c, err := parseCell(v)
		if err != nil {
			return nil, zerr.With(err, "col", i)
		}
		cells[i] = c
	}
	return cells, nil
}

// parseCell maps a YAML scalar onto a cell. Strings spelling a host error
// value, such as "#N/A", become error cells.
func parseCell(v any) (domain.Cell, error) {
	switch value := v.(type) {
	case nil:
		return domain.Empty(), nil
	case bool:
		return domain.Bool(value), nil
	case int:
		return domain.Number(float64(value)), nil
	case int64:
		return domain.Number(float64(value)), nil
	case uint64:
		return domain.Number(float64(value)), nil
	case float64:
		return domain.Number(value), nil
	case string:
		if code, ok := domain.ParseErrorText(value); ok {
			return domain.ErrorCell(code), nil
		}
		return domain.Text(value), nil
	default:
		return domain.Cell{}, zerr.Wrap(domain.ErrInvalidArgument, fmt.Sprintf("unsupported value of type %T", v))
	}
}

// yamlGrid converts g into plain values for YAML output.
func yamlGrid(g domain.Grid) [][]any {
	rows := make([][]any, g.Rows())
	for r := range g.Rows() {
		row := make([]any, g.Cols())
		for c := range g.Cols() {
			cell := g.At(r, c)
			switch cell.Kind {
			case domain.KindNumber:
				row[c] = cell.Num
			case domain.KindBool:
				row[c] = cell.Bool
			case domain.KindText, domain.KindWideText:
				row[c] = cell.Str
			case domain.KindError:
				row[c] = cell.Code.Text()
			default:
				row[c] = nil
			}
		}
		rows[r] = row
	}
	return rows
}
