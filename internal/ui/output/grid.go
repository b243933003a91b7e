package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/ui/style"
)

// RenderGrid renders g as a table headed by spreadsheet column letters, with
// one numbered line per row. A positive width caps the table width.
func RenderGrid(g domain.Grid, width int) string {
	headers := make([]string, 0, g.Cols()+1)
	headers = append(headers, "")
	for c := range g.Cols() {
		name, _ := domain.ColumnName(c, domain.MaxColumns)
		headers = append(headers, name)
	}

	rows := make([][]string, g.Rows())
	for r := range g.Rows() {
		line := make([]string, 0, g.Cols()+1)
		line = append(line, strconv.Itoa(r+1))
		for c := range g.Cols() {
			line = append(line, g.At(r, c).String())
		}
		rows[r] = line
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return style.Header
			}
			return cellStyle(g.At(row, col-1))
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}

func cellStyle(c domain.Cell) lipgloss.Style {
	switch c.Kind {
	case domain.KindNumber:
		return style.NumCell
	case domain.KindError:
		return style.ErrorCell
	case domain.KindEmpty:
		return style.EmptyCell
	default:
		return style.Cell
	}
}
