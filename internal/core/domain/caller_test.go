package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/gridscript/internal/core/domain"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col   int
		limit int
		want  string
		ok    bool
	}{
		{0, domain.MaxColumns, "A", true},
		{25, domain.MaxColumns, "Z", true},
		{26, domain.MaxColumns, "AA", true},
		{51, domain.MaxColumns, "AZ", true},
		{52, domain.MaxColumns, "BA", true},
		{701, domain.MaxColumns, "ZZ", true},
		{702, domain.MaxColumns, "AAA", true},
		{255, domain.MaxColumnsLegacy, "IV", true},
		{16383, domain.MaxColumns, "XFD", true},
		{256, domain.MaxColumnsLegacy, domain.ColumnTooLargeText, false},
		{16384, domain.MaxColumns, domain.ColumnTooLargeText, false},
		{-1, domain.MaxColumns, domain.ColumnTooSmallText, false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := domain.ColumnName(tt.col, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCaller_Notation(t *testing.T) {
	c := domain.CellCaller("Sheet1", 4, 27)

	assert.Equal(t, "AB5", c.A1(false))
	assert.Equal(t, "Sheet1!AB5", c.A1(true))
	assert.Equal(t, "R5C28", c.R1C1(false))
	assert.Equal(t, "Sheet1!R5C28", c.R1C1(true))
}

func TestCallerFrom(t *testing.T) {
	c := domain.CallerFrom(context.Background())
	assert.False(t, c.FromCell)
	assert.Equal(t, domain.NoCallerSheetText, c.Sheet)
	assert.Equal(t, "R0C0", c.R1C1(false))

	ctx := domain.WithCaller(context.Background(), domain.CellCaller("Data", 0, 0))
	assert.Equal(t, "Data!A1", domain.CallerFrom(ctx).A1(true))
}
