package luavm_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
)

func TestMarshal_ScalarRoundTrip(t *testing.T) {
	rt := newRuntime(t)

	cells := map[string]domain.Cell{
		"empty":    domain.Empty(),
		"text":     domain.Text("hello"),
		"widetext": domain.Text("größe"),
		"number":   domain.Number(-1.5),
		"true":     domain.Bool(true),
		"false":    domain.Bool(false),
	}
	for _, code := range []domain.ErrorCode{
		domain.ErrCodeNull, domain.ErrCodeDiv0, domain.ErrCodeValue, domain.ErrCodeRef,
		domain.ErrCodeName, domain.ErrCodeNum, domain.ErrCodeNA,
	} {
		cells[code.Text()] = domain.ErrorCell(code)
	}

	for name, cell := range cells {
		t.Run(name, func(t *testing.T) {
			g := domain.Scalar(cell)
			v, err := rt.ToRuntimeValue(g)
			require.NoError(t, err)
			_, isTable := v.(*lua.LTable)
			assert.False(t, isTable, "1x1 grids unwrap to a scalar")

			back, err := rt.ToGrid(v)
			require.NoError(t, err)
			assert.True(t, g.Equal(back), "got %v", back)
		})
	}
}

func TestMarshal_Shapes(t *testing.T) {
	rt := newRuntime(t)

	row := domain.MustGrid([]domain.Cell{domain.Number(1), domain.Text("b"), domain.Empty()})
	v, err := rt.ToRuntimeValue(row)
	require.NoError(t, err)
	flat, ok := v.(*lua.LTable)
	require.True(t, ok)
	assert.Equal(t, lua.LNumber(1), flat.RawGetInt(1))
	assert.Equal(t, lua.LString("b"), flat.RawGetInt(2))
	assert.Equal(t, lua.LNil, flat.RawGetInt(3))

	matrix := domain.MustGrid(
		[]domain.Cell{domain.Number(1), domain.Number(2)},
		[]domain.Cell{domain.Number(3), domain.Number(4)},
		[]domain.Cell{domain.Bool(true), domain.ErrorCell(domain.ErrCodeNA)},
	)
	v, err = rt.ToRuntimeValue(matrix)
	require.NoError(t, err)
	rows, ok := v.(*lua.LTable)
	require.True(t, ok)
	assert.Equal(t, 3, rows.Len())
	second, ok := rows.RawGetInt(2).(*lua.LTable)
	require.True(t, ok)
	assert.Equal(t, lua.LNumber(4), second.RawGetInt(2))
}

func TestMarshal_GridRoundTrip(t *testing.T) {
	rt := newRuntime(t)

	grids := map[string]domain.Grid{
		"1x2": domain.MustGrid([]domain.Cell{domain.Number(1), domain.Number(2)}),
		"1x3 trailing empty": domain.MustGrid([]domain.Cell{domain.Text("a"), domain.Empty(), domain.Empty()}),
		"2x1": domain.MustGrid([]domain.Cell{domain.Number(1)}, []domain.Cell{domain.Number(2)}),
		"3x2": domain.MustGrid(
			[]domain.Cell{domain.Text("x"), domain.Number(1)},
			[]domain.Cell{domain.Empty(), domain.Bool(false)},
			[]domain.Cell{domain.ErrorCell(domain.ErrCodeDiv0), domain.Text("日本")},
		),
	}

	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			v, err := rt.ToRuntimeValue(g)
			require.NoError(t, err)
			back, err := rt.ToGrid(v)
			require.NoError(t, err)
			assert.Equal(t, g.Rows(), back.Rows())
			assert.Equal(t, g.Cols(), back.Cols())
			assert.True(t, g.Equal(back), "got %v", back)
		})
	}
}

func TestMarshal_ZeroGrid(t *testing.T) {
	rt := newRuntime(t)
	_, err := rt.ToRuntimeValue(domain.Grid{})
	require.ErrorIs(t, err, domain.ErrConversion)
}

const resultsScript = `
function ragged() return {{1, 2}, {3}} end
function mapping() return {a = 1} end
function fn() return function() end end
function nan() return 0/0 end
function inf() return 1/0 end
function na() return "#N/A" end
function empty() return {} end
function nothing() end
function mixed() return {1, {2}} end
function deep() return {{1, {2}}} end
function holes() local t = {} t[1] = 1 t[3] = 3 return t end
function counted() return {1, n = 3} end
function matrix() return {{1, "a"}, {true, nil, n = 2}} end
function sparse() return {[1e15] = 1} end
function overcounted() return {1, n = 1e15} end
function widerow() return {[1e6] = 1} end
function sparserow() return {{1}, {[1e9] = 1}} end
`

func TestMarshal_ToGridFromScripts(t *testing.T) {
	rt := newRuntime(t)
	m := importScript(t, rt, "results.lua", resultsScript)

	result := func(fn string) (domain.Grid, error) {
		t.Helper()
		c, err := m.Lookup(fn)
		require.NoError(t, err)
		v, err := c.Call(context.Background(), nil)
		require.NoError(t, err)
		return rt.ToGrid(v)
	}

	t.Run("ragged", func(t *testing.T) {
		_, err := result("ragged")
		require.ErrorIs(t, err, domain.ErrRaggedGrid)
		assert.Contains(t, err.Error(), "row 1")
	})

	for _, fn := range []string{"mapping", "fn", "mixed", "deep", "sparse", "overcounted", "widerow", "sparserow"} {
		t.Run(fn, func(t *testing.T) {
			_, err := result(fn)
			require.ErrorIs(t, err, domain.ErrConversion)
		})
	}

	t.Run("oversized sequence names the limit", func(t *testing.T) {
		_, err := result("overcounted")
		assert.Contains(t, err.Error(), "exceeds the limit")
	})

	t.Run("function type name", func(t *testing.T) {
		_, err := result("fn")
		assert.Contains(t, err.Error(), "function")
	})

	single := map[string]domain.Cell{
		"nan":     domain.ErrorCell(domain.ErrCodeNum),
		"inf":     domain.ErrorCell(domain.ErrCodeNum),
		"na":      domain.ErrorCell(domain.ErrCodeNA),
		"empty":   domain.Empty(),
		"nothing": domain.Empty(),
	}
	for fn, want := range single {
		t.Run(fn, func(t *testing.T) {
			g, err := result(fn)
			require.NoError(t, err)
			assert.True(t, domain.Scalar(want).Equal(g), "got %v", g)
		})
	}

	t.Run("holes", func(t *testing.T) {
		g, err := result("holes")
		require.NoError(t, err)
		want := domain.MustGrid([]domain.Cell{domain.Number(1), domain.Empty(), domain.Number(3)})
		assert.True(t, want.Equal(g), "got %v", g)
	})

	t.Run("counted", func(t *testing.T) {
		g, err := result("counted")
		require.NoError(t, err)
		assert.Equal(t, 3, g.Cols())
	})

	t.Run("matrix", func(t *testing.T) {
		g, err := result("matrix")
		require.NoError(t, err)
		want := domain.MustGrid(
			[]domain.Cell{domain.Number(1), domain.Text("a")},
			[]domain.Cell{domain.Bool(true), domain.Empty()},
		)
		assert.True(t, want.Equal(g), "got %v", g)
	})
}

func TestMarshal_ForeignValue(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.ToGrid(42)
	require.ErrorIs(t, err, domain.ErrConversion)

	g, err := rt.ToGrid(nil)
	require.NoError(t, err)
	assert.True(t, g.At(0, 0).IsEmpty())

	g, err = rt.ToGrid(lua.LNumber(math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, g.At(0, 0).Num, 0)
}
