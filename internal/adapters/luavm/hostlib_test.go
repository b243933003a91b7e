package luavm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
)

const hostScript = `
local host = require("host")
function where() return host.CallerA1Full() .. "|" .. host.CallerR1C1() end
function plain() return host.CallerA1() .. "|" .. host.CallerR1C1Full() end
function sheet() return host.CallerSheet() end
function brk(ack) local a = host.Break(ack) local b = host.Break() return {a, b} end
`

func TestHost_Caller(t *testing.T) {
	rt := newRuntime(t)
	m := importScript(t, rt, "hostinfo.lua", hostScript)

	ctx := domain.WithCaller(context.Background(), domain.CellCaller("Sheet1", 4, 27))
	for fn, want := range map[string]string{
		"where": "Sheet1!AB5|R5C28",
		"plain": "AB5|Sheet1!R5C28",
		"sheet": "Sheet1",
	} {
		c, err := m.Lookup(fn)
		require.NoError(t, err)
		v, err := c.Call(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, lua.LString(want), v, fn)
	}
}

func TestHost_NoCaller(t *testing.T) {
	rt := newRuntime(t)
	m := importScript(t, rt, "hostinfo.lua", hostScript)

	assert.Equal(t, lua.LString(domain.NoCallerSheetText), call(t, m, "sheet"))
	assert.Equal(t, lua.LString(domain.NoCallerSheetText+"!"+domain.ColumnTooSmallText+"0|R0C0"), call(t, m, "where"))
}

func TestHost_Break(t *testing.T) {
	rt := newRuntime(t)
	m := importScript(t, rt, "hostinfo.lua", hostScript)
	c, err := m.Lookup("brk")
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		args []ports.Value
		want []domain.Cell
	}{
		{"running", context.Background(), nil, []domain.Cell{domain.Bool(false), domain.Bool(false)}},
		{"cancelled", cancelled, nil, []domain.Cell{domain.Bool(true), domain.Bool(true)}},
		{"cancelled and acknowledged", cancelled, []ports.Value{lua.LTrue}, []domain.Cell{domain.Bool(true), domain.Bool(false)}},
		{"not acknowledged", cancelled, []ports.Value{lua.LFalse}, []domain.Cell{domain.Bool(true), domain.Bool(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.Call(tt.ctx, tt.args)
			require.NoError(t, err)
			g, err := rt.ToGrid(v)
			require.NoError(t, err)
			assert.True(t, domain.MustGrid(tt.want).Equal(g), "got %v", g)
		})
	}
}
