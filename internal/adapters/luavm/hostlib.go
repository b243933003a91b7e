package luavm

import (
	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
)

// HostModuleName is the name scripts require to query the calling cell.
const HostModuleName = "host"

func (r *Runtime) openHost(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"CallerA1":       r.callerName(func(c domain.Caller) string { return c.A1(false) }),
		"CallerA1Full":   r.callerName(func(c domain.Caller) string { return c.A1(true) }),
		"CallerR1C1":     r.callerName(func(c domain.Caller) string { return c.R1C1(false) }),
		"CallerR1C1Full": r.callerName(func(c domain.Caller) string { return c.R1C1(true) }),
		"CallerSheet":    r.callerName(func(c domain.Caller) string { return c.Sheet }),
		"Break":          r.hostBreak,
	})
	L.Push(mod)
	return 1
}

func (r *Runtime) caller() domain.Caller {
	if r.callCtx == nil {
		return domain.NoCaller()
	}
	return domain.CallerFrom(r.callCtx)
}

func (r *Runtime) callerName(format func(domain.Caller) string) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LString(format(r.caller())))
		return 1
	}
}

// hostBreak reports whether the current call has been cancelled. Passing true
// acknowledges the break so later checks in the same call report false.
func (r *Runtime) hostBreak(L *lua.LState) int {
	ack := false
	switch L.GetTop() {
	case 0:
	case 1:
		switch v := L.Get(1).(type) {
		case lua.LBool:
			ack = bool(v)
		case *lua.LNilType:
		default:
			r.logger.Warn("host.Break takes a single optional boolean", "type", v.Type().String())
		}
	default:
		r.logger.Warn("host.Break takes a single optional boolean", "count", L.GetTop())
	}

	broken := r.callCtx != nil && r.callCtx.Err() != nil && !r.breakCleared
	if broken && ack {
		r.breakCleared = true
	}
	L.Push(lua.LBool(broken))
	return 1
}
