package luavm

import (
	"context"

	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Module   = (*Module)(nil)
	_ ports.Callable = (*Callable)(nil)
)

// Module is a loaded script. Its table is the value the chunk returned, or the
// chunk's environment when it returned nothing.
type Module struct {
	rt       *Runtime
	name     string
	path     string
	table    *lua.LTable
	released bool
}

// Name returns the import name.
func (m *Module) Name() string { return m.name }

// Path returns the file the module was loaded from.
func (m *Module) Path() string { return m.path }

// Lookup returns the function stored under name.
func (m *Module) Lookup(name string) (ports.Callable, error) {
	if m.released {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleReleased, "lookup failed"), "module", m.name)
	}

	value := m.table.RawGetString(name)
	if value == lua.LNil {
		err := zerr.With(zerr.Wrap(domain.ErrFunctionNotFound, name), "module", m.name)
		return nil, zerr.With(err, "function", name)
	}
	fn, ok := value.(*lua.LFunction)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrNotCallable, name), "module", m.name)
		return nil, zerr.With(err, "type", value.Type().String())
	}
	return &Callable{module: m, name: name, fn: fn}, nil
}

// Release unpublishes the module. Later lookups fail with domain.ErrModuleReleased.
func (m *Module) Release() {
	if m.released {
		return
	}
	m.released = true
	if loaded, ok := m.rt.state.GetField(m.rt.state.Get(lua.RegistryIndex), "_LOADED").(*lua.LTable); ok {
		if loaded.RawGetString(m.name) == m.table {
			loaded.RawSetString(m.name, lua.LNil)
		}
	}
}

// Callable is a function found in a module.
type Callable struct {
	module *Module
	name   string
	fn     *lua.LFunction
}

// Name returns the attribute name.
func (c *Callable) Name() string { return c.name }

// Signature reports the declared parameters. Go functions do not declare any
// and are treated as variadic.
func (c *Callable) Signature() domain.Signature {
	if c.fn.IsG || c.fn.Proto == nil {
		return domain.Signature{Variadic: true}
	}
	return domain.Signature{
		Params:   int(c.fn.Proto.NumParameters),
		Variadic: c.fn.Proto.IsVarArg&lua.VarArgIsVarArg != 0,
	}
}

// Call invokes the function and returns its first result.
func (c *Callable) Call(ctx context.Context, args []ports.Value) (ports.Value, error) {
	if c.module.released {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleReleased, "call failed"), "module", c.module.name)
	}

	values := make([]lua.LValue, len(args))
	for i, arg := range args {
		v, err := asLValue(arg)
		if err != nil {
			return nil, zerr.With(err, "slot", i)
		}
		values[i] = v
	}

	rt := c.module.rt
	rt.beginCall(ctx)
	defer rt.endCall()

	if err := rt.state.CallByParam(lua.P{Fn: c.fn, NRet: 1, Protect: true}, values...); err != nil {
		msg := rt.scriptError(err, "function", c.name)
		return nil, zerr.With(zerr.Wrap(domain.ErrCall, msg), "function", c.name)
	}
	ret := rt.state.Get(-1)
	rt.state.Pop(1)
	return ret, nil
}
