// Package luavm embeds a Lua 5.1 interpreter and exposes it as a ports.ScriptRuntime.
package luavm

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptRuntime = (*Runtime)(nil)

// caseInsensitive is shared by every Runtime in the process.
var caseInsensitive atomic.Bool

// Runtime owns one interpreter. All methods except Lock, Unlock and
// SetCaseInsensitiveImports expect the caller to hold the interpreter lock.
type Runtime struct {
	mu     sync.Mutex
	state  *lua.LState
	logger ports.Logger
	names  ports.ShortNamer
	exts   []string
	dirs   []string

	// callCtx is the context of the call in progress, read by the host module.
	callCtx      context.Context
	breakCleared bool
}

// NewRuntime creates an interpreter that recognizes the given script extensions.
func NewRuntime(logger ports.Logger, names ports.ShortNamer, extensions []string) *Runtime {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		if e = strings.TrimPrefix(e, "."); e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		exts = []string{domain.DefaultExtension}
	}

	r := &Runtime{
		state:  lua.NewState(),
		logger: logger,
		names:  names,
		exts:   exts,
	}
	r.state.PreloadModule(HostModuleName, r.openHost)
	r.installLoader()
	return r
}

// Lock acquires the interpreter lock.
func (r *Runtime) Lock() { r.mu.Lock() }

// Unlock releases the interpreter lock.
func (r *Runtime) Unlock() { r.mu.Unlock() }

// SetCaseInsensitiveImports sets the process-wide flag and returns the previous value.
func (r *Runtime) SetCaseInsensitiveImports(enabled bool) bool {
	return caseInsensitive.Swap(enabled)
}

// AddSearchDir puts dir in front of package.path and the locator's directory list.
func (r *Runtime) AddSearchDir(dir string) error {
	if slices.Contains(r.dirs, dir) {
		return nil
	}

	pkg, ok := r.state.GetGlobal("package").(*lua.LTable)
	if !ok {
		return zerr.New("package library is not loaded")
	}

	patterns := make([]string, 0, len(r.exts)+1)
	for _, ext := range r.exts {
		patterns = append(patterns, filepath.Join(dir, "?."+ext))
	}
	if current := lua.LVAsString(pkg.RawGetString("path")); current != "" {
		patterns = append(patterns, current)
	}
	pkg.RawSetString("path", lua.LString(strings.Join(patterns, ";")))

	r.dirs = append([]string{dir}, r.dirs...)
	r.logger.Debug("added module search directory", "dir", dir)
	return nil
}

// Import loads the module stored at path.
func (r *Runtime) Import(path domain.CanonicalPath) (ports.Module, error) {
	file, err := r.locate(path.Base, path.Ext, path.SourceDir())
	if err != nil {
		return nil, err
	}
	return r.load(path.Base, file)
}

// Reload runs the current contents of m's file into a new module.
func (r *Runtime) Reload(m ports.Module) (ports.Module, error) {
	old, ok := m.(*Module)
	if !ok || old.rt != r {
		return nil, zerr.New("module does not belong to this runtime")
	}
	if old.released {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleReleased, "cannot reload"), "module", old.name)
	}
	return r.load(old.name, old.path)
}

// Close tears the interpreter down.
func (r *Runtime) Close() error {
	r.state.Close()
	return nil
}

// load compiles file and runs it in a private environment that falls back to the globals.
func (r *Runtime) load(name, file string) (*Module, error) {
	fn, err := r.state.LoadFile(file)
	if err != nil {
		return nil, zerr.With(zerr.New(r.scriptError(err, "file", file)), "file", file)
	}

	env := r.state.NewTable()
	meta := r.state.NewTable()
	meta.RawSetString("__index", r.state.Get(lua.GlobalsIndex))
	r.state.SetMetatable(env, meta)
	r.state.SetFEnv(fn, env)

	if err := r.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(name)); err != nil {
		return nil, zerr.With(zerr.New(r.scriptError(err, "file", file)), "file", file)
	}
	ret := r.state.Get(-1)
	r.state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		table = env
	}
	if loaded, ok := r.state.GetField(r.state.Get(lua.RegistryIndex), "_LOADED").(*lua.LTable); ok {
		loaded.RawSetString(name, table)
	}

	r.logger.Debug("loaded module", "module", name, "file", file)
	return &Module{rt: r, name: name, path: file, table: table}, nil
}

// scriptError logs the traceback of a failed protected call and returns the script's message.
func (r *Runtime) scriptError(err error, key, value string) string {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	msg := apiErr.Object.String()
	if apiErr.StackTrace != "" {
		r.logger.Warn("script raised an error", key, value, "error", msg, "traceback", apiErr.StackTrace)
	}
	return msg
}

func (r *Runtime) beginCall(ctx context.Context) {
	r.callCtx = ctx
	r.breakCleared = false
}

func (r *Runtime) endCall() {
	r.callCtx = nil
}
