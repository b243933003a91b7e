package ports

import (
	"context"
	"sync"

	"go.trai.ch/gridscript/internal/core/domain"
)

//go:generate mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks

// Value is a value owned by a ScriptRuntime. Only the runtime that produced
// a Value knows its concrete type.
type Value any

// ScriptRuntime is the boundary to the embedded scripting runtime.
// The runtime's interpreter is not safe for concurrent use: callers hold
// the Locker while importing, reloading, marshalling or calling.
type ScriptRuntime interface {
	sync.Locker
	Marshaller

	// AddSearchDir inserts dir at the front of the module search path.
	AddSearchDir(dir string) error

	// Import loads the module at path and returns an owned handle.
	Import(path domain.CanonicalPath) (Module, error)

	// Reload loads the current contents of m's file into a new handle.
	// m stays valid; the caller releases it once the new handle is in place.
	Reload(m Module) (Module, error)

	// SetCaseInsensitiveImports sets the process-wide import compatibility flag
	// and returns its previous value.
	SetCaseInsensitiveImports(enabled bool) bool

	// Close tears the interpreter down.
	Close() error
}

// Module is a handle to a loaded script module.
type Module interface {
	// Name returns the module's import name.
	Name() string

	// Path returns the file the module was loaded from.
	Path() string

	// Lookup returns the named attribute as a Callable.
	// It fails with domain.ErrFunctionNotFound or domain.ErrNotCallable.
	Lookup(name string) (Callable, error)

	// Release drops the runtime's reference to the module.
	Release()
}

// Callable is a function defined in a script module.
type Callable interface {
	// Name returns the attribute name the callable was looked up by.
	Name() string

	// Signature reports the declared fixed parameter count and variadic flag.
	Signature() domain.Signature

	// Call invokes the callable with positional arguments and returns its single result.
	Call(ctx context.Context, args []Value) (Value, error)
}

// Marshaller converts between host grids and runtime values.
type Marshaller interface {
	// ToRuntimeValue converts a grid into a scalar, flat sequence or sequence of rows.
	ToRuntimeValue(g domain.Grid) (Value, error)

	// ToGrid converts a runtime value back into a rectangular grid.
	ToGrid(v Value) (domain.Grid, error)
}

// RuntimeFactory creates script runtimes once the recognized extensions are known.
type RuntimeFactory interface {
	// NewRuntime creates an interpreter that imports files with the given extensions.
	NewRuntime(extensions []string) ScriptRuntime
}
