// Package dispatch invokes script functions with host argument grids.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

// Dispatcher resolves script functions through the module cache and calls them.
type Dispatcher struct {
	cache   ports.ModuleCache
	runtime ports.ScriptRuntime
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates a Dispatcher. runtime must be the runtime the cache imports into.
func New(
	cache ports.ModuleCache,
	runtime ports.ScriptRuntime,
	logger ports.Logger,
	tracer ports.Tracer,
) *Dispatcher {
	return &Dispatcher{
		cache:   cache,
		runtime: runtime,
		logger:  logger,
		tracer:  tracer,
	}
}

// Call runs function from the script file with the given arguments.
// Calls made from the host's function wizard return TRUE without loading anything.
func (d *Dispatcher) Call(ctx context.Context, file, function string, args domain.Args) (domain.Grid, error) {
	if domain.CallerFrom(ctx).Wizard {
		return domain.Scalar(domain.Bool(true)), nil
	}

	callID := uuid.NewString()
	ctx, span := d.tracer.Start(ctx, "dispatch.call")
	defer span.End()
	span.SetAttribute("call_id", callID)
	span.SetAttribute("file", file)
	span.SetAttribute("function", function)

	result, err := d.call(ctx, file, function, args)
	if err != nil {
		span.RecordError(err)
		d.logger.Warn("call failed",
			"call_id", callID,
			"file", file,
			"function", function,
			"error", err.Error(),
		)
		return domain.Grid{}, err
	}

	d.logger.Debug("call finished",
		"call_id", callID,
		"file", file,
		"function", function,
		"rows", result.Rows(),
		"cols", result.Cols(),
	)
	return result, nil
}

func (d *Dispatcher) call(ctx context.Context, file, function string, args domain.Args) (domain.Grid, error) {
	var err error
	// A concurrent reload can release the handle between the cache lookup and the
	// call. Released handles refuse to run, so fetching the replacement once is safe.
	for range 2 {
		var m ports.Module
		m, err = d.cache.GetModule(ctx, file)
		if err != nil {
			return domain.Grid{}, err
		}

		var c ports.Callable
		c, err = d.lookup(m, function)
		if err == nil {
			var result domain.Grid
			result, err = d.Invoke(ctx, c, args)
			if err == nil {
				return result, nil
			}
		}
		if !errors.Is(err, domain.ErrModuleReleased) {
			return domain.Grid{}, err
		}
	}
	return domain.Grid{}, err
}

func (d *Dispatcher) lookup(m ports.Module, function string) (ports.Callable, error) {
	d.runtime.Lock()
	defer d.runtime.Unlock()

	c, err := m.Lookup(function)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ""), "file", m.Path())
	}
	return c, nil
}

// Invoke calls c with the leading argument slots its signature accepts.
// A fixed-arity callable receives its first Params slots and the rest are never
// touched. A variadic callable receives all MaxArgs slots.
func (d *Dispatcher) Invoke(ctx context.Context, c ports.Callable, args domain.Args) (domain.Grid, error) {
	ctx, span := d.tracer.Start(ctx, "dispatch.invoke")
	defer span.End()

	sig := c.Signature()
	span.SetAttribute("function", c.Name())
	span.SetAttribute("params", sig.Params)
	span.SetAttribute("variadic", sig.Variadic)

	if sig.Params > domain.MaxArgs {
		err := zerr.Wrap(domain.ErrArity,
			fmt.Sprintf("%s declares %d parameters, at most %d are supported", c.Name(), sig.Params, domain.MaxArgs))
		err = zerr.With(zerr.With(err, "function", c.Name()), "params", sig.Params)
		span.RecordError(err)
		return domain.Grid{}, err
	}

	count := sig.ArgCount(domain.MaxArgs)
	span.SetAttribute("forwarded", count)

	d.runtime.Lock()
	defer d.runtime.Unlock()

	values := make([]ports.Value, 0, count)
	for slot := range count {
		v, err := d.runtime.ToRuntimeValue(args[slot])
		if err != nil {
			err = zerr.With(zerr.With(errors.Join(domain.ErrArgumentConversion, err), "slot", slot+1), "function", c.Name())
			span.RecordError(err)
			return domain.Grid{}, err
		}
		values = append(values, v)
	}

	ret, err := c.Call(ctx, values)
	if err != nil {
		if !errors.Is(err, domain.ErrCall) && !errors.Is(err, domain.ErrModuleReleased) {
			err = errors.Join(domain.ErrCall, err)
		}
		err = zerr.With(zerr.Wrap(err, ""), "function", c.Name())
		span.RecordError(err)
		return domain.Grid{}, err
	}

	result, err := d.runtime.ToGrid(ret)
	if err != nil {
		err = zerr.With(errors.Join(domain.ErrResultConversion, err), "function", c.Name())
		span.RecordError(err)
		return domain.Grid{}, err
	}
	return result, nil
}
