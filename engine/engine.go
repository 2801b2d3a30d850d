// Package engine implements the global engine described in spec.md §4.6:
// it owns the dependency graph, the parse cache, the resolve cache, and the
// process-wide function registry, and exposes the three demand-driven entry
// points (ParseImpl, ResolveAllImpl, ExecuteImpl) that the per-step contexts
// in package stepctx call into.
//
// It is grounded on compiler.go's Compiler/executor: a semaphore.Weighted
// bounds in-flight parse work (executor.s); resolve steps, which stay open
// while their imports resolve, do not hold a slot. errgroup.Group fans resolve_all's
// sibling tasks out without cancelling on first error (mirroring
// Compiler.Compile's "let in-flight tasks finish" comment), and the parse
// cache plays the role of executor.results, but backed by cache.Cache
// instead of a bespoke map[ResolvedPath]*result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mverleg/tel/cache"
	"github.com/mverleg/tel/depgraph"
	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/interp"
	"github.com/mverleg/tel/parse"
	"github.com/mverleg/tel/registry"
	"github.com/mverleg/tel/source"
	"github.com/mverleg/tel/stepctx"
	"github.com/mverleg/tel/stepid"
	"github.com/mverleg/tel/telast"
)

// ResolveFunc runs the resolver algorithm (package resolve) over one file's
// parsed body. Engine never imports package resolve directly; resolve calls
// back into the engine only through a ResolveContext, whose EngineAPI
// interface lives in stepctx, so neither resolve nor stepctx imports engine.
// The caller that constructs an Engine (cmd/tel, or a test) wires
// Engine.Resolver = resolve.Resolve.
type ResolveFunc func(ctx stepctx.ResolveContext, fq ident.FQ, body telast.PreExpr) (telast.Expr, telast.SymbolTable, int, error)

// Engine is spec.md's Global: created once per invocation of the core,
// intentionally long-lived, never torn down mid-run. All fields are safe
// for concurrent use.
type Engine struct {
	Graph        *depgraph.Graph
	Registry     *registry.Registry
	ParseCache   *cache.Cache[stepid.ParseID, telast.PreExpr]
	ResolveCache *cache.Cache[stepid.ResolveID, stepctx.ResolvedUnit]

	Source   source.Resolver
	Resolver ResolveFunc
	Logger   *slog.Logger

	MaxParallelism int
	sem            *semaphore.Weighted
}

var _ stepctx.EngineAPI = (*Engine)(nil)

// New builds an Engine. maxParallelism <= 0 picks GOMAXPROCS capped at
// NumCPU, the same fallback compiler.go's Compile method uses for
// Compiler.MaxParallelism.
func New(src source.Resolver, maxParallelism int, logger *slog.Logger) *Engine {
	if maxParallelism <= 0 {
		maxParallelism = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); maxParallelism > cpus {
			maxParallelism = cpus
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Graph:          depgraph.New(),
		Registry:       registry.New(),
		ParseCache:     cache.New[stepid.ParseID, telast.PreExpr](),
		ResolveCache:   cache.New[stepid.ResolveID, stepctx.ResolvedUnit](),
		Source:         src,
		Logger:         logger,
		MaxParallelism: maxParallelism,
		sem:            semaphore.NewWeighted(int64(maxParallelism)),
	}
}

// ParseImpl satisfies stepctx.EngineAPI. The edge is registered on every
// call, not only on cache miss, so the graph reflects actual demand
// regardless of memoization (spec.md §4.6).
func (e *Engine) ParseImpl(caller stepid.StepID, id stepid.ParseID) (telast.PreExpr, error) {
	e.Graph.RegisterDependency(caller, id)

	if err := e.sem.Acquire(context.Background(), 1); err != nil {
		return nil, fmt.Errorf("acquire parse slot for %s: %w", id.Path.String(), err)
	}
	defer e.sem.Release(1)

	res := e.ParseCache.Get(id, func() (telast.PreExpr, error) {
		text, err := e.Source.Read(context.Background(), id.Path)
		if err != nil {
			return nil, &telast.IOErrorAt{Path: id.Path, Err: err}
		}
		pre, err := parse.Parse(id.Path.String(), text)
		if err != nil {
			return nil, err
		}
		return pre, nil
	})
	return res.Value, res.Err
}

// ResolveAllImpl satisfies stepctx.EngineAPI. The first N-1 ids are
// resolved in parallel goroutines via errgroup.Group (no WithContext, so a
// sibling error does not cancel the others — spec.md §4.6's "in-flight
// sibling tasks are allowed to finish but their errors are discarded, and
// only one error surfaces"); the Nth reuses the calling goroutine.
func (e *Engine) ResolveAllImpl(caller stepid.StepID, ids []stepid.ResolveID) ([]stepctx.ResolvedUnit, error) {
	for _, id := range ids {
		e.Graph.RegisterDependency(caller, id)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	units := make([]stepctx.ResolvedUnit, len(ids))
	var g errgroup.Group
	for i := 0; i < len(ids)-1; i++ {
		i := i
		g.Go(func() error {
			u, err := e.resolveOne(ids[i])
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}

	last := len(ids) - 1
	u, err := e.resolveOne(ids[last])
	if err != nil {
		_ = g.Wait()
		return nil, err
	}
	units[last] = u

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// resolveOne resolves a single ResolveID through the resolve cache,
// consulting the dependency graph for a cycle before blocking on an
// in-flight cell, per spec.md §4.8's failure-semantics paragraph: "before
// awaiting such a cell, consult graph.find_resolve_cycle(target)".
func (e *Engine) resolveOne(id stepid.ResolveID) (stepctx.ResolvedUnit, error) {
	if cell, exists := e.ResolveCache.Peek(id); exists && cell.IsInitializing() {
		if cycle := e.Graph.FindResolveCycle(id.FQ); cycle != nil {
			return stepctx.ResolvedUnit{}, &telast.Cycle{Path: cycle}
		}
	}

	res := e.ResolveCache.Get(id, func() (stepctx.ResolvedUnit, error) {
		ctx := stepctx.NewResolveContext(e, id)
		parseID := stepid.ParseID{Path: id.FQ.Path}
		pre, err := ctx.Parse(parseID)
		if err != nil {
			return stepctx.ResolvedUnit{}, &telast.ParseErrorAt{Path: id.FQ.Path, Err: err}
		}
		expr, table, arity, err := e.Resolver(ctx, id.FQ, pre)
		if err != nil {
			return stepctx.ResolvedUnit{}, err
		}
		return stepctx.ResolvedUnit{FQ: id.FQ, Body: expr, Table: table, Arity: arity}, nil
	})
	return res.Value, res.Err
}

// ExecuteImpl satisfies stepctx.EngineAPI: it resolves id.Main and hands the
// result to the tree-walking interpreter (package interp).
func (e *Engine) ExecuteImpl(caller stepid.StepID, id stepid.ExecID) error {
	e.Graph.RegisterDependency(caller, id)

	units, err := e.ResolveAllImpl(id, []stepid.ResolveID{{FQ: id.Main}})
	if err != nil {
		return err
	}
	unit := units[0]

	return interp.Run(unit.Body, &unit.Table, e.Registry)
}

func (e *Engine) RegistryInsertIfAbsent(fd registry.FuncData) (registry.FuncData, bool) {
	return e.Registry.InsertIfAbsent(fd)
}

func (e *Engine) RegistryGet(fq ident.FQ) (registry.FuncData, bool) {
	return e.Registry.Get(fq)
}

func (e *Engine) RegistrySetBody(fq ident.FQ, body telast.Expr) {
	e.Registry.SetBody(fq, body)
}

func (e *Engine) FindResolveCycle(target ident.FQ) []ident.FQ {
	return e.Graph.FindResolveCycle(target)
}
