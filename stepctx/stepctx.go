// Package stepctx implements the four per-step context types from
// spec.md §4.7: RootContext, ParseContext, ResolveContext, and ExecContext.
// Each exposes only the operations legal from that step, so the Go type
// system rules out e.g. a Parse step demanding an Exec step, the same
// guarantee the original Rust draft gets from one context type per phase
// (original_source/sandbox/src/qcompiler2.rs's RootContext/ExecContext/
// ResolveContext/ParseContext, the closest match to this section of
// spec.md).
//
// EngineAPI is declared here, not in package engine, specifically so this
// package never imports engine: engine.Engine satisfies EngineAPI
// structurally, and the caller that wires the two together (cmd/tel) is the
// only place that imports both. This keeps stepctx <-> engine acyclic while
// still letting contexts call back into the engine's Parse/ResolveAll/
// Execute entry points and the registry.
package stepctx

import (
	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/registry"
	"github.com/mverleg/tel/stepid"
	"github.com/mverleg/tel/telast"
)

// ResolvedUnit is what a single Resolve demand yields: the resolved body,
// its own SymbolTable, and its arity (computed once, before the stub is
// installed, per spec.md §4.8(6)).
type ResolvedUnit struct {
	FQ    ident.FQ
	Body  telast.Expr
	Table telast.SymbolTable
	Arity int
}

// EngineAPI is the subset of *engine.Engine that context types need.
type EngineAPI interface {
	ParseImpl(caller stepid.StepID, id stepid.ParseID) (telast.PreExpr, error)
	ResolveAllImpl(caller stepid.StepID, ids []stepid.ResolveID) ([]ResolvedUnit, error)
	ExecuteImpl(caller stepid.StepID, id stepid.ExecID) error
	RegistryInsertIfAbsent(fd registry.FuncData) (existing registry.FuncData, inserted bool)
	RegistryGet(fq ident.FQ) (registry.FuncData, bool)
	RegistrySetBody(fq ident.FQ, body telast.Expr)
}

// RootContext is where a top-level caller starts: it can only demand
// execution of a main function.
type RootContext struct {
	eng EngineAPI
}

func NewRootContext(eng EngineAPI) RootContext {
	return RootContext{eng: eng}
}

func (c RootContext) Execute(id stepid.ExecID) error {
	return c.eng.ExecuteImpl(stepid.RootStepID{}, id)
}

// ParseContext is handed to code running inside a Parse step. Parse has no
// outgoing demands in this core, so the only thing exposed is identity —
// kept as a distinct type anyway so the context hierarchy stays uniform and
// future graph-inspection needs have somewhere to attach.
type ParseContext struct {
	eng  EngineAPI
	self stepid.ParseID
}

func NewParseContext(eng EngineAPI, self stepid.ParseID) ParseContext {
	return ParseContext{eng: eng, self: self}
}

func (c ParseContext) Self() stepid.StepID { return c.self }

// ResolveContext is handed to the resolver (package resolve) while it
// processes one file's body. It exposes parse, resolve_all, and registry
// read/write helpers, per spec.md §4.7.
type ResolveContext struct {
	eng  EngineAPI
	self stepid.ResolveID
}

func NewResolveContext(eng EngineAPI, self stepid.ResolveID) ResolveContext {
	return ResolveContext{eng: eng, self: self}
}

func (c ResolveContext) Self() stepid.ResolveID { return c.self }

func (c ResolveContext) Parse(id stepid.ParseID) (telast.PreExpr, error) {
	return c.eng.ParseImpl(c.self, id)
}

func (c ResolveContext) ResolveAll(ids []stepid.ResolveID) ([]ResolvedUnit, error) {
	return c.eng.ResolveAllImpl(c.self, ids)
}

func (c ResolveContext) RegistryInsertIfAbsent(fd registry.FuncData) (registry.FuncData, bool) {
	return c.eng.RegistryInsertIfAbsent(fd)
}

func (c ResolveContext) RegistryGet(fq ident.FQ) (registry.FuncData, bool) {
	return c.eng.RegistryGet(fq)
}

func (c ResolveContext) RegistrySetBody(fq ident.FQ, body telast.Expr) {
	c.eng.RegistrySetBody(fq, body)
}

// ExecContext is handed to the interpreter. It exposes resolve_all (for any
// secondary function resolution encountered mid-execution) and registry
// reads, per spec.md §4.7.
type ExecContext struct {
	eng  EngineAPI
	self stepid.ExecID
}

func NewExecContext(eng EngineAPI, self stepid.ExecID) ExecContext {
	return ExecContext{eng: eng, self: self}
}

func (c ExecContext) Self() stepid.ExecID { return c.self }

func (c ExecContext) ResolveAll(ids []stepid.ResolveID) ([]ResolvedUnit, error) {
	return c.eng.ResolveAllImpl(c.self, ids)
}

func (c ExecContext) RegistryGet(fq ident.FQ) (registry.FuncData, bool) {
	return c.eng.RegistryGet(fq)
}
