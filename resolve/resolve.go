// Package resolve implements the resolver described in spec.md §4.8: it
// turns one file's PreExpr into a resolved Expr plus SymbolTable, binding
// variable and function names to ids and recursively demanding resolution
// of every import.
//
// Resolve never imports package engine — only package stepctx — so that
// engine can hold an injectable Resolver field without closing an import
// cycle (see stepctx.EngineAPI and engine.ResolveFunc). The caller that
// wires an *engine.Engine together sets Engine.Resolver = resolve.Resolve.
package resolve

import (
	"path"
	"strings"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/registry"
	"github.com/mverleg/tel/stepctx"
	"github.com/mverleg/tel/stepid"
	"github.com/mverleg/tel/telast"
)

// scope is one node of the resolver's scope tree: a set of names declared
// directly in it, plus a parent to walk for lookups that miss locally.
// Scopes are per-invocation and never shared across goroutines, per
// spec.md §5's "Resolver scope stacks ... are per-invocation".
type scope struct {
	parent *scope
	names  map[string]telast.VarID
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]telast.VarID)}
}

func (s *scope) declare(name string, id telast.VarID) bool {
	if _, exists := s.names[name]; exists {
		return false
	}
	s.names[name] = id
	return true
}

func (s *scope) lookup(name string) (telast.VarID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// resolver carries the state of a single Resolve invocation: the unit being
// built, its growing symbol table, and the name bindings collected from
// imports and local function defs.
type resolver struct {
	ctx   stepctx.ResolveContext
	fq    ident.FQ
	table telast.SymbolTable

	funcNames map[string]telast.FuncID
}

// Resolve implements engine.ResolveFunc. It is the entry point the engine
// calls once per cache-miss ResolveID.
func Resolve(ctx stepctx.ResolveContext, fq ident.FQ, body telast.PreExpr) (telast.Expr, telast.SymbolTable, int, error) {
	r := &resolver{ctx: ctx, fq: fq, funcNames: make(map[string]telast.FuncID)}
	return r.run(body)
}

func (r *resolver) run(body telast.PreExpr) (telast.Expr, telast.SymbolTable, int, error) {
	seq, ok := body.(telast.Sequence)
	if !ok {
		seq = telast.Sequence{Exprs: []telast.PreExpr{body}}
	}

	imports, localDefs, stmts, err := splitPreamble(seq.Exprs)
	if err != nil {
		return nil, telast.SymbolTable{}, 0, err
	}

	arity, err := computeArity(r.fq.Name.String(), telast.Sequence{Exprs: stmts})
	if err != nil {
		return nil, telast.SymbolTable{}, 0, err
	}

	selfID := r.table.NewFunc(telast.FuncInfo{Loc: r.fq, Arity: arity, AST: nil})
	r.funcNames[r.fq.Name.String()] = selfID
	existing, inserted := r.ctx.RegistryInsertIfAbsent(registry.FuncData{FQ: r.fq, Arity: arity, Body: nil})
	if !inserted && existing.Arity != arity {
		return nil, telast.SymbolTable{}, 0, &registry.FunctionOverload{FQ: r.fq, FirstArity: existing.Arity, NewArity: arity}
	}

	if err := r.processImports(imports); err != nil {
		return nil, telast.SymbolTable{}, 0, err
	}

	if err := r.processLocalDefs(localDefs); err != nil {
		return nil, telast.SymbolTable{}, 0, err
	}

	fnScope := newScope(nil)
	resolvedBody, err := r.resolveSequence(stmts, fnScope, true)
	if err != nil {
		return nil, telast.SymbolTable{}, 0, err
	}

	r.table.Funcs[selfID].AST = resolvedBody
	r.ctx.RegistrySetBody(r.fq, resolvedBody)

	return resolvedBody, r.table, arity, nil
}

// preambleState walks spec.md §4.8(1)'s state machine:
// Preamble -> Imports -> LocalDefs -> Body -> Done. Transitions are
// one-way; a category seen out of its window is an error.
type preambleState int

const (
	stateImports preambleState = iota
	stateLocalDefs
	stateBody
)

func splitPreamble(exprs []telast.PreExpr) (imports []telast.Import, localDefs []telast.FunctionDef, stmts []telast.PreExpr, err error) {
	state := stateImports
	for _, e := range exprs {
		switch n := e.(type) {
		case telast.Import:
			if state != stateImports {
				return nil, nil, nil, &telast.ImportNotAtTop{Span: n.Span}
			}
			imports = append(imports, n)
		case telast.FunctionDef:
			if state == stateBody {
				return nil, nil, nil, &telast.FunctionDefNotAfterImports{Span: n.Span}
			}
			state = stateLocalDefs
			localDefs = append(localDefs, n)
		default:
			state = stateBody
			stmts = append(stmts, e)
		}
	}
	return imports, localDefs, stmts, nil
}

// processImports implements spec.md §4.8(2). All imports are demanded in a
// single ResolveAll batch so the engine's N-1-parallel-plus-Nth-inline fan
// out (engine.ResolveAllImpl) applies across sibling imports of one file,
// not just across sibling files.
func (r *resolver) processImports(imports []telast.Import) error {
	if len(imports) == 0 {
		return nil
	}

	ids := make([]stepid.ResolveID, len(imports))
	for i, imp := range imports {
		importFQ, err := importFQFor(r.fq, imp)
		if err != nil {
			return err
		}
		ids[i] = stepid.ResolveID{FQ: importFQ}
	}

	units, err := r.ctx.ResolveAll(ids)
	if err != nil {
		return err
	}

	for i, imp := range imports {
		unit := units[i]
		offset := len(r.table.Funcs)

		// unit.Table.Funcs[0] is always the imported file's own top-level
		// function (see run's selfID, the first NewFunc call on a fresh
		// table) so appending the whole slice both imports every function
		// transitively reachable through unit and gives the import itself
		// a name binding at FuncID(offset).
		for _, fi := range unit.Table.Funcs {
			fi.AST = offsetFuncIDs(fi.AST, offset)
			r.table.NewFunc(fi)
		}
		r.funcNames[imp.Name] = telast.FuncID(offset)
	}
	return nil
}

// importFQFor builds the FQ of an import per spec.md §4.8(2): the base
// directory is the parent of the importing file's own path.
func importFQFor(owner ident.FQ, imp telast.Import) (ident.FQ, error) {
	if strings.ContainsAny(imp.Name, "./\\") {
		return ident.FQ{}, &telast.InvalidImportPath{Name: imp.Name, Span: imp.Span}
	}
	baseDir := path.Dir(owner.Path.String())
	importPath := imp.Name + ".telsb"
	if baseDir != "." {
		importPath = baseDir + "/" + importPath
	}
	return ident.NewFQ(ident.NewPath(importPath), ident.NewName(imp.Name)), nil
}

// processLocalDefs implements spec.md §4.8(3).
func (r *resolver) processLocalDefs(defs []telast.FunctionDef) error {
	for _, def := range defs {
		if _, exists := r.funcNames[def.Name]; exists {
			return &telast.FunctionAlreadyDefined{Name: def.Name, Span: def.Span}
		}

		arity, err := computeArity(def.Name, def.Body)
		if err != nil {
			return err
		}

		fnScope := newScope(nil)
		resolvedBody, err := r.resolveExpr(def.Body, fnScope, true)
		if err != nil {
			return err
		}

		id := r.table.NewFunc(telast.FuncInfo{Loc: r.fq, Arity: arity, AST: resolvedBody})
		r.funcNames[def.Name] = id
	}
	return nil
}

// resolveSequence resolves a list of top-level statements as an implicit
// Sequence, per spec.md §4.8(4).
func (r *resolver) resolveSequence(stmts []telast.PreExpr, sc *scope, inFunction bool) (telast.Expr, error) {
	exprs := make([]telast.Expr, len(stmts))
	for i, s := range stmts {
		e, err := r.resolveExpr(s, sc, inFunction)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return telast.RSequence{Exprs: exprs}, nil
}

// resolveExpr implements spec.md §4.8(4)'s per-node walk.
func (r *resolver) resolveExpr(e telast.PreExpr, sc *scope, inFunction bool) (telast.Expr, error) {
	switch n := e.(type) {
	case telast.Number:
		return telast.RNumber{Value: n.Value, Span: n.Span}, nil

	case telast.Ident:
		id, ok := sc.lookup(n.Name)
		if !ok {
			return nil, &telast.UndefinedVariable{Unit: r.fq, Name: n.Name, Span: n.Span}
		}
		return telast.VarRef{ID: id, Span: n.Span}, nil

	case telast.BinaryOp:
		left, err := r.resolveExpr(n.Left, sc, inFunction)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(n.Right, sc, inFunction)
		if err != nil {
			return nil, err
		}
		return telast.RBinaryOp{Op: n.Op, Left: left, Right: right, Span: n.Span}, nil

	case telast.Let:
		val, err := r.resolveExpr(n.Value, sc, inFunction)
		if err != nil {
			return nil, err
		}
		id := r.table.NewVar(n.Name, 0)
		if !sc.declare(n.Name, id) {
			return nil, &telast.VariableAlreadyDefined{Name: n.Name, Span: n.Span}
		}
		return telast.RLet{Var: id, Value: val, Span: n.Span}, nil

	case telast.Set:
		val, err := r.resolveExpr(n.Value, sc, inFunction)
		if err != nil {
			return nil, err
		}
		id, ok := sc.lookup(n.Name)
		if !ok {
			return nil, &telast.UndefinedVariable{Unit: r.fq, Name: n.Name, Span: n.Span}
		}
		return telast.RSet{Var: id, Value: val, Span: n.Span}, nil

	case telast.If:
		cond, err := r.resolveExpr(n.Cond, sc, inFunction)
		if err != nil {
			return nil, err
		}
		thenScope := newScope(sc)
		thenExpr, err := r.resolveExpr(n.Then, thenScope, inFunction)
		if err != nil {
			return nil, err
		}
		var elseExpr telast.Expr
		if n.Else != nil {
			elseScope := newScope(sc)
			elseExpr, err = r.resolveExpr(n.Else, elseScope, inFunction)
			if err != nil {
				return nil, err
			}
		}
		return telast.RIf{Cond: cond, Then: thenExpr, Else: elseExpr, Span: n.Span}, nil

	case telast.Print:
		val, err := r.resolveExpr(n.Expr, sc, inFunction)
		if err != nil {
			return nil, err
		}
		return telast.RPrint{Expr: val, Span: n.Span}, nil

	case telast.Return:
		val, err := r.resolveExpr(n.Expr, sc, inFunction)
		if err != nil {
			return nil, err
		}
		return telast.RReturn{Expr: val, Span: n.Span}, nil

	case telast.Panic:
		return telast.RPanic{Span: n.Span}, nil

	case telast.Unreachable:
		return nil, &telast.UnreachableCode{Span: n.Span}

	case telast.Import:
		return nil, &telast.ImportNotAtTop{Span: n.Span}

	case telast.FunctionDef:
		return nil, &telast.FunctionDefNotAfterImports{Span: n.Span}

	case telast.Call:
		return r.resolveCall(n, sc, inFunction)

	case telast.Arg:
		if !inFunction {
			return nil, &telast.ArgOutsideFunction{Span: n.Span}
		}
		return telast.RArg{N: n.N, Span: n.Span}, nil

	case telast.Sequence:
		return r.resolveSequence(n.Exprs, sc, inFunction)

	default:
		return nil, &telast.UndefinedFunction{Unit: r.fq, Name: "<unknown node>"}
	}
}

func (r *resolver) resolveCall(n telast.Call, sc *scope, inFunction bool) (telast.Expr, error) {
	id, ok := r.funcNames[n.FuncName]
	if !ok {
		return nil, &telast.UndefinedFunction{Unit: r.fq, Name: n.FuncName, Span: n.Span}
	}
	want := r.table.Funcs[id].Arity
	if want != len(n.Args) {
		return nil, &telast.ArityMismatch{FuncName: n.FuncName, Want: want, Got: len(n.Args), Span: n.Span}
	}
	args := make([]telast.Expr, len(n.Args))
	for i, a := range n.Args {
		e, err := r.resolveExpr(a, sc, inFunction)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return telast.RCall{Func: telast.LocalFuncRef(id), Args: args, Span: n.Span}, nil
}
