package telast

import "github.com/mverleg/tel/ident"

// VarInfo records one variable declaration: its source name (kept for
// diagnostics) and a scope id. The resolver records scope 0 for every
// variable, including ones declared inside If branches; scope nesting is
// tracked only by the resolver's own scope tree, not in this table.
type VarInfo struct {
	Name  string
	Scope ScopeID
}

// FuncInfo records one resolved function: its global identity, arity, and
// resolved body. AST is overwritten exactly once, by the stub-then-rewrite
// step described in spec.md §4.8(6), after the rest of the body resolves.
type FuncInfo struct {
	Loc   ident.FQ
	Arity int
	AST   Expr
}

// SymbolTable is the per-resolved-unit table of variables and functions.
// Funcs absorbs every function reached through this unit's imports (with
// FuncIDs offset-remapped on merge, per spec.md §4.8(2)); the process-wide
// registry is the source of truth across units, this table is the local
// index into it plus the variable arena.
type SymbolTable struct {
	Vars  []VarInfo
	Funcs []FuncInfo
}

// NewVar appends a fresh variable and returns its id.
func (t *SymbolTable) NewVar(name string, scope ScopeID) VarID {
	t.Vars = append(t.Vars, VarInfo{Name: name, Scope: scope})
	return VarID(len(t.Vars) - 1)
}

// NewFunc appends a fresh function slot and returns its id. Used both for
// ordinary local function defs and for the stub installed before a
// self-recursive or imported body is resolved.
func (t *SymbolTable) NewFunc(fi FuncInfo) FuncID {
	t.Funcs = append(t.Funcs, fi)
	return FuncID(len(t.Funcs) - 1)
}

// MergeVars appends other's Vars to t and leaves Funcs untouched. Nothing in
// the engine calls it: engine.ResolveAllImpl returns each resolved unit with
// its own SymbolTable and does not concatenate their variable arenas. Funcs
// are merged elsewhere — the resolver merges Funcs itself
// (resolver.processImports) because that merge also requires rewriting
// FuncIDs inside bodies (see resolve/remap.go's offsetFuncIDs).
func (t *SymbolTable) MergeVars(other SymbolTable) {
	t.Vars = append(t.Vars, other.Vars...)
}
