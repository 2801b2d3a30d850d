// Package telast is the data model shared by every stage of the engine:
// the pre-resolution and resolved ASTs (PreExpr, Expr), the per-unit
// SymbolTable, and the typed error taxonomy raised by parse/resolve/execute.
// Grounded on the shape of spec.md §3/§7, generalized from
// original_source/sandbox/src/types.rs (PreExpr/Expr) and
// original_source/sandbox/src/common.rs (error enums), realized as closed
// Go interfaces rather than Rust enums, in the idiom of the teacher's
// ast package (one concrete struct per node kind, a private marker method
// to seal the interface).
package telast

import "fmt"

// VarID indexes SymbolTable.Vars.
type VarID int

// FuncID indexes SymbolTable.Funcs, or (after offset-remapping on import
// merge) the process-wide registry's local slot for a resolved unit.
type FuncID int

// ScopeID indexes a resolver's scope stack; ScopeID 0 is always the
// function's top-level scope.
type ScopeID int

// Span locates a node in its originating source file, used by Panic and
// Unreachable diagnostics and by error messages generally. It mirrors the
// original Rust draft's plain `loc: String` field but keeps line/col apart
// so renderers can choose their own format.
type Span struct {
	File string
	Line int
	Col  int
}

func (s Span) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
