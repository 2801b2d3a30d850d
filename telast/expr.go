package telast

import "github.com/mverleg/tel/ident"

// Expr is the resolved AST: same shape as PreExpr but with every name bound
// to an id. Ident becomes VarRef, Call.FuncName becomes a FuncRef, and
// Import/FunctionDef/Unreachable have no resolved counterpart (they are
// fully consumed as side effects during resolution, per spec.md §3).
type Expr interface {
	exprMarker()
	Loc() Span
}

// FuncRef names a resolved callee: either a function defined in the same
// unit (Local, an index into that unit's SymbolTable.Funcs) or one reached
// through an import, addressed process-wide by FQ.
type FuncRef struct {
	Local   FuncID
	Cross   ident.FQ
	IsCross bool
}

func LocalFuncRef(id FuncID) FuncRef   { return FuncRef{Local: id} }
func CrossFuncRef(fq ident.FQ) FuncRef { return FuncRef{Cross: fq, IsCross: true} }

type RNumber struct {
	Value int64
	Span  Span
}

type VarRef struct {
	ID   VarID
	Span Span
}

type RBinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
	Span  Span
}

type RLet struct {
	Var   VarID
	Value Expr
	Span  Span
}

type RSet struct {
	Var   VarID
	Value Expr
	Span  Span
}

type RIf struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

type RPrint struct {
	Expr Expr
	Span Span
}

type RReturn struct {
	Expr Expr
	Span Span
}

type RPanic struct {
	Span Span
}

type RCall struct {
	Func Func
	Args []Expr
	Span Span
}

// Func is an alias kept distinct from FuncRef's zero value so call sites
// read naturally; RCall.Func is always a FuncRef.
type Func = FuncRef

type RArg struct {
	N    uint8
	Span Span
}

type RSequence struct {
	Exprs []Expr
	Span  Span
}

func (RNumber) exprMarker()   {}
func (VarRef) exprMarker()   {}
func (RBinaryOp) exprMarker() {}
func (RLet) exprMarker()      {}
func (RSet) exprMarker()      {}
func (RIf) exprMarker()       {}
func (RPrint) exprMarker()    {}
func (RReturn) exprMarker()   {}
func (RPanic) exprMarker()    {}
func (RCall) exprMarker()     {}
func (RArg) exprMarker()      {}
func (RSequence) exprMarker() {}

func (n RNumber) Loc() Span   { return n.Span }
func (n VarRef) Loc() Span    { return n.Span }
func (n RBinaryOp) Loc() Span { return n.Span }
func (n RLet) Loc() Span      { return n.Span }
func (n RSet) Loc() Span      { return n.Span }
func (n RIf) Loc() Span       { return n.Span }
func (n RPrint) Loc() Span    { return n.Span }
func (n RReturn) Loc() Span   { return n.Span }
func (n RPanic) Loc() Span    { return n.Span }
func (n RCall) Loc() Span     { return n.Span }
func (n RArg) Loc() Span      { return n.Span }
func (n RSequence) Loc() Span { return n.Span }
