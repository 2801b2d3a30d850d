package resolve

import "github.com/mverleg/tel/telast"

// offsetFuncIDs rewrites every local FuncRef inside e by adding offset,
// per spec.md §4.8(2): "rewriting every FuncId inside the imported bodies
// by adding offset". Cross-module FuncRefs are left untouched since they
// already address a process-wide FQ, not a local table slot.
func offsetFuncIDs(e telast.Expr, offset int) telast.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case telast.RNumber, telast.VarRef, telast.RArg:
		return e
	case telast.RBinaryOp:
		n.Left = offsetFuncIDs(n.Left, offset)
		n.Right = offsetFuncIDs(n.Right, offset)
		return n
	case telast.RLet:
		n.Value = offsetFuncIDs(n.Value, offset)
		return n
	case telast.RSet:
		n.Value = offsetFuncIDs(n.Value, offset)
		return n
	case telast.RIf:
		n.Cond = offsetFuncIDs(n.Cond, offset)
		n.Then = offsetFuncIDs(n.Then, offset)
		n.Else = offsetFuncIDs(n.Else, offset)
		return n
	case telast.RPrint:
		n.Expr = offsetFuncIDs(n.Expr, offset)
		return n
	case telast.RReturn:
		n.Expr = offsetFuncIDs(n.Expr, offset)
		return n
	case telast.RPanic:
		return n
	case telast.RCall:
		if !n.Func.IsCross {
			n.Func = telast.LocalFuncRef(n.Func.Local + telast.FuncID(offset))
		}
		args := make([]telast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = offsetFuncIDs(a, offset)
		}
		n.Args = args
		return n
	case telast.RSequence:
		exprs := make([]telast.Expr, len(n.Exprs))
		for i, sub := range n.Exprs {
			exprs[i] = offsetFuncIDs(sub, offset)
		}
		n.Exprs = exprs
		return n
	default:
		return e
	}
}
