package resolve

import "github.com/mverleg/tel/telast"

// computeArity walks body collecting every Arg(n) used directly within it
// (not descending into nested FunctionDef bodies, which have their own
// arity), and returns the arity per spec.md §4.8(5): the maximum n, with a
// gap check over 1..=max.
func computeArity(funcName string, body telast.PreExpr) (int, error) {
	used := map[int]bool{}
	collectArgs(body, used)

	max := 0
	for n := range used {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return 0, nil
	}
	for n := 1; n <= max; n++ {
		if !used[n] {
			return 0, &telast.ArityGap{FuncName: funcName, MaxArg: max}
		}
	}
	return max, nil
}

func collectArgs(e telast.PreExpr, used map[int]bool) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case telast.Number, telast.Ident, telast.Panic, telast.Unreachable, telast.Import:
		return
	case telast.Arg:
		used[int(n.N)] = true
	case telast.BinaryOp:
		collectArgs(n.Left, used)
		collectArgs(n.Right, used)
	case telast.Let:
		collectArgs(n.Value, used)
	case telast.Set:
		collectArgs(n.Value, used)
	case telast.If:
		collectArgs(n.Cond, used)
		collectArgs(n.Then, used)
		collectArgs(n.Else, used)
	case telast.Print:
		collectArgs(n.Expr, used)
	case telast.Return:
		collectArgs(n.Expr, used)
	case telast.FunctionDef:
		// Nested function defs compute their own arity separately; their
		// Arg usages do not count toward the enclosing body.
		return
	case telast.Call:
		for _, a := range n.Args {
			collectArgs(a, used)
		}
	case telast.Sequence:
		for _, sub := range n.Exprs {
			collectArgs(sub, used)
		}
	}
}
