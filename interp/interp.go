// Package interp is the stack-free tree-walking evaluator described in
// spec.md §4.9. It is deliberately the one package in this engine whose
// control-flow breaks from ordinary Go error-shaped short-circuiting: the
// spec's result type is explicitly Value(i64) | Return(i64), a control-flow
// value rather than a failure, so eval returns a small struct instead of
// threading a sentinel error for Return.
//
// Per-opcode arithmetic is the one concern spec.md §1 calls out as an
// external collaborator ("only its contract with the symbol table and
// function-registry is specified"); this file gives that contract a
// concrete body, grounded in the shape of
// original_source/sandbox/src/execute.rs.
package interp

import (
	"fmt"
	"os"

	"github.com/mverleg/tel/registry"
	"github.com/mverleg/tel/telast"
)

type result struct {
	v        int64
	returned bool
}

// interpreter carries the read-only context (symbol table, registry, output)
// of a single Run; the mutable per-invocation state (variable environment,
// argument vector) is passed through eval as parameters.
type interpreter struct {
	table *telast.SymbolTable
	reg   *registry.Registry
	out   *os.File
}

// Run executes body (the resolved main function's Expr) against table and
// reg, writing Print output to standard output.
func Run(body telast.Expr, table *telast.SymbolTable, reg *registry.Registry) error {
	ip := &interpreter{table: table, reg: reg, out: os.Stdout}
	env := make(map[telast.VarID]int64)
	_, err := ip.eval(body, env, nil)
	return err
}

func (ip *interpreter) eval(e telast.Expr, env map[telast.VarID]int64, args []int64) (result, error) {
	switch n := e.(type) {
	case telast.RNumber:
		return result{v: n.Value}, nil

	case telast.VarRef:
		return result{v: env[n.ID]}, nil

	case telast.RBinaryOp:
		return ip.evalBinaryOp(n, env, args)

	case telast.RLet:
		r, err := ip.eval(n.Value, env, args)
		if err != nil {
			return result{}, err
		}
		env[n.Var] = r.v
		return result{v: r.v}, nil

	case telast.RSet:
		r, err := ip.eval(n.Value, env, args)
		if err != nil {
			return result{}, err
		}
		env[n.Var] = r.v
		return result{v: r.v}, nil

	case telast.RIf:
		cond, err := ip.eval(n.Cond, env, args)
		if err != nil {
			return result{}, err
		}
		if cond.v != 0 {
			return ip.eval(n.Then, env, args)
		}
		if n.Else != nil {
			return ip.eval(n.Else, env, args)
		}
		return result{}, nil

	case telast.RPrint:
		r, err := ip.eval(n.Expr, env, args)
		if err != nil {
			return result{}, err
		}
		fmt.Fprintln(ip.out, r.v)
		return r, nil

	case telast.RReturn:
		r, err := ip.eval(n.Expr, env, args)
		if err != nil {
			return result{}, err
		}
		return result{v: r.v, returned: true}, nil

	case telast.RPanic:
		return result{}, &telast.PanicError{Loc: n.Span}

	case telast.RCall:
		return ip.evalCall(n, env, args)

	case telast.RArg:
		idx := int(n.N) - 1
		if idx < 0 || idx >= len(args) {
			return result{}, &telast.ArgNotProvided{N: int(n.N), Span: n.Span}
		}
		return result{v: args[idx]}, nil

	case telast.RSequence:
		var last result
		for _, sub := range n.Exprs {
			r, err := ip.eval(sub, env, args)
			if err != nil {
				return result{}, err
			}
			last = r
			if r.returned {
				return r, nil
			}
		}
		return last, nil

	default:
		return result{}, fmt.Errorf("interp: unhandled node %T", e)
	}
}

func (ip *interpreter) evalBinaryOp(n telast.RBinaryOp, env map[telast.VarID]int64, args []int64) (result, error) {
	left, err := ip.eval(n.Left, env, args)
	if err != nil {
		return result{}, err
	}
	right, err := ip.eval(n.Right, env, args)
	if err != nil {
		return result{}, err
	}
	a, b := left.v, right.v

	switch n.Op {
	case "+":
		return result{v: a + b}, nil
	case "-":
		return result{v: a - b}, nil
	case "*":
		return result{v: a * b}, nil
	case "/":
		if b == 0 {
			return result{}, &telast.DivisionByZero{Span: n.Span}
		}
		return result{v: a / b}, nil
	case "==":
		return result{v: boolToInt(a == b)}, nil
	case "!=":
		return result{v: boolToInt(a != b)}, nil
	case "<":
		return result{v: boolToInt(a < b)}, nil
	case ">":
		return result{v: boolToInt(a > b)}, nil
	case "<=":
		return result{v: boolToInt(a <= b)}, nil
	case ">=":
		return result{v: boolToInt(a >= b)}, nil
	case "&&":
		return result{v: boolToInt(a != 0 && b != 0)}, nil
	case "||":
		return result{v: boolToInt(a != 0 || b != 0)}, nil
	default:
		return result{}, fmt.Errorf("interp: unknown operator %q", n.Op)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// evalCall evaluates arguments in the caller's environment, then pushes a
// fresh environment and argument vector for the callee, per spec.md §4.9:
// "arguments are evaluated in order, a fresh environment is pushed, the
// callee's body is evaluated, the environment is popped."
func (ip *interpreter) evalCall(n telast.RCall, env map[telast.VarID]int64, args []int64) (result, error) {
	argVals := make([]int64, len(n.Args))
	for i, a := range n.Args {
		r, err := ip.eval(a, env, args)
		if err != nil {
			return result{}, err
		}
		argVals[i] = r.v
	}

	var body telast.Expr
	if n.Func.IsCross {
		fd, ok := ip.reg.Get(n.Func.Cross)
		if !ok {
			return result{}, fmt.Errorf("interp: call to unregistered function %s", n.Func.Cross.String())
		}
		body = fd.Body
	} else {
		body = ip.table.Funcs[n.Func.Local].AST
	}

	calleeEnv := make(map[telast.VarID]int64)
	r, err := ip.eval(body, calleeEnv, argVals)
	if err != nil {
		return result{}, err
	}
	return result{v: r.v}, nil
}
