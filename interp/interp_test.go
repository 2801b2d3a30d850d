package interp_test

import (
	"testing"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/interp"
	"github.com/mverleg/tel/registry"
	"github.com/mverleg/tel/telast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factorialBody builds (if (== (arg 1) 0) (arg 2) (call fact (- (arg 1) 1) (* (arg 1) (arg 2))))
// as a self-recursive local function, referenced by FuncID 0.
func factorialBody() telast.Expr {
	return telast.RIf{
		Cond: telast.RBinaryOp{Op: "==", Left: telast.RArg{N: 1}, Right: telast.RNumber{Value: 0}},
		Then: telast.RArg{N: 2},
		Else: telast.RCall{
			Func: telast.LocalFuncRef(0),
			Args: []telast.Expr{
				telast.RBinaryOp{Op: "-", Left: telast.RArg{N: 1}, Right: telast.RNumber{Value: 1}},
				telast.RBinaryOp{Op: "*", Left: telast.RArg{N: 1}, Right: telast.RArg{N: 2}},
			},
		},
	}
}

func TestFactorialRecursion(t *testing.T) {
	table := &telast.SymbolTable{}
	table.NewVar("n", 0)
	table.NewFunc(telast.FuncInfo{Arity: 2, AST: factorialBody()})

	body := telast.RSequence{Exprs: []telast.Expr{
		telast.RLet{Var: 0, Value: telast.RNumber{Value: 5}},
		telast.RPrint{Expr: telast.RCall{
			Func: telast.LocalFuncRef(0),
			Args: []telast.Expr{telast.VarRef{ID: 0}, telast.RNumber{Value: 1}},
		}},
	}}

	err := interp.Run(body, table, registry.New())
	require.NoError(t, err)
}

func TestDivisionByZero(t *testing.T) {
	table := &telast.SymbolTable{}
	body := telast.RBinaryOp{Op: "/", Left: telast.RNumber{Value: 10}, Right: telast.RNumber{Value: 0}}

	err := interp.Run(body, table, registry.New())
	require.Error(t, err)
	assert.IsType(t, &telast.DivisionByZero{}, err)
}

func TestArgNotProvided(t *testing.T) {
	table := &telast.SymbolTable{}
	body := telast.RArg{N: 3}

	err := interp.Run(body, table, registry.New())
	require.Error(t, err)
	assert.IsType(t, &telast.ArgNotProvided{}, err)
}

func TestCallsCrossModuleFunctionViaRegistry(t *testing.T) {
	reg := registry.New()
	fq := ident.NewFQ(ident.NewPath("helper.telsb"), ident.NewName("helper"))
	reg.InsertIfAbsent(registry.FuncData{
		FQ:    fq,
		Arity: 1,
		Body:  telast.RBinaryOp{Op: "+", Left: telast.RArg{N: 1}, Right: telast.RNumber{Value: 1}},
	})

	table := &telast.SymbolTable{}
	body := telast.RCall{Func: telast.CrossFuncRef(fq), Args: []telast.Expr{telast.RNumber{Value: 41}}}

	err := interp.Run(body, table, reg)
	require.NoError(t, err)
}
