package telast_test

import (
	"testing"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/telast"
	"github.com/stretchr/testify/assert"
)

func TestSpanString(t *testing.T) {
	s := telast.Span{File: "main.telsb", Line: 3, Col: 5}
	assert.Equal(t, "main.telsb:3:5", s.String())
	assert.Equal(t, "<unknown>", telast.Span{}.String())
}

func TestSymbolTableNewVarAndFunc(t *testing.T) {
	var t1 telast.SymbolTable
	v0 := t1.NewVar("n", 0)
	v1 := t1.NewVar("m", 0)
	assert.Equal(t, telast.VarID(0), v0)
	assert.Equal(t, telast.VarID(1), v1)

	f0 := t1.NewFunc(telast.FuncInfo{Arity: 2})
	assert.Equal(t, telast.FuncID(0), f0)
	assert.Len(t, t1.Funcs, 1)
}

func TestSymbolTableMergeVarsOnlyTouchesVars(t *testing.T) {
	var a telast.SymbolTable
	a.NewVar("x", 0)
	a.NewFunc(telast.FuncInfo{Arity: 0})

	var b telast.SymbolTable
	b.NewVar("y", 0)
	b.NewFunc(telast.FuncInfo{Arity: 1})

	a.MergeVars(b)
	assert.Len(t, a.Vars, 2)
	assert.Len(t, a.Funcs, 1)
}

func TestFuncRefLocalAndCross(t *testing.T) {
	local := telast.LocalFuncRef(telast.FuncID(3))
	assert.False(t, local.IsCross)
	assert.Equal(t, telast.FuncID(3), local.Local)

	fq := ident.NewFQ(ident.NewPath("helper.telsb"), ident.NewName("helper"))
	cross := telast.CrossFuncRef(fq)
	assert.True(t, cross.IsCross)
	assert.Equal(t, fq, cross.Cross)
}

func TestCycleErrorMessageListsPath(t *testing.T) {
	a := ident.NewFQ(ident.NewPath("a.telsb"), ident.NewName("a"))
	b := ident.NewFQ(ident.NewPath("b.telsb"), ident.NewName("b"))
	err := &telast.Cycle{Path: []ident.FQ{a, b, a}}
	assert.Contains(t, err.Error(), "a.telsb::a -> b.telsb::b -> a.telsb::a")
}
