package parse_test

import (
	"testing"

	"github.com/mverleg/tel/parse"
	"github.com/mverleg/tel/telast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLetAndPrint(t *testing.T) {
	src := "(let n 5)\n(print (call fact_helper n 1))"
	expr, err := parse.Parse("main.telsb", src)
	require.NoError(t, err)

	seq, ok := expr.(telast.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Exprs, 2)

	let, ok := seq.Exprs[0].(telast.Let)
	require.True(t, ok)
	assert.Equal(t, "n", let.Name)
	num, ok := let.Value.(telast.Number)
	require.True(t, ok)
	assert.EqualValues(t, 5, num.Value)

	print, ok := seq.Exprs[1].(telast.Print)
	require.True(t, ok)
	call, ok := print.Expr.(telast.Call)
	require.True(t, ok)
	assert.Equal(t, "fact_helper", call.FuncName)
	require.Len(t, call.Args, 2)
}

func TestParseFunctionWithArgsAndBinaryOp(t *testing.T) {
	src := "(function add (+ (arg 1) (arg 2)))"
	expr, err := parse.Parse("main.telsb", src)
	require.NoError(t, err)

	seq := expr.(telast.Sequence)
	fd := seq.Exprs[0].(telast.FunctionDef)
	assert.Equal(t, "add", fd.Name)
	bop := fd.Body.(telast.BinaryOp)
	assert.Equal(t, "+", bop.Op)
	assert.Equal(t, uint8(1), bop.Left.(telast.Arg).N)
	assert.Equal(t, uint8(2), bop.Right.(telast.Arg).N)
}

func TestParseIfWithoutElse(t *testing.T) {
	src := "(if (== (arg 1) 0) (arg 2))"
	expr, err := parse.Parse("fact_helper.telsb", src)
	require.NoError(t, err)
	seq := expr.(telast.Sequence)
	ifExpr := seq.Exprs[0].(telast.If)
	assert.Nil(t, ifExpr.Else)
}

func TestParseEmptySourceIsError(t *testing.T) {
	_, err := parse.Parse("empty.telsb", "   ")
	require.Error(t, err)
	assert.IsType(t, &telast.EmptyExpression{}, err)
}

func TestParseImport(t *testing.T) {
	expr, err := parse.Parse("main.telsb", "(import fact_helper)")
	require.NoError(t, err)
	seq := expr.(telast.Sequence)
	imp := seq.Exprs[0].(telast.Import)
	assert.Equal(t, "fact_helper", imp.Name)
}
