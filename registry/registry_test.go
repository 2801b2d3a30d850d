package registry_test

import (
	"testing"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fq(path, name string) ident.FQ {
	return ident.NewFQ(ident.NewPath(path), ident.NewName(name))
}

func TestInsertIfAbsentFirstWriterWins(t *testing.T) {
	r := registry.New()
	f := fq("math.telsb", "square")

	existing, inserted := r.InsertIfAbsent(registry.FuncData{FQ: f, Arity: 1})
	assert.True(t, inserted)
	assert.Equal(t, 1, existing.Arity)

	existing, inserted = r.InsertIfAbsent(registry.FuncData{FQ: f, Arity: 1})
	assert.False(t, inserted)
	assert.Equal(t, 1, existing.Arity)
	assert.Equal(t, 1, r.Len())
}

func TestInsertIfAbsentArityMismatchIsCallerDetected(t *testing.T) {
	r := registry.New()
	f := fq("math.telsb", "square")

	r.InsertIfAbsent(registry.FuncData{FQ: f, Arity: 1})
	existing, inserted := r.InsertIfAbsent(registry.FuncData{FQ: f, Arity: 2})

	require.False(t, inserted)
	if existing.Arity != 2 {
		err := &registry.FunctionOverload{FQ: f, FirstArity: existing.Arity, NewArity: 2}
		assert.Contains(t, err.Error(), "already registered")
	}
}

func TestGetMissing(t *testing.T) {
	r := registry.New()
	_, ok := r.Get(fq("a.telsb", "x"))
	assert.False(t, ok)
}
