package source_test

import (
	"context"
	"testing"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolverReadsRegisteredSource(t *testing.T) {
	r := source.MapResolver{Sources: map[string]string{
		"main.telsb": "(print 1)",
	}}
	text, err := r.Read(context.Background(), ident.NewPath("main.telsb"))
	require.NoError(t, err)
	assert.Equal(t, "(print 1)", text)
}

func TestMapResolverMissingPath(t *testing.T) {
	r := source.MapResolver{Sources: map[string]string{}}
	_, err := r.Read(context.Background(), ident.NewPath("missing.telsb"))
	assert.Error(t, err)
}
