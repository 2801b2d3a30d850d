// Package registry implements the process-wide function registry described
// in spec.md §4.6: a map from fully-qualified function identity to its
// resolved FuncData, with insert-if-absent semantics so that two modules
// importing the same function converge on one registration and any arity
// mismatch between them is caught as a FunctionOverload error.
//
// It is grounded on linker/linker.go's use of an adaptive radix tree keyed
// by byte-string identity (there: descriptors: art.New()) for deterministic,
// allocation-light storage of a large, append-mostly symbol population.
package registry

import (
	"fmt"
	"sync"

	art "github.com/kralicky/go-adaptive-radix-tree"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/telast"
)

// FuncData is the information recorded for a resolved function: everything
// downstream Resolve and Execute steps need without re-walking the AST.
// Body starts nil (the stub installed before a recursive/imported body is
// resolved, per spec.md §4.8(6)) and is overwritten exactly once.
type FuncData struct {
	FQ    ident.FQ
	Arity int
	Body  telast.Expr
}

// FunctionOverload reports that two definitions for the same fully
// qualified name disagree on arity. Tel has no overloading: the second
// definition loses and resolution of the offending import fails.
type FunctionOverload struct {
	FQ         ident.FQ
	FirstArity int
	NewArity   int
}

func (e *FunctionOverload) Error() string {
	return fmt.Sprintf("function %s already registered with arity %d, cannot redefine with arity %d",
		e.FQ.String(), e.FirstArity, e.NewArity)
}

// Registry is a concurrency-safe FQ -> FuncData map. art.Tree's own
// documentation does not promise safe concurrent writers, so a mutex
// serializes Insert/Search the way the teacher's linker.Symbols guards its
// own art.Tree with symbolsMu.
type Registry struct {
	mu   sync.Mutex
	tree art.Tree
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tree: art.New()}
}

// InsertIfAbsent registers fd under its FQ if no entry yet exists. If an
// entry already exists, it is returned unchanged along with inserted=false;
// the caller compares arities and raises FunctionOverload on mismatch.
func (r *Registry) InsertIfAbsent(fd FuncData) (existing FuncData, inserted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := art.Key(fd.FQ.Bytes())
	if v, found := r.tree.Search(key); found {
		return v.(FuncData), false
	}
	r.tree.Insert(key, fd)
	return fd, true
}

// Get looks up a previously registered FQ.
func (r *Registry) Get(fq ident.FQ) (FuncData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := art.Key(fq.Bytes())
	v, found := r.tree.Search(key)
	if !found {
		return FuncData{}, false
	}
	return v.(FuncData), true
}

// SetBody overwrites the Body of an already-registered FQ in place. This is
// the one mutation spec.md §4.8(6) permits: the stub-then-rewrite step,
// where a placeholder body installed before self-recursive resolution is
// replaced by the real resolved body once resolution of the owning file
// completes. It never changes Arity.
func (r *Registry) SetBody(fq ident.FQ, body telast.Expr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := art.Key(fq.Bytes())
	v, found := r.tree.Search(key)
	if !found {
		return
	}
	fd := v.(FuncData)
	fd.Body = body
	r.tree.Insert(key, fd)
}

// Len reports the number of distinct registered functions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Size()
}
