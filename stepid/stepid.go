// Package stepid defines the keys of the parse/resolve/execute caches and
// of the dependency graph: one StepID per demanded operation.
package stepid

import (
	"fmt"

	"github.com/mverleg/tel/ident"
)

// StepID identifies one demanded operation: the root of a run, a parse of a
// single file, a resolve of a single function, or an execute of a main
// function. It is implemented as a closed interface rather than a Rust-style
// tagged union; the four concrete types below are the only implementations.
type StepID interface {
	fmt.Stringer
	stepIDMarker()
}

// RootStepID is the synthetic root of every dependency graph: the top-level
// caller that invokes Execute.
type RootStepID struct{}

func (RootStepID) stepIDMarker() {}
func (RootStepID) String() string { return "Root" }

// ParseID demands that a source file be read and parsed.
type ParseID struct {
	Path ident.Path
}

func (ParseID) stepIDMarker() {}
func (p ParseID) String() string { return fmt.Sprintf("Parse(%s)", p.Path.String()) }

// ResolveID demands that the function named by FQ.Name, whose body lives in
// FQ.Path, be resolved.
type ResolveID struct {
	FQ ident.FQ
}

func (ResolveID) stepIDMarker() {}
func (r ResolveID) String() string { return fmt.Sprintf("Resolve(%s)", r.FQ.String()) }

// ExecID demands that an already-resolved main function be executed.
type ExecID struct {
	Main ident.FQ
}

func (ExecID) stepIDMarker() {}
func (e ExecID) String() string { return fmt.Sprintf("Exec(%s)", e.Main.String()) }

// NewParseStep is a convenience constructor returning ParseID as a StepID.
func NewParseStep(path ident.Path) StepID {
	return ParseID{Path: path}
}

// NewResolveStep is a convenience constructor returning ResolveID as a StepID.
func NewResolveStep(fq ident.FQ) StepID {
	return ResolveID{FQ: fq}
}

// NewExecStep is a convenience constructor returning ExecID as a StepID.
func NewExecStep(main ident.FQ) StepID {
	return ExecID{Main: main}
}
