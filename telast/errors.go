package telast

import (
	"fmt"

	"github.com/mverleg/tel/ident"
)

// Parse errors (spec.md §7). One concrete type per shape, in the style of
// the teacher's reporter.ErrorWithPos/AlreadyDefinedError, rather than a
// single stringly-typed error.

type UnexpectedEOF struct {
	File string
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("%s: unexpected end of input", e.File)
}

type UnexpectedToken struct {
	File string
	Span Span
	Got  string
	Want string
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("%s: unexpected token %q, expected %s", e.Span, e.Got, e.Want)
}

type InvalidNumber struct {
	Span Span
	Text string
}

func (e *InvalidNumber) Error() string {
	return fmt.Sprintf("%s: invalid number literal %q", e.Span, e.Text)
}

type EmptyExpression struct {
	File string
}

func (e *EmptyExpression) Error() string {
	return fmt.Sprintf("%s: empty expression", e.File)
}

type IOError struct {
	Path ident.Path
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path.String(), e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Resolve errors (spec.md §7).

type UndefinedVariable struct {
	Unit ident.FQ
	Name string
	Span Span
}

func (e *UndefinedVariable) Error() string {
	return fmt.Sprintf("%s: undefined variable %q (at %s)", e.Unit.String(), e.Name, e.Span)
}

type UndefinedFunction struct {
	Unit ident.FQ
	Name string
	Span Span
}

func (e *UndefinedFunction) Error() string {
	return fmt.Sprintf("%s: undefined function %q (at %s)", e.Unit.String(), e.Name, e.Span)
}

type InvalidImportPath struct {
	Name string
	Span Span
}

func (e *InvalidImportPath) Error() string {
	return fmt.Sprintf("%s: invalid import name %q (must not contain '.' or a path separator)", e.Span, e.Name)
}

type VariableAlreadyDefined struct {
	Name string
	Span Span
}

func (e *VariableAlreadyDefined) Error() string {
	return fmt.Sprintf("%s: variable %q already defined in this scope", e.Span, e.Name)
}

type ArgOutsideFunction struct {
	Span Span
}

func (e *ArgOutsideFunction) Error() string {
	return fmt.Sprintf("%s: arg() used outside a function body", e.Span)
}

type InvalidArgNumber struct {
	Span Span
	N    int
}

func (e *InvalidArgNumber) Error() string {
	return fmt.Sprintf("%s: invalid argument number %d", e.Span, e.N)
}

type ImportNotAtTop struct {
	Span Span
}

func (e *ImportNotAtTop) Error() string {
	return fmt.Sprintf("%s: import must appear before function definitions and statements", e.Span)
}

type FunctionDefNotAfterImports struct {
	Span Span
}

func (e *FunctionDefNotAfterImports) Error() string {
	return fmt.Sprintf("%s: function definition must appear after imports and before statements", e.Span)
}

type FunctionAlreadyDefined struct {
	Name string
	Span Span
}

func (e *FunctionAlreadyDefined) Error() string {
	return fmt.Sprintf("%s: function %q already defined", e.Span, e.Name)
}

type ArityMismatch struct {
	FuncName string
	Want     int
	Got      int
	Span     Span
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%s: call to %q expects %d argument(s), got %d", e.Span, e.FuncName, e.Want, e.Got)
}

type ArityGap struct {
	FuncName string
	MaxArg   int
}

func (e *ArityGap) Error() string {
	return fmt.Sprintf("function %q uses arg(%d) but has a gap in its argument numbers", e.FuncName, e.MaxArg)
}

type UnreachableCode struct {
	Span Span
}

func (e *UnreachableCode) Error() string {
	return fmt.Sprintf("%s: unreachable code was reached during resolution", e.Span)
}

// Cycle reports a Resolve->Resolve cycle. Path lists the FQs on the cycle,
// starting and ending at the same FQ (spec.md §8 property 6 / scenario S4).
type Cycle struct {
	Path []ident.FQ
}

func (e *Cycle) Error() string {
	parts := make([]string, len(e.Path))
	for i, fq := range e.Path {
		parts[i] = fq.String()
	}
	return fmt.Sprintf("import cycle detected: %s", joinArrow(parts))
}

func joinArrow(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}

type JoinError struct {
	Unit ident.FQ
	Err  error
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("%s: sibling resolve task failed: %v", e.Unit.String(), e.Err)
}

func (e *JoinError) Unwrap() error { return e.Err }

// ParseErrorAt wraps a parse failure encountered while resolving an import,
// surfaced at the importer (spec.md §7: "a parse failure for an imported
// file surfaces as a Resolve::ParseError at the importer").
type ParseErrorAt struct {
	Path ident.Path
	Err  error
}

func (e *ParseErrorAt) Error() string {
	return fmt.Sprintf("%s: parse failed: %v", e.Path.String(), e.Err)
}

func (e *ParseErrorAt) Unwrap() error { return e.Err }

type IOErrorAt struct {
	Path ident.Path
	Err  error
}

func (e *IOErrorAt) Error() string {
	return fmt.Sprintf("%s: %v", e.Path.String(), e.Err)
}

func (e *IOErrorAt) Unwrap() error { return e.Err }

// Execute errors (spec.md §7).

type DivisionByZero struct {
	Span Span
}

func (e *DivisionByZero) Error() string {
	return fmt.Sprintf("%s: division by zero", e.Span)
}

type ArgNotProvided struct {
	N    int
	Span Span
}

func (e *ArgNotProvided) Error() string {
	return fmt.Sprintf("%s: argument %d was not provided", e.Span, e.N)
}

type PanicError struct {
	Loc Span
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic", e.Loc)
}
