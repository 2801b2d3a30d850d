// Package bench generates synthetic Tel projects for benchmarking the
// engine's parse/resolve/execute pipeline. It has no teacher analog beyond
// a package boundary (kralicky-protocompile/internal/benchmarks is an empty
// submodule in the retrieved pack, pinning dependency versions but
// containing no generator code), so the generator itself is built fresh,
// following the teacher's internal/ convention of keeping non-public tooling
// out of the importable API surface.
package bench

import (
	"fmt"
	"strings"
)

// Chain is a synthetic project: a sequence of .telsb files where file i
// imports file i+1, modeling the deepest import chain the engine is likely
// to see in practice (a library depending on a library depending on a
// library...). Sources is keyed by path, matching source.MapResolver's
// shape so a Chain can be fed directly to an engine under benchmark.
type Chain struct {
	Sources   map[string]string
	EntryFQ   string
	EntryPath string
}

// GenerateChain builds a Chain of depth links, each file importing and
// calling the next, adding its own link index along the way, bottoming out
// at a leaf that returns its argument unchanged. depth must be >= 1.
//
// Link 0 is the entry point and is executed the way engine.ExecuteImpl
// executes any main function: with no argument frame. It may therefore not
// reference (arg N) itself — it seeds the chain with a literal instead,
// matching the S1 scenario's main.telsb/fact_helper.telsb split, where only
// the imported file's body uses (arg N) directly.
func GenerateChain(depth int) Chain {
	if depth < 1 {
		depth = 1
	}
	sources := make(map[string]string, depth)
	for i := 0; i < depth; i++ {
		path := linkPath(i)
		var body strings.Builder
		switch {
		case i == 0 && depth == 1:
			body.WriteString("(print 0)\n")
		case i == 0:
			fmt.Fprintf(&body, "(import %s)\n", linkName(i+1))
			fmt.Fprintf(&body, "(print (call %s 1))\n", linkName(i+1))
		case i < depth-1:
			fmt.Fprintf(&body, "(import %s)\n", linkName(i+1))
			fmt.Fprintf(&body, "(call %s (+ (arg 1) %d))\n", linkName(i+1), i)
		default:
			body.WriteString("(arg 1)\n")
		}
		sources[path] = body.String()
	}
	return Chain{
		Sources:   sources,
		EntryFQ:   linkName(0),
		EntryPath: linkPath(0),
	}
}

// GenerateFanOut builds a single entry file importing width independent
// leaf files, modeling a file with many sibling dependencies (exercising
// the engine's N-1-parallel-plus-Nth-inline resolve fan-out). The results
// are folded with binary "+" (Tel's only variadic-looking operator is
// strictly two-ary), so width leaves become a chain of width-1 nested sums.
func GenerateFanOut(width int) Chain {
	if width < 1 {
		width = 1
	}
	sources := make(map[string]string, width+1)
	var entry strings.Builder
	calls := make([]string, width)
	for i := 0; i < width; i++ {
		name := leafName(i)
		fmt.Fprintf(&entry, "(import %s)\n", name)
		sources[leafPath(i)] = fmt.Sprintf("(+ (arg 1) %d)\n", i)
		calls[i] = fmt.Sprintf("(call %s 1)", name)
	}
	fmt.Fprintf(&entry, "(print %s)\n", foldSum(calls))
	sources["fanout/entry.telsb"] = entry.String()
	return Chain{Sources: sources, EntryFQ: "entry", EntryPath: "fanout/entry.telsb"}
}

// foldSum right-folds a list of expressions into a chain of binary "+"
// forms, e.g. ["a", "b", "c"] -> "(+ a (+ b c))".
func foldSum(exprs []string) string {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return fmt.Sprintf("(+ %s %s)", exprs[0], foldSum(exprs[1:]))
}

func linkPath(i int) string { return fmt.Sprintf("chain/link_%d.telsb", i) }
func linkName(i int) string { return fmt.Sprintf("link_%d", i) }
func leafPath(i int) string { return fmt.Sprintf("fanout/leaf_%d.telsb", i) }
func leafName(i int) string { return fmt.Sprintf("leaf_%d", i) }
