// Package depgraph records the caller -> callee demand edges that the
// engine generates as it services Parse/Resolve/Exec requests, and detects
// cycles among Resolve nodes (mutually recursive imports).
package depgraph

import (
	"sync"

	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/stepid"
)

// Graph is a concurrent map from a StepID to the set of StepIDs it demands.
// Edges are only ever added, never removed; adding the same edge twice is a
// no-op. All writes are commutative (set insert), so there is no need for
// per-key ordering guarantees between concurrent writers.
type Graph struct {
	mu    sync.RWMutex
	edges map[stepid.StepID]map[stepid.StepID]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{edges: make(map[stepid.StepID]map[stepid.StepID]struct{}, 256)}
}

// RegisterDependency records that caller demands callee. Idempotent and
// safe for concurrent callers. A self-edge (caller == callee) is dropped;
// it would never reflect real demand and would otherwise make the cycle
// DFS below degenerate.
func (g *Graph) RegisterDependency(caller, callee stepid.StepID) {
	if caller == callee {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.edges[caller]
	if !ok {
		set = make(map[stepid.StepID]struct{}, 4)
		g.edges[caller] = set
	}
	set[callee] = struct{}{}
}

// GetDependencies returns a snapshot of the outgoing edges for step.
func (g *Graph) GetDependencies(step stepid.StepID) []stepid.StepID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set := g.edges[step]
	out := make([]stepid.StepID, 0, len(set))
	for callee := range set {
		out = append(out, callee)
	}
	return out
}

// IterEdges returns a snapshot of every caller -> callee edge, for the
// --show-deps tree printer.
func (g *Graph) IterEdges() map[stepid.StepID][]stepid.StepID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[stepid.StepID][]stepid.StepID, len(g.edges))
	for caller, set := range g.edges {
		callees := make([]stepid.StepID, 0, len(set))
		for callee := range set {
			callees = append(callees, callee)
		}
		out[caller] = callees
	}
	return out
}

// FindResolveCycle performs a depth-first walk restricted to Resolve nodes,
// starting at Resolve(target), and returns the path of FQs from target back
// to the first repeated node when a cycle exists. This is the one place the
// graph is consulted for correctness rather than merely for reporting: the
// resolver calls this before awaiting a lazy cell it found in the
// Initializing state, to turn a would-be deadlock into a diagnosable error.
func (g *Graph) FindResolveCycle(target ident.FQ) []ident.FQ {
	start := stepid.ResolveID{FQ: target}
	visited := make(map[stepid.StepID]struct{})
	var path []ident.FQ
	if g.dfsResolve(start, visited, &path) {
		return path
	}
	return nil
}

func (g *Graph) dfsResolve(step stepid.StepID, visited map[stepid.StepID]struct{}, path *[]ident.FQ) bool {
	resolveStep, ok := step.(stepid.ResolveID)
	if !ok {
		return false
	}
	if _, seen := visited[step]; seen {
		*path = append(*path, resolveStep.FQ)
		return true
	}
	visited[step] = struct{}{}
	*path = append(*path, resolveStep.FQ)

	for _, callee := range g.GetDependencies(step) {
		if _, isResolve := callee.(stepid.ResolveID); !isResolve {
			continue
		}
		if g.dfsResolve(callee, visited, path) {
			return true
		}
	}

	*path = (*path)[:len(*path)-1]
	delete(visited, step)
	return false
}
