// Package render builds human- and machine-readable dependency trees from a
// depgraph.Graph, for the --show-deps CLI collaborator described in
// spec.md §6.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mverleg/tel/depgraph"
	"github.com/mverleg/tel/stepid"
)

// Node is one entry in the rendered dependency tree.
type Node struct {
	Step     string `json:"step"`
	Children []Node `json:"children,omitempty"`
}

// Tree builds a forest of Nodes rooted at every StepID with no incoming
// edge (normally just stepid.RootStepID{}), grounded on
// original_source/sandbox/src/qcompiler2.rs's DagIndex/build_tree_nodes.
func Tree(g *depgraph.Graph) []Node {
	edges := g.IterEdges()

	hasParent := make(map[stepid.StepID]bool)
	allNodes := make(map[stepid.StepID]struct{})
	for caller, callees := range edges {
		allNodes[caller] = struct{}{}
		for _, callee := range callees {
			allNodes[callee] = struct{}{}
			hasParent[callee] = true
		}
	}

	var roots []stepid.StepID
	for n := range allNodes {
		if !hasParent[n] {
			roots = append(roots, n)
		}
	}
	sortSteps(roots)

	seen := make(map[stepid.StepID]bool)
	out := make([]Node, 0, len(roots))
	for _, r := range roots {
		out = append(out, buildNode(r, edges, seen))
	}
	return out
}

func buildNode(step stepid.StepID, edges map[stepid.StepID][]stepid.StepID, seen map[stepid.StepID]bool) Node {
	n := Node{Step: step.String()}
	if seen[step] {
		return n
	}
	seen[step] = true
	children := append([]stepid.StepID(nil), edges[step]...)
	sortSteps(children)
	for _, c := range children {
		n.Children = append(n.Children, buildNode(c, edges, seen))
	}
	return n
}

func sortSteps(steps []stepid.StepID) {
	sort.Slice(steps, func(i, j int) bool { return steps[i].String() < steps[j].String() })
}

// JSON renders the dependency tree as indented JSON.
func JSON(g *depgraph.Graph) (string, error) {
	tree := Tree(g)
	b, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render dependency tree: %w", err)
	}
	return string(b), nil
}

// Text renders the dependency tree as an indented, ASCII-box tree, in the
// style of original_source/sandbox/src/qcompiler2.rs's format_tree_node.
func Text(g *depgraph.Graph) string {
	var buf strings.Builder
	tree := Tree(g)
	for i, n := range tree {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeNode(&buf, n, "", true)
	}
	return buf.String()
}

func writeNode(buf *strings.Builder, n Node, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		buf.WriteString(n.Step + "\n")
	} else {
		buf.WriteString(prefix + connector + n.Step + "\n")
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range n.Children {
		writeNode(buf, child, childPrefix, i == len(n.Children)-1)
	}
}
