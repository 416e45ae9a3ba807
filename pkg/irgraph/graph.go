// Package irgraph provides the in-memory representation of compiler IR
// graphs loaded from IGV dumps: a multi-edge directed graph of IR nodes with
// string properties, and a companion control-flow graph of basic blocks.
// Graphs are built once by package loader and read-only afterwards.
package irgraph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNodeNotFound is returned when an edge references a node id that was
// never declared in the graph's node set.
var ErrNodeNotFound = errors.New("node not found")

// EdgeKey is the identity of an edge. Parallel edges between the same node
// pair are distinguished by the slot index (e.g. operand position), so the
// full (From, To, Index) triple is the identity.
type EdgeKey struct {
	From  int
	To    int
	Index int
}

// Graph is a multi-edge directed graph of IR nodes.
type Graph struct {
	props map[int]map[string]string // node id -> properties
	ids   []int                     // node ids in insertion order
	edges map[EdgeKey]struct{}
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		props: make(map[int]map[string]string),
		edges: make(map[EdgeKey]struct{}),
	}
}

// AddNode inserts a node with the given property mapping. The synthetic
// "idx" property (a duplicate of the id) is dropped. The mapping is copied;
// the caller keeps ownership of props. Re-adding an id replaces its
// properties.
func (g *Graph) AddNode(id int, props map[string]string) {
	copied := make(map[string]string, len(props))
	for k, v := range props {
		if k == "idx" {
			continue
		}
		copied[k] = v
	}
	if _, exists := g.props[id]; !exists {
		g.ids = append(g.ids, id)
	}
	g.props[id] = copied
}

// HasNode reports whether a node with the given id was declared.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.props[id]
	return ok
}

// NodeCount returns the number of declared nodes.
func (g *Graph) NodeCount() int {
	return len(g.props)
}

// NodeIDs returns the declared node ids in insertion order.
func (g *Graph) NodeIDs() []int {
	out := make([]int, len(g.ids))
	copy(out, g.ids)
	return out
}

// Properties returns a copy of the property mapping of the node with the
// given id. Edge construction guarantees every referenced node has been
// declared, so a missing id is an invariant violation and panics.
func (g *Graph) Properties(id int) map[string]string {
	props, ok := g.props[id]
	if !ok {
		panic(fmt.Sprintf("irgraph: no node with id %d", id))
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// AddEdge inserts a directed edge from one node to another at the given
// slot index. Inserting a (from, to, index) triple that already exists is a
// no-op: the dump sometimes repeats edges, and duplicates are collapsed
// rather than counted. Both endpoints must have been declared.
func (g *Graph) AddEdge(from, to, index int) error {
	if !g.HasNode(from) {
		return fmt.Errorf("edge source %d: %w", from, ErrNodeNotFound)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("edge destination %d: %w", to, ErrNodeNotFound)
	}
	g.edges[EdgeKey{From: from, To: to, Index: index}] = struct{}{}
	return nil
}

// HasEdge reports whether the exact (from, to, index) triple is present.
func (g *Graph) HasEdge(from, to, index int) bool {
	_, ok := g.edges[EdgeKey{From: from, To: to, Index: index}]
	return ok
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns all edges sorted by (From, To, Index) for deterministic
// iteration.
func (g *Graph) Edges() []EdgeKey {
	out := make([]EdgeKey, 0, len(g.edges))
	for k := range g.edges {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].Index < out[j].Index
	})
	return out
}
