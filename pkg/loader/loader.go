// Package loader converts a parsed IGV document into a collection of IR
// graphs. It assigns every graph a global ordinal id in document traversal
// order, applies the selection filter, and builds the node/edge/control-flow
// structures unless running in list-only mode.
package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/l3aro/igv-query/pkg/filter"
	"github.com/l3aro/igv-query/pkg/igv"
	"github.com/l3aro/igv-query/pkg/irgraph"
)

// ErrStructural indicates the dump violates a structural invariant: an edge
// or a control-flow block references a node id that was never declared in
// the graph's node set.
var ErrStructural = errors.New("structural invariant violation")

// Options controls how a document is loaded.
type Options struct {
	// Filter selects which graphs to build. nil accepts every graph.
	// Rejected graphs still consume their ordinal id, so filtering never
	// renumbers the survivors.
	Filter *filter.Filter

	// ListOnly records graph identities without building nodes, edges or
	// control-flow contents. Control-flow presence is still detected.
	ListOnly bool
}

// Entry is one loaded graph with its identifying name pair.
type Entry struct {
	// Method is the enclosing method's short name, whitespace-trimmed.
	Method string
	// Phase is the graph's compiler phase name.
	Phase string

	Graph *irgraph.Graph
	// ControlFlow is nil when the dump has no controlFlow element for
	// this graph; an empty element yields an empty, non-nil graph.
	ControlFlow *irgraph.ControlFlowGraph
}

// Collection maps global graph ids to loaded entries. It is built once per
// invocation and read-only afterwards.
type Collection map[int]Entry

// IDs returns the graph ids present in the collection, in ascending order.
func (c Collection) IDs() []int {
	out := make([]int, 0, len(c))
	for id := range c {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Load walks the document's groups and graphs in order and builds the
// collection. The ordinal id counter is local to this call, starts at 0 and
// increments for every graph element encountered, filtered out or not.
func Load(doc *igv.Document, opts Options) (Collection, error) {
	graphs := make(Collection)
	graphID := 0
	for _, group := range doc.Groups {
		method := strings.TrimSpace(group.ShortName)
		for gi := range group.Graphs {
			g := &group.Graphs[gi]
			id := graphID
			graphID++

			if opts.Filter != nil {
				ok, err := opts.Filter.Match(id, method, g.Name)
				if err != nil {
					return nil, fmt.Errorf("filtering graph %d: %w", id, err)
				}
				if !ok {
					continue
				}
			}

			entry, err := buildEntry(g, method, opts.ListOnly)
			if err != nil {
				return nil, fmt.Errorf("graph %d (%s): %w", id, g.Name, err)
			}
			graphs[id] = entry
		}
	}
	return graphs, nil
}

func buildEntry(g *igv.Graph, method string, listOnly bool) (Entry, error) {
	entry := Entry{
		Method: method,
		Phase:  g.Name,
		Graph:  irgraph.New(),
	}
	if g.ControlFlow != nil {
		entry.ControlFlow = irgraph.NewControlFlow()
	}
	if listOnly {
		return entry, nil
	}

	for _, n := range g.Nodes {
		props := make(map[string]string, len(n.Properties))
		for _, p := range n.Properties {
			props[p.Name] = p.Value
		}
		entry.Graph.AddNode(n.ID, props)
	}
	for _, e := range g.Edges {
		// Duplicate (from, to, index) triples collapse inside AddEdge.
		if err := entry.Graph.AddEdge(e.From, e.To, e.Index); err != nil {
			return Entry{}, fmt.Errorf("edge (%d,%d,%d): %w: %w", e.From, e.To, e.Index, ErrStructural, err)
		}
	}

	if g.ControlFlow != nil {
		if err := buildControlFlow(entry.ControlFlow, entry.Graph, g.ControlFlow); err != nil {
			return Entry{}, err
		}
	}
	return entry, nil
}

// buildControlFlow fills cfg from the dump's controlFlow element. Block
// declaration is order-independent: successor edges may name blocks that
// only appear later, or never carry a schedule at all.
func buildControlFlow(cfg *irgraph.ControlFlowGraph, g *irgraph.Graph, cf *igv.ControlFlow) error {
	for _, b := range cf.Blocks {
		for _, nodeID := range b.Nodes {
			if !g.HasNode(nodeID) {
				return fmt.Errorf("block %d schedules undeclared node %d: %w", b.ID, nodeID, ErrStructural)
			}
		}
		cfg.AddBlock(b.ID, b.Nodes)
		for _, succ := range b.Successors {
			cfg.AddSuccessor(b.ID, succ)
		}
	}
	return nil
}
