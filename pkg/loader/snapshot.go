package loader

import (
	"fmt"
	"io"

	"github.com/l3aro/igv-query/pkg/irgraph"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the serializable form of a Collection, used by the export
// command. Graph structure is flattened into plain slices/maps so both the
// msgpack and JSON encoders can handle it.
type Snapshot struct {
	Graphs map[int]GraphSnapshot `msgpack:"graphs" json:"graphs"`
}

// GraphSnapshot is one graph's serialized entry.
type GraphSnapshot struct {
	Method string                    `msgpack:"method" json:"method"`
	Phase  string                    `msgpack:"phase" json:"phase"`
	Nodes  map[int]map[string]string `msgpack:"nodes" json:"nodes"`
	Edges  []EdgeSnapshot            `msgpack:"edges" json:"edges"`

	// HasControlFlow distinguishes an absent control-flow graph from an
	// empty one.
	HasControlFlow bool            `msgpack:"has_cfg" json:"has_control_flow"`
	Blocks         []BlockSnapshot `msgpack:"blocks,omitempty" json:"blocks,omitempty"`
}

// EdgeSnapshot is one edge triple.
type EdgeSnapshot struct {
	From  int `msgpack:"from" json:"from"`
	To    int `msgpack:"to" json:"to"`
	Index int `msgpack:"index" json:"index"`
}

// BlockSnapshot is one control-flow block with its scheduled node order.
type BlockSnapshot struct {
	ID         int   `msgpack:"id" json:"id"`
	Nodes      []int `msgpack:"nodes" json:"nodes"`
	Successors []int `msgpack:"successors" json:"successors"`
}

// Snapshot flattens the collection into its serializable form.
func (c Collection) Snapshot() *Snapshot {
	snap := &Snapshot{Graphs: make(map[int]GraphSnapshot, len(c))}
	for id, entry := range c {
		gs := GraphSnapshot{
			Method: entry.Method,
			Phase:  entry.Phase,
			Nodes:  make(map[int]map[string]string, entry.Graph.NodeCount()),
		}
		for _, nodeID := range entry.Graph.NodeIDs() {
			gs.Nodes[nodeID] = entry.Graph.Properties(nodeID)
		}
		for _, e := range entry.Graph.Edges() {
			gs.Edges = append(gs.Edges, EdgeSnapshot{From: e.From, To: e.To, Index: e.Index})
		}
		if entry.ControlFlow != nil {
			gs.HasControlFlow = true
			for _, blockID := range entry.ControlFlow.BlockIDs() {
				gs.Blocks = append(gs.Blocks, BlockSnapshot{
					ID:         blockID,
					Nodes:      entry.ControlFlow.BlockNodes(blockID),
					Successors: entry.ControlFlow.Successors(blockID),
				})
			}
		}
		snap.Graphs[id] = gs
	}
	return snap
}

// FromSnapshot rebuilds a Collection from its serialized form.
func FromSnapshot(snap *Snapshot) (Collection, error) {
	c := make(Collection, len(snap.Graphs))
	for id, gs := range snap.Graphs {
		entry := Entry{
			Method: gs.Method,
			Phase:  gs.Phase,
			Graph:  irgraph.New(),
		}
		for nodeID, props := range gs.Nodes {
			entry.Graph.AddNode(nodeID, props)
		}
		for _, e := range gs.Edges {
			if err := entry.Graph.AddEdge(e.From, e.To, e.Index); err != nil {
				return nil, fmt.Errorf("graph %d: %w", id, err)
			}
		}
		if gs.HasControlFlow {
			entry.ControlFlow = irgraph.NewControlFlow()
			for _, b := range gs.Blocks {
				entry.ControlFlow.AddBlock(b.ID, b.Nodes)
				for _, succ := range b.Successors {
					entry.ControlFlow.AddSuccessor(b.ID, succ)
				}
			}
		}
		c[id] = entry
	}
	return c, nil
}

// Save writes the collection to w as msgpack.
func (c Collection) Save(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(c.Snapshot()); err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	return nil
}

// LoadSaved reads a msgpack-encoded collection from r.
func LoadSaved(r io.Reader) (Collection, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	return FromSnapshot(&snap)
}
