package irgraph

import "sort"

// ControlFlowGraph is a directed graph of basic blocks. Each block carries
// the ordered list of IR node ids the compiler scheduled into it; edges are
// block-to-block successor relationships with no slot index.
//
// Blocks may be referenced before they are declared: adding a successor
// edge implicitly declares both endpoints, and a later AddBlock fills in
// the schedule. Insertion order never affects block identity.
type ControlFlowGraph struct {
	schedule map[int][]int // block id -> scheduled node ids
	ids      []int         // block ids in first-seen order
	succs    map[int]map[int]struct{}
}

// NewControlFlow creates an empty ControlFlowGraph.
func NewControlFlow() *ControlFlowGraph {
	return &ControlFlowGraph{
		schedule: make(map[int][]int),
		succs:    make(map[int]map[int]struct{}),
	}
}

func (c *ControlFlowGraph) declare(id int) {
	if _, ok := c.schedule[id]; ok {
		return
	}
	c.schedule[id] = nil
	c.ids = append(c.ids, id)
}

// AddBlock declares a block with its scheduled node list. The list is
// copied and its order preserved exactly: it is the compiler's chosen
// instruction schedule within the block.
func (c *ControlFlowGraph) AddBlock(id int, nodes []int) {
	c.declare(id)
	copied := make([]int, len(nodes))
	copy(copied, nodes)
	c.schedule[id] = copied
}

// AddSuccessor adds a directed edge between two blocks, implicitly
// declaring any endpoint not yet seen.
func (c *ControlFlowGraph) AddSuccessor(from, to int) {
	c.declare(from)
	c.declare(to)
	set, ok := c.succs[from]
	if !ok {
		set = make(map[int]struct{})
		c.succs[from] = set
	}
	set[to] = struct{}{}
}

// HasBlock reports whether the block id has been declared, explicitly or
// via a successor edge.
func (c *ControlFlowGraph) HasBlock(id int) bool {
	_, ok := c.schedule[id]
	return ok
}

// BlockCount returns the number of known blocks.
func (c *ControlFlowGraph) BlockCount() int {
	return len(c.schedule)
}

// BlockIDs returns all block ids, sorted.
func (c *ControlFlowGraph) BlockIDs() []int {
	out := make([]int, 0, len(c.schedule))
	for id := range c.schedule {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BlockNodes returns a copy of the block's scheduled node list, in the
// exact order given by the dump. Blocks only seen as successor targets
// have an empty schedule.
func (c *ControlFlowGraph) BlockNodes(id int) []int {
	nodes := c.schedule[id]
	out := make([]int, len(nodes))
	copy(out, nodes)
	return out
}

// Successors returns the successor block ids of a block, sorted.
func (c *ControlFlowGraph) Successors(id int) []int {
	out := make([]int, 0, len(c.succs[id]))
	for to := range c.succs[id] {
		out = append(out, to)
	}
	sort.Ints(out)
	return out
}

// EdgeCount returns the number of distinct successor edges.
func (c *ControlFlowGraph) EdgeCount() int {
	n := 0
	for _, set := range c.succs {
		n += len(set)
	}
	return n
}
