// Package igv defines the document model for IGV XML dumps, the graph dump
// format emitted by the HotSpot JVM for compiler intermediate-representation
// graphs. It provides a typed, validated in-memory tree; converting the tree
// into usable graph structures is the job of package loader.
package igv

// Document is a parsed IGV dump: an ordered sequence of groups.
type Document struct {
	Groups []Group
}

// Group is one compiled method's record. It holds the method descriptor and
// one graph per compilation phase snapshot, in document order.
type Group struct {
	// Name is the fully qualified method name.
	Name string
	// ShortName is the display name, kept verbatim from the dump
	// (including any surrounding whitespace the compiler emitted).
	ShortName string
	// BCI is the byte-code index of the method.
	BCI int

	Graphs []Graph
}

// Graph is a single snapshot of a method's IR at one compiler phase.
type Graph struct {
	// Name identifies the compiler phase.
	Name string

	Nodes []Node
	Edges []Edge

	// ControlFlow is nil when the dump has no controlFlow element for
	// this graph. An empty element yields a non-nil, empty value.
	ControlFlow *ControlFlow
}

// Node is one IR node with its property block.
type Node struct {
	ID         int
	Properties []Property
}

// Property is a single name/value pair from a node's property block.
// Values are whitespace-trimmed.
type Property struct {
	Name  string
	Value string
}

// Edge connects two nodes. Index is the slot index distinguishing parallel
// edges between the same node pair (e.g. distinct input operand positions).
// The dump may contain duplicate (From, To, Index) triples.
type Edge struct {
	From  int
	To    int
	Index int
}

// ControlFlow is the basic-block structure of a graph.
type ControlFlow struct {
	Blocks []Block
}

// Block is one basic block. Nodes lists the member node ids in the order
// the compiler scheduled them; that order is semantically meaningful.
// Successors names the blocks this block can branch to.
type Block struct {
	ID         int
	Nodes      []int
	Successors []int
}
