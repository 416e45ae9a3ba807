package irgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNode_DropsIdx(t *testing.T) {
	g := New()
	g.AddNode(1, map[string]string{"name": "Start", "idx": "1"})

	props := g.Properties(1)
	assert.Equal(t, "Start", props["name"])
	_, hasIdx := props["idx"]
	assert.False(t, hasIdx, "idx must never appear in a node's property mapping")
}

func TestGraph_AddNode_CopiesProperties(t *testing.T) {
	g := New()
	src := map[string]string{"name": "Start"}
	g.AddNode(1, src)
	src["name"] = "mutated"

	assert.Equal(t, "Start", g.Properties(1)["name"])

	// The returned mapping is a copy too.
	g.Properties(1)["name"] = "mutated"
	assert.Equal(t, "Start", g.Properties(1)["name"])
}

func TestGraph_AddEdge_CollapsesDuplicates(t *testing.T) {
	g := New()
	g.AddNode(1, nil)
	g.AddNode(2, nil)

	require.NoError(t, g.AddEdge(1, 2, 0))
	require.NoError(t, g.AddEdge(1, 2, 0)) // duplicate triple
	require.NoError(t, g.AddEdge(1, 2, 1)) // distinct slot index

	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge(1, 2, 0))
	assert.True(t, g.HasEdge(1, 2, 1))
	assert.False(t, g.HasEdge(2, 1, 0))
	assert.Equal(t, []EdgeKey{{1, 2, 0}, {1, 2, 1}}, g.Edges())
}

func TestGraph_AddEdge_UndeclaredEndpoint(t *testing.T) {
	g := New()
	g.AddNode(1, nil)

	err := g.AddEdge(1, 99, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	err = g.AddEdge(99, 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGraph_Properties_PanicsOnMissingNode(t *testing.T) {
	g := New()
	g.AddNode(1, nil)
	assert.Panics(t, func() { g.Properties(2) })
}

func TestGraph_NodeIDs_InsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []int{5, 1, 9} {
		g.AddNode(id, nil)
	}
	assert.Equal(t, []int{5, 1, 9}, g.NodeIDs())
	assert.Equal(t, 3, g.NodeCount())
}

func TestControlFlow_PreservesScheduleOrder(t *testing.T) {
	c := NewControlFlow()
	c.AddBlock(0, []int{9, 3, 7})

	// Document order is the compiler's schedule; it must not be sorted.
	assert.Equal(t, []int{9, 3, 7}, c.BlockNodes(0))
}

func TestControlFlow_ForwardReferences(t *testing.T) {
	c := NewControlFlow()
	c.AddSuccessor(0, 2) // block 2 not declared yet
	c.AddBlock(2, []int{4})
	c.AddBlock(0, []int{1})

	assert.True(t, c.HasBlock(0))
	assert.True(t, c.HasBlock(2))
	assert.Equal(t, []int{2}, c.Successors(0))
	assert.Equal(t, []int{4}, c.BlockNodes(2))
	assert.Equal(t, 2, c.BlockCount())
	assert.Equal(t, 1, c.EdgeCount())
}

func TestControlFlow_SuccessorOnlyBlockHasEmptySchedule(t *testing.T) {
	c := NewControlFlow()
	c.AddSuccessor(0, 7)
	assert.Empty(t, c.BlockNodes(7))
}

func TestControlFlow_DuplicateSuccessorsCollapse(t *testing.T) {
	c := NewControlFlow()
	c.AddSuccessor(0, 1)
	c.AddSuccessor(0, 1)
	c.AddSuccessor(0, 2)

	assert.Equal(t, []int{1, 2}, c.Successors(0))
	assert.Equal(t, 2, c.EdgeCount())
	assert.Equal(t, []int{0, 1, 2}, c.BlockIDs())
}
