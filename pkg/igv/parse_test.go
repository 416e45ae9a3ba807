package igv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDump = `<graphDocument>
  <group>
    <method name="com.example.Foo.foo(I)I" shortName=" foo " bci="0"/>
    <graph name="Phase1">
      <nodes>
        <node id="1">
          <properties>
            <p name="name">  Start  </p>
            <p name="idx">1</p>
          </properties>
        </node>
        <node id="2">
          <properties>
            <p name="name">Return</p>
          </properties>
        </node>
      </nodes>
      <edges>
        <edge from="1" to="2" index="0"/>
      </edges>
      <controlFlow>
        <block name="0">
          <nodes>
            <node id="1"/>
            <node id="2"/>
          </nodes>
          <successors>
            <successor name="1"/>
          </successors>
        </block>
      </controlFlow>
    </graph>
    <graph name="Phase2">
      <nodes/>
      <edges/>
    </graph>
  </group>
</graphDocument>`

func TestParse_Valid(t *testing.T) {
	doc, err := Parse(strings.NewReader(validDump))
	require.NoError(t, err)
	require.Len(t, doc.Groups, 1)

	group := doc.Groups[0]
	assert.Equal(t, "com.example.Foo.foo(I)I", group.Name)
	assert.Equal(t, " foo ", group.ShortName, "shortName is kept verbatim at parse level")
	assert.Equal(t, 0, group.BCI)
	require.Len(t, group.Graphs, 2)

	g := group.Graphs[0]
	assert.Equal(t, "Phase1", g.Name)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, 1, g.Nodes[0].ID)
	assert.Equal(t, []Property{{Name: "name", Value: "Start"}, {Name: "idx", Value: "1"}}, g.Nodes[0].Properties)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{From: 1, To: 2, Index: 0}, g.Edges[0])

	require.NotNil(t, g.ControlFlow)
	require.Len(t, g.ControlFlow.Blocks, 1)
	block := g.ControlFlow.Blocks[0]
	assert.Equal(t, 0, block.ID)
	assert.Equal(t, []int{1, 2}, block.Nodes)
	assert.Equal(t, []int{1}, block.Successors)

	empty := group.Graphs[1]
	assert.Empty(t, empty.Nodes)
	assert.Empty(t, empty.Edges)
	assert.Nil(t, empty.ControlFlow, "no controlFlow element means nil")
}

func TestParse_EmptyControlFlowElement(t *testing.T) {
	dump := `<graphDocument>
  <group>
    <method name="m" shortName="m" bci="0"/>
    <graph name="P">
      <nodes/>
      <edges/>
      <controlFlow/>
    </graph>
  </group>
</graphDocument>`

	doc, err := Parse(strings.NewReader(dump))
	require.NoError(t, err)
	cf := doc.Groups[0].Graphs[0].ControlFlow
	require.NotNil(t, cf, "an empty controlFlow element still counts as present")
	assert.Empty(t, cf.Blocks)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{
			name: "broken XML",
			dump: `<graphDocument><group>`,
		},
		{
			name: "missing method element",
			dump: `<graphDocument><group><graph name="P"/></group></graphDocument>`,
		},
		{
			name: "missing shortName attribute",
			dump: `<graphDocument><group><method name="m" bci="0"/></group></graphDocument>`,
		},
		{
			name: "non-integer bci",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="x"/></group></graphDocument>`,
		},
		{
			name: "missing graph name",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/><graph/></group></graphDocument>`,
		},
		{
			name: "missing node id",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/>
<graph name="P"><nodes><node/></nodes></graph></group></graphDocument>`,
		},
		{
			name: "missing property name",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/>
<graph name="P"><nodes><node id="1"><properties><p>v</p></properties></node></nodes></graph></group></graphDocument>`,
		},
		{
			name: "missing edge index",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/>
<graph name="P"><nodes><node id="1"/></nodes><edges><edge from="1" to="1"/></edges></graph></group></graphDocument>`,
		},
		{
			name: "non-integer block name",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/>
<graph name="P"><controlFlow><block name="B0"/></controlFlow></graph></group></graphDocument>`,
		},
		{
			name: "missing successor name",
			dump: `<graphDocument><group><method name="m" shortName="m" bci="0"/>
<graph name="P"><controlFlow><block name="0"><successors><successor/></successors></block></controlFlow></graph></group></graphDocument>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.dump))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.xml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed, "an unreadable file is an I/O failure, not a malformed dump")
}
