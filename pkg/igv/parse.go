package igv

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed indicates the input is not a well-formed IGV dump: the XML
// fails to parse, or a required attribute or child element is missing.
var ErrMalformed = errors.New("malformed IGV document")

// Raw decoding targets. Required attributes are pointers so a missing
// attribute can be told apart from an empty one.
type xmlDocument struct {
	Groups []xmlGroup `xml:"group"`
}

type xmlGroup struct {
	Method *xmlMethod `xml:"method"`
	Graphs []xmlGraph `xml:"graph"`
}

type xmlMethod struct {
	Name      *string `xml:"name,attr"`
	ShortName *string `xml:"shortName,attr"`
	BCI       *string `xml:"bci,attr"`
}

type xmlGraph struct {
	Name        *string         `xml:"name,attr"`
	Nodes       []xmlNode       `xml:"nodes>node"`
	Edges       []xmlEdge       `xml:"edges>edge"`
	ControlFlow *xmlControlFlow `xml:"controlFlow"`
}

type xmlNode struct {
	ID         *string       `xml:"id,attr"`
	Properties []xmlProperty `xml:"properties>p"`
}

type xmlProperty struct {
	Name  *string `xml:"name,attr"`
	Value string  `xml:",chardata"`
}

type xmlEdge struct {
	From  *string `xml:"from,attr"`
	To    *string `xml:"to,attr"`
	Index *string `xml:"index,attr"`
}

type xmlControlFlow struct {
	Blocks []xmlBlock `xml:"block"`
}

type xmlBlock struct {
	Name       *string        `xml:"name,attr"`
	Nodes      []xmlBlockNode `xml:"nodes>node"`
	Successors []xmlSuccessor `xml:"successors>successor"`
}

type xmlBlockNode struct {
	ID *string `xml:"id,attr"`
}

type xmlSuccessor struct {
	Name *string `xml:"name,attr"`
}

// ParseFile reads and parses an IGV dump from the given path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes an IGV dump from r and validates it into a Document.
// Any structural defect is reported as an error wrapping ErrMalformed.
func Parse(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding XML: %v: %w", err, ErrMalformed)
	}

	doc := &Document{Groups: make([]Group, 0, len(raw.Groups))}
	for i, g := range raw.Groups {
		group, err := convertGroup(g)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		doc.Groups = append(doc.Groups, group)
	}
	return doc, nil
}

func convertGroup(raw xmlGroup) (Group, error) {
	if raw.Method == nil {
		return Group{}, fmt.Errorf("missing method element: %w", ErrMalformed)
	}

	name, err := requiredAttr(raw.Method.Name, "method", "name")
	if err != nil {
		return Group{}, err
	}
	shortName, err := requiredAttr(raw.Method.ShortName, "method", "shortName")
	if err != nil {
		return Group{}, err
	}
	bci, err := requiredIntAttr(raw.Method.BCI, "method", "bci")
	if err != nil {
		return Group{}, err
	}

	group := Group{
		Name:      name,
		ShortName: shortName,
		BCI:       bci,
		Graphs:    make([]Graph, 0, len(raw.Graphs)),
	}
	for i, g := range raw.Graphs {
		graph, err := convertGraph(g)
		if err != nil {
			return Group{}, fmt.Errorf("graph %d: %w", i, err)
		}
		group.Graphs = append(group.Graphs, graph)
	}
	return group, nil
}

func convertGraph(raw xmlGraph) (Graph, error) {
	name, err := requiredAttr(raw.Name, "graph", "name")
	if err != nil {
		return Graph{}, err
	}
	graph := Graph{Name: name}

	for _, n := range raw.Nodes {
		id, err := requiredIntAttr(n.ID, "node", "id")
		if err != nil {
			return Graph{}, err
		}
		node := Node{ID: id, Properties: make([]Property, 0, len(n.Properties))}
		for _, p := range n.Properties {
			pname, err := requiredAttr(p.Name, "p", "name")
			if err != nil {
				return Graph{}, fmt.Errorf("node %d: %w", id, err)
			}
			node.Properties = append(node.Properties, Property{
				Name:  pname,
				Value: strings.TrimSpace(p.Value),
			})
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	for _, e := range raw.Edges {
		from, err := requiredIntAttr(e.From, "edge", "from")
		if err != nil {
			return Graph{}, err
		}
		to, err := requiredIntAttr(e.To, "edge", "to")
		if err != nil {
			return Graph{}, err
		}
		index, err := requiredIntAttr(e.Index, "edge", "index")
		if err != nil {
			return Graph{}, err
		}
		graph.Edges = append(graph.Edges, Edge{From: from, To: to, Index: index})
	}

	if raw.ControlFlow != nil {
		cf, err := convertControlFlow(raw.ControlFlow)
		if err != nil {
			return Graph{}, err
		}
		graph.ControlFlow = cf
	}
	return graph, nil
}

func convertControlFlow(raw *xmlControlFlow) (*ControlFlow, error) {
	cf := &ControlFlow{Blocks: make([]Block, 0, len(raw.Blocks))}
	for _, b := range raw.Blocks {
		id, err := requiredIntAttr(b.Name, "block", "name")
		if err != nil {
			return nil, err
		}
		block := Block{ID: id}
		for _, n := range b.Nodes {
			nodeID, err := requiredIntAttr(n.ID, "node", "id")
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", id, err)
			}
			block.Nodes = append(block.Nodes, nodeID)
		}
		for _, s := range b.Successors {
			succ, err := requiredIntAttr(s.Name, "successor", "name")
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", id, err)
			}
			block.Successors = append(block.Successors, succ)
		}
		cf.Blocks = append(cf.Blocks, block)
	}
	return cf, nil
}

func requiredAttr(v *string, element, attr string) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%s element missing %s attribute: %w", element, attr, ErrMalformed)
	}
	return *v, nil
}

func requiredIntAttr(v *string, element, attr string) (int, error) {
	s, err := requiredAttr(v, element, attr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s element has non-integer %s attribute %q: %w", element, attr, s, ErrMalformed)
	}
	return n, nil
}
