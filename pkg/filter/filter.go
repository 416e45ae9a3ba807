// Package filter implements the graph-selection predicate language.
//
// A filter is a boolean expression evaluated once per graph against three
// symbols: g (the graph's ordinal id), method (the enclosing method's short
// name) and phase (the compiler phase name). method and phase may be written
// as calls — method(g), phase(g) — whose argument is ignored; this mirrors
// the one-graph-at-a-time evaluation of the surrounding loader loop.
//
// The grammar is deliberately closed: integer and string literals, the
// three symbols, comparisons, string containment with "in", and boolean
// connectives (and/or/not, also spelled &&/||/!). Nothing else is
// reachable, so a filter can never execute unrelated logic.
package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter indicates the expression does not parse or does not
// reduce to a boolean when evaluated.
var ErrInvalidFilter = errors.New("invalid filter expression")

// Filter is a compiled predicate. It is immutable and safe for repeated
// evaluation; Match has no side effects.
type Filter struct {
	src  string
	expr expr
}

// Compile parses the expression source into a Filter. The empty string
// compiles to a filter matching every graph.
func Compile(src string) (*Filter, error) {
	if src == "" {
		src = "true"
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d: %w", p.peek().text, p.peek().pos, ErrInvalidFilter)
	}
	return &Filter{src: src, expr: e}, nil
}

// String returns the original expression source.
func (f *Filter) String() string {
	return f.src
}

// Match evaluates the filter against one graph's identifying triple.
func (f *Filter) Match(g int, method, phase string) (bool, error) {
	v, err := f.expr.eval(env{g: g, method: method, phase: phase})
	if err != nil {
		return false, err
	}
	if v.kind != kindBool {
		return false, fmt.Errorf("expression yields %s, not a boolean: %w", v.kind, ErrInvalidFilter)
	}
	return v.b, nil
}
