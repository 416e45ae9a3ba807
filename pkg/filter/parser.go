package filter

import (
	"fmt"
	"strings"
)

type valueKind int

const (
	kindInt valueKind = iota
	kindString
	kindBool
)

func (k valueKind) String() string {
	switch k {
	case kindInt:
		return "an integer"
	case kindString:
		return "a string"
	case kindBool:
		return "a boolean"
	default:
		return "an unknown value"
	}
}

type value struct {
	kind valueKind
	i    int
	s    string
	b    bool
}

// env carries the current graph's identifying triple during evaluation.
type env struct {
	g      int
	method string
	phase  string
}

type expr interface {
	eval(env) (value, error)
}

type litExpr struct {
	v value
}

func (e litExpr) eval(env) (value, error) {
	return e.v, nil
}

type symbolExpr struct {
	name string
}

func (e symbolExpr) eval(ev env) (value, error) {
	switch e.name {
	case "g":
		return value{kind: kindInt, i: ev.g}, nil
	case "method":
		return value{kind: kindString, s: ev.method}, nil
	case "phase":
		return value{kind: kindString, s: ev.phase}, nil
	}
	return value{}, fmt.Errorf("unknown symbol %q: %w", e.name, ErrInvalidFilter)
}

// callExpr is method(...) or phase(...). The argument is evaluated for its
// errors but its value is discarded: the callables ignore their argument.
type callExpr struct {
	name string
	arg  expr
}

func (e callExpr) eval(ev env) (value, error) {
	if _, err := e.arg.eval(ev); err != nil {
		return value{}, err
	}
	return symbolExpr{name: e.name}.eval(ev)
}

type notExpr struct {
	x expr
}

func (e notExpr) eval(ev env) (value, error) {
	v, err := e.x.eval(ev)
	if err != nil {
		return value{}, err
	}
	if v.kind != kindBool {
		return value{}, fmt.Errorf("operand of \"not\" is %s, not a boolean: %w", v.kind, ErrInvalidFilter)
	}
	return value{kind: kindBool, b: !v.b}, nil
}

type binExpr struct {
	op  string // "and", "or", "in", "==", "!=", "<", "<=", ">", ">="
	lhs expr
	rhs expr
}

func (e binExpr) eval(ev env) (value, error) {
	lv, err := e.lhs.eval(ev)
	if err != nil {
		return value{}, err
	}

	switch e.op {
	case "and", "or":
		if lv.kind != kindBool {
			return value{}, fmt.Errorf("left operand of %q is %s, not a boolean: %w", e.op, lv.kind, ErrInvalidFilter)
		}
		// Short-circuit.
		if e.op == "and" && !lv.b {
			return value{kind: kindBool, b: false}, nil
		}
		if e.op == "or" && lv.b {
			return value{kind: kindBool, b: true}, nil
		}
		rv, err := e.rhs.eval(ev)
		if err != nil {
			return value{}, err
		}
		if rv.kind != kindBool {
			return value{}, fmt.Errorf("right operand of %q is %s, not a boolean: %w", e.op, rv.kind, ErrInvalidFilter)
		}
		return value{kind: kindBool, b: rv.b}, nil
	}

	rv, err := e.rhs.eval(ev)
	if err != nil {
		return value{}, err
	}

	switch e.op {
	case "in":
		if lv.kind != kindString || rv.kind != kindString {
			return value{}, fmt.Errorf("\"in\" requires string operands, got %s and %s: %w", lv.kind, rv.kind, ErrInvalidFilter)
		}
		return value{kind: kindBool, b: strings.Contains(rv.s, lv.s)}, nil
	case "==", "!=":
		if lv.kind != rv.kind {
			return value{}, fmt.Errorf("cannot compare %s with %s: %w", lv.kind, rv.kind, ErrInvalidFilter)
		}
		eq := lv == rv
		return value{kind: kindBool, b: eq == (e.op == "==")}, nil
	case "<", "<=", ">", ">=":
		return order(e.op, lv, rv)
	}
	return value{}, fmt.Errorf("unknown operator %q: %w", e.op, ErrInvalidFilter)
}

// order implements the ordering comparisons over two ints or two strings.
func order(op string, lv, rv value) (value, error) {
	if lv.kind != rv.kind || lv.kind == kindBool {
		return value{}, fmt.Errorf("%q requires two integers or two strings, got %s and %s: %w", op, lv.kind, rv.kind, ErrInvalidFilter)
	}
	var lt, eq bool
	if lv.kind == kindInt {
		lt, eq = lv.i < rv.i, lv.i == rv.i
	} else {
		lt, eq = lv.s < rv.s, lv.s == rv.s
	}
	var b bool
	switch op {
	case "<":
		b = lt
	case "<=":
		b = lt || eq
	case ">":
		b = !lt && !eq
	case ">=":
		b = !lt
	}
	return value{kind: kindBool, b: b}, nil
}

// parser is a recursive-descent parser over the token stream. Precedence,
// loosest binding first: or, and, not, comparison/containment, primary.
// Comparisons do not chain.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// peekIs reports whether the next token is the given keyword or operator.
func (p *parser) peekIs(text string) bool {
	t := p.peek()
	return (t.kind == tokIdent || t.kind == tokOp) && t.text == text
}

func (p *parser) parseExpr() (expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peekIs("or") || p.peekIs("||") {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = binExpr{op: "or", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peekIs("and") || p.peekIs("&&") {
		p.next()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = binExpr{op: "and", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseNot() (expr, error) {
	if p.peekIs("not") || p.peekIs("!") {
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notExpr{x: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	var op string
	switch {
	case p.peek().kind == tokOp && isComparisonOp(p.peek().text):
		op = p.next().text
	case p.peekIs("in"):
		p.next()
		op = "in"
	default:
		return lhs, nil
	}
	rhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return binExpr{op: op, lhs: lhs, rhs: rhs}, nil
}

func isComparisonOp(text string) bool {
	switch text {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		return litExpr{v: value{kind: kindInt, i: t.num}}, nil
	case tokString:
		return litExpr{v: value{kind: kindString, s: t.text}}, nil
	case tokLParen:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis at position %d: %w", p.peek().pos, ErrInvalidFilter)
		}
		p.next()
		return e, nil
	case tokIdent:
		return p.parseIdent(t)
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrInvalidFilter)
	}
	return nil, fmt.Errorf("unexpected %q at position %d: %w", t.text, t.pos, ErrInvalidFilter)
}

func (p *parser) parseIdent(t token) (expr, error) {
	switch t.text {
	case "true", "True":
		return litExpr{v: value{kind: kindBool, b: true}}, nil
	case "false", "False":
		return litExpr{v: value{kind: kindBool, b: false}}, nil
	case "g":
		return symbolExpr{name: "g"}, nil
	case "method", "phase":
		if p.peek().kind != tokLParen {
			return symbolExpr{name: t.text}, nil
		}
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis in %s(...) at position %d: %w", t.text, p.peek().pos, ErrInvalidFilter)
		}
		p.next()
		return callExpr{name: t.text, arg: arg}, nil
	}
	return nil, fmt.Errorf("unknown identifier %q at position %d: %w", t.text, t.pos, ErrInvalidFilter)
}
