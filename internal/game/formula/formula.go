package formula

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSyntax is returned for malformed formula text.
	ErrSyntax = errors.New("formula: syntax error")
	// ErrUnknownVariable is returned when a formula references a variable not in Vars.
	ErrUnknownVariable = errors.New("formula: unknown variable")
	// ErrUnknownFunction is returned for calls to functions outside the whitelist.
	ErrUnknownFunction = errors.New("formula: unknown function")
	// ErrDivisionByZero is returned when / or % has a zero right operand.
	ErrDivisionByZero = errors.New("formula: division by zero")
	// ErrNotFinite is returned when evaluation produces NaN or ±Inf.
	ErrNotFinite = errors.New("formula: result is not finite")
)

// Vars maps whitelisted variable names to their values.
type Vars map[string]float64

// Formula is a parsed expression ready for evaluation.
type Formula struct {
	Raw  string
	root node
}

// Parse parses src into a Formula.
//
// Precondition: none; any string is accepted.
// Postcondition: Returns a non-nil Formula or an error wrapping ErrSyntax or ErrUnknownFunction.
func Parse(src string) (*Formula, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, fmt.Errorf("%w: empty formula", ErrSyntax)
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
	return &Formula{Raw: src, root: root}, nil
}

// Eval evaluates f with vars.
//
// Postcondition: Returns a finite value or an error.
func (f *Formula) Eval(vars Vars) (float64, error) {
	v, err := f.root.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// Evaluate parses and evaluates src in one call.
func Evaluate(src string, vars Vars) (float64, error) {
	f, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return f.Eval(vars)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops string) (byte, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return 0, false
	}
	for i := 0; i < len(ops); i++ {
		if t.text[0] == ops[i] {
			return ops[i], true
		}
	}
	return 0, false
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

// term := unary (('*' | '/' | '%') unary)*
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("*/%")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

// unary := ('-' | '+') unary | power
func (p *parser) parseUnary() (node, error) {
	if op, ok := p.isOp("+-"); ok {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePower()
}

// power := primary ('^' unary)?   (right associative)
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("^"); ok {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

// primary := number | ident | ident '(' args ')' | '(' expr ')'
func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode{v: t.num}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return varNode{name: t.text}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if r := p.next(); r.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, r.pos)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := functions[name.text]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name.text)
	}
	p.next() // '('
	var args []node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if r := p.next(); r.kind != tokRParen {
		return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, r.pos)
	}
	switch {
	case fn.arity >= 0 && len(args) != fn.arity:
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, fn.name, fn.arity, len(args))
	case fn.arity < 0 && len(args) == 0:
		return nil, fmt.Errorf("%w: %s needs at least one argument", ErrSyntax, fn.name)
	}
	return callNode{fn: fn, args: args}, nil
}
