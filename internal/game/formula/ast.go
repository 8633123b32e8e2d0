package formula

import (
	"fmt"
	"math"
)

// node is one element of a parsed formula.
type node interface {
	eval(vars Vars) (float64, error)
}

type numberNode struct{ v float64 }

func (n numberNode) eval(Vars) (float64, error) { return n.v, nil }

type varNode struct{ name string }

func (n varNode) eval(vars Vars) (float64, error) {
	v, ok := vars[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, n.name)
	}
	return v, nil
}

type unaryNode struct {
	op      byte
	operand node
}

func (n unaryNode) eval(vars Vars) (float64, error) {
	v, err := n.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(vars Vars) (float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case '%':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(l, r), nil
	case '^':
		return math.Pow(l, r), nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.op)
	}
}

type callNode struct {
	fn   function
	args []node
}

func (n callNode) eval(vars Vars) (float64, error) {
	vals := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(vars)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return n.fn.apply(vals), nil
}

// function is a whitelisted builtin. arity < 0 means variadic with at least one argument.
type function struct {
	name  string
	arity int
	apply func(args []float64) float64
}

var functions = map[string]function{
	"floor": {name: "floor", arity: 1, apply: func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {name: "ceil", arity: 1, apply: func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {name: "round", arity: 1, apply: func(a []float64) float64 { return math.Round(a[0]) }},
	"abs":   {name: "abs", arity: 1, apply: func(a []float64) float64 { return math.Abs(a[0]) }},
	"sqrt":  {name: "sqrt", arity: 1, apply: func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"min": {name: "min", arity: -1, apply: func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
	"max": {name: "max", arity: -1, apply: func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
}
