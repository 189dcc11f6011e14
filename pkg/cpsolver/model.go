// Package cpsolver is a small constraint-solving engine: boolean and bounded
// integer decision variables, linear constraints over them, and a weighted
// linear minimization objective, solved by branch-and-bound with interval
// propagation under a wall-clock budget.
package cpsolver

import "fmt"

// Var is a handle to a decision variable within one Model.
type Var int

// Term is one coefficient*variable pair of a linear expression.
type Term struct {
	Var  Var
	Coef int
}

// Op is a linear constraint relation.
type Op int

const (
	OpLE Op = iota
	OpGE
	OpEq
)

type varDef struct {
	lo, hi int
	name   string
}

// linear is a constraint normalized to: sum(coef*var) <= rhs.
type linear struct {
	terms []Term
	rhs   int
}

// Model holds variables, constraints and the objective of one solve.
type Model struct {
	vars      []varDef
	cons      []linear
	objective []Term
	invalid   error
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar adds a 0/1 indicator variable.
func (m *Model) NewBoolVar(name string) Var {
	return m.NewIntVar(0, 1, name)
}

// NewIntVar adds a bounded integer variable.
func (m *Model) NewIntVar(lo, hi int, name string) Var {
	if lo > hi && m.invalid == nil {
		m.invalid = fmt.Errorf("variable %s: inverted bounds [%d,%d]", name, lo, hi)
	}
	m.vars = append(m.vars, varDef{lo: lo, hi: hi, name: name})
	return Var(len(m.vars) - 1)
}

// NewConstant adds a variable fixed to v.
func (m *Model) NewConstant(v int) Var {
	return m.NewIntVar(v, v, fmt.Sprintf("const_%d", v))
}

// NumVars reports how many variables the model holds.
func (m *Model) NumVars() int {
	return len(m.vars)
}

func (m *Model) checkTerms(terms []Term) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
			if m.invalid == nil {
				m.invalid = fmt.Errorf("unknown variable reference %d", t.Var)
			}
			continue
		}
		if t.Coef != 0 {
			out = append(out, t)
		}
	}
	return out
}

// AddLinear adds the constraint sum(terms) op rhs. Equalities are stored as
// the pair of opposing inequalities so propagation only ever sees <= rows.
func (m *Model) AddLinear(terms []Term, op Op, rhs int) {
	terms = m.checkTerms(terms)
	switch op {
	case OpLE:
		m.cons = append(m.cons, linear{terms: terms, rhs: rhs})
	case OpGE:
		m.cons = append(m.cons, negate(linear{terms: terms, rhs: rhs}))
	case OpEq:
		m.cons = append(m.cons, linear{terms: cloneTerms(terms), rhs: rhs})
		m.cons = append(m.cons, negate(linear{terms: terms, rhs: rhs}))
	}
}

// AddSum adds sum(vars) op rhs with unit coefficients.
func (m *Model) AddSum(vars []Var, op Op, rhs int) {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	m.AddLinear(terms, op, rhs)
}

// AddImplication adds a => b for indicator variables, encoded as a <= b.
func (m *Model) AddImplication(a, b Var) {
	m.AddLinear([]Term{{Var: a, Coef: 1}, {Var: b, Coef: -1}}, OpLE, 0)
}

// Minimize appends weighted terms to the objective.
func (m *Model) Minimize(terms []Term) {
	m.objective = append(m.objective, m.checkTerms(terms)...)
}

func negate(c linear) linear {
	terms := make([]Term, len(c.terms))
	for i, t := range c.terms {
		terms[i] = Term{Var: t.Var, Coef: -t.Coef}
	}
	return linear{terms: terms, rhs: -c.rhs}
}

func cloneTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}
