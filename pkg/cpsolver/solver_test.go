package cpsolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveMinimizesWeightedBools(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	y := m.NewBoolVar("y")
	m.AddSum([]Var{x, y}, OpGE, 1)
	m.Minimize([]Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}})

	sol := Solve(m, Options{TimeLimit: 5 * time.Second})
	require.Equal(t, StatusOptimal, sol.Status())
	assert.Equal(t, int64(1), sol.Objective())
	assert.Equal(t, 1, sol.Value(x))
	assert.Equal(t, 0, sol.Value(y))
}

func TestSolveProvesInfeasibility(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	m.AddSum([]Var{x}, OpGE, 1)
	m.AddSum([]Var{x}, OpEq, 0)

	sol := Solve(m, Options{TimeLimit: 5 * time.Second})
	require.Equal(t, StatusInfeasible, sol.Status())
	assert.False(t, sol.Status().Usable())
	assert.Equal(t, 0, sol.Value(x))
}

func TestSolveEqualityWithSlack(t *testing.T) {
	// Coverage-style row: assigned + slack == required, slack penalized.
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	slack := m.NewIntVar(0, 2, "slack")
	m.AddLinear([]Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}, {Var: slack, Coef: 1}}, OpEq, 2)
	m.Minimize([]Term{{Var: slack, Coef: 100}})

	sol := Solve(m, Options{TimeLimit: 5 * time.Second})
	require.Equal(t, StatusOptimal, sol.Status())
	assert.Equal(t, 0, sol.Value(slack))
	assert.Equal(t, 1, sol.Value(a))
	assert.Equal(t, 1, sol.Value(b))
}

func TestSolveImplicationChain(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddImplication(a, b)
	m.AddImplication(b, c)
	m.AddSum([]Var{a}, OpEq, 1)
	m.Minimize([]Term{{Var: b, Coef: 1}, {Var: c, Coef: 1}})

	sol := Solve(m, Options{TimeLimit: 5 * time.Second})
	require.Equal(t, StatusOptimal, sol.Status())
	assert.Equal(t, 1, sol.Value(b))
	assert.Equal(t, 1, sol.Value(c))
	assert.Equal(t, int64(2), sol.Objective())
}

func TestSolveNegativeCoefficients(t *testing.T) {
	// count - flag*3 <= 0 forces the flag once count reaches 1.
	m := NewModel()
	count := m.NewIntVar(0, 3, "count")
	flag := m.NewBoolVar("flag")
	m.AddLinear([]Term{{Var: count, Coef: 1}, {Var: flag, Coef: -3}}, OpLE, 0)
	m.AddLinear([]Term{{Var: count, Coef: 1}}, OpGE, 2)
	m.Minimize([]Term{{Var: count, Coef: 1}})

	sol := Solve(m, Options{TimeLimit: 5 * time.Second})
	require.Equal(t, StatusOptimal, sol.Status())
	assert.Equal(t, 2, sol.Value(count))
	assert.Equal(t, 1, sol.Value(flag))
}

func TestSolveInvalidBounds(t *testing.T) {
	m := NewModel()
	m.NewIntVar(5, 2, "bad")

	sol := Solve(m, Options{TimeLimit: time.Second})
	assert.Equal(t, StatusInvalid, sol.Status())
	assert.False(t, sol.Status().Usable())
}

func TestSolveUnknownVariableReference(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	m.AddLinear([]Term{{Var: x, Coef: 1}, {Var: Var(99), Coef: 1}}, OpLE, 1)

	sol := Solve(m, Options{TimeLimit: time.Second})
	assert.Equal(t, StatusInvalid, sol.Status())
}

func TestSolveParallelWorkersAgreeOnOptimum(t *testing.T) {
	build := func() (*Model, []Var) {
		m := NewModel()
		vars := make([]Var, 6)
		for i := range vars {
			vars[i] = m.NewBoolVar("v")
		}
		m.AddSum(vars, OpGE, 3)
		terms := make([]Term, len(vars))
		for i, v := range vars {
			terms[i] = Term{Var: v, Coef: i + 1}
		}
		m.Minimize(terms)
		return m, vars
	}

	m1, _ := build()
	serial := Solve(m1, Options{TimeLimit: 5 * time.Second, Workers: 1})
	m2, _ := build()
	parallel := Solve(m2, Options{TimeLimit: 5 * time.Second, Workers: 4})

	require.Equal(t, StatusOptimal, serial.Status())
	require.Equal(t, StatusOptimal, parallel.Status())
	// Cheapest three variables: 1 + 2 + 3.
	assert.Equal(t, int64(6), serial.Objective())
	assert.Equal(t, serial.Objective(), parallel.Objective())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "feasible", StatusFeasible.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "invalid", StatusInvalid.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.True(t, StatusOptimal.Usable())
	assert.True(t, StatusFeasible.Usable())
	assert.False(t, StatusUnknown.Usable())
}
