package roster

import (
	"time"

	"github.com/arnavshah/roster-optimizer-go/pkg/cpsolver"
)

// Engine is the external solving capability: given decision variables,
// linear constraints and a weighted objective, return variable values and a
// solve status within the wall-clock budget. Any conforming constraint or
// integer-programming engine is substitutable here.
type Engine interface {
	Solve(m *cpsolver.Model, budget time.Duration, workers int) *cpsolver.Solution
}

// CPEngine runs the in-process branch-and-bound engine.
type CPEngine struct{}

// Solve submits the model with the time budget and parallelism hint and
// blocks until the engine reports a status.
func (CPEngine) Solve(m *cpsolver.Model, budget time.Duration, workers int) *cpsolver.Solution {
	return cpsolver.Solve(m, cpsolver.Options{TimeLimit: budget, Workers: workers})
}
