package cpsolver

// Status is the outcome of one solve.
type Status int

const (
	// StatusUnknown means the budget expired before any full assignment
	// was found.
	StatusUnknown Status = iota
	// StatusOptimal means the search space was exhausted and the returned
	// assignment is proven best.
	StatusOptimal
	// StatusFeasible means a valid assignment was found but the budget
	// expired before optimality was proven.
	StatusFeasible
	// StatusInfeasible means the search space was exhausted without any
	// valid assignment.
	StatusInfeasible
	// StatusInvalid means the model itself is malformed.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Usable reports whether the solve produced an assignment worth reading.
func (s Status) Usable() bool {
	return s == StatusOptimal || s == StatusFeasible
}
