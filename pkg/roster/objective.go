package roster

import (
	"fmt"

	"github.com/arnavshah/roster-optimizer-go/pkg/cpsolver"
)

// Objective weights. Exact values are tuning, the relative ordering is the
// contract: coverage outweighs the day target, which outweighs the off-day
// minimum, which outweighs balance. Work deviation counts double the off
// deviation.
const (
	coveragePenalty       = 100_000
	dayTargetPenalty      = 5_000
	offRequirementPenalty = 1_000
	workDeviationPenalty  = 10
	offDeviationPenalty   = 5
)

// ComposeObjective attaches the weighted minimization target: coverage
// shortages, day-shift target shortfalls, off-day minimum shortfalls, and,
// when balancing is enabled, each member's absolute deviation from the
// horizon-wide average work and off day counts.
func ComposeObjective(bm *BuiltModel) {
	m := bm.Model
	var terms []cpsolver.Term

	for d := range bm.shortage {
		for w := range bm.shortage[d] {
			if v := bm.shortage[d][w]; v >= 0 {
				terms = append(terms, cpsolver.Term{Var: v, Coef: coveragePenalty})
			}
		}
	}
	for u := range bm.offSlack {
		if bm.offRequired[u] > 0 {
			terms = append(terms, cpsolver.Term{Var: bm.offSlack[u], Coef: offRequirementPenalty})
		}
	}
	for d := range bm.dayShortfall {
		terms = append(terms, cpsolver.Term{Var: bm.dayShortfall[d], Coef: dayTargetPenalty})
	}

	if bm.Problem.Options.BalanceWorkload {
		terms = append(terms, balanceTerms(bm)...)
	}

	m.Minimize(terms)
}

// balanceTerms encodes |count - target| per member with a positive/negative
// deviation pair: count - target == pos - neg, so minimizing pos + neg
// yields the absolute deviation.
func balanceTerms(bm *BuiltModel) []cpsolver.Term {
	m := bm.Model
	numDays := len(bm.Problem.Days)
	numMembers := len(bm.Problem.Members)

	totalAssignments := 0
	dayIdx := workIdx(ShiftDay)
	for d := range bm.perDayReq {
		for w := range bm.perDayReq[d] {
			if w != dayIdx {
				totalAssignments += bm.perDayReq[d][w]
			}
		}
		totalAssignments += bm.desiredPerDay[d]
	}
	targetWork := totalAssignments / numMembers
	targetOff := (numDays*numMembers - totalAssignments) / numMembers

	var terms []cpsolver.Term
	for u := range bm.Problem.Members {
		workPos := m.NewIntVar(0, numDays, fmt.Sprintf("work_dev_pos_%d", u))
		workNeg := m.NewIntVar(0, numDays, fmt.Sprintf("work_dev_neg_%d", u))
		m.AddLinear([]cpsolver.Term{
			{Var: bm.workCount[u], Coef: 1},
			{Var: workPos, Coef: -1},
			{Var: workNeg, Coef: 1},
		}, cpsolver.OpEq, targetWork)

		offPos := m.NewIntVar(0, numDays, fmt.Sprintf("off_dev_pos_%d", u))
		offNeg := m.NewIntVar(0, numDays, fmt.Sprintf("off_dev_neg_%d", u))
		offTerms := make([]cpsolver.Term, 0, numDays+2)
		for d := 0; d < numDays; d++ {
			offTerms = append(offTerms, cpsolver.Term{Var: bm.Cube(u, d, ShiftOff), Coef: 1})
		}
		offTerms = append(offTerms,
			cpsolver.Term{Var: offPos, Coef: -1},
			cpsolver.Term{Var: offNeg, Coef: 1},
		)
		m.AddLinear(offTerms, cpsolver.OpEq, targetOff)

		terms = append(terms,
			cpsolver.Term{Var: workPos, Coef: workDeviationPenalty},
			cpsolver.Term{Var: workNeg, Coef: workDeviationPenalty},
			cpsolver.Term{Var: offPos, Coef: offDeviationPenalty},
			cpsolver.Term{Var: offNeg, Coef: offDeviationPenalty},
		)
	}
	return terms
}
