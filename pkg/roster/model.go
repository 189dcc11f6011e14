package roster

import (
	"fmt"
	"sort"

	"github.com/arnavshah/roster-optimizer-go/pkg/cpsolver"
	"github.com/arnavshah/roster-optimizer-go/pkg/models"
)

// Conflict kind tags. Each hard rule of the catalog owns one.
const (
	ConflictAllowedShift       = "allowed_shift_conflict"
	ConflictExistingAssignment = "existing_assignment_conflict"
	ConflictFixedDayOff        = "fixed_day_off_conflict"
	ConflictMaxConsecutive     = "max_consecutive_workdays_conflict"
	ConflictNightAfterPred     = "night_after_predecessor_conflict"
	ConflictNightFollowUp      = "night_follow_up_conflict"
	ConflictNightRest          = "night_rest_conflict"
	ConflictNightEligibility   = "night_eligibility_conflict"
	ConflictLateToEarly        = "late_to_early_conflict"
	ConflictRepeatLimit        = "repeat_limit_conflict"
	ConflictNightQuota         = "night_quota_conflict"
	ConflictOffShortfall       = "off_requirement_shortfall"
)

const numCodes = 6

// codeIdx is the position of a shift code in the cube's third dimension.
func codeIdx(c ShiftCode) int {
	for i, known := range ShiftCodes {
		if known == c {
			return i
		}
	}
	return -1
}

type cell struct{ u, d int }

// BuiltModel is the assembled constraint model plus the bookkeeping the
// objective composer and output formatter need to interpret solved values.
type BuiltModel struct {
	Problem   *Problem
	Model     *cpsolver.Model
	Conflicts []models.Conflict

	cube          []cpsolver.Var // (member, day, code), flat
	pinned        map[cell]ShiftCode
	perDayReq     [][]int // [day][work code]
	desiredPerDay []int
	shortage      [][]cpsolver.Var // [day][work code], -1 when no requirement
	dayShortfall  []cpsolver.Var
	offSlack      []cpsolver.Var
	offRequired   []int
	workCount     []cpsolver.Var
}

// Cube returns the indicator variable of one (member, day, code) cell.
func (bm *BuiltModel) Cube(u, d int, code ShiftCode) cpsolver.Var {
	return bm.cube[(u*len(bm.Problem.Days)+d)*numCodes+codeIdx(code)]
}

type builder struct {
	p           *Problem
	m           *cpsolver.Model
	bm          *BuiltModel
	allowedSets []map[ShiftCode]bool // augmented with OFF and NIGHT_AFTER
	forcedOff   [][]int              // sorted day indices per member
	fixedReq    map[[2]int]int       // (day, work code idx) -> pinned count
}

// BuildModel translates a Problem into decision variables and hard
// constraints, reconciling every rule against pinned assignments: a rule
// instance pinned data contradicts is skipped and recorded as a conflict so
// the model handed to the solver stays satisfiable.
func BuildModel(p *Problem) *BuiltModel {
	b := &builder{
		p: p,
		m: cpsolver.NewModel(),
		bm: &BuiltModel{
			Problem: p,
			pinned:  make(map[cell]ShiftCode),
		},
		fixedReq: make(map[[2]int]int),
	}
	b.bm.Model = b.m

	b.ingestPinned()
	b.createCube()
	b.resolveAllowedSets()
	b.resolveForcedOffDays()
	b.computeRequirements()
	b.addCoverage()
	b.applyPinnedEqualities()
	for u := range p.Members {
		b.addMemberRules(u)
	}
	b.addOffRequirements()
	return b.bm
}

// reconcile is the skip-or-conflict branch shared by every rule: when pinned
// data already violates the rule instance, record the conflict instead of
// emitting the constraint.
func (b *builder) reconcile(violated bool, conflict models.Conflict, emit func()) {
	if violated {
		b.bm.Conflicts = append(b.bm.Conflicts, conflict)
		return
	}
	emit()
}

// ingestPinned canonicalizes existing assignments. The first pin per
// (member, day) wins; a second, different code is a conflict, not an
// overwrite. Pins of codes outside a member's allow-list are flagged here
// and re-flagged when the eligibility rule is suppressed for them.
func (b *builder) ingestPinned() {
	for _, asgn := range b.p.Existing {
		u, okMember := b.p.MemberIndex(asgn.UserID)
		d, okDay := b.p.DayIndex(asgn.Date)
		if !okMember || !okDay {
			continue
		}
		code, ok := ParseShiftCode(asgn.ShiftCode)
		if !ok {
			continue
		}
		member := b.p.Members[u]

		// A night pin for a night-ineligible member is rejected outright:
		// forcing it would drag NIGHT_AFTER and OFF cells the eligibility
		// rule zeroes into a contradiction, so the pin becomes a conflict
		// and never an equality.
		if !member.CanNightShift && (code == ShiftNight || code == ShiftNightAfter) {
			b.bm.Conflicts = append(b.bm.Conflicts, models.Conflict{
				Type:     ConflictNightEligibility,
				MemberID: member.ID,
				Date:     b.p.Days[d].ISO,
			})
			continue
		}

		if member.AllowedCodes != nil && !containsCode(member.AllowedCodes, code) {
			b.bm.Conflicts = append(b.bm.Conflicts, models.Conflict{
				Type:      ConflictAllowedShift,
				MemberID:  member.ID,
				Date:      b.p.Days[d].ISO,
				ShiftCode: string(code),
			})
		}

		key := cell{u, d}
		if existing, pinnedAlready := b.bm.pinned[key]; pinnedAlready {
			if existing != code {
				codes := []string{string(existing), string(code)}
				sort.Strings(codes)
				b.bm.Conflicts = append(b.bm.Conflicts, models.Conflict{
					Type:     ConflictExistingAssignment,
					MemberID: member.ID,
					Date:     b.p.Days[d].ISO,
					Codes:    codes,
				})
			}
			continue
		}

		b.bm.pinned[key] = code
		if IsWorkCode(code) {
			b.fixedReq[[2]int{d, codeIdx(code)}]++
		}
	}
}

// createCube allocates one indicator per (member, day, code) and emits the
// structural rule: exactly one code per generation day, at most one on
// carry-over days.
func (b *builder) createCube() {
	numDays := len(b.p.Days)
	b.bm.cube = make([]cpsolver.Var, 0, len(b.p.Members)*numDays*numCodes)
	for u := range b.p.Members {
		for d := 0; d < numDays; d++ {
			for s := 0; s < numCodes; s++ {
				name := fmt.Sprintf("x_u%d_d%d_%s", u, d, ShiftCodes[s])
				b.bm.cube = append(b.bm.cube, b.m.NewBoolVar(name))
			}
		}
	}
	for u := range b.p.Members {
		for d := 0; d < numDays; d++ {
			row := b.rowVars(u, d)
			if b.p.Days[d].Generation {
				b.m.AddSum(row, cpsolver.OpEq, 1)
			} else {
				b.m.AddSum(row, cpsolver.OpLE, 1)
			}
		}
	}
}

func (b *builder) rowVars(u, d int) []cpsolver.Var {
	base := (u*len(b.p.Days) + d) * numCodes
	return b.bm.cube[base : base+numCodes]
}

func (b *builder) resolveAllowedSets() {
	b.allowedSets = make([]map[ShiftCode]bool, len(b.p.Members))
	for u, member := range b.p.Members {
		allowed := make(map[ShiftCode]bool, numCodes)
		if member.AllowedCodes == nil {
			for _, code := range ShiftCodes {
				allowed[code] = true
			}
		} else {
			for _, code := range member.AllowedCodes {
				allowed[code] = true
			}
			// Rest codes are never restricted by an allow-list.
			allowed[ShiftOff] = true
			allowed[ShiftNightAfter] = true
		}
		b.allowedSets[u] = allowed
	}
}

func (b *builder) resolveForcedOffDays() {
	b.forcedOff = make([][]int, len(b.p.Members))
	for u, member := range b.p.Members {
		forced := make(map[int]bool)
		for d, day := range b.p.Days {
			if member.Prefs.FixedDaysOff[day.Weekday] {
				forced[d] = true
				continue
			}
			if day.Holiday && member.Prefs.FixedDaysOff["holiday"] {
				forced[d] = true
			}
		}
		for _, iso := range member.Prefs.CustomDatesOff {
			if d, ok := b.p.DayIndex(iso); ok {
				forced[d] = true
			}
		}
		indices := make([]int, 0, len(forced))
		for d := range forced {
			indices = append(indices, d)
		}
		sort.Ints(indices)
		b.forcedOff[u] = indices
	}
}

// computeRequirements derives the effective per-day headcount of every work
// code: the larger of the base target and the pinned count, except on
// carry-over days where only pinned assignments count. The DAY requirement
// is then raised toward the desired headcount, bounded first by the capacity
// left after the other codes' requirements, then by pinned-plus-flexible DAY
// capacity. That precedence is deliberate and observable in edge cases.
func (b *builder) computeRequirements() {
	numMembers := len(b.p.Members)
	b.bm.perDayReq = make([][]int, len(b.p.Days))
	b.bm.desiredPerDay = make([]int, 0, len(b.p.Days))

	for d, day := range b.p.Days {
		req := make([]int, len(WorkShiftCodes))
		for w, code := range WorkShiftCodes {
			fixed := b.fixedReq[[2]int{d, codeIdx(code)}]
			if day.Generation {
				req[w] = maxInt(b.p.Required[code], fixed)
			} else {
				req[w] = maxInt(fixed, 0)
			}
		}
		b.bm.perDayReq[d] = req

		dayIdx := workIdx(ShiftDay)
		requiredDay := req[dayIdx]
		if !day.Generation {
			b.bm.desiredPerDay = append(b.bm.desiredPerDay, requiredDay)
			continue
		}

		requiredOther := 0
		for w := range WorkShiftCodes {
			if w != dayIdx {
				requiredOther += req[w]
			}
		}
		remainingCapacity := numMembers - requiredOther
		if remainingCapacity < requiredDay {
			remainingCapacity = requiredDay
		} else if remainingCapacity > numMembers {
			remainingCapacity = numMembers
		}

		fixedDay := 0
		flexibleDay := 0
		for u := range b.p.Members {
			pinnedCode, pinnedHere := b.bm.pinned[cell{u, d}]
			switch {
			case pinnedHere && pinnedCode == ShiftDay:
				fixedDay++
			case !pinnedHere && b.allowedSets[u][ShiftDay]:
				flexibleDay++
			}
		}
		maxDayCapacity := maxInt(requiredDay, fixedDay+flexibleDay)

		dayTarget := maxInt(b.p.Options.DesiredDayHeadcount, requiredDay)
		dayTarget = minInt(dayTarget, remainingCapacity)
		dayTarget = minInt(dayTarget, maxDayCapacity)
		req[dayIdx] = dayTarget
		b.bm.desiredPerDay = append(b.bm.desiredPerDay, dayTarget)
	}
}

// addCoverage emits assigned-count + shortage == requirement for every
// (day, work code). Shortage slack keeps the model satisfiable; shortfall is
// penalized by the objective, never forbidden.
func (b *builder) addCoverage() {
	numDays := len(b.p.Days)
	b.bm.shortage = make([][]cpsolver.Var, numDays)
	b.bm.dayShortfall = make([]cpsolver.Var, numDays)

	for d := 0; d < numDays; d++ {
		b.bm.shortage[d] = make([]cpsolver.Var, len(WorkShiftCodes))
		for w := range b.bm.shortage[d] {
			b.bm.shortage[d][w] = -1
		}
		for w, code := range WorkShiftCodes {
			required := b.bm.perDayReq[d][w]
			vars := make([]cpsolver.Var, 0, len(b.p.Members))
			for u := range b.p.Members {
				vars = append(vars, b.Cube(u, d, code))
			}

			if required > 0 {
				shortage := b.m.NewIntVar(0, required, fmt.Sprintf("shortage_d%d_%s", d, code))
				b.bm.shortage[d][w] = shortage
				terms := sumTerms(vars)
				terms = append(terms, cpsolver.Term{Var: shortage, Coef: 1})
				b.m.AddLinear(terms, cpsolver.OpEq, required)
				if code == ShiftDay {
					b.bm.dayShortfall[d] = shortage
				}
			} else {
				b.m.AddSum(vars, cpsolver.OpEq, 0)
				if code == ShiftDay {
					b.bm.dayShortfall[d] = b.m.NewConstant(0)
				}
			}
		}
	}
}

func (b *builder) Cube(u, d int, code ShiftCode) cpsolver.Var {
	return b.bm.Cube(u, d, code)
}

func (b *builder) applyPinnedEqualities() {
	for u := range b.p.Members {
		for d := range b.p.Days {
			if code, ok := b.bm.pinned[cell{u, d}]; ok {
				b.m.AddSum([]cpsolver.Var{b.Cube(u, d, code)}, cpsolver.OpEq, 1)
			}
		}
	}
}

func (b *builder) pinnedAt(u, d int) (ShiftCode, bool) {
	code, ok := b.bm.pinned[cell{u, d}]
	return code, ok
}

func (b *builder) addMemberRules(u int) {
	b.addEligibility(u)
	b.addFixedDaysOff(u)
	b.addConsecutiveCap(u)
	b.addNightAfterPredecessor(u)
	if b.p.Options.EnforceNightRest {
		b.addNightRest(u)
	}
	b.addNightEligibility(u)
	if b.p.Options.ForbidLateToEarly {
		b.addLateToEarlyBan(u)
	}
	if b.p.Options.LimitFulltimeRepeat && b.p.Members[u].EmploymentType == "full_time" {
		b.addRepeatCap(u)
	}
	b.addNightQuota(u)
}

// addEligibility zeroes work codes outside the member's allow-list, except
// where a pin already claims the disallowed code.
func (b *builder) addEligibility(u int) {
	member := b.p.Members[u]
	for _, code := range WorkShiftCodes {
		if b.allowedSets[u][code] {
			continue
		}
		for d := range b.p.Days {
			pinnedCode, pinnedHere := b.pinnedAt(u, d)
			b.reconcile(pinnedHere && pinnedCode == code, models.Conflict{
				Type:      ConflictAllowedShift,
				MemberID:  member.ID,
				Date:      b.p.Days[d].ISO,
				ShiftCode: string(code),
			}, func() {
				b.m.AddSum([]cpsolver.Var{b.Cube(u, d, code)}, cpsolver.OpEq, 0)
			})
		}
	}
}

func (b *builder) addFixedDaysOff(u int) {
	member := b.p.Members[u]
	for _, d := range b.forcedOff[u] {
		pinnedCode, pinnedHere := b.pinnedAt(u, d)
		b.reconcile(pinnedHere && pinnedCode != ShiftOff, models.Conflict{
			Type:      ConflictFixedDayOff,
			MemberID:  member.ID,
			Date:      b.p.Days[d].ISO,
			ShiftCode: string(pinnedCode),
		}, func() {
			b.m.AddSum([]cpsolver.Var{b.Cube(u, d, ShiftOff)}, cpsolver.OpEq, 1)
			for _, code := range ShiftCodes {
				if code != ShiftOff {
					b.m.AddSum([]cpsolver.Var{b.Cube(u, d, code)}, cpsolver.OpEq, 0)
				}
			}
		})
	}
}

// addConsecutiveCap caps work-day runs via sliding windows of limit+1 days.
// A pinned run already over the cap suppresses the whole rule instance for
// this member (the first violating run is reported, then scanning stops).
func (b *builder) addConsecutiveCap(u int) {
	limit := b.p.Options.MaxConsecutiveWorkdays
	if limit == 0 {
		return
	}
	member := b.p.Members[u]
	numDays := len(b.p.Days)

	violated := false
	var conflict models.Conflict
	pinnedRun := 0
	for d := 0; d < numDays; d++ {
		if code, ok := b.pinnedAt(u, d); ok && IsWorkCode(code) {
			pinnedRun++
		} else {
			pinnedRun = 0
		}
		if pinnedRun > limit {
			violated = true
			conflict = models.Conflict{
				Type:      ConflictMaxConsecutive,
				MemberID:  member.ID,
				StartDate: b.p.Days[d-pinnedRun+1].ISO,
				EndDate:   b.p.Days[d].ISO,
				Limit:     limit,
			}
			break
		}
	}

	b.reconcile(violated, conflict, func() {
		workFlags := make([]cpsolver.Var, numDays)
		for d := 0; d < numDays; d++ {
			flag := b.m.NewBoolVar(fmt.Sprintf("work_u%d_d%d", u, d))
			terms := make([]cpsolver.Term, 0, len(WorkShiftCodes)+1)
			for _, code := range WorkShiftCodes {
				terms = append(terms, cpsolver.Term{Var: b.Cube(u, d, code), Coef: 1})
			}
			terms = append(terms, cpsolver.Term{Var: flag, Coef: -1})
			b.m.AddLinear(terms, cpsolver.OpEq, 0)
			workFlags[d] = flag
		}
		window := limit + 1
		if window <= numDays {
			for start := 0; start+window <= numDays; start++ {
				b.m.AddSum(workFlags[start:start+window], cpsolver.OpLE, limit)
			}
		}
	})
}

// addNightAfterPredecessor forbids NIGHT_AFTER unless the previous day is a
// NIGHT assignment.
func (b *builder) addNightAfterPredecessor(u int) {
	member := b.p.Members[u]
	for d := 1; d < len(b.p.Days); d++ {
		prevLocked, prevPinned := b.pinnedAt(u, d-1)
		currLocked, currPinned := b.pinnedAt(u, d)
		violated := currPinned && currLocked == ShiftNightAfter && prevPinned && prevLocked != ShiftNight
		b.reconcile(violated, models.Conflict{
			Type:         ConflictNightAfterPred,
			MemberID:     member.ID,
			Date:         b.p.Days[d].ISO,
			PreviousDate: b.p.Days[d-1].ISO,
			LockedShift:  string(prevLocked),
		}, func() {
			b.m.AddImplication(b.Cube(u, d, ShiftNightAfter), b.Cube(u, d-1, ShiftNight))
		})
	}
}

// addNightRest enforces the NIGHT -> NIGHT_AFTER -> OFF recovery pattern
// when pinned data does not block it.
func (b *builder) addNightRest(u int) {
	member := b.p.Members[u]
	numDays := len(b.p.Days)
	for d := 0; d < numDays-1; d++ {
		currLocked, currPinned := b.pinnedAt(u, d)
		nextLocked, nextPinned := b.pinnedAt(u, d+1)

		if currPinned && currLocked == ShiftNight && nextPinned && nextLocked != ShiftNightAfter {
			b.bm.Conflicts = append(b.bm.Conflicts, models.Conflict{
				Type:        ConflictNightFollowUp,
				MemberID:    member.ID,
				Date:        b.p.Days[d].ISO,
				NextDate:    b.p.Days[d+1].ISO,
				LockedShift: string(nextLocked),
			})
			continue
		}
		if nextPinned && nextLocked == ShiftNightAfter && currPinned && currLocked != ShiftNight {
			b.bm.Conflicts = append(b.bm.Conflicts, models.Conflict{
				Type:        ConflictNightFollowUp,
				MemberID:    member.ID,
				Date:        b.p.Days[d].ISO,
				NextDate:    b.p.Days[d+1].ISO,
				LockedShift: string(currLocked),
			})
			continue
		}
		b.m.AddImplication(b.Cube(u, d, ShiftNight), b.Cube(u, d+1, ShiftNightAfter))
	}

	for d := 0; d < numDays-2; d++ {
		currLocked, currPinned := b.pinnedAt(u, d)
		restLocked, restPinned := b.pinnedAt(u, d+2)
		violated := currPinned && currLocked == ShiftNight && restPinned && restLocked != ShiftOff
		b.reconcile(violated, models.Conflict{
			Type:        ConflictNightRest,
			MemberID:    member.ID,
			Date:        b.p.Days[d].ISO,
			RestDate:    b.p.Days[d+2].ISO,
			LockedShift: string(restLocked),
		}, func() {
			b.m.AddImplication(b.Cube(u, d, ShiftNight), b.Cube(u, d+2, ShiftOff))
		})
	}
}

// addNightEligibility keeps NIGHT and NIGHT_AFTER away from members without
// night-shift eligibility. Ineligible night pins were already rejected at
// ingestion, so the zeroing is unconditional here.
func (b *builder) addNightEligibility(u int) {
	if b.p.Members[u].CanNightShift {
		return
	}
	for d := range b.p.Days {
		b.m.AddSum([]cpsolver.Var{b.Cube(u, d, ShiftNight)}, cpsolver.OpEq, 0)
		b.m.AddSum([]cpsolver.Var{b.Cube(u, d, ShiftNightAfter)}, cpsolver.OpEq, 0)
	}
}

func (b *builder) addLateToEarlyBan(u int) {
	member := b.p.Members[u]
	for d := 0; d < len(b.p.Days)-1; d++ {
		currLocked, currPinned := b.pinnedAt(u, d)
		nextLocked, nextPinned := b.pinnedAt(u, d+1)
		violated := currPinned && currLocked == ShiftLate && nextPinned && nextLocked == ShiftEarly
		b.reconcile(violated, models.Conflict{
			Type:     ConflictLateToEarly,
			MemberID: member.ID,
			Date:     b.p.Days[d].ISO,
			NextDate: b.p.Days[d+1].ISO,
		}, func() {
			b.m.AddLinear([]cpsolver.Term{
				{Var: b.Cube(u, d, ShiftLate), Coef: 1},
				{Var: b.Cube(u, d+1, ShiftEarly), Coef: 1},
			}, cpsolver.OpLE, 1)
		})
	}
}

// addRepeatCap forbids the same work code on three consecutive days. The
// conflict fires only when all three days are pinned to the same code.
func (b *builder) addRepeatCap(u int) {
	member := b.p.Members[u]
	for _, code := range WorkShiftCodes {
		for d := 0; d < len(b.p.Days)-2; d++ {
			allPinnedSame := true
			for offset := 0; offset < 3; offset++ {
				locked, pinnedHere := b.pinnedAt(u, d+offset)
				if !pinnedHere || locked != code {
					allPinnedSame = false
					break
				}
			}
			b.reconcile(allPinnedSame, models.Conflict{
				Type:      ConflictRepeatLimit,
				MemberID:  member.ID,
				StartDate: b.p.Days[d].ISO,
				ShiftCode: string(code),
			}, func() {
				b.m.AddLinear([]cpsolver.Term{
					{Var: b.Cube(u, d, code), Coef: 1},
					{Var: b.Cube(u, d+1, code), Coef: 1},
					{Var: b.Cube(u, d+2, code), Coef: 1},
				}, cpsolver.OpLE, 2)
			})
		}
	}
}

func (b *builder) addNightQuota(u int) {
	member := b.p.Members[u]
	maxNights := b.p.Options.MaxNights
	pinnedNights := 0
	for d := range b.p.Days {
		if code, ok := b.pinnedAt(u, d); ok && code == ShiftNight {
			pinnedNights++
		}
	}
	b.reconcile(pinnedNights > maxNights, models.Conflict{
		Type:         ConflictNightQuota,
		MemberID:     member.ID,
		NightsLocked: pinnedNights,
		MaxAllowed:   maxNights,
	}, func() {
		vars := make([]cpsolver.Var, 0, len(b.p.Days))
		for d := range b.p.Days {
			vars = append(vars, b.Cube(u, d, ShiftNight))
		}
		b.m.AddSum(vars, cpsolver.OpLE, maxNights)
	})
}

// addOffRequirements emits per-member off-day minimums with non-negative
// slack (reported post-solve, not pre-solve) and the work-day count
// variables the balance objective and summary read.
func (b *builder) addOffRequirements() {
	numDays := len(b.p.Days)
	b.bm.offSlack = make([]cpsolver.Var, len(b.p.Members))
	b.bm.offRequired = make([]int, len(b.p.Members))
	b.bm.workCount = make([]cpsolver.Var, len(b.p.Members))

	for u, member := range b.p.Members {
		offVars := make([]cpsolver.Var, 0, numDays)
		for d := 0; d < numDays; d++ {
			offVars = append(offVars, b.Cube(u, d, ShiftOff))
		}

		requiredOff, ok := b.p.Options.MinOffByType[member.EmploymentType]
		if !ok {
			requiredOff = b.p.Options.DefaultMinOff
		}
		b.bm.offRequired[u] = requiredOff

		if requiredOff > 0 {
			slack := b.m.NewIntVar(0, numDays, fmt.Sprintf("off_slack_%d", u))
			terms := sumTerms(offVars)
			terms = append(terms, cpsolver.Term{Var: slack, Coef: 1})
			b.m.AddLinear(terms, cpsolver.OpGE, requiredOff)
			b.bm.offSlack[u] = slack
		} else {
			b.bm.offSlack[u] = b.m.NewConstant(0)
		}

		workCount := b.m.NewIntVar(0, numDays, fmt.Sprintf("work_count_%d", u))
		terms := sumTerms(offVars)
		terms = append(terms, cpsolver.Term{Var: workCount, Coef: 1})
		b.m.AddLinear(terms, cpsolver.OpEq, numDays)
		b.bm.workCount[u] = workCount
	}
}

func sumTerms(vars []cpsolver.Var) []cpsolver.Term {
	terms := make([]cpsolver.Term, 0, len(vars)+1)
	for _, v := range vars {
		terms = append(terms, cpsolver.Term{Var: v, Coef: 1})
	}
	return terms
}

func workIdx(c ShiftCode) int {
	for i, known := range WorkShiftCodes {
		if known == c {
			return i
		}
	}
	return -1
}

func containsCode(codes []ShiftCode, code ShiftCode) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
