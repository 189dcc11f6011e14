package roster

import (
	"strconv"

	"github.com/arnavshah/roster-optimizer-go/pkg/cpsolver"
	"github.com/arnavshah/roster-optimizer-go/pkg/models"
)

// outputShiftCodes is the emission order per day: work codes, then the rest
// slots.
var outputShiftCodes = []ShiftCode{ShiftEarly, ShiftDay, ShiftLate, ShiftNight, ShiftNightAfter, ShiftOff}

// FormatResult converts solved variable values into the day-oriented
// assignment listing and the per-member summary. It reads the model and
// solution without mutating either, so re-running it over the same snapshot
// yields identical structures.
func FormatResult(bm *BuiltModel, sol *cpsolver.Solution) *models.ScheduleResponse {
	status := sol.Status().String()
	if !sol.Status().Usable() {
		// The engine could not even attempt a solution; only the status is
		// meaningful.
		return &models.ScheduleResponse{
			Assignments: []models.DayAssignments{},
			Summary: models.Summary{
				Status:                status,
				WorkDays:              map[string]int{},
				OffDays:               map[string]int{},
				Nights:                map[string]int{},
				ShiftBreakdown:        emptyBreakdown(),
				Shortages:             []models.Shortage{},
				DayCapacityShortfalls: []models.DayCapacityShortfall{},
				ConstraintConflicts:   []models.Conflict{},
			},
		}
	}

	p := bm.Problem
	numDays := len(p.Days)

	uniqueShiftUsers := make(map[ShiftCode]map[int]bool, len(WorkShiftCodes))
	for _, code := range WorkShiftCodes {
		uniqueShiftUsers[code] = make(map[int]bool)
	}
	nightUsersByDay := make([]map[int]bool, numDays)
	for d := range nightUsersByDay {
		nightUsersByDay[d] = make(map[int]bool)
	}

	assignments := make([]models.DayAssignments, 0, numDays)
	for d, day := range p.Days {
		entry := models.DayAssignments{Date: day.ISO, Shifts: map[string]any{}}
		for _, code := range outputShiftCodes {
			assigned := make([]models.AssignmentRef, 0, len(p.Members))
			for u, member := range p.Members {
				if sol.Value(bm.Cube(u, d, code)) == 1 {
					assigned = append(assigned, models.AssignmentRef{UserID: member.ID})
				}
			}
			if len(assigned) == 0 {
				continue
			}

			if code == ShiftNight {
				for _, ref := range assigned {
					nightUsersByDay[d][ref.UserID] = true
				}
			}

			if !day.Generation {
				// Carry-over days only exist so night-rest sequences can
				// complete: anything not backed by a real NIGHT is dropped.
				switch code {
				case ShiftNightAfter:
					assigned = filterRefs(assigned, func(id int) bool {
						return d > 0 && nightUsersByDay[d-1][id]
					})
				case ShiftOff:
					assigned = filterRefs(assigned, func(id int) bool {
						return d > 1 && nightUsersByDay[d-2][id]
					})
				default:
					assigned = nil
				}
			}
			if len(assigned) == 0 {
				continue
			}

			if IsWorkCode(code) {
				for _, ref := range assigned {
					uniqueShiftUsers[code][ref.UserID] = true
				}
			}

			if len(assigned) == 1 {
				entry.Shifts[string(code)] = assigned[0]
			} else {
				entry.Shifts[string(code)] = assigned
			}
		}
		assignments = append(assignments, entry)
	}

	workDays := make(map[string]int, len(p.Members))
	offDays := make(map[string]int, len(p.Members))
	nights := make(map[string]int, len(p.Members))
	for u, member := range p.Members {
		key := strconv.Itoa(member.ID)
		offCount := 0
		nightCount := 0
		for d := 0; d < numDays; d++ {
			offCount += sol.Value(bm.Cube(u, d, ShiftOff))
			nightCount += sol.Value(bm.Cube(u, d, ShiftNight))
		}
		workDays[key] = sol.Value(bm.workCount[u])
		offDays[key] = offCount
		nights[key] = nightCount
	}

	breakdown := emptyBreakdown()
	for code, users := range uniqueShiftUsers {
		breakdown[string(code)] = len(users)
	}

	shortages := make([]models.Shortage, 0)
	for d := 0; d < numDays; d++ {
		for w, code := range WorkShiftCodes {
			v := bm.shortage[d][w]
			if v < 0 {
				continue
			}
			if missing := sol.Value(v); missing > 0 {
				shortages = append(shortages, models.Shortage{
					Date:      p.Days[d].ISO,
					ShiftCode: string(code),
					Missing:   missing,
				})
			}
		}
	}

	dayCapacityShortfalls := make([]models.DayCapacityShortfall, 0)
	for d := 0; d < numDays; d++ {
		if shortfall := sol.Value(bm.dayShortfall[d]); shortfall > 0 {
			dayCapacityShortfalls = append(dayCapacityShortfalls, models.DayCapacityShortfall{
				Date:           p.Days[d].ISO,
				ShiftCode:      string(ShiftDay),
				Shortfall:      shortfall,
				UnusedCapacity: shortfall,
				Desired:        bm.desiredPerDay[d],
			})
		}
	}

	conflicts := make([]models.Conflict, 0, len(bm.Conflicts))
	conflicts = append(conflicts, bm.Conflicts...)
	for u, member := range p.Members {
		required := bm.offRequired[u]
		if required <= 0 {
			continue
		}
		if shortfall := sol.Value(bm.offSlack[u]); shortfall > 0 {
			conflicts = append(conflicts, models.Conflict{
				Type:      ConflictOffShortfall,
				MemberID:  member.ID,
				Shortfall: shortfall,
				Required:  required,
			})
		}
	}

	return &models.ScheduleResponse{
		Assignments: assignments,
		Summary: models.Summary{
			Status:                status,
			WorkDays:              workDays,
			OffDays:               offDays,
			Nights:                nights,
			ShiftBreakdown:        breakdown,
			Shortages:             shortages,
			DayCapacityShortfalls: dayCapacityShortfalls,
			ConstraintConflicts:   conflicts,
		},
	}
}

func emptyBreakdown() map[string]int {
	breakdown := make(map[string]int, len(WorkShiftCodes))
	for _, code := range WorkShiftCodes {
		breakdown[string(code)] = 0
	}
	return breakdown
}

func filterRefs(refs []models.AssignmentRef, keep func(id int) bool) []models.AssignmentRef {
	out := refs[:0]
	for _, ref := range refs {
		if keep(ref.UserID) {
			out = append(out, ref)
		}
	}
	return out
}
