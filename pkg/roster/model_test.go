package roster

import (
	"testing"

	"github.com/arnavshah/roster-optimizer-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, req *models.ScheduleRequest) *Problem {
	t.Helper()
	p, err := Normalize(req)
	require.NoError(t, err)
	return p
}

func conflictsOfType(conflicts []models.Conflict, kind string) []models.Conflict {
	var out []models.Conflict
	for _, c := range conflicts {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	return out
}

func TestBuildModelCleanRequestHasNoConflicts(t *testing.T) {
	p := mustNormalize(t, baseRequest(4, 3))
	bm := BuildModel(p)
	assert.Empty(t, bm.Conflicts)
	assert.Greater(t, bm.Model.NumVars(), 4*3*6)
}

func TestDuplicatePinConflict(t *testing.T) {
	req := baseRequest(2, 3)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"}, // same code, no conflict
	}
	bm := BuildModel(mustNormalize(t, req))

	dups := conflictsOfType(bm.Conflicts, ConflictExistingAssignment)
	require.Len(t, dups, 1)
	assert.Equal(t, 1, dups[0].MemberID)
	assert.Equal(t, req.Days[0], dups[0].Date)
	assert.Equal(t, []string{"DAY", "NIGHT"}, dups[0].Codes)
}

func TestPinOutsideAllowListFlaggedTwice(t *testing.T) {
	// Once at ingestion, once when the eligibility rule is suppressed for
	// the pinned cell.
	req := baseRequest(2, 3)
	req.Members[0].AllowedShiftCodes = []any{"DAY"}
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[1], ShiftCode: "EARLY"},
	}
	bm := BuildModel(mustNormalize(t, req))

	flagged := conflictsOfType(bm.Conflicts, ConflictAllowedShift)
	require.Len(t, flagged, 2)
	for _, c := range flagged {
		assert.Equal(t, 1, c.MemberID)
		assert.Equal(t, req.Days[1], c.Date)
		assert.Equal(t, "EARLY", c.ShiftCode)
	}
}

func TestUnknownPinsSilentlyDropped(t *testing.T) {
	req := baseRequest(2, 3)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 99, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 1, Date: "2030-01-01", ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[0], ShiftCode: "SWING"},
	}
	bm := BuildModel(mustNormalize(t, req))
	assert.Empty(t, bm.Conflicts)
}

func TestFixedDayOffPinConflict(t *testing.T) {
	req := baseRequest(2, 7)
	req.Members[0].SchedulePreferences = &models.SchedulePreferences{
		FixedDaysOff: map[string]any{"monday": true},
	}
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "LATE"}, // a Monday
	}
	bm := BuildModel(mustNormalize(t, req))

	offs := conflictsOfType(bm.Conflicts, ConflictFixedDayOff)
	require.Len(t, offs, 1)
	assert.Equal(t, req.Days[0], offs[0].Date)
	assert.Equal(t, "LATE", offs[0].ShiftCode)
}

func TestConsecutiveCapPinnedRunConflict(t *testing.T) {
	req := baseRequest(3, 5)
	req.Constraints = &models.Constraints{MaxConsecutiveWorkdays: 2}
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 2, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 2, Date: req.Days[1], ShiftCode: "EARLY"},
		{UserID: 2, Date: req.Days[2], ShiftCode: "LATE"},
	}
	bm := BuildModel(mustNormalize(t, req))

	runs := conflictsOfType(bm.Conflicts, ConflictMaxConsecutive)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].MemberID)
	assert.Equal(t, req.Days[0], runs[0].StartDate)
	assert.Equal(t, req.Days[2], runs[0].EndDate)
	assert.Equal(t, 2, runs[0].Limit)
}

func TestNightAfterWithoutNightPredecessor(t *testing.T) {
	req := baseRequest(2, 3)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "NIGHT_AFTER"},
	}
	bm := BuildModel(mustNormalize(t, req))

	preds := conflictsOfType(bm.Conflicts, ConflictNightAfterPred)
	require.Len(t, preds, 1)
	assert.Equal(t, req.Days[1], preds[0].Date)
	assert.Equal(t, req.Days[0], preds[0].PreviousDate)
	assert.Equal(t, "DAY", preds[0].LockedShift)
}

func TestNightFollowUpConflict(t *testing.T) {
	req := baseRequest(2, 4)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
	}
	bm := BuildModel(mustNormalize(t, req))

	followUps := conflictsOfType(bm.Conflicts, ConflictNightFollowUp)
	require.Len(t, followUps, 1)
	assert.Equal(t, req.Days[0], followUps[0].Date)
	assert.Equal(t, req.Days[1], followUps[0].NextDate)
	assert.Equal(t, "DAY", followUps[0].LockedShift)
}

func TestNightRestThirdDayConflict(t *testing.T) {
	req := baseRequest(2, 4)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "NIGHT_AFTER"},
		{UserID: 1, Date: req.Days[2], ShiftCode: "EARLY"},
	}
	bm := BuildModel(mustNormalize(t, req))

	rests := conflictsOfType(bm.Conflicts, ConflictNightRest)
	require.Len(t, rests, 1)
	assert.Equal(t, req.Days[0], rests[0].Date)
	assert.Equal(t, req.Days[2], rests[0].RestDate)
	assert.Equal(t, "EARLY", rests[0].LockedShift)
}

func TestNightEligibilityPinConflict(t *testing.T) {
	req := baseRequest(2, 3)
	req.Members[0].CanNightShift = boolPtr(false)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[2], ShiftCode: "NIGHT_AFTER"},
	}
	bm := BuildModel(mustNormalize(t, req))

	elig := conflictsOfType(bm.Conflicts, ConflictNightEligibility)
	require.Len(t, elig, 2)
	assert.Equal(t, 1, elig[0].MemberID)
	assert.Equal(t, req.Days[0], elig[0].Date)
	assert.Equal(t, req.Days[2], elig[1].Date)

	// The rejected pins never become equalities, so no other rule trips
	// over them.
	assert.Len(t, bm.Conflicts, 2)
}

func TestLateToEarlyPinConflict(t *testing.T) {
	req := baseRequest(2, 3)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "LATE"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "EARLY"},
	}
	bm := BuildModel(mustNormalize(t, req))

	bans := conflictsOfType(bm.Conflicts, ConflictLateToEarly)
	require.Len(t, bans, 1)
	assert.Equal(t, req.Days[0], bans[0].Date)
	assert.Equal(t, req.Days[1], bans[0].NextDate)
}

func TestRepeatLimitRequiresFullyPinnedTriple(t *testing.T) {
	req := baseRequest(2, 4)
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[2], ShiftCode: "DAY"},
	}
	bm := BuildModel(mustNormalize(t, req))

	repeats := conflictsOfType(bm.Conflicts, ConflictRepeatLimit)
	require.Len(t, repeats, 1)
	assert.Equal(t, req.Days[0], repeats[0].StartDate)
	assert.Equal(t, "DAY", repeats[0].ShiftCode)

	// Two pins and a free day never fire the conflict.
	req = baseRequest(2, 4)
	req.ExistingAssignments = req.ExistingAssignments[:0]
	req.ExistingAssignments = append(req.ExistingAssignments,
		models.ExistingAssignment{UserID: 1, Date: req.Days[0], ShiftCode: "DAY"},
		models.ExistingAssignment{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
	)
	bm = BuildModel(mustNormalize(t, req))
	assert.Empty(t, conflictsOfType(bm.Conflicts, ConflictRepeatLimit))
}

func TestRepeatLimitSkipsPartTime(t *testing.T) {
	req := baseRequest(2, 4)
	req.Members[0].EmploymentType = "part_time"
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
		{UserID: 1, Date: req.Days[2], ShiftCode: "DAY"},
	}
	bm := BuildModel(mustNormalize(t, req))
	assert.Empty(t, conflictsOfType(bm.Conflicts, ConflictRepeatLimit))
}

func TestNightQuotaPinConflict(t *testing.T) {
	req := baseRequest(2, 6)
	req.Constraints = &models.Constraints{
		MaxNightsPerMember:    1,
		EnforceNightAfterRest: false,
	}
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[3], ShiftCode: "NIGHT"},
	}
	bm := BuildModel(mustNormalize(t, req))

	quotas := conflictsOfType(bm.Conflicts, ConflictNightQuota)
	require.Len(t, quotas, 1)
	assert.Equal(t, 2, quotas[0].NightsLocked)
	assert.Equal(t, 1, quotas[0].MaxAllowed)
}

func TestDisabledRulesEmitNothing(t *testing.T) {
	req := baseRequest(2, 3)
	req.Constraints = &models.Constraints{
		EnforceNightAfterRest: false,
		ForbidLateToEarly:     "no",
		LimitFulltimeRepeat:   false,
	}
	req.ExistingAssignments = []models.ExistingAssignment{
		{UserID: 1, Date: req.Days[0], ShiftCode: "NIGHT"},
		{UserID: 1, Date: req.Days[1], ShiftCode: "DAY"},
	}
	bm := BuildModel(mustNormalize(t, req))
	assert.Empty(t, conflictsOfType(bm.Conflicts, ConflictNightFollowUp))
	assert.Empty(t, conflictsOfType(bm.Conflicts, ConflictLateToEarly))
}
