package models

// Unit identifies the work unit a roster is generated for
type Unit struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
}

// Member represents a roster member available for shifts
type Member struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EmploymentType string `json:"employment_type"`
	CanNightShift  *bool  `json:"can_night_shift"`
	// AllowedShiftCodes is kept loosely typed: a non-list or absent value
	// means "all shift codes allowed".
	AllowedShiftCodes   any                  `json:"allowed_shift_codes,omitempty"`
	SchedulePreferences *SchedulePreferences `json:"schedule_preferences,omitempty"`
}

// SchedulePreferences carries per-member off-day preferences
type SchedulePreferences struct {
	// FixedDaysOff maps weekday keys ("monday".."sunday") plus "holiday" to
	// truthy values.
	FixedDaysOff   map[string]any `json:"fixed_days_off"`
	CustomDatesOff []any          `json:"custom_dates_off"`
}

// Constraints is the open-option bag of the request; every field is loosely
// typed because callers historically send booleans as strings and numbers as
// either ints or floats. Normalization resolves each to a typed default.
type Constraints struct {
	MaxNightsPerMember     any `json:"max_nights_per_member"`
	MinOffDays             any `json:"min_off_days"`
	MinOffDaysFullTime     any `json:"min_off_days_full_time"`
	MinOffDaysPartTime     any `json:"min_off_days_part_time"`
	MinOffDaysContract     any `json:"min_off_days_contract"`
	HolidayDates           any `json:"holiday_dates"`
	GenerationEndDate      any `json:"generation_end_date"`
	TimeLimit              any `json:"time_limit"`
	DesiredDayHeadcount    any `json:"desired_day_headcount"`
	MaxConsecutiveWorkdays any `json:"max_consecutive_workdays"`
	EnforceNightAfterRest  any `json:"enforce_night_after_rest"`
	ForbidLateToEarly      any `json:"forbid_late_to_early"`
	LimitFulltimeRepeat    any `json:"limit_fulltime_repeat"`
	BalanceWorkload        any `json:"balance_workload"`
}

// ExistingAssignment is a pinned (member, day) -> shift code fact
type ExistingAssignment struct {
	UserID    int    `json:"user_id"`
	Date      string `json:"date"`
	ShiftCode string `json:"shift_code"`
}

// ScheduleRequest is the data structure for the roster generation endpoint
type ScheduleRequest struct {
	Unit                 Unit                 `json:"unit"`
	Month                string               `json:"month"`
	Days                 []string             `json:"days"`
	Members              []Member             `json:"members"`
	CoverageRequirements map[string]any       `json:"coverage_requirements"`
	Constraints          *Constraints         `json:"constraints"`
	ExistingAssignments  []ExistingAssignment `json:"existing_assignments"`
}

// AssignmentRef points at the member holding a shift slot
type AssignmentRef struct {
	UserID int `json:"user_id"`
}

// DayAssignments lists who holds which shift code on one day. A slot with a
// single member marshals as one AssignmentRef, with several as a list.
type DayAssignments struct {
	Date   string         `json:"date"`
	Shifts map[string]any `json:"shifts"`
}

// Shortage reports a coverage requirement that went under-met
type Shortage struct {
	Date      string `json:"date"`
	ShiftCode string `json:"shift_code"`
	Missing   int    `json:"missing"`
}

// DayCapacityShortfall reports a missed day-shift headcount target
type DayCapacityShortfall struct {
	Date           string `json:"date"`
	ShiftCode      string `json:"shift_code"`
	Shortfall      int    `json:"shortfall"`
	UnusedCapacity int    `json:"unused_capacity"`
	Desired        int    `json:"desired"`
}

// Conflict records a non-fatal contradiction between pinned data and a hard
// rule. Type selects which of the kind-specific fields are populated.
type Conflict struct {
	Type         string   `json:"type"`
	MemberID     int      `json:"member_id"`
	Date         string   `json:"date,omitempty"`
	ShiftCode    string   `json:"shift_code,omitempty"`
	Codes        []string `json:"codes,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Limit        int      `json:"limit,omitempty"`
	PreviousDate string   `json:"previous_date,omitempty"`
	NextDate     string   `json:"next_date,omitempty"`
	RestDate     string   `json:"rest_date,omitempty"`
	LockedShift  string   `json:"locked_shift,omitempty"`
	NightsLocked int      `json:"nights_locked,omitempty"`
	MaxAllowed   int      `json:"max_allowed,omitempty"`
	Shortfall    int      `json:"shortfall,omitempty"`
	Required     int      `json:"required,omitempty"`
}

// Summary is the per-solve statistics block. Member-keyed maps use the
// member ID rendered as a string so the structure survives JSON round trips.
type Summary struct {
	Status                string                 `json:"status"`
	WorkDays              map[string]int         `json:"work_days"`
	OffDays               map[string]int         `json:"off_days"`
	Nights                map[string]int         `json:"nights"`
	ShiftBreakdown        map[string]int         `json:"shift_breakdown"`
	Shortages             []Shortage             `json:"shortages"`
	DayCapacityShortfalls []DayCapacityShortfall `json:"day_capacity_shortfalls"`
	ConstraintConflicts   []Conflict             `json:"constraint_conflicts"`
}

// ScheduleResponse is the full roster generation result
type ScheduleResponse struct {
	Assignments []DayAssignments `json:"assignments"`
	Summary     Summary          `json:"summary"`
}
