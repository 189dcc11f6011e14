package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/roster-optimizer-go/pkg/models"
)

const dateLayout = "2006-01-02"

// Day is one calendar day of the planning horizon.
type Day struct {
	Date    time.Time
	ISO     string
	Weekday string
	Holiday bool
	// Generation marks days requiring full coverage; days past the
	// generation cutoff only exist to let night-rest sequences complete.
	Generation bool
}

// Preferences is the canonical form of a member's off-day wishes.
type Preferences struct {
	FixedDaysOff   map[string]bool // weekday keys plus "holiday"
	CustomDatesOff []string        // ISO dates, already validated
}

// MemberSpec is the canonical, immutable form of one roster member.
type MemberSpec struct {
	ID             int
	Name           string
	EmploymentType string
	CanNightShift  bool
	AllowedCodes   []ShiftCode // nil means every code allowed
	Prefs          Preferences
}

// Options are the resolved constraint knobs of one solve.
type Options struct {
	MaxNights              int
	TimeLimit              time.Duration
	Workers                int
	MinOffByType           map[string]int
	DefaultMinOff          int
	EnforceNightRest       bool
	ForbidLateToEarly      bool
	LimitFulltimeRepeat    bool
	BalanceWorkload        bool
	DesiredDayHeadcount    int
	MaxConsecutiveWorkdays int // 0 disables the rule
	GenerationEnd          *time.Time
}

// Problem is the canonical in-memory form of a request: sanitized members,
// days, coverage targets and options. No scheduling rules applied yet.
type Problem struct {
	Unit        models.Unit
	Month       string
	Days        []Day
	Members     []MemberSpec
	Required    map[ShiftCode]int
	Options     Options
	Existing    []models.ExistingAssignment
	dayIndex    map[string]int
	memberIndex map[int]int
}

// DayIndex resolves an ISO date to its horizon position.
func (p *Problem) DayIndex(iso string) (int, bool) {
	d, ok := p.dayIndex[iso]
	return d, ok
}

// MemberIndex resolves a member ID to its roster position.
func (p *Problem) MemberIndex(id int) (int, bool) {
	u, ok := p.memberIndex[id]
	return u, ok
}

var requiredKeys = []string{"unit", "month", "days", "members", "coverage_requirements"}

// ParseRequest decodes the raw payload and checks the required top-level
// keys. Failures here are the fatal tier: no model is ever built from them.
func ParseRequest(data []byte) (*models.ScheduleRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("Invalid JSON input: %v", err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("Missing key: %s", key)
		}
	}
	var req models.ScheduleRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("Invalid JSON input: %v", err)
	}
	return &req, nil
}

// Normalize sanitizes the request into a Problem, applying documented
// defaults for absent or malformed optional fields. It rejects only empty
// member or day lists and unparsable horizon dates.
func Normalize(req *models.ScheduleRequest) (*Problem, error) {
	if len(req.Members) == 0 || len(req.Days) == 0 {
		return nil, fmt.Errorf("Members or days are empty")
	}

	numDays := len(req.Days)
	numMembers := len(req.Members)
	cons := req.Constraints
	if cons == nil {
		cons = &models.Constraints{}
	}

	days := make([]Day, 0, numDays)
	dayIndex := make(map[string]int, numDays)
	for i, iso := range req.Days {
		date, err := time.Parse(dateLayout, iso)
		if err != nil {
			return nil, fmt.Errorf("Invalid day %q: expected YYYY-MM-DD", iso)
		}
		days = append(days, Day{
			Date:    date,
			ISO:     iso,
			Weekday: weekdayKeys[(int(date.Weekday())+6)%7],
		})
		dayIndex[iso] = i
	}

	holidaySet := make(map[string]bool)
	if rawDates, ok := cons.HolidayDates.([]any); ok {
		for _, entry := range rawDates {
			if iso, ok := normalizeDateKey(entry); ok {
				holidaySet[iso] = true
			}
		}
	}
	for i := range days {
		days[i].Holiday = holidaySet[days[i].ISO]
	}

	var generationEnd *time.Time
	if raw := cons.GenerationEndDate; raw != nil {
		if iso, ok := normalizeDateKey(raw); ok {
			if t, err := time.Parse(dateLayout, iso); err == nil {
				generationEnd = &t
			}
		}
	}
	for i := range days {
		days[i].Generation = generationEnd == nil || !days[i].Date.After(*generationEnd)
	}

	members := make([]MemberSpec, 0, numMembers)
	memberIndex := make(map[int]int, numMembers)
	for i, m := range req.Members {
		spec := MemberSpec{
			ID:             m.ID,
			Name:           m.Name,
			EmploymentType: m.EmploymentType,
			CanNightShift:  true,
			AllowedCodes:   normalizeAllowedCodes(m.AllowedShiftCodes),
			Prefs:          normalizePreferences(m.SchedulePreferences),
		}
		if spec.EmploymentType == "" {
			spec.EmploymentType = "member"
		}
		if m.CanNightShift != nil {
			spec.CanNightShift = *m.CanNightShift
		}
		members = append(members, spec)
		memberIndex[m.ID] = i
	}

	required := make(map[ShiftCode]int, len(WorkShiftCodes))
	for _, code := range WorkShiftCodes {
		required[code] = coverageFor(req.CoverageRequirements, code)
	}

	opts := resolveOptions(cons, req.CoverageRequirements, required[ShiftDay], numDays, numMembers)
	opts.GenerationEnd = generationEnd

	return &Problem{
		Unit:        req.Unit,
		Month:       req.Month,
		Days:        days,
		Members:     members,
		Required:    required,
		Options:     opts,
		Existing:    req.ExistingAssignments,
		dayIndex:    dayIndex,
		memberIndex: memberIndex,
	}, nil
}

func resolveOptions(cons *models.Constraints, coverage map[string]any, baseDayRequired, numDays, numMembers int) Options {
	opts := Options{
		MaxNights:           intOr(cons.MaxNightsPerMember, 7),
		TimeLimit:           secondsOr(cons.TimeLimit, 20),
		Workers:             8,
		EnforceNightRest:    truthyBool(cons.EnforceNightAfterRest, true),
		ForbidLateToEarly:   truthyBool(cons.ForbidLateToEarly, true),
		LimitFulltimeRepeat: truthyBool(cons.LimitFulltimeRepeat, true),
		BalanceWorkload:     truthyBool(cons.BalanceWorkload, true),
	}

	// Minimum days-off fallback chain: full-time falls back to the general
	// default; part-time uses the general default only when it was set
	// explicitly, else 10; contract inherits part-time's resolved value.
	baseMinOff := clampMinOff(cons.MinOffDays, 0, numDays)
	partTimeFallback := 10
	if cons.MinOffDays != nil {
		partTimeFallback = baseMinOff
	}
	minOffPartTime := clampMinOff(cons.MinOffDaysPartTime, partTimeFallback, numDays)
	opts.MinOffByType = map[string]int{
		"full_time": clampMinOff(cons.MinOffDaysFullTime, baseMinOff, numDays),
		"part_time": minOffPartTime,
		"contract":  clampMinOff(cons.MinOffDaysContract, minOffPartTime, numDays),
	}
	opts.DefaultMinOff = baseMinOff

	desiredRaw := cons.DesiredDayHeadcount
	if desiredRaw == nil && coverage != nil {
		desiredRaw = coverage["day_desired"]
	}
	desired, ok := asInt(desiredRaw)
	if !ok {
		desired = baseDayRequired
	}
	if desired > numMembers {
		desired = numMembers
	}
	if desired < baseDayRequired {
		desired = baseDayRequired
	}
	opts.DesiredDayHeadcount = desired

	if parsed, ok := asInt(cons.MaxConsecutiveWorkdays); ok && parsed > 0 {
		if parsed > numDays {
			parsed = numDays
		}
		opts.MaxConsecutiveWorkdays = parsed
	}

	return opts
}

// normalizeAllowedCodes filters a raw allow-list down to known shift codes,
// case-insensitive, de-duplicated, order-preserving. A non-list value means
// no restriction.
func normalizeAllowedCodes(raw any) []ShiftCode {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	normalized := make([]ShiftCode, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		code, ok := ParseShiftCode(s)
		if !ok {
			continue
		}
		seen := false
		for _, existing := range normalized {
			if existing == code {
				seen = true
				break
			}
		}
		if !seen {
			normalized = append(normalized, code)
		}
	}
	return normalized
}

func normalizePreferences(raw *models.SchedulePreferences) Preferences {
	prefs := Preferences{FixedDaysOff: map[string]bool{}}
	if raw == nil {
		return prefs
	}
	for key, value := range raw.FixedDaysOff {
		if truthy(value) {
			prefs.FixedDaysOff[key] = true
		}
	}
	for _, entry := range raw.CustomDatesOff {
		if iso, ok := normalizeDateKey(entry); ok {
			prefs.CustomDatesOff = append(prefs.CustomDatesOff, iso)
		}
	}
	return prefs
}

func coverageFor(coverage map[string]any, code ShiftCode) int {
	if coverage == nil {
		return 0
	}
	raw, ok := coverage[strings.ToLower(string(code))]
	if !ok {
		raw = coverage[string(code)]
	}
	n, ok := asInt(raw)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// normalizeDateKey coerces a raw value into a validated ISO date. Unparsable
// entries are dropped by callers, never reported.
func normalizeDateKey(raw any) (string, bool) {
	var value string
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		value = strings.TrimSpace(v)
	default:
		value = strings.TrimSpace(fmt.Sprint(v))
	}
	if value == "" {
		return "", false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

// truthyBool resolves a loosely typed flag: booleans pass through, the
// strings 1/true/yes and 0/false/no are recognized case-insensitively, and
// anything else coerces by generic truthiness.
func truthyBool(value any, def bool) bool {
	if value == nil {
		return def
	}
	if b, ok := value.(bool); ok {
		return b
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(s) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
	}
	return truthy(value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func intOr(value any, def int) int {
	if n, ok := asInt(value); ok {
		return n
	}
	return def
}

func secondsOr(value any, def float64) time.Duration {
	seconds := def
	switch v := value.(type) {
	case float64:
		seconds = v
	case int:
		seconds = float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			seconds = f
		}
	}
	if seconds <= 0 {
		seconds = def
	}
	return time.Duration(seconds * float64(time.Second))
}

func clampMinOff(raw any, fallback, numDays int) int {
	if raw == nil {
		return fallback
	}
	value, ok := asInt(raw)
	if !ok {
		return fallback
	}
	if value < 0 {
		return 0
	}
	if value > numDays {
		return numDays
	}
	return value
}
