package roster

import (
	"strconv"
	"strings"
)

// ShiftCode is one slot kind of the roster grid.
type ShiftCode string

const (
	ShiftEarly      ShiftCode = "EARLY"
	ShiftDay        ShiftCode = "DAY"
	ShiftLate       ShiftCode = "LATE"
	ShiftNight      ShiftCode = "NIGHT"
	ShiftNightAfter ShiftCode = "NIGHT_AFTER"
	ShiftOff        ShiftCode = "OFF"
)

// ShiftCodes is the full enumeration in grid order; the first four are the
// work codes subject to coverage targets.
var ShiftCodes = []ShiftCode{ShiftEarly, ShiftDay, ShiftLate, ShiftNight, ShiftNightAfter, ShiftOff}

// WorkShiftCodes are the codes that count as a worked day.
var WorkShiftCodes = []ShiftCode{ShiftEarly, ShiftDay, ShiftLate, ShiftNight}

var weekdayKeys = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// ParseShiftCode matches s against the enumeration, case-insensitively.
func ParseShiftCode(s string) (ShiftCode, bool) {
	code := ShiftCode(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ShiftCodes {
		if code == known {
			return known, true
		}
	}
	return "", false
}

// IsWorkCode reports whether c counts toward coverage and work-day totals.
func IsWorkCode(c ShiftCode) bool {
	switch c {
	case ShiftEarly, ShiftDay, ShiftLate, ShiftNight:
		return true
	}
	return false
}

// toMinutes parses "HH:MM" into minutes since midnight.
func toMinutes(timeStr string) (int, bool) {
	if timeStr == "" {
		return 0, false
	}
	parts := strings.SplitN(timeStr, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// InferShiftCategory resolves the work category of a legacy shift record. An
// explicit code wins; otherwise the category is derived from the start/end
// time pair. The checks below overlap, so their order is load-bearing.
func InferShiftCategory(shiftCode, startAt, endAt string) (ShiftCode, bool) {
	switch shiftCode {
	case "EARLY", "DAY", "LATE", "NIGHT":
		return ShiftCode(shiftCode), true
	case "NIGHT_AFTER":
		return ShiftNight, true
	case "OFF":
		return "", false
	}

	start, okStart := toMinutes(startAt)
	end, okEnd := toMinutes(endAt)
	if !okStart || !okEnd {
		return "", false
	}

	switch {
	case end < start:
		return ShiftNight, true
	case end >= 20*60:
		return ShiftLate, true
	case start >= 7*60 && start <= 7*60+30:
		return ShiftEarly, true
	case start >= 8*60 && end <= 18*60:
		return ShiftDay, true
	case start >= 15*60:
		return ShiftNight, true
	case start >= 6*60 && start < 8*60:
		return ShiftEarly, true
	case end >= 18*60:
		return ShiftLate, true
	default:
		return ShiftDay, true
	}
}
