// Package schedule compiles human-friendly recurrence expressions into cron time fields.
//
// Two small languages are supported. The "every" language describes how often a job
// recurs ("3.hour", "monday", "weekend", "2.month", or a literal cron string), the
// "at" language pins moments inside that period ("12:00", "minute.5 minute.35",
// "day.15", "sunday").
//
// Example usage:
//
//	fields, err := schedule.Compile("1.day", "12:00")
//	// fields == "0 12 * * *"
package schedule

import (
	"golang.org/x/text/cases"
)

// Field identifies one of the five cron time fields.
type Field int

const (
	FieldMinute Field = iota
	FieldHour
	FieldDayOfMonth
	FieldMonth
	FieldDayOfWeek
)

// String returns the human name of the field used in error messages.
func (f Field) String() string {
	switch f {
	case FieldMinute:
		return "minute"
	case FieldHour:
		return "hour"
	case FieldDayOfMonth:
		return "day of month"
	case FieldMonth:
		return "month"
	case FieldDayOfWeek:
		return "day of week"
	default:
		return "unknown"
	}
}

var monthNumbers = map[string]string{
	"jan": "1",
	"feb": "2",
	"mar": "3",
	"apr": "4",
	"may": "5",
	"jun": "6",
	"jul": "7",
	"aug": "8",
	"sep": "9",
	"oct": "10",
	"nov": "11",
	"dec": "12",
}

var weekdayNumbers = map[string]string{
	"sun": "0",
	"mon": "1",
	"tue": "2",
	"wed": "3",
	"thu": "4",
	"fri": "5",
	"sat": "6",
}

const (
	weekdayGroup = "weekday"
	weekendGroup = "weekend"
)

// predefined holds the cron descriptors accepted verbatim as "every" values.
var predefined = map[string]bool{
	"yearly":   true,
	"annually": true,
	"monthly":  true,
	"weekly":   true,
	"daily":    true,
	"hourly":   true,
	"reboot":   true,
}

// fold returns the case-folded form of a calendar token.
// cases.Caser is stateful, so a new one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func prefix3(s string) string {
	if len(s) < 3 {
		return ""
	}
	return s[:3]
}

// IsPredefined reports whether every is one of the cron descriptor keywords.
func IsPredefined(every string) bool {
	return predefined[every]
}

// IsMonth reports whether token names a month (matched on its first three letters).
func IsMonth(token string) bool {
	_, ok := monthNumbers[prefix3(fold(token))]
	return ok
}

// IsWeekday reports whether token names a day of week or one of the
// "weekday"/"weekend" groups.
func IsWeekday(token string) bool {
	folded := fold(token)
	if folded == weekdayGroup || folded == weekendGroup {
		return true
	}
	_, ok := weekdayNumbers[prefix3(folded)]
	return ok
}

// MonthNumber resolves a month name to its cron number ("february" -> "2").
func MonthNumber(token string) (string, bool) {
	n, ok := monthNumbers[prefix3(fold(token))]
	return n, ok
}

// WeekdayNumbers resolves a weekday token to its cron value.
// "weekday" expands to "1,2,3,4,5" and "weekend" to "6,0".
func WeekdayNumbers(token string) (string, bool) {
	switch folded := fold(token); folded {
	case weekdayGroup:
		return "1,2,3,4,5", true
	case weekendGroup:
		return "6,0", true
	default:
		n, ok := weekdayNumbers[prefix3(folded)]
		return n, ok
	}
}
