package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// moments holds the parsed "at" values grouped by cron field,
// keeping the order in which fields first appeared.
type moments struct {
	order  []Field
	values map[Field][]string
}

func (m *moments) add(f Field, value string) {
	if m.values == nil {
		m.values = make(map[Field][]string)
	}
	existing, seen := m.values[f]
	if !seen {
		m.order = append(m.order, f)
	}
	for _, v := range existing {
		if v == value {
			return
		}
	}
	m.values[f] = append(existing, value)
}

// get returns the comma-joined values for f, or def when none were given.
func (m moments) get(f Field, def string) string {
	values, ok := m.values[f]
	if !ok {
		return def
	}
	return strings.Join(values, ",")
}

func (m moments) empty() bool {
	return len(m.order) == 0
}

type momentRange struct {
	field    Field
	min, max int
}

var momentRanges = map[string]momentRange{
	"minute": {field: FieldMinute, min: 0, max: 59},
	"hour":   {field: FieldHour, min: 0, max: 23},
	"day":    {field: FieldDayOfMonth, min: 1, max: 31},
}

// expandClock rewrites "HH:MM[:SS]" tokens into "hour.HH minute.MM" pairs.
// Seconds are ignored and a leading zero in the minute is dropped.
func expandClock(at string) []string {
	var tokens []string
	for _, token := range strings.Fields(at) {
		if !strings.Contains(token, ":") {
			tokens = append(tokens, token)
			continue
		}
		parts := strings.Split(token, ":")
		hour, minute := parts[0], parts[1]
		if len(minute) >= 2 && minute[0] == '0' {
			minute = minute[1:2]
		}
		tokens = append(tokens, "hour."+hour, "minute."+minute)
	}
	return tokens
}

// parseAt parses a space separated list of moment tokens.
func parseAt(at string) (moments, error) {
	var m moments
	if strings.TrimSpace(at) == "" {
		return m, nil
	}

	for _, token := range expandClock(at) {
		dot := strings.IndexByte(token, '.')
		if dot < 0 {
			n, ok := WeekdayNumbers(token)
			if !ok {
				return moments{}, atError(at, fmt.Sprintf("unknown moment %q", token))
			}
			for _, d := range strings.Split(n, ",") {
				m.add(FieldDayOfWeek, d)
			}
			continue
		}

		name := fold(token[:dot])
		if name == "month" || name == "year" {
			return moments{}, atError(at, "can not set month or year")
		}
		r, ok := momentRanges[name]
		if !ok {
			return moments{}, atError(at, fmt.Sprintf("unknown moment %q", token))
		}
		value, err := strconv.Atoi(token[dot+1:])
		if err != nil {
			return moments{}, atError(at, fmt.Sprintf("moment %q is not a number", token))
		}
		if value < r.min || value > r.max {
			return moments{}, atError(at, fmt.Sprintf("out of %s range [%d-%d]", r.field, r.min, r.max))
		}
		m.add(r.field, strconv.Itoa(value))
	}

	return m, nil
}
