package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// recurrence is the parsed form of an "every" expression.
type recurrence struct {
	field Field  // which cron field carries the recurrence
	step  int    // frequency for "<N>.<unit>" forms, 0 for calendar names
	value string // resolved cron value for bare month or weekday names
}

type unit struct {
	field    Field
	min, max int
}

var units = map[string]unit{
	"minute": {field: FieldMinute, min: 1, max: 60},
	"hour":   {field: FieldHour, min: 1, max: 24},
	"day":    {field: FieldDayOfMonth, min: 1, max: 31},
	"month":  {field: FieldMonth, min: 1, max: 12},
	"year":   {field: FieldMonth, min: 1, max: 1},
}

func (u unit) rangeText(name string) string {
	if u.min == u.max {
		return fmt.Sprintf("out of %s range [%d]", name, u.min)
	}
	return fmt.Sprintf("out of %s range [%d-%d]", name, u.min, u.max)
}

// parseEvery parses an "every" expression that is neither a literal cron
// string nor a predefined keyword.
func parseEvery(every string) (recurrence, error) {
	if dot := strings.IndexByte(every, '.'); dot >= 0 {
		return parseFrequency(every, every[:dot], every[dot+1:])
	}

	if n, ok := MonthNumber(every); ok {
		return recurrence{field: FieldMonth, value: n}, nil
	}
	if n, ok := WeekdayNumbers(every); ok {
		return recurrence{field: FieldDayOfWeek, value: n}, nil
	}

	return recurrence{}, everyError(every, "")
}

func parseFrequency(every, number, unitName string) (recurrence, error) {
	name := strings.TrimSuffix(fold(unitName), "s")
	u, ok := units[name]
	if !ok {
		return recurrence{}, everyError(every, fmt.Sprintf("unknown unit %q", unitName))
	}

	step, err := strconv.Atoi(number)
	if err != nil {
		return recurrence{}, everyError(every, fmt.Sprintf("frequency %q is not a number", number))
	}
	if step < u.min || step > u.max {
		return recurrence{}, everyError(every, u.rangeText(name))
	}

	// Years are handled as twelve months.
	if name == "year" {
		step = 12
	}

	return recurrence{field: u.field, step: step}, nil
}
