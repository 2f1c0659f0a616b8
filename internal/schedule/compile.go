package schedule

import (
	"strings"
)

// allowedMoments maps an every-type to the at-types it accepts.
var allowedMoments = map[Field][]Field{
	FieldMinute:     nil,
	FieldHour:       {FieldMinute},
	FieldDayOfMonth: {FieldMinute, FieldHour},
	FieldMonth:      {FieldMinute, FieldHour, FieldDayOfMonth, FieldDayOfWeek},
	FieldDayOfWeek:  {FieldMinute, FieldHour},
}

// IsLiteral reports whether every is already a five-field cron time string.
func IsLiteral(every string) bool {
	return len(strings.Fields(every)) == 5
}

// Compile turns an every/at pair into cron time syntax.
//
// Literal five-field strings are returned unchanged and predefined keywords become
// "@keyword"; in both cases at is not consulted. Everything else is parsed,
// cross-validated and assembled into "minute hour day-of-month month day-of-week".
// Compile is pure: the same input always yields the same output.
func Compile(every, at string) (string, error) {
	if IsLiteral(every) {
		return every, nil
	}
	if IsPredefined(every) {
		return "@" + every, nil
	}

	r, err := parseEvery(every)
	if err != nil {
		return "", err
	}
	m, err := parseAt(at)
	if err != nil {
		return "", err
	}
	if err := validate(every, at, r, m); err != nil {
		return "", err
	}

	return strings.Join(assemble(r, m), " "), nil
}

func validate(every, at string, r recurrence, m moments) error {
	if r.field == FieldMinute {
		if !m.empty() {
			return &ValidationError{
				Every:     every,
				At:        at,
				EveryType: r.field.String(),
				AtType:    m.order[0].String(),
			}
		}
		return nil
	}

	allowed := allowedMoments[r.field]
	for _, f := range m.order {
		if !containsField(allowed, f) {
			return &ValidationError{
				Every:     every,
				At:        at,
				EveryType: r.field.String(),
				AtType:    f.String(),
			}
		}
	}
	return nil
}

func containsField(fields []Field, f Field) bool {
	for _, candidate := range fields {
		if candidate == f {
			return true
		}
	}
	return false
}

// assemble builds the five ordered cron time fields.
//
//	* * * * *
//	│ │ │ │ └─ day of week (0-6, Sunday is 0)
//	│ │ │ └─── month (1-12)
//	│ │ └───── day of month (1-31)
//	│ └─────── hour (0-23)
//	└───────── minute (0-59)
func assemble(r recurrence, m moments) []string {
	fields := []string{"*", "*", "*", "*", "*"}

	switch r.field {
	case FieldMinute:
		fields[0] = Frequency(r.step, 0, 59)
	case FieldHour:
		fields[0] = m.get(FieldMinute, "0")
		fields[1] = Frequency(r.step, 0, 23)
	case FieldDayOfMonth:
		fields[0] = m.get(FieldMinute, "0")
		fields[1] = m.get(FieldHour, "0")
		fields[2] = Frequency(r.step, 1, 31)
	case FieldMonth:
		fields[0] = m.get(FieldMinute, "0")
		fields[1] = m.get(FieldHour, "0")
		fields[2] = m.get(FieldDayOfMonth, "1")
		if r.step > 0 {
			fields[3] = Frequency(r.step, 1, 12)
		} else {
			fields[3] = r.value
		}
		fields[4] = m.get(FieldDayOfWeek, "*")
	case FieldDayOfWeek:
		fields[0] = m.get(FieldMinute, "0")
		fields[1] = m.get(FieldHour, "0")
		fields[4] = r.value
	}

	return fields
}
