package schedule

import (
	"strconv"
	"strings"
)

// Frequency renders a step over the inclusive range [start, maximum] as a cron field.
//
// A step equal to the range length runs once at start, a step of one is "*", and any
// other step becomes a comma list. When the range length is not a multiple of the step
// the first element is dropped: step 3 over days 1-31 gives "4,7,...,28,31".
func Frequency(step, start, maximum int) string {
	length := maximum - start + 1
	if step == length {
		return strconv.Itoa(start)
	}
	if step == 1 {
		return "*"
	}

	var values []string
	for v := start; v <= maximum; v += step {
		values = append(values, strconv.Itoa(v))
	}
	if length%step != 0 && len(values) > 0 {
		values = values[1:]
	}
	return strings.Join(values, ",")
}
