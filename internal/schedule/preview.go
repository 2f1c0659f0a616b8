package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// previewParser accepts standard 5-field expressions and descriptors like @daily.
var previewParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ErrNoNextRun is returned by Next for schedules without a calendar time (@reboot).
var ErrNoNextRun = errors.New("schedule has no next run time")

// Next returns the first time after from at which the compiled time fields fire.
func Next(fields string, from time.Time) (time.Time, error) {
	if strings.TrimSpace(fields) == "@reboot" {
		return time.Time{}, ErrNoNextRun
	}
	sched, err := previewParser.Parse(fields)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return sched.Next(from), nil
}
