package services

import (
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

// clock yields the current time in the configured timezone
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{now: time.Now, loc: loc}
}

func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Day returns the calendar-day key for t in the configured timezone
func (c clock) Day(t time.Time) string {
	return utils.DayKey(t.In(c.loc))
}
