package svcdate

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

var ageUnits = []struct {
	size time.Duration
	name string
}{
	{365 * day, "year"},
	{30 * day, "month"},
	{7 * day, "week"},
	{day, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
}

// RelativeAge describes d using the largest unit that fits at least once,
// e.g. "5 minutes" or "1 year". Years and months are fixed 365 and 30 day
// spans. Durations under a second (and negative ones) give "0 seconds".
func RelativeAge(d time.Duration) string {
	for _, u := range ageUnits {
		n := int64(d / u.size)
		if n <= 0 {
			continue
		}
		if n == 1 {
			return fmt.Sprintf("1 %s", u.name)
		}
		return fmt.Sprintf("%d %ss", n, u.name)
	}
	return "0 seconds"
}

// Age is RelativeAge of the time elapsed between then and now.
func Age(now, then time.Time) string {
	return RelativeAge(now.Sub(then))
}
