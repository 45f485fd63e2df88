// Package svcdate turns the truncated start times printed by svcs back into
// absolute instants.
//
// svcs prints a time of day for services started within the past 24 hours,
// a month and day ("Oct_08") within the past 12 months, and only the year
// beyond that. Recovering the instant needs a reference "now": the moment the
// svcs output was produced.
package svcdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Year bounds accepted by the year form.
const (
	MinYear = 1
	MaxYear = 9999
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Resolve returns the instant token refers to, given that svcs printed it at
// now. The result is in now's location.
func Resolve(now time.Time, token string) (time.Time, error) {
	switch Classify(token) {
	case FormTimeOfDay:
		return resolveTimeOfDay(now, token)
	case FormMonthDay:
		return resolveMonthDay(now, token)
	default:
		return resolveYear(now, token)
	}
}

// resolveTimeOfDay handles "HH:MM:SS". The event is less than a day old, so a
// time later than now belongs to yesterday.
func resolveTimeOfDay(now time.Time, token string) (time.Time, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return time.Time{}, malformed(token, "", fmt.Errorf("want 3 fields, got %d", len(parts)))
	}

	fields := [3]struct {
		name string
		max  uint64
	}{
		{"hours", 23},
		{"minutes", 59},
		{"seconds", 59},
	}

	var vals [3]int
	for i, f := range fields {
		n, err := strconv.ParseUint(parts[i], 10, 32)
		if err != nil {
			return time.Time{}, malformed(token, f.name, err)
		}
		if n > f.max {
			return time.Time{}, invalid(token, f.name, fmt.Errorf("%d out of range 0-%d", n, f.max))
		}
		vals[i] = int(n)
	}

	y, m, d := now.Date()
	t := time.Date(y, m, d, vals[0], vals[1], vals[2], 0, now.Location())
	if t.After(now) {
		t = t.AddDate(0, 0, -1)
	}
	return t, nil
}

// resolveMonthDay handles "Mon_D". The event is between a day and a year old,
// so a date later than now belongs to last year.
func resolveMonthDay(now time.Time, token string) (time.Time, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 2 {
		return time.Time{}, malformed(token, "", fmt.Errorf("want 2 fields, got %d", len(parts)))
	}

	month, ok := months[strings.ToLower(parts[0])]
	if !ok {
		return time.Time{}, malformed(token, "month", fmt.Errorf("unknown month %q", parts[0]))
	}

	if len(parts[1]) == 0 || len(parts[1]) > 2 {
		return time.Time{}, malformed(token, "day", fmt.Errorf("want 1-2 digits, got %q", parts[1]))
	}
	dom, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return time.Time{}, malformed(token, "day", err)
	}

	year := now.Year()
	if dom < 1 || int(dom) > daysIn(year, month) {
		return time.Time{}, invalid(token, "day", fmt.Errorf("%s has no day %d in %d", month, dom, year))
	}

	t := time.Date(year, month, int(dom), 0, 0, 0, 0, now.Location())
	if t.After(now) {
		t = subMonths(t, 12)
	}
	return t, nil
}

// resolveYear handles a bare year. Month and day are not recoverable, so the
// result is always midnight on January 1.
func resolveYear(now time.Time, token string) (time.Time, error) {
	year, err := strconv.Atoi(token)
	if err != nil {
		return time.Time{}, malformed(token, "year", err)
	}
	if year < MinYear || year > MaxYear {
		return time.Time{}, invalid(token, "year", fmt.Errorf("%d out of range %d-%d", year, MinYear, MaxYear))
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()), nil
}

// subMonths steps back n calendar months keeping the day of month, clamped
// to the last day of the target month.
func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m-1) - n
	ty, tm := total/12, time.Month(total%12+1)
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(ty, tm, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Form is the lexical shape of an svcs date token.
type Form int

const (
	FormYear Form = iota
	FormMonthDay
	FormTimeOfDay
)

// Classify reports which form token has, using the same rules as Resolve.
// It does not validate the fields.
func Classify(token string) Form {
	switch {
	case strings.Contains(token, ":"):
		return FormTimeOfDay
	case strings.Contains(token, "_"):
		return FormMonthDay
	default:
		return FormYear
	}
}
