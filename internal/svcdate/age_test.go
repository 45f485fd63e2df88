package svcdate

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 seconds"},
		{500 * time.Millisecond, "0 seconds"},
		{-5 * time.Second, "0 seconds"},
		{time.Second, "1 second"},
		{5 * time.Second, "5 seconds"},
		{time.Minute, "1 minute"},
		{119 * time.Second, "1 minute"},
		{90 * time.Minute, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{day, "1 day"},
		{6 * day, "6 days"},
		{14 * day, "2 weeks"},
		{29 * day, "4 weeks"},
		{60 * day, "2 months"},
		{364 * day, "12 months"},
		{400 * day, "1 year"},
		{731 * day, "2 years"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeAge(tt.in))
		})
	}
}

func TestRelativeAge_Monotonic(t *testing.T) {
	rank := map[string]int{}
	for i, u := range ageUnits {
		rank[u.name] = len(ageUnits) - i
	}

	parse := func(label string) (int, int64) {
		fields := strings.Fields(label)
		require.Len(t, fields, 2)
		n, err := strconv.ParseInt(fields[0], 10, 64)
		require.NoError(t, err)
		return rank[strings.TrimSuffix(fields[1], "s")], n
	}

	prevRank, prevN := 0, int64(0)
	for d := time.Second; d < 800*day; d = d*5/4 + time.Second {
		r, n := parse(RelativeAge(d))
		if r == prevRank {
			assert.GreaterOrEqual(t, n, prevN, "duration %s", d)
		} else {
			assert.Greater(t, r, prevRank, "duration %s", d)
		}
		prevRank, prevN = r, n
	}
}

func TestAge(t *testing.T) {
	now := at(2023, time.October, 9, 12, 30, 0)
	then, err := Resolve(now, "12:25:00")
	require.NoError(t, err)

	assert.Equal(t, "5 minutes", Age(now, then))
}
