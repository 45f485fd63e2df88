package svcdate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestResolve_TimeOfDay(t *testing.T) {
	now := at(2023, time.October, 9, 12, 30, 0)

	tests := []struct {
		token string
		want  int64
	}{
		// same day
		{"07:11:22", 1696835482},
		{"12:29:00", 1696854540},
		{"12:30:00", 1696854600},
		// day before
		{"12:31:00", 1696768260},
		{"22:00:05", 1696802405},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Resolve(now, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Unix())
			assert.False(t, got.After(now))
		})
	}
}

func TestResolve_TimeOfDayAcrossMonthBoundary(t *testing.T) {
	now := at(2024, time.March, 1, 0, 10, 0)

	got, err := Resolve(now, "23:59:59")
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.February, 29, 23, 59, 59), got)
}

func TestResolve_MonthDay(t *testing.T) {
	now := at(2023, time.October, 9, 0, 0, 0)

	tests := []struct {
		token string
		want  int64
	}{
		// same year
		{"Jan_1", 1672531200},
		{"Feb_27", 1677456000},
		{"Mar_4", 1677888000},
		{"Aug_9", 1691539200},
		{"Oct_8", 1696723200},
		{"Oct_9", 1696809600},
		// year before
		{"Oct_10", 1665360000},
		{"Oct_28", 1666915200},
		{"Dec_25", 1671926400},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Resolve(now, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Unix())
		})
	}
}

func TestResolve_MonthDayKeepsMonthAndDay(t *testing.T) {
	now := at(2023, time.October, 9, 15, 0, 0)

	got, err := Resolve(now, "Nov_30")
	require.NoError(t, err)
	assert.Equal(t, at(2022, time.November, 30, 0, 0, 0), got)
}

func TestResolve_MonthDayCaseInsensitive(t *testing.T) {
	now := at(2023, time.October, 9, 0, 0, 0)

	got, err := Resolve(now, "aug_09")
	require.NoError(t, err)
	assert.Equal(t, int64(1691539200), got.Unix())
}

func TestResolve_LeapDayRollsBackToFebruary28(t *testing.T) {
	now := at(2024, time.February, 10, 0, 0, 0)

	got, err := Resolve(now, "Feb_29")
	require.NoError(t, err)
	assert.Equal(t, at(2023, time.February, 28, 0, 0, 0), got)
}

func TestResolve_Year(t *testing.T) {
	nows := []time.Time{
		at(2023, time.October, 9, 0, 0, 0),
		at(2030, time.June, 1, 18, 45, 3),
	}

	tests := []struct {
		token string
		want  int64
	}{
		{"2021", 1609459200},
		{"2022", 1640995200},
	}

	for _, now := range nows {
		for _, tt := range tests {
			got, err := Resolve(now, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Unix(), "token %s now %s", tt.token, now)
		}
	}
}

func TestResolve_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	now := time.Date(2023, time.October, 9, 6, 0, 0, 0, loc)

	got, err := Resolve(now, "05:00:00")
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, time.Date(2023, time.October, 9, 5, 0, 0, 0, loc), got)
}

func TestResolve_Invalid(t *testing.T) {
	now := at(2023, time.October, 9, 0, 0, 0)

	tests := []struct {
		token string
		kind  error
	}{
		{"foo", ErrMalformed},
		{"", ErrMalformed},
		{"1:2", ErrMalformed},
		{"1:2:3:4", ErrMalformed},
		{"aa:10:10", ErrMalformed},
		{"-1:10:10", ErrMalformed},
		{"Foo_1", ErrMalformed},
		{"Oct_1_2", ErrMalformed},
		{"Oct_", ErrMalformed},
		{"Oct_123", ErrMalformed},
		{"Oct_x", ErrMalformed},
		{"00:11:97", ErrInvalidCalendar},
		{"24:00:00", ErrInvalidCalendar},
		{"10:60:00", ErrInvalidCalendar},
		{"Aug_58", ErrInvalidCalendar},
		{"Aug_0", ErrInvalidCalendar},
		{"Feb_29", ErrInvalidCalendar},
		{"Apr_31", ErrInvalidCalendar},
		{"0", ErrInvalidCalendar},
		{"-5", ErrInvalidCalendar},
		{"10000", ErrInvalidCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := Resolve(now, tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.token, perr.Token)
			assert.Contains(t, err.Error(), tt.token)
		})
	}
}

func TestParseError_WrapsCause(t *testing.T) {
	now := at(2023, time.October, 9, 0, 0, 0)

	_, err := Resolve(now, "x:00:00")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrInvalidCalendar)
	assert.Contains(t, err.Error(), "bad hours")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, FormTimeOfDay, Classify("07:11:22"))
	assert.Equal(t, FormTimeOfDay, Classify("a_b:c"), "':' wins over '_'")
	assert.Equal(t, FormMonthDay, Classify("Oct_10"))
	assert.Equal(t, FormYear, Classify("2021"))
	assert.Equal(t, FormYear, Classify("foo"))
}
