package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateWeeks_ConsecutiveSevenDayRanges(t *testing.T) {
	weeks := GenerateWeeks(date(2025, 3, 5), 10)

	require.Len(t, weeks, 10)
	assert.Equal(t, date(2025, 3, 5), weeks[0].Start)
	for i, w := range weeks {
		assert.Equal(t, w.Start.AddDate(0, 0, 6), w.End, "week %d should span 7 days", i)
		if i > 0 {
			assert.Equal(t, weeks[i-1].Start.AddDate(0, 0, 7), w.Start, "week %d should start 7 days after the previous", i)
		}
	}
}

func TestGenerateWeeks_NormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2025, 3, 5, 17, 30, 0, 0, time.FixedZone("X", 3600))

	weeks := GenerateWeeks(start, 1)

	require.Len(t, weeks, 1)
	assert.Equal(t, date(2025, 3, 5), weeks[0].Start)
}

func TestGenerateWeeks_ZeroCount(t *testing.T) {
	assert.Empty(t, GenerateWeeks(date(2025, 1, 6), 0))
}

func TestGenerateWeeksForYear_StopsAtYearBoundary(t *testing.T) {
	weeks := GenerateWeeksForYear(date(2025, 1, 6), 2025)

	require.Len(t, weeks, 52)
	assert.Equal(t, date(2025, 12, 29), weeks[len(weeks)-1].Start)
	assert.Equal(t, date(2026, 1, 4), weeks[len(weeks)-1].End)
}

func TestGenerateWeeksForYear_StartOutsideYear(t *testing.T) {
	assert.Empty(t, GenerateWeeksForYear(date(2024, 12, 30), 2025))
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Month
	}{
		{"january", time.January},
		{"April", time.April},
		{"SEPTEMBER", time.September},
		{" december ", time.December},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth_InvalidName(t *testing.T) {
	for _, input := range []string{"Smarch", "", "13", "Janu"} {
		_, err := ParseMonth(input)
		assert.ErrorIs(t, err, model.ErrInvalidInput, "input %q", input)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 6), d)

	_, err = ParseDate("06/01/2025")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestNextMonday(t *testing.T) {
	assert.Equal(t, date(2025, 1, 6), NextMonday(date(2025, 1, 6)), "Monday stays put")
	assert.Equal(t, date(2025, 1, 13), NextMonday(date(2025, 1, 7)), "Tuesday moves to next Monday")
	assert.Equal(t, date(2025, 1, 6), NextMonday(date(2025, 1, 5)), "Sunday moves one day")
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, date(2025, 9, 1), MonthStart(time.September, 2025), "1 Sep 2025 is already a Monday")
	assert.Equal(t, date(2025, 4, 7), MonthStart(time.April, 2025))
	assert.Equal(t, time.Monday, MonthStart(time.February, 2026).Weekday())
}

func TestDefaultYearForMonth(t *testing.T) {
	now := date(2026, 10, 19)

	assert.Equal(t, 2026, DefaultYearForMonth(time.October, now))
	assert.Equal(t, 2026, DefaultYearForMonth(time.December, now))
	assert.Equal(t, 2027, DefaultYearForMonth(time.April, now))
}

func TestRequiredWeeks(t *testing.T) {
	assert.Equal(t, 4, RequiredWeeks(6, 3, 2))
	assert.Equal(t, 6, RequiredWeeks(7, 3, 2))
	assert.Equal(t, 10, RequiredWeeks(5, 1, 2))
	assert.Equal(t, 0, RequiredWeeks(0, 3, 2))
}
