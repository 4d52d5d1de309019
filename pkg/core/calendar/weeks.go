package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// Date normalizes t to midnight UTC so that all arithmetic works on naive calendar days
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date %q must be in YYYY-MM-DD format", model.ErrInvalidInput, s)
	}
	return d, nil
}

// ParseMonth converts a full English month name (any case) into a time.Month
func ParseMonth(name string) (time.Month, error) {
	trimmed := strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), trimmed) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid month name %q", model.ErrInvalidInput, name)
}

// NextMonday returns the first Monday on or after the given date
func NextMonday(from time.Time) time.Time {
	normalized := Date(from)
	daysUntilMonday := (int(time.Monday) - int(normalized.Weekday()) + 7) % 7
	return normalized.AddDate(0, 0, daysUntilMonday)
}

// MonthStart returns the first Monday on or after the first day of the month
func MonthStart(month time.Month, year int) time.Time {
	return NextMonday(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// DefaultYearForMonth picks the year a month-aligned rota starts in: this year if the month
// has not passed yet, otherwise next year
func DefaultYearForMonth(month time.Month, now time.Time) int {
	if month >= now.Month() {
		return now.Year()
	}
	return now.Year() + 1
}

// RequiredWeeks is the number of weeks needed so that every person (or group) gets one block
func RequiredWeeks(people, groupSize, weeksPerBlock int) int {
	if groupSize <= 0 {
		return 0
	}
	blocks := (people + groupSize - 1) / groupSize
	return blocks * weeksPerBlock
}

// GenerateWeeks returns count consecutive week ranges, the first starting on start
func GenerateWeeks(start time.Time, count int) []model.WeekRange {
	start = Date(start)
	weeks := make([]model.WeekRange, 0, max(count, 0))
	for i := 0; i < count; i++ {
		weeks = append(weeks, model.NewWeekRange(start.AddDate(0, 0, 7*i)))
	}
	return weeks
}

// GenerateWeeksForYear returns consecutive week ranges from start for as long as
// the range starts within year
func GenerateWeeksForYear(start time.Time, year int) []model.WeekRange {
	var weeks []model.WeekRange
	for d := Date(start); d.Year() == year; d = d.AddDate(0, 0, 7) {
		weeks = append(weeks, model.NewWeekRange(d))
	}
	return weeks
}
