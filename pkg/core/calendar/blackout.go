package calendar

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// Window is an inclusive range of days on which no duty is scheduled
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// RuleEpoch anchors recurring rules that carry no DTSTART. It is a Monday, so a weekly
// rule without BYDAY falls on the first day of a rota week.
var RuleEpoch = time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

// RecurringRule turns every occurrence of an RRule into a blackout window of Days days
type RecurringRule struct {
	Rule  *rrule.RRule
	Days  int
	Label string
}

// ParseRecurringRule parses an RFC 5545 rule such as "FREQ=YEARLY;BYMONTH=8;BYMONTHDAY=1".
// A DTSTART in the rule is kept; without one the rule starts at RuleEpoch, so INTERVAL,
// COUNT and implied weekdays resolve the same way whatever date the rota starts on.
func ParseRecurringRule(s string, days int, label string) (RecurringRule, error) {
	opts, err := rrule.StrToROption(s)
	if err != nil {
		return RecurringRule{}, fmt.Errorf("%w: invalid rrule %q: %w", model.ErrInvalidInput, s, err)
	}
	if opts.Dtstart.IsZero() {
		opts.Dtstart = RuleEpoch
	}

	rule, err := rrule.NewRRule(*opts)
	if err != nil {
		return RecurringRule{}, fmt.Errorf("%w: invalid rrule %q: %w", model.ErrInvalidInput, s, err)
	}
	if days <= 0 {
		return RecurringRule{}, fmt.Errorf("%w: blackout rule %q needs a positive number of days", model.ErrInvalidInput, s)
	}

	return RecurringRule{Rule: rule, Days: days, Label: label}, nil
}

// Blackout computes the windows excluded from a rota: the three Christmas weeks of every
// year the rota touches, plus any configured recurring rules
type Blackout struct {
	Recurring []RecurringRule
}

// ChristmasWindows returns the week before, the week of and the week after December 24
func ChristmasWindows(year int) []Window {
	christmas := time.Date(year, time.December, 24, 0, 0, 0, 0, time.UTC)
	return []Window{
		{Start: christmas.AddDate(0, 0, -7), End: christmas.AddDate(0, 0, -1), Label: "week before Christmas"},
		{Start: christmas, End: christmas.AddDate(0, 0, 6), Label: "Christmas week"},
		{Start: christmas.AddDate(0, 0, 7), End: christmas.AddDate(0, 0, 13), Label: "week after Christmas"},
	}
}

// YearsTouched returns the sorted distinct years of every range start and end
func YearsTouched(weeks []model.WeekRange) []int {
	var years []int
	for _, w := range weeks {
		for _, y := range []int{w.Start.Year(), w.End.Year()} {
			if !slices.Contains(years, y) {
				years = append(years, y)
			}
		}
	}
	slices.Sort(years)
	return years
}

// Windows returns every blackout window relevant to the given weeks: the Christmas windows
// of each year a week starts or ends in, plus the occurrences of the recurring rules
func (b Blackout) Windows(weeks []model.WeekRange) []Window {
	if len(weeks) == 0 {
		return nil
	}

	var windows []Window
	for _, y := range YearsTouched(weeks) {
		windows = append(windows, ChristmasWindows(y)...)
	}

	from := weeks[0].Start
	to := weeks[len(weeks)-1].End
	for _, r := range b.Recurring {
		windows = append(windows, r.windows(from, to)...)
	}

	return windows
}

// windows expands the rule between from and to. The search starts one window length early
// so an occurrence that began before from still counts.
func (r RecurringRule) windows(from, to time.Time) []Window {
	if r.Rule == nil || r.Days <= 0 {
		return nil
	}

	var windows []Window
	for _, occurrence := range r.Rule.Between(from.AddDate(0, 0, -r.Days), to, true) {
		start := Date(occurrence)
		windows = append(windows, Window{
			Start: start,
			End:   start.AddDate(0, 0, r.Days-1),
			Label: r.Label,
		})
	}
	return windows
}

// Filter drops every week that overlaps any of the blackout windows, preserving order
func (b Blackout) Filter(weeks []model.WeekRange) []model.WeekRange {
	return FilterWeeks(weeks, b.Windows(weeks))
}

// FilterWeeks drops every week that overlaps any of the given windows, preserving order
func FilterWeeks(weeks []model.WeekRange, windows []Window) []model.WeekRange {
	kept := make([]model.WeekRange, 0, len(weeks))
	for _, w := range weeks {
		if !overlapsAny(w, windows) {
			kept = append(kept, w)
		}
	}
	return kept
}

func overlapsAny(week model.WeekRange, windows []Window) bool {
	for _, win := range windows {
		if week.Overlaps(win.Start, win.End) {
			return true
		}
	}
	return false
}
