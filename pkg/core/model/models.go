package model

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the layout used for naive calendar dates on the command line and in filenames
const DateFormat = "2006-01-02"

// Person represents a single member of the roster
type Person struct {
	FirstName string
	LastName  string
}

// FullName returns "FirstName LastName"
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// WeekRange is a 7-day calendar range. End is always Start + 6 days.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// NewWeekRange returns the week range starting on the given day
func NewWeekRange(start time.Time) WeekRange {
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// Label renders the range the way it appears in the exported schedule, e.g. "Mon, 06 Jan - 12 Jan"
func (w WeekRange) Label() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("Mon, 02 Jan"), w.End.Format("02 Jan"))
}

// Overlaps reports whether the two inclusive date intervals share at least one day
func (w WeekRange) Overlaps(start, end time.Time) bool {
	return !(w.End.Before(start) || w.Start.After(end))
}

// Block is one assignment unit made of consecutive week ranges
type Block struct {
	Index int
	Weeks []WeekRange
}

// Start returns the first day of the block
func (b Block) Start() time.Time {
	return b.Weeks[0].Start
}

// End returns the last day of the block
func (b Block) End() time.Time {
	return b.Weeks[len(b.Weeks)-1].End
}

// Label renders the whole block as a single week label
func (b Block) Label() string {
	return WeekRange{Start: b.Start(), End: b.End()}.Label()
}

// Assignment maps a block to the people on duty for it
type Assignment struct {
	Block  Block
	People []Person
}

// Names returns the full names of the assigned people in order
func (a Assignment) Names() []string {
	names := make([]string, len(a.People))
	for i, p := range a.People {
		names[i] = p.FullName()
	}
	return names
}

// ScheduleRow is a single flattened row of the exported schedule
type ScheduleRow struct {
	Year   int
	Week   string
	People []string
}
