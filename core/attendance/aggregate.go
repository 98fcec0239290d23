package attendance

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidRange = errors.New("end date cannot be before start date")

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Percent computes present/marked*100 rounded to `places` decimals.
// A zero denominator yields 0, not an error.
func Percent(present, marked, places int) float64 {
	if marked == 0 {
		return 0
	}
	return Round(float64(present)/float64(marked)*100, places)
}

// Below reports whether a percentage falls strictly below the threshold.
func Below(percentage, threshold float64) bool {
	return percentage < threshold
}

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start, end = truncate(start), truncate(end)
	if end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// MonthRange returns the range covering the whole month of t,
// from the 1st to the last day.
func MonthRange(t time.Time) DateRange {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateRange{Start: first, End: last}
}

// TotalDays is the inclusive day count of the range, independent of how
// many days actually have records. It is the denominator for "not
// marked" but never for percentages.
func (r DateRange) TotalDays() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Tally holds per-entity status counts for a date range.
type Tally struct {
	Present int
	Absent  int
	Late    int
	OnLeave int
}

func (t *Tally) Add(s Status) {
	switch s {
	case StatusPresent:
		t.Present++
	case StatusAbsent:
		t.Absent++
	case StatusLate:
		t.Late++
	case StatusOnLeave:
		t.OnLeave++
	}
}

// Marked is the number of days an attendance status was explicitly recorded.
func (t Tally) Marked() int {
	return t.Present + t.Absent + t.Late + t.OnLeave
}

// Percent is the entity's attendance percentage over marked days only.
func (t Tally) Percent(places int) float64 {
	return Percent(t.Present, t.Marked(), places)
}
