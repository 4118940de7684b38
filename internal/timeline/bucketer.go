// Package timeline maps initiatives onto the discrete periods of the roadmap
// grid and translates drops on that grid back into initiative updates.
//
// Everything here is a pure function of its arguments. Results are meant to
// be recomputed on every render or query; nothing is cached.
package timeline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// ReferenceYear is the single calendar year the board lays out.
const ReferenceYear = 2024

// WeeksPerYear is the number of fixed seven-day buckets shown in week view.
// Day 364 (and 365 in a leap year) falls outside every bucket.
const WeeksPerYear = 52

// Granularity is the timeline display mode.
type Granularity string

const (
	Quarters Granularity = "quarters"
	Months   Granularity = "months"
	Weeks    Granularity = "weeks"
	Days     Granularity = "days"
)

// Granularities lists every valid Granularity, coarsest first.
var Granularities = []Granularity{Quarters, Months, Weeks, Days}

// ParseGranularity decodes a wire string. Unknown values are rejected.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !slices.Contains(Granularities, g) {
		return "", domain.NewValidationError("granularity",
			fmt.Sprintf("granularity must be one of quarters, months, weeks, days; got %q", s))
	}
	return g, nil
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Periods returns the ordered period labels for g.
// selectedMonth (0-11) is only consulted for Days.
func Periods(g Granularity, selectedMonth int) ([]string, error) {
	switch g {
	case Quarters:
		out := make([]string, len(domain.Quarters))
		for i, q := range domain.Quarters {
			out[i] = string(q)
		}
		return out, nil
	case Months:
		return slices.Clone(monthLabels), nil
	case Weeks:
		out := make([]string, WeeksPerYear)
		for i := range out {
			out[i] = "W" + strconv.Itoa(i+1)
		}
		return out, nil
	case Days:
		if err := checkMonth(selectedMonth); err != nil {
			return nil, err
		}
		n := DaysInMonth(selectedMonth)
		out := make([]string, n)
		for i := range out {
			out[i] = strconv.Itoa(i + 1)
		}
		return out, nil
	}
	return nil, domain.NewValidationError("granularity", fmt.Sprintf("unknown granularity %q", g))
}

// DaysInMonth returns the number of days in the 0-based month of ReferenceYear.
func DaysInMonth(month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(ReferenceYear, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Overlaps reports whether in belongs in period under granularity g.
// Labels that are not valid for g never overlap.
func Overlaps(in domain.Initiative, period string, g Granularity, selectedMonth int) bool {
	switch g {
	case Quarters:
		return string(in.Quarter) == period

	case Months:
		idx, ok := monthIndex(period)
		if !ok {
			return false
		}
		// Month components only: day-of-month and year are ignored.
		start, end := int(in.StartDate.Month())-1, int(in.EndDate.Month())-1
		return start <= idx && idx <= end

	case Weeks:
		k, ok := weekNumber(period)
		if !ok {
			return false
		}
		return WeekOf(in.StartDate) <= k && k <= WeekOf(in.EndDate)

	case Days:
		if checkMonth(selectedMonth) != nil {
			return false
		}
		day, ok := dayNumber(period, selectedMonth)
		if !ok {
			return false
		}
		target := time.Date(ReferenceYear, time.Month(selectedMonth+1), day, 0, 0, 0, 0, time.UTC)
		return !target.Before(dateOnly(in.StartDate)) && !target.After(dateOnly(in.EndDate))
	}
	return false
}

// Bucket is one period column and the initiatives that overlap it.
type Bucket struct {
	Period      string
	Initiatives []domain.Initiative
}

// BucketAll groups list into the periods of g. An initiative spanning several
// periods appears in each of them. Input order is kept within every bucket.
func BucketAll(list []domain.Initiative, g Granularity, selectedMonth int) ([]Bucket, error) {
	periods, err := Periods(g, selectedMonth)
	if err != nil {
		return nil, err
	}
	out := make([]Bucket, len(periods))
	for i, p := range periods {
		b := Bucket{Period: p, Initiatives: []domain.Initiative{}}
		for _, in := range list {
			if Overlaps(in, p, g, selectedMonth) {
				b.Initiatives = append(b.Initiatives, in)
			}
		}
		out[i] = b
	}
	return out, nil
}

// WeekOf returns the fixed-length week number of d relative to January 1 of
// ReferenceYear: days 0-6 are week 1, days 7-13 week 2, and so on.
// Dates before the reference year yield zero or negative weeks.
func WeekOf(d time.Time) int {
	return floorDiv(daysSinceJan1(d), 7) + 1
}

// QuarterForMonth maps a calendar month onto its quarter.
func QuarterForMonth(m time.Month) domain.Quarter {
	return domain.Quarters[(int(m)-1)/3]
}

// QuarterForDate returns the quarter containing d.
func QuarterForDate(d time.Time) domain.Quarter {
	return QuarterForMonth(d.Month())
}

func jan1() time.Time {
	return time.Date(ReferenceYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func daysSinceJan1(d time.Time) int {
	return int(dateOnly(d).Sub(jan1()).Hours() / 24)
}

// dateOnly drops the clock and zone so comparisons are by calendar date.
func dateOnly(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func checkMonth(m int) error {
	if m < 0 || m > 11 {
		return domain.NewValidationError("month", fmt.Sprintf("month must be between 0 and 11; got %d", m))
	}
	return nil
}

func monthIndex(label string) (int, bool) {
	i := slices.Index(monthLabels, label)
	return i, i >= 0
}

func weekNumber(label string) (int, bool) {
	rest, ok := strings.CutPrefix(label, "W")
	if !ok {
		return 0, false
	}
	k, err := strconv.Atoi(rest)
	if err != nil || k < 1 || k > WeeksPerYear {
		return 0, false
	}
	return k, true
}

// dayNumber accepts both "12" and "D12".
func dayNumber(label string, month int) (int, bool) {
	day, err := strconv.Atoi(strings.TrimPrefix(label, "D"))
	if err != nil || day < 1 || day > DaysInMonth(month) {
		return 0, false
	}
	return day, true
}
