package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// Drop describes where an initiative was released on the board.
type Drop struct {
	TeamID        string
	Period        string
	Granularity   Granularity
	SelectedMonth int // 0-11; only meaningful for Days
}

// Resolve computes the minimal patch that moves in to the drop target.
// Only fields whose value actually changes are set, so dropping an
// initiative onto the cell it already occupies yields an empty patch.
//
// Under Months and Weeks the initiative's date range is replaced by the
// target period's range; its previous duration is not preserved.
// Under Days only the team can change.
func Resolve(in domain.Initiative, drop Drop) (domain.InitiativePatch, error) {
	var patch domain.InitiativePatch

	teamID := strings.TrimSpace(drop.TeamID)
	if teamID == "" {
		return patch, domain.NewValidationError("team", "team is required")
	}
	if in.Team != teamID {
		patch.Team = &teamID
	}

	switch drop.Granularity {
	case Quarters:
		q, ok := domain.ParseQuarter(drop.Period)
		if !ok {
			return domain.InitiativePatch{}, invalidPeriod(drop)
		}
		setQuarter(&patch, in, q)

	case Months:
		idx, ok := monthIndex(drop.Period)
		if !ok {
			return domain.InitiativePatch{}, invalidPeriod(drop)
		}
		m := time.Month(idx + 1)
		start := time.Date(ReferenceYear, m, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		setDates(&patch, in, start, end)
		setQuarter(&patch, in, QuarterForMonth(m))

	case Weeks:
		k, ok := weekNumber(drop.Period)
		if !ok {
			return domain.InitiativePatch{}, invalidPeriod(drop)
		}
		start := jan1().AddDate(0, 0, (k-1)*7)
		end := start.AddDate(0, 0, 6)
		setDates(&patch, in, start, end)
		setQuarter(&patch, in, QuarterForDate(start))

	case Days:
		if err := checkMonth(drop.SelectedMonth); err != nil {
			return domain.InitiativePatch{}, err
		}
		if _, ok := dayNumber(drop.Period, drop.SelectedMonth); !ok {
			return domain.InitiativePatch{}, invalidPeriod(drop)
		}

	default:
		_, err := ParseGranularity(string(drop.Granularity))
		return domain.InitiativePatch{}, err
	}

	return patch, nil
}

func setQuarter(p *domain.InitiativePatch, in domain.Initiative, q domain.Quarter) {
	if in.Quarter != q {
		p.Quarter = &q
	}
}

func setDates(p *domain.InitiativePatch, in domain.Initiative, start, end time.Time) {
	if !dateOnly(in.StartDate).Equal(start) {
		p.StartDate = &start
	}
	if !dateOnly(in.EndDate).Equal(end) {
		p.EndDate = &end
	}
}

func invalidPeriod(d Drop) error {
	return domain.NewValidationError("period",
		fmt.Sprintf("%q is not a valid period for %s", d.Period, d.Granularity))
}
