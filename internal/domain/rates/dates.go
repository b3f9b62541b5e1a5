package rates

import (
	"math"
	"time"
)

const isoDateLayout = "2006-01-02"

// defaultPeriodDays is the length of a suggested pricing window when no
// season bounds it (start day plus 29 more days = 30 days).
const defaultPeriodDays = 29

// ParseISODate parses a calendar date in ISO "2006-01-02" form, UTC
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(isoDateLayout, s)
}

// NightsBetween returns the number of calendar days covered by the
// inclusive [start, end] range, floored at zero for inverted ranges.
//
// Note that this counts days in range, not stay-nights: the same start
// and end date yields 1, which is one more than a checkout-minus-checkin
// night count. Pricing periods throughout the engine use this inclusive
// semantic.
func NightsBetween(start, end time.Time) int {
	diff := end.Sub(start).Hours() / 24
	nights := int(math.Ceil(diff)) + 1
	if nights < 0 {
		return 0
	}
	return nights
}

// Period is a suggested pricing window
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SuggestNextPeriod proposes the next pricing window to pre-populate the
// rate entry workflow. The start seed is, in priority order: the day
// after the latest known rate date, the selected season's start, today.
// The window is 30 days, unless seeded from a season, whose own end date
// is used exactly.
func SuggestNextPeriod(lastRateDate *time.Time, season *Season, today time.Time) Period {
	if lastRateDate != nil {
		start := lastRateDate.AddDate(0, 0, 1)
		return Period{Start: start, End: start.AddDate(0, 0, defaultPeriodDays)}
	}

	if r, ok := season.FirstRange(); ok {
		return Period{Start: r.Start, End: r.End}
	}

	return Period{Start: today, End: today.AddDate(0, 0, defaultPeriodDays)}
}
