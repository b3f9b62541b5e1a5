package rates

import (
	"fmt"
	"strconv"
	"strings"
)

// fallbackAgeRanges is used when a hotel has not configured child age
// groups for the selected market or season. These mirror the platform's
// stock brackets.
var fallbackAgeRanges = map[string]string{
	"infant": "0-2",
	"first":  "3-6",
	"second": "7-11",
	"third":  "12-17",
}

// FormatCombination renders a human-facing label for an occupancy
// combination, e.g. "2+1 (3-6)" for two adults and one first-bracket
// child. With zero children only the adult count is returned.
//
// Age ranges come from the hotel's configured groups; unknown codes fall
// back to the stock brackets and, failing that, to the raw code. The
// function is pure and never fails on missing configuration.
func FormatCombination(combo CombinationEntry, groups ChildAgeGroupList) string {
	if len(combo.ChildAgeGroups) == 0 {
		return strconv.Itoa(combo.Adults)
	}

	ranges := make([]string, 0, len(combo.ChildAgeGroups))
	for _, code := range combo.ChildAgeGroups {
		ranges = append(ranges, ageRangeLabel(code, groups))
	}

	return fmt.Sprintf("%d+%d (%s)", combo.Adults, len(combo.ChildAgeGroups), strings.Join(ranges, ", "))
}

func ageRangeLabel(code string, groups ChildAgeGroupList) string {
	for _, g := range groups {
		if g.Code == code {
			return fmt.Sprintf("%d-%d", g.MinAge, g.MaxAge)
		}
	}
	if r, ok := fallbackAgeRanges[code]; ok {
		return r
	}
	return code
}
