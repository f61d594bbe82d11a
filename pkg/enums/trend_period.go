package enums

import "fmt"

// TrendPeriod selects the bucketing granularity for trend queries.
type TrendPeriod string

const (
	TrendPeriodDaily   TrendPeriod = "daily"
	TrendPeriodWeekly  TrendPeriod = "weekly"
	TrendPeriodMonthly TrendPeriod = "monthly"
)

var validTrendPeriods = []TrendPeriod{
	TrendPeriodDaily,
	TrendPeriodWeekly,
	TrendPeriodMonthly,
}

// String implements fmt.Stringer.
func (p TrendPeriod) String() string {
	return string(p)
}

// IsValid reports whether the period is recognized.
func (p TrendPeriod) IsValid() bool {
	for _, candidate := range validTrendPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseTrendPeriod converts raw input into a TrendPeriod. Empty input
// defaults to monthly.
func ParseTrendPeriod(value string) (TrendPeriod, error) {
	if value == "" {
		return TrendPeriodMonthly, nil
	}
	for _, candidate := range validTrendPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trend period %q", value)
}
