package enums

import "fmt"

// InsightCategory classifies the rule family that produced an insight.
type InsightCategory string

const (
	InsightCategoryGrowth      InsightCategory = "Growth"
	InsightCategorySeasonality InsightCategory = "Seasonality"
	InsightCategoryProducts    InsightCategory = "Products"
	InsightCategoryGeography   InsightCategory = "Geography"
	InsightCategoryCustomers   InsightCategory = "Customers"
	InsightCategoryForecast    InsightCategory = "Forecast"
)

var validInsightCategories = []InsightCategory{
	InsightCategoryGrowth,
	InsightCategorySeasonality,
	InsightCategoryProducts,
	InsightCategoryGeography,
	InsightCategoryCustomers,
	InsightCategoryForecast,
}

// String implements fmt.Stringer.
func (c InsightCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is a known rule family.
func (c InsightCategory) IsValid() bool {
	for _, candidate := range validInsightCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Severity grades how an insight should be surfaced to the reader.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

var validSeverities = []Severity{
	SeverityPositive,
	SeverityWarning,
	SeverityInfo,
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	return string(s)
}

// IsValid reports whether the severity is recognized.
func (s Severity) IsValid() bool {
	for _, candidate := range validSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeverity converts raw input into a Severity.
func ParseSeverity(value string) (Severity, error) {
	for _, candidate := range validSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid severity %q", value)
}
