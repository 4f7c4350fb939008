package intel

import "strings"

// Severity is a coarse vulnerability band.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"

	// SeverityNone is reported when there are no advisories at all.
	SeverityNone Severity = "NONE"
)

// Rank orders severities from most (0) to least severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityUnknown:
		return 4
	default:
		return 5
	}
}

// ParseSeverity maps a feed-specific label onto a band. "MODERATE" is MEDIUM;
// anything unrecognized is UNKNOWN.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical
	case "HIGH":
		return SeverityHigh
	case "MODERATE", "MEDIUM":
		return SeverityMedium
	case "LOW":
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// SeverityFromScore bands a numeric CVSS base score. Negative scores mean
// unknown.
func SeverityFromScore(score float64) Severity {
	switch {
	case score < 0:
		return SeverityUnknown
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
