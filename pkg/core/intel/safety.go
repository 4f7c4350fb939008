package intel

import "fmt"

// SafetyIndicator is a traffic-light verdict for a version.
type SafetyIndicator string

const (
	SafetySafe    SafetyIndicator = "SAFE"
	SafetyCaution SafetyIndicator = "CAUTION"
	SafetyWarning SafetyIndicator = "WARNING"
	SafetyDanger  SafetyIndicator = "DANGER"
)

// Safety fuses a vulnerability report with a stability grade. Advisories
// decide first (critical or high is DANGER, medium WARNING, low CAUTION);
// otherwise pre-releases are CAUTION and outdated versions WARNING.
func Safety(r *Report, g StabilityGrade) SafetyIndicator {
	if ind, ok := vulnerabilityIndicator(r); ok {
		return ind
	}
	switch g {
	case GradePreRelease:
		return SafetyCaution
	case GradeOutdated:
		return SafetyWarning
	default:
		return SafetySafe
	}
}

func vulnerabilityIndicator(r *Report) (SafetyIndicator, bool) {
	switch {
	case r.Critical > 0 || r.High > 0:
		return SafetyDanger, true
	case r.Medium > 0:
		return SafetyWarning, true
	case r.Low > 0:
		return SafetyCaution, true
	default:
		return "", false
	}
}

// Label returns a human-readable description of an assessment verdict.
func Label(ind SafetyIndicator, vulns int) string {
	switch ind {
	case SafetySafe:
		return "Safe to use"
	case SafetyCaution:
		return "Use with caution"
	case SafetyWarning:
		if vulns > 0 {
			return fmt.Sprintf("%d known %s", vulns, plural(vulns, "vulnerability", "vulnerabilities"))
		}
		return "Outdated, consider upgrading"
	case SafetyDanger:
		return fmt.Sprintf("%d security %s found", vulns, plural(vulns, "issue", "issues"))
	default:
		return ""
	}
}

// Badge is a vulnerability-only verdict for a single version.
type Badge struct {
	Group              string          `json:"groupId"`
	Artifact           string          `json:"artifactId"`
	Version            string          `json:"version"`
	Indicator          SafetyIndicator `json:"indicator"`
	Label              string          `json:"label"`
	VulnerabilityCount int             `json:"vulnerabilityCount"`
	HighestSeverity    Severity        `json:"highestSeverity"`
}

// BadgeFor derives a badge from a report, ignoring stability.
func BadgeFor(r *Report) Badge {
	ind, ok := vulnerabilityIndicator(r)
	if !ok {
		ind = SafetySafe
	}
	n := r.Total
	var label string
	switch ind {
	case SafetySafe:
		label = "No known vulnerabilities"
	case SafetyCaution:
		label = fmt.Sprintf("%d low-severity %s", n, plural(n, "issue", "issues"))
	case SafetyWarning:
		label = fmt.Sprintf("%d %s found", n, plural(n, "vulnerability", "vulnerabilities"))
	case SafetyDanger:
		label = fmt.Sprintf("%d security %s, action recommended", n, plural(n, "issue", "issues"))
	}
	return Badge{
		Group:              r.Group,
		Artifact:           r.Artifact,
		Version:            r.Version,
		Indicator:          ind,
		Label:              label,
		VulnerabilityCount: n,
		HighestSeverity:    r.Highest,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
