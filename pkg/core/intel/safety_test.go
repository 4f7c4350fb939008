package intel

import "testing"

func TestSafety(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		grade  StabilityGrade
		want   SafetyIndicator
	}{
		{"critical", Report{Critical: 1}, GradeStable, SafetyDanger},
		{"high beats stability", Report{High: 1}, GradePreRelease, SafetyDanger},
		{"medium", Report{Medium: 2}, GradeStable, SafetyWarning},
		{"low", Report{Low: 1}, GradeOutdated, SafetyCaution},
		{"unknown only falls through", Report{Unknown: 3}, GradeStable, SafetySafe},
		{"pre-release", Report{}, GradePreRelease, SafetyCaution},
		{"outdated", Report{}, GradeOutdated, SafetyWarning},
		{"recent", Report{}, GradeRecent, SafetySafe},
		{"unknown grade", Report{}, GradeUnknown, SafetySafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Safety(&tt.report, tt.grade); got != tt.want {
				t.Errorf("Safety() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		ind   SafetyIndicator
		vulns int
		want  string
	}{
		{SafetySafe, 0, "Safe to use"},
		{SafetyCaution, 1, "Use with caution"},
		{SafetyWarning, 1, "1 known vulnerability"},
		{SafetyWarning, 3, "3 known vulnerabilities"},
		{SafetyWarning, 0, "Outdated, consider upgrading"},
		{SafetyDanger, 1, "1 security issue found"},
		{SafetyDanger, 4, "4 security issues found"},
	}
	for _, tt := range tests {
		if got := Label(tt.ind, tt.vulns); got != tt.want {
			t.Errorf("Label(%s, %d) = %q, want %q", tt.ind, tt.vulns, got, tt.want)
		}
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   SafetyIndicator
		label  string
	}{
		{"clean", Report{Highest: SeverityNone}, SafetySafe, "No known vulnerabilities"},
		{"low", Report{Total: 1, Low: 1}, SafetyCaution, "1 low-severity issue"},
		{"medium", Report{Total: 2, Medium: 1, Low: 1}, SafetyWarning, "2 vulnerabilities found"},
		{"critical", Report{Total: 1, Critical: 1}, SafetyDanger, "1 security issue, action recommended"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BadgeFor(&tt.report)
			if b.Indicator != tt.want || b.Label != tt.label {
				t.Errorf("BadgeFor() = %s %q, want %s %q", b.Indicator, b.Label, tt.want, tt.label)
			}
		})
	}
}
