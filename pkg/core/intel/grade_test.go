package intel

import (
	"testing"
	"time"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return now.Add(-time.Duration(d) * 24 * time.Hour) }

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		version string
		ts      time.Time
		want    StabilityGrade
	}{
		{"snapshot wins over age", "2.0.0-SNAPSHOT", daysAgo(400), GradePreRelease},
		{"milestone", "6.0.0-M1", time.Time{}, GradePreRelease},
		{"no timestamp", "1.0.0", time.Time{}, GradeUnknown},
		{"recent", "1.0.0", daysAgo(89), GradeRecent},
		{"90 days is stable", "1.0.0", daysAgo(90), GradeStable},
		{"1825 days is stable", "1.0.0", daysAgo(1825), GradeStable},
		{"1826 days is outdated", "1.0.0", daysAgo(1826), GradeOutdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.version, tt.ts, now); got != tt.want {
				t.Errorf("Grade() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		isRelease bool
		ts        time.Time
		want      float64
	}{
		{"snapshot 10 days", "2.0.0-SNAPSHOT", false, daysAgo(10), 35},
		{"snapshot 3 days", "2.0.0-SNAPSHOT", false, daysAgo(3), 25},
		{"release 6 years", "1.0.0", true, daysAgo(6 * 365), 45},
		{"release brand new", "1.0.0", true, daysAgo(2), 60},
		{"release 30 days", "1.0.0", true, daysAgo(30), 70},
		{"release 200 days", "1.0.0", true, daysAgo(200), 80},
		{"release 3 years", "1.0.0", true, daysAgo(3 * 365), 75},
		{"not release no timestamp", "1.0.0", false, time.Time{}, 50},
		{"pre-release flagged as release gets no bonus", "1.0-rc1", true, time.Time{}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.version, tt.isRelease, tt.ts, now)
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Score() = %v out of range", got)
			}
		})
	}
}
