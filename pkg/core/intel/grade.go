package intel

import (
	"math"
	"time"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
)

// StabilityGrade classifies a version's maturity.
type StabilityGrade string

const (
	GradeStable     StabilityGrade = "STABLE"
	GradeRecent     StabilityGrade = "RECENT"
	GradePreRelease StabilityGrade = "PRE_RELEASE"
	GradeOutdated   StabilityGrade = "OUTDATED"
	GradeUnknown    StabilityGrade = "UNKNOWN"
)

const (
	daysRecent   = 90
	daysYear     = 365
	daysOutdated = 1825
	daysNew      = 7

	baselineScore = 50.0
)

// ageDays returns whole days between ts and now, and false if ts is unknown.
func ageDays(ts, now time.Time) (int, bool) {
	if ts.IsZero() {
		return 0, false
	}
	return int(math.Floor(now.Sub(ts).Hours() / 24)), true
}

// Grade classifies a version: PRE_RELEASE if it carries a pre-release
// qualifier, UNKNOWN without a timestamp, RECENT under 90 days, OUTDATED
// over 1825 days, STABLE otherwise.
func Grade(version string, ts, now time.Time) StabilityGrade {
	if artifact.IsPreRelease(version) {
		return GradePreRelease
	}
	days, ok := ageDays(ts, now)
	switch {
	case !ok:
		return GradeUnknown
	case days < daysRecent:
		return GradeRecent
	case days > daysOutdated:
		return GradeOutdated
	default:
		return GradeStable
	}
}

// Score computes a stability score in [0, 100] from a baseline of 50.
//
//	pre-release qualifier        -25
//	clean release                +10
//	age <7d / <90d / <1y / <5y   +0 / +10 / +20 / +15
//	age >=5y                     -15
func Score(version string, isRelease bool, ts, now time.Time) float64 {
	score := baselineScore
	if artifact.IsPreRelease(version) {
		score -= 25
	} else if isRelease {
		score += 10
	}
	if days, ok := ageDays(ts, now); ok {
		switch {
		case days < daysNew:
		case days < daysRecent:
			score += 10
		case days < daysYear:
			score += 20
		case days < daysOutdated:
			score += 15
		default:
			score -= 15
		}
	}
	return math.Max(0, math.Min(100, score))
}
