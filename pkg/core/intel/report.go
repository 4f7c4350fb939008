package intel

import (
	"context"
	"sort"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
)

// EcosystemMaven is the feed ecosystem identifier for Maven artifacts.
const EcosystemMaven = "Maven"

// Disclaimer accompanies every vulnerability report.
const Disclaimer = "Vulnerability data is provided by OSV.dev and may be incomplete. " +
	"The absence of known advisories does not guarantee that a version is secure."

// Feed is a vulnerability advisory source.
type Feed interface {
	// Query returns the advisories affecting name at version within
	// ecosystem. An empty result means no known advisories.
	Query(ctx context.Context, ecosystem, name, version string) ([]Advisory, error)
}

// Advisory is a single known vulnerability.
type Advisory struct {
	ID           string   `json:"id"`
	Summary      string   `json:"summary"`
	Details      string   `json:"details,omitempty"`
	Severity     Severity `json:"severity"`
	CVSSScore    float64  `json:"cvssScore"` // -1 when unknown
	CVSSVector   string   `json:"cvssVector,omitempty"`
	CWEs         []string `json:"cweIds,omitempty"`
	Aliases      []string `json:"aliases"`
	Published    string   `json:"published,omitempty"`
	Modified     string   `json:"modified,omitempty"`
	FixedVersion string   `json:"fixedVersion,omitempty"`
	ReferenceURL string   `json:"referenceUrl"`
}

// Report summarizes the advisories affecting one version.
type Report struct {
	Group      string     `json:"groupId"`
	Artifact   string     `json:"artifactId"`
	Version    string     `json:"version"`
	Total      int        `json:"totalVulnerabilities"`
	Critical   int        `json:"criticalCount"`
	High       int        `json:"highCount"`
	Medium     int        `json:"mediumCount"`
	Low        int        `json:"lowCount"`
	Unknown    int        `json:"unknownCount"`
	Highest    Severity   `json:"highestSeverity"`
	Advisories []Advisory `json:"advisories"`
	Disclaimer string     `json:"disclaimer"`
}

// NewReport counts advisories per severity and sorts them most severe first.
// The input slice is not modified.
func NewReport(c artifact.Coordinate, advisories []Advisory) *Report {
	r := CleanReport(c)
	r.Advisories = append(r.Advisories, advisories...)
	sort.SliceStable(r.Advisories, func(i, j int) bool {
		return r.Advisories[i].Severity.Rank() < r.Advisories[j].Severity.Rank()
	})

	for _, a := range r.Advisories {
		switch a.Severity {
		case SeverityCritical:
			r.Critical++
		case SeverityHigh:
			r.High++
		case SeverityMedium:
			r.Medium++
		case SeverityLow:
			r.Low++
		default:
			r.Unknown++
		}
		if sev := normalize(a.Severity); sev.Rank() < r.Highest.Rank() {
			r.Highest = sev
		}
	}
	r.Total = len(r.Advisories)
	return r
}

// CleanReport is a report with no advisories.
func CleanReport(c artifact.Coordinate) *Report {
	return &Report{
		Group:      c.Group,
		Artifact:   c.Artifact,
		Version:    c.Version,
		Highest:    SeverityNone,
		Advisories: []Advisory{},
		Disclaimer: Disclaimer,
	}
}

func normalize(s Severity) Severity {
	if s.Rank() > SeverityUnknown.Rank() {
		return SeverityUnknown
	}
	return s
}
