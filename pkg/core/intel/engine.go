package intel

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
)

// DefaultIntelligenceVersions is how many versions an intelligence request
// assesses when the caller does not say.
const DefaultIntelligenceVersions = 10

const defaultParallelism = 4

// Assessment is the verdict for one version.
type Assessment struct {
	Version            string          `json:"version"`
	IsRelease          bool            `json:"isRelease"`
	Timestamp          time.Time       `json:"timestamp,omitzero"`
	VulnerabilityCount int             `json:"vulnerabilityCount"`
	HighestSeverity    Severity        `json:"highestSeverity"`
	Grade              StabilityGrade  `json:"stabilityGrade"`
	Score              float64         `json:"stabilityScore"`
	Safety             SafetyIndicator `json:"safetyIndicator"`
	Label              string          `json:"safetyLabel"`
}

// Intelligence is the assessment of an artifact's recent versions.
type Intelligence struct {
	Group       string       `json:"groupId"`
	Artifact    string       `json:"artifactId"`
	Recommended *Assessment  `json:"recommendedVersion"`
	Versions    []Assessment `json:"versions"`
}

// Options configures an [Engine].
type Options struct {
	Logger      *log.Logger      // Feed failures are logged here (default: discard)
	Now         func() time.Time // Clock (default: time.Now)
	Parallelism int              // Concurrent feed queries (default: 4)
}

// Engine assesses versions against a vulnerability feed.
type Engine struct {
	feed        Feed
	logger      *log.Logger
	now         func() time.Time
	parallelism int
}

// NewEngine creates an Engine. A nil feed reports every version clean.
func NewEngine(feed Feed, opts Options) *Engine {
	e := &Engine{feed: feed, logger: opts.Logger, now: opts.Now, parallelism: opts.Parallelism}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.parallelism <= 0 {
		e.parallelism = defaultParallelism
	}
	return e
}

// Vulnerabilities returns the advisory report for c. Feed failures degrade
// to a clean report.
func (e *Engine) Vulnerabilities(ctx context.Context, c artifact.Coordinate) *Report {
	if e.feed == nil {
		return CleanReport(c)
	}
	advisories, err := e.feed.Query(ctx, EcosystemMaven, c.Name(), c.Version)
	if err != nil {
		e.logger.Warn("vulnerability feed unavailable", "artifact", c.String(), "error", err)
		return CleanReport(c)
	}
	return NewReport(c, advisories)
}

// Assess grades, scores and classifies version c.Version.
func (e *Engine) Assess(ctx context.Context, c artifact.Coordinate, isRelease bool, ts time.Time) Assessment {
	return e.AssessReport(e.Vulnerabilities(ctx, c), isRelease, ts)
}

// AssessReport builds an assessment from an existing report.
func (e *Engine) AssessReport(r *Report, isRelease bool, ts time.Time) Assessment {
	now := e.now()
	grade := Grade(r.Version, ts, now)
	safety := Safety(r, grade)
	return Assessment{
		Version:            r.Version,
		IsRelease:          isRelease,
		Timestamp:          ts,
		VulnerabilityCount: r.Total,
		HighestSeverity:    r.Highest,
		Grade:              grade,
		Score:              Score(r.Version, isRelease, ts, now),
		Safety:             safety,
		Label:              Label(safety, r.Total),
	}
}

// Badge returns the vulnerability-only verdict for c.
func (e *Engine) Badge(ctx context.Context, c artifact.Coordinate) Badge {
	return BadgeFor(e.Vulnerabilities(ctx, c))
}

// Intelligence assesses the first limit versions (newest first, as given)
// of group:artifact and picks a recommendation. A non-positive limit selects
// DefaultIntelligenceVersions.
func (e *Engine) Intelligence(ctx context.Context, group, artifactID string, versions []artifact.VersionRecord, limit int) (*Intelligence, error) {
	if limit <= 0 {
		limit = DefaultIntelligenceVersions
	}
	versions = versions[:min(limit, len(versions))]

	assessments := make([]Assessment, len(versions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, v := range versions {
		g.Go(func() error {
			c := artifact.Coordinate{Group: group, Artifact: artifactID, Version: v.Version}
			assessments[i] = e.Assess(gctx, c, v.IsRelease, v.Timestamp)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Intelligence{
		Group:       group,
		Artifact:    artifactID,
		Recommended: Recommend(assessments),
		Versions:    assessments,
	}, nil
}

// Recommend picks the release with a SAFE verdict and the highest score,
// the earliest winning ties. Without one it falls back to the first release,
// then to the first assessment. It returns nil for an empty list.
func Recommend(as []Assessment) *Assessment {
	best := -1
	for i, a := range as {
		if a.IsRelease && a.Safety == SafetySafe && (best < 0 || a.Score > as[best].Score) {
			best = i
		}
	}
	if best < 0 {
		for i, a := range as {
			if a.IsRelease {
				best = i
				break
			}
		}
	}
	if best < 0 && len(as) > 0 {
		best = 0
	}
	if best < 0 {
		return nil
	}
	rec := as[best]
	return &rec
}
