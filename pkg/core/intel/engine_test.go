package intel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
)

type fakeFeed struct {
	mu       sync.Mutex
	byVer    map[string][]Advisory
	err      error
	requests []string
}

func (f *fakeFeed) Query(ctx context.Context, ecosystem, name, version string) ([]Advisory, error) {
	f.mu.Lock()
	f.requests = append(f.requests, ecosystem+"/"+name+"@"+version)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byVer[version], nil
}

func fixedClock() time.Time { return now }

func TestEngineAssess(t *testing.T) {
	feed := &fakeFeed{byVer: map[string][]Advisory{}}
	e := NewEngine(feed, Options{Now: fixedClock})
	c := artifact.Coordinate{Group: "org.example", Artifact: "lib", Version: "1.0.0"}

	a := e.Assess(context.Background(), c, true, daysAgo(6*365))
	if a.Grade != GradeOutdated || a.Score != 45 || a.Safety != SafetyWarning {
		t.Errorf("Assess() = %+v, want OUTDATED/45/WARNING", a)
	}
	if a.HighestSeverity != SeverityNone || a.VulnerabilityCount != 0 {
		t.Errorf("vulnerability fields = %+v", a)
	}
	if len(feed.requests) != 1 || feed.requests[0] != "Maven/org.example:lib@1.0.0" {
		t.Errorf("requests = %v", feed.requests)
	}

	snap := e.Assess(context.Background(), c.WithVersion("2.0.0-SNAPSHOT"), false, daysAgo(10))
	if snap.Grade != GradePreRelease || snap.Score != 35 || snap.Safety != SafetyCaution {
		t.Errorf("Assess(snapshot) = %+v", snap)
	}
}

func TestEngineFeedFailureIsClean(t *testing.T) {
	e := NewEngine(&fakeFeed{err: errors.New("connection refused")}, Options{Now: fixedClock})
	c := artifact.Coordinate{Group: "g", Artifact: "a", Version: "1.0"}

	r := e.Vulnerabilities(context.Background(), c)
	if r.Total != 0 || r.Highest != SeverityNone {
		t.Errorf("report = %+v, want clean", r)
	}
	if a := e.Assess(context.Background(), c, true, daysAgo(200)); a.Safety != SafetySafe {
		t.Errorf("Safety = %s, want SAFE", a.Safety)
	}
}

func TestEngineNilFeed(t *testing.T) {
	b := NewEngine(nil, Options{}).Badge(context.Background(), artifact.Coordinate{Group: "g", Artifact: "a", Version: "1"})
	if b.Indicator != SafetySafe {
		t.Errorf("Badge = %+v", b)
	}
}

func TestEngineIntelligence(t *testing.T) {
	feed := &fakeFeed{byVer: map[string][]Advisory{
		"3.0.0": {{ID: "GHSA-1", Severity: SeverityCritical}},
	}}
	e := NewEngine(feed, Options{Now: fixedClock, Parallelism: 2})

	versions := []artifact.VersionRecord{
		artifact.NewVersionRecord("3.1.0-RC1", daysAgo(5), "central"),
		artifact.NewVersionRecord("3.0.0", daysAgo(30), "central"),
		artifact.NewVersionRecord("2.9.0", daysAgo(200), "central"),
		artifact.NewVersionRecord("2.8.0", daysAgo(400), "central"),
		artifact.NewVersionRecord("1.0.0", daysAgo(3000), "central"),
	}

	intel, err := e.Intelligence(context.Background(), "org.example", "lib", versions, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(intel.Versions) != 4 {
		t.Fatalf("assessed %d versions, want 4", len(intel.Versions))
	}
	for i, a := range intel.Versions {
		if a.Version != versions[i].Version {
			t.Errorf("order: position %d = %s, want %s", i, a.Version, versions[i].Version)
		}
	}
	if intel.Versions[1].Safety != SafetyDanger {
		t.Errorf("3.0.0 safety = %s", intel.Versions[1].Safety)
	}
	if intel.Recommended == nil || intel.Recommended.Version != "2.9.0" {
		t.Errorf("Recommended = %+v, want 2.9.0", intel.Recommended)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name string
		in   []Assessment
		want string
	}{
		{"empty", nil, ""},
		{"highest safe release", []Assessment{
			{Version: "3", IsRelease: true, Safety: SafetySafe, Score: 60},
			{Version: "2", IsRelease: true, Safety: SafetySafe, Score: 80},
			{Version: "1", IsRelease: true, Safety: SafetySafe, Score: 80},
		}, "2"},
		{"no safe release falls back to first release", []Assessment{
			{Version: "4-beta", Safety: SafetyCaution},
			{Version: "3", IsRelease: true, Safety: SafetyDanger},
			{Version: "2", IsRelease: true, Safety: SafetyWarning},
		}, "3"},
		{"no release falls back to first", []Assessment{
			{Version: "2-beta", Safety: SafetyCaution},
			{Version: "1-alpha", Safety: SafetyCaution},
		}, "2-beta"},
		{"safe pre-release ignored", []Assessment{
			{Version: "2-rc", Safety: SafetySafe, Score: 90},
			{Version: "1", IsRelease: true, Safety: SafetyWarning},
		}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Recommend() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.Version != tt.want {
				t.Errorf("Recommend() = %+v, want %s", got, tt.want)
			}
		})
	}
}
