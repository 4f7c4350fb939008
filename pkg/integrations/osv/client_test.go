package osv

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/integrations"
)

const log4jName = "org.apache.logging.log4j:log4j-core"

func testClient(t *testing.T, handler http.HandlerFunc, c cache.Cache) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(c, Config{QueryURL: server.URL + "/v1/query"})
	client.SetHTTPClient(server.Client())
	return client
}

func TestClient_Query(t *testing.T) {
	var pages []string
	handler := func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Package.Ecosystem != "Maven" || req.Package.Name != log4jName || req.Version != "2.14.1" {
			t.Errorf("unexpected request %+v", req)
		}
		pages = append(pages, req.PageToken)

		w.Header().Set("Content-Type", "application/json")
		if req.PageToken == "" {
			w.Write([]byte(`{
  "vulns": [{
    "id": "GHSA-jfh8-c2jp-5v3q",
    "summary": "Remote code injection in Log4j",
    "aliases": ["CVE-2021-44228"],
    "severity": [{"type": "CVSS_V3", "score": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H"}],
    "database_specific": {"severity": "CRITICAL", "cwe_ids": ["CWE-502", "CWE-917"]},
    "references": [{"type": "PACKAGE", "url": "https://pkg"}, {"type": "ADVISORY", "url": "https://nvd.nist.gov/vuln/detail/CVE-2021-44228"}],
    "affected": [{
      "package": {"name": "org.apache.logging.log4j:log4j-core", "ecosystem": "Maven"},
      "ranges": [{"type": "ECOSYSTEM", "events": [
        {"introduced": "2.13.0"}, {"fixed": "2.15.0"},
        {"introduced": "2.0-beta9"}, {"fixed": "2.3.1"}
      ]}]
    }]
  }],
  "next_page_token": "p2"
}`))
			return
		}
		w.Write([]byte(`{"vulns": [{"id": "GHSA-p6xc-xr62-6r2g", "database_specific": {"severity": "MODERATE"}}]}`))
	}
	c := testClient(t, handler, nil)

	advisories, err := c.Query(context.Background(), intel.EcosystemMaven, log4jName, "2.14.1")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !slices.Equal(pages, []string{"", "p2"}) {
		t.Errorf("page tokens = %v", pages)
	}
	if len(advisories) != 2 {
		t.Fatalf("got %d advisories, want 2", len(advisories))
	}

	a := advisories[0]
	if a.Severity != intel.SeverityCritical {
		t.Errorf("severity = %s, want CRITICAL from database_specific", a.Severity)
	}
	if a.CVSSScore != -1 || a.CVSSVector == "" {
		t.Errorf("vector should be kept unscored: score %v vector %q", a.CVSSScore, a.CVSSVector)
	}
	if !slices.Equal(a.Aliases, []string{"GHSA-jfh8-c2jp-5v3q", "CVE-2021-44228"}) {
		t.Errorf("aliases = %v", a.Aliases)
	}
	if a.FixedVersion != "2.15.0" {
		t.Errorf("fixed version = %q, want 2.15.0", a.FixedVersion)
	}
	if a.ReferenceURL != "https://nvd.nist.gov/vuln/detail/CVE-2021-44228" {
		t.Errorf("reference = %q", a.ReferenceURL)
	}
	if len(a.CWEs) != 2 {
		t.Errorf("CWEs = %v", a.CWEs)
	}

	b := advisories[1]
	if b.Severity != intel.SeverityMedium {
		t.Errorf("MODERATE should map to MEDIUM, got %s", b.Severity)
	}
	if b.Summary != b.ID {
		t.Errorf("missing summary should default to id, got %q", b.Summary)
	}
	if b.ReferenceURL != "https://osv.dev/vulnerability/GHSA-p6xc-xr62-6r2g" {
		t.Errorf("fallback reference = %q", b.ReferenceURL)
	}
}

func TestClient_QueryClean(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	advisories, err := c.Query(context.Background(), intel.EcosystemMaven, "com.google.guava:guava", "33.0.0-jre")
	if err != nil {
		t.Fatal(err)
	}
	if len(advisories) != 0 {
		t.Errorf("got %d advisories, want none", len(advisories))
	}
}

func TestClient_QueryCached(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"vulns": [{"id": "X-1", "database_specific": {"severity": "LOW"}}]}`))
	}, cache.NewMemoryCache(0))

	for range 3 {
		if _, err := c.Query(context.Background(), intel.EcosystemMaven, "g:a", "1.0"); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("feed called %d times, want 1", calls)
	}
}

func TestClient_QueryError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, nil)

	_, err := c.Query(context.Background(), intel.EcosystemMaven, "g:a", "1.0")
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestToAdvisoryNumericScore(t *testing.T) {
	v := vulnerability{ID: "X-2", Severity: []severity{{Type: "CVSS_V3", Score: "7.5"}}}
	a := toAdvisory(v, "Maven", "g:a", "1.0")
	if a.CVSSScore != 7.5 || a.Severity != intel.SeverityHigh {
		t.Errorf("score %v severity %s, want 7.5 HIGH", a.CVSSScore, a.Severity)
	}
}

func TestFixedVersion(t *testing.T) {
	mk := func(name string, fixes ...string) affected {
		var a affected
		a.Package.Name = name
		a.Package.Ecosystem = "Maven"
		r := affectedRange{Type: "ECOSYSTEM"}
		for _, f := range fixes {
			r.Events = append(r.Events, rangeEvent{Fixed: f})
		}
		a.Ranges = []affectedRange{r}
		return a
	}

	tests := []struct {
		name    string
		affs    []affected
		version string
		want    string
	}{
		{"none", nil, "1.0", ""},
		{"lowest above current", []affected{mk("g:a", "3.0.0", "1.5.0", "1.2.0")}, "1.3.0", "1.5.0"},
		{"prefers own package", []affected{mk("g:other", "1.1.0"), mk("g:a", "2.0.0")}, "1.0.0", "2.0.0"},
		{"falls back to ecosystem", []affected{mk("g:other", "1.1.0")}, "1.0.0", "1.1.0"},
		{"unparseable current", []affected{mk("g:a", "9", "2")}, "not-a-version", "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixedVersion(tt.affs, "Maven", "g:a", tt.version); got != tt.want {
				t.Errorf("fixedVersion = %q, want %q", got, tt.want)
			}
		})
	}
}
