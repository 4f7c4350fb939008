package osv

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/integrations"
	"github.com/matzehuels/gavtree/pkg/observability"
)

// DefaultQueryURL is the OSV query endpoint.
const DefaultQueryURL = "https://api.osv.dev/v1/query"

// maxPages bounds pagination of a single query.
const maxPages = 10

const vulnPageURL = "https://osv.dev/vulnerability/"

// Config configures a [Client]. Zero values select defaults.
type Config struct {
	QueryURL string        // Query endpoint (default: DefaultQueryURL)
	Timeout  time.Duration // Per-request timeout (default: 10s)
	Keyer    cache.Keyer
	Hooks    observability.Hooks
	Logger   *log.Logger
}

// Client queries OSV. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	queryURL string
}

// NewClient creates an OSV client caching responses in c. A nil c disables
// caching.
func NewClient(c cache.Cache, cfg Config) *Client {
	hc := integrations.NewClient(c, "osv:", cache.TTLVulnerabilities, integrations.DefaultHeaders())
	hc.SetHTTPClient(integrations.NewHTTPClientWithTimeout(cfg.Timeout))
	hc.SetKeyer(cfg.Keyer)
	hc.SetHooks(cfg.Hooks)
	hc.SetLogger(cfg.Logger)

	url := cfg.QueryURL
	if url == "" {
		url = DefaultQueryURL
	}
	return &Client{Client: hc, queryURL: url}
}

type queryRequest struct {
	Package   queryPackage `json:"package"`
	Version   string       `json:"version"`
	PageToken string       `json:"page_token,omitempty"`
}

type queryPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type queryResponse struct {
	Vulns         []vulnerability `json:"vulns"`
	NextPageToken string          `json:"next_page_token"`
}

type vulnerability struct {
	ID         string     `json:"id"`
	Summary    string     `json:"summary"`
	Details    string     `json:"details"`
	Aliases    []string   `json:"aliases"`
	Published  string     `json:"published"`
	Modified   string     `json:"modified"`
	Severity   []severity `json:"severity"`
	Affected   []affected `json:"affected"`
	References []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"references"`
	DatabaseSpecific struct {
		Severity string   `json:"severity"`
		CWEIDs   []string `json:"cwe_ids"`
	} `json:"database_specific"`
}

type severity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

type affected struct {
	Package struct {
		Name      string `json:"name"`
		Ecosystem string `json:"ecosystem"`
	} `json:"package"`
	Ranges []affectedRange `json:"ranges"`
}

type affectedRange struct {
	Type   string       `json:"type"`
	Events []rangeEvent `json:"events"`
}

type rangeEvent struct {
	Introduced string `json:"introduced,omitempty"`
	Fixed      string `json:"fixed,omitempty"`
}

// Query returns the advisories affecting name@version in ecosystem, in feed
// order. Any failure is returned; callers decide how to degrade.
func (c *Client) Query(ctx context.Context, ecosystem, name, version string) ([]intel.Advisory, error) {
	var vulns []vulnerability
	key := "query:" + ecosystem + ":" + name + ":" + version
	err := c.Cached(ctx, key, false, &vulns, func() error {
		all, err := c.fetchAll(ctx, ecosystem, name, version)
		if err != nil {
			return err
		}
		vulns = all
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]intel.Advisory, 0, len(vulns))
	for _, v := range vulns {
		out = append(out, toAdvisory(v, ecosystem, name, version))
	}
	return out, nil
}

func (c *Client) fetchAll(ctx context.Context, ecosystem, name, version string) ([]vulnerability, error) {
	req := queryRequest{
		Package: queryPackage{Name: name, Ecosystem: ecosystem},
		Version: version,
	}
	var all []vulnerability
	for range maxPages {
		var resp queryResponse
		if err := c.PostJSON(ctx, c.queryURL, req, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Vulns...)
		if resp.NextPageToken == "" {
			return all, nil
		}
		req.PageToken = resp.NextPageToken
	}
	c.Logger().Warn("OSV pagination truncated", "package", name, "version", version, "pages", maxPages)
	return all, nil
}

func toAdvisory(v vulnerability, ecosystem, name, version string) intel.Advisory {
	a := intel.Advisory{
		ID:           v.ID,
		Summary:      v.Summary,
		Details:      v.Details,
		Severity:     intel.SeverityUnknown,
		CVSSScore:    -1,
		CWEs:         v.DatabaseSpecific.CWEIDs,
		Aliases:      []string{v.ID},
		Published:    v.Published,
		Modified:     v.Modified,
		FixedVersion: fixedVersion(v.Affected, ecosystem, name, version),
	}
	if a.Summary == "" {
		a.Summary = v.ID
	}
	for _, alias := range v.Aliases {
		if alias != v.ID {
			a.Aliases = append(a.Aliases, alias)
		}
	}

	for _, s := range v.Severity {
		if !strings.HasPrefix(s.Type, "CVSS_") {
			continue
		}
		if score, err := strconv.ParseFloat(s.Score, 64); err == nil {
			a.CVSSScore = score
			a.Severity = intel.SeverityFromScore(score)
		} else {
			a.CVSSVector = s.Score
		}
		break
	}
	if a.Severity == intel.SeverityUnknown && v.DatabaseSpecific.Severity != "" {
		a.Severity = intel.ParseSeverity(v.DatabaseSpecific.Severity)
	}

	for _, ref := range v.References {
		if ref.Type == "ADVISORY" || ref.Type == "WEB" {
			a.ReferenceURL = ref.URL
			break
		}
	}
	if a.ReferenceURL == "" {
		a.ReferenceURL = vulnPageURL + v.ID
	}
	return a
}

// fixedVersion picks the fix for version from the affected ranges. Entries
// for the queried package are preferred over other entries of the same
// ecosystem. Among semver-comparable candidates the lowest fix above version
// wins; otherwise the first fix listed is returned.
func fixedVersion(affs []affected, ecosystem, name, version string) string {
	var exact, other []string
	for _, aff := range affs {
		if aff.Package.Ecosystem != ecosystem {
			continue
		}
		for _, r := range aff.Ranges {
			for _, ev := range r.Events {
				if ev.Fixed == "" {
					continue
				}
				if aff.Package.Name == name {
					exact = append(exact, ev.Fixed)
				} else {
					other = append(other, ev.Fixed)
				}
			}
		}
	}
	candidates := exact
	if len(candidates) == 0 {
		candidates = other
	}
	if len(candidates) == 0 {
		return ""
	}

	current, err := semver.NewVersion(version)
	if err != nil {
		return candidates[0]
	}
	var best *semver.Version
	var bestRaw string
	for _, raw := range candidates {
		fv, err := semver.NewVersion(raw)
		if err != nil || !fv.GreaterThan(current) {
			continue
		}
		if best == nil || fv.LessThan(best) {
			best, bestRaw = fv, raw
		}
	}
	if best == nil {
		return candidates[0]
	}
	return bestRaw
}

var _ intel.Feed = (*Client)(nil)
