package maven

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/httputil"
)

// maxVersionRows is the page size of a Central version listing.
const maxVersionRows = 200

// Versions lists the published versions of group:artifactID, newest first.
//
// Maven Central's search index is consulted first because it carries
// publication timestamps. Listings are not cached here; refresh applies to
// the metadata fallback. When it fails or knows nothing, the versions are
// read from maven-metadata.xml across repos and ordered by semantic version;
// those records have no timestamp.
func (c *Client) Versions(ctx context.Context, group, artifactID string, repos []artifact.Repository, refresh bool) ([]artifact.VersionRecord, error) {
	records, err := c.searchVersions(ctx, group, artifactID)
	if err == nil && len(records) > 0 {
		return records, nil
	}
	if err != nil {
		c.Logger().Warn("version search failed, falling back to maven-metadata.xml",
			"artifact", group+":"+artifactID, "err", err)
	}

	m, merr := c.FetchMetadata(ctx, group, artifactID, repos, refresh)
	if merr != nil {
		return nil, merr
	}
	vs := slices.Clone(m.Versioning.Versions)
	SortVersionsDesc(vs)
	records = make([]artifact.VersionRecord, 0, len(vs))
	for _, v := range vs {
		records = append(records, artifact.NewVersionRecord(v, time.Time{}, m.Repository))
	}
	return records, nil
}

type gavResponse struct {
	Response struct {
		NumFound int      `json:"numFound"`
		Docs     []gavDoc `json:"docs"`
	} `json:"response"`
}

type gavDoc struct {
	GroupID    string `json:"g"`
	ArtifactID string `json:"a"`
	Version    string `json:"v"`
	Packaging  string `json:"p"`
	Timestamp  int64  `json:"timestamp"`
}

func (c *Client) searchVersions(ctx context.Context, group, artifactID string) ([]artifact.VersionRecord, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("g:%q AND a:%q", group, artifactID))
	q.Set("core", "gav")
	q.Set("rows", strconv.Itoa(maxVersionRows))
	q.Set("sort", "timestamp desc")
	q.Set("wt", "json")
	u := c.searchURL + "?" + q.Encode()

	var resp gavResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return nil, err
	}

	records := make([]artifact.VersionRecord, 0, len(resp.Response.Docs))
	for _, d := range resp.Response.Docs {
		if d.Version == "" {
			continue
		}
		var ts time.Time
		if d.Timestamp > 0 {
			ts = time.UnixMilli(d.Timestamp).UTC()
		}
		r := artifact.NewVersionRecord(d.Version, ts, "central")
		r.Packaging = d.Packaging
		records = append(records, r)
	}
	return records, nil
}

// SortVersionsDesc orders versions newest first. Versions that semver cannot
// parse sort after all parseable ones, in reverse lexical order.
func SortVersionsDesc(vs []string) {
	parsed := make(map[string]*semver.Version, len(vs))
	for _, v := range vs {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}
	slices.SortStableFunc(vs, func(a, b string) int {
		pa, pb := parsed[a], parsed[b]
		switch {
		case pa != nil && pb != nil:
			return pb.Compare(pa)
		case pa != nil:
			return -1
		case pb != nil:
			return 1
		default:
			return strings.Compare(b, a)
		}
	})
}

// LatestRelease returns the newest release version in records (which must be
// ordered newest first), or "" if there is none.
func LatestRelease(records []artifact.VersionRecord) string {
	for _, r := range records {
		if r.IsRelease {
			return r.Version
		}
	}
	return ""
}

