package maven

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/gavtree/pkg/errors"
	"github.com/matzehuels/gavtree/pkg/httputil"
)

// Search paging bounds.
const (
	DefaultSearchSize = 20
	MaxSearchSize     = 50
)

// SearchHit is one artifact matching a search.
type SearchHit struct {
	Group         string    `json:"groupId"`
	Artifact      string    `json:"artifactId"`
	LatestVersion string    `json:"latestVersion"`
	Packaging     string    `json:"packaging,omitempty"`
	VersionCount  int       `json:"versionCount"`
	Updated       time.Time `json:"updated,omitzero"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Query     string      `json:"query"`
	Page      int         `json:"page"`
	Size      int         `json:"size"`
	Total     int         `json:"total"`
	Artifacts []SearchHit `json:"artifacts"`
}

type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	GroupID       string `json:"g"`
	ArtifactID    string `json:"a"`
	LatestVersion string `json:"latestVersion"`
	Packaging     string `json:"p"`
	VersionCount  int    `json:"versionCount"`
	Timestamp     int64  `json:"timestamp"`
}

// Search runs a free-text query against Maven Central. page is zero-based;
// size defaults to DefaultSearchSize and is capped at MaxSearchSize.
func (c *Client) Search(ctx context.Context, query string, page, size int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search query cannot be empty")
	}
	page = max(page, 0)
	if size <= 0 {
		size = DefaultSearchSize
	}
	size = min(size, MaxSearchSize)

	q := url.Values{}
	q.Set("q", query)
	q.Set("start", strconv.Itoa(page*size))
	q.Set("rows", strconv.Itoa(size))
	q.Set("wt", "json")
	u := c.searchURL + "?" + q.Encode()

	var resp searchResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return nil, err
	}

	out := &SearchResult{
		Query:     query,
		Page:      page,
		Size:      size,
		Total:     resp.Response.NumFound,
		Artifacts: make([]SearchHit, 0, len(resp.Response.Docs)),
	}
	for _, d := range resp.Response.Docs {
		hit := SearchHit{
			Group:         d.GroupID,
			Artifact:      d.ArtifactID,
			LatestVersion: d.LatestVersion,
			Packaging:     d.Packaging,
			VersionCount:  d.VersionCount,
		}
		if d.Timestamp > 0 {
			hit.Updated = time.UnixMilli(d.Timestamp).UTC()
		}
		out.Artifacts = append(out.Artifacts, hit)
	}
	return out, nil
}
