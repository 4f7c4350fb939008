package maven

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/integrations"
)

// Metadata is the artifact-level maven-metadata.xml.
type Metadata struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Versioning struct {
		Latest      string   `xml:"latest"`
		Release     string   `xml:"release"`
		Versions    []string `xml:"versions>version"`
		LastUpdated string   `xml:"lastUpdated"`
	} `xml:"versioning"`
	Repository string `xml:"-"`
}

// Updated parses lastUpdated (yyyyMMddHHmmss, UTC). It returns the zero time
// when the field is absent or malformed.
func (m *Metadata) Updated() time.Time {
	t, err := time.Parse("20060102150405", m.Versioning.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FetchMetadata returns the maven-metadata.xml of group:artifactID from the
// first repository that has it.
func (c *Client) FetchMetadata(ctx context.Context, group, artifactID string, repos []artifact.Repository, refresh bool) (*Metadata, error) {
	path := artifact.Path(group, artifactID) + "maven-metadata.xml"
	data, repo, err := c.fetchFirst(ctx, repos, path, cache.TTLVersions, refresh)
	if err != nil {
		return nil, fmt.Errorf("metadata %s:%s: %w", group, artifactID, err)
	}
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("metadata %s:%s: decode: %w", group, artifactID, err)
	}
	m.Repository = repo.ID
	return &m, nil
}

// ResolveFloating turns LATEST or RELEASE into a concrete version. A
// concrete version is returned unchanged.
func (c *Client) ResolveFloating(ctx context.Context, group, artifactID, version string, repos []artifact.Repository, refresh bool) (string, error) {
	if !artifact.IsFloating(version) {
		return version, nil
	}
	m, err := c.FetchMetadata(ctx, group, artifactID, repos, refresh)
	if err != nil {
		return "", err
	}
	if v := pickFloating(m, version); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: no %s version of %s:%s", integrations.ErrNotFound, version, group, artifactID)
}

func pickFloating(m *Metadata, version string) string {
	vs := m.Versioning.Versions
	switch version {
	case artifact.VersionRelease:
		if m.Versioning.Release != "" {
			return m.Versioning.Release
		}
		for i := len(vs) - 1; i >= 0; i-- {
			if !artifact.IsPreRelease(vs[i]) {
				return vs[i]
			}
		}
		return ""
	default:
		if m.Versioning.Latest != "" {
			return m.Versioning.Latest
		}
		if m.Versioning.Release != "" {
			return m.Versioning.Release
		}
		if len(vs) > 0 {
			return vs[len(vs)-1]
		}
		return ""
	}
}
