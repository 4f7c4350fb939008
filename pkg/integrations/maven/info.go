package maven

import (
	"context"
	"fmt"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/pom"
	"github.com/matzehuels/gavtree/pkg/integrations"
)

// ArtifactInfo summarizes an artifact for display: its version history plus
// the descriptive fields of one version's POM.
type ArtifactInfo struct {
	Group       string                   `json:"groupId"`
	Artifact    string                   `json:"artifactId"`
	Version     string                   `json:"version"`
	Latest      string                   `json:"latestVersion"`
	Recommended string                   `json:"recommendedVersion,omitempty"`
	Packaging   string                   `json:"packaging"`
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	URL         string                   `json:"url,omitempty"`
	Licenses    []pom.License            `json:"licenses,omitempty"`
	Versions    []artifact.VersionRecord `json:"versions"`
	Snippets    map[string]string        `json:"snippets"`
}

// Coordinate returns the coordinate the info describes.
func (a *ArtifactInfo) Coordinate() artifact.Coordinate {
	return artifact.Coordinate{Group: a.Group, Artifact: a.Artifact, Version: a.Version, Extension: a.Packaging}
}

// Info gathers [ArtifactInfo] for group:artifactID. An empty version selects
// the latest one. Recommended is the newest release version. A POM that
// cannot be fetched leaves the descriptive fields empty.
func (c *Client) Info(ctx context.Context, group, artifactID, version string, repos []artifact.Repository, refresh bool) (*ArtifactInfo, error) {
	records, err := c.Versions(ctx, group, artifactID, repos, refresh)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no versions of %s:%s", integrations.ErrNotFound, group, artifactID)
	}

	info := &ArtifactInfo{
		Group:       group,
		Artifact:    artifactID,
		Version:     version,
		Latest:      records[0].Version,
		Recommended: LatestRelease(records),
		Packaging:   records[0].Packaging,
		Versions:    records,
	}
	if info.Version == "" {
		info.Version = info.Latest
	}

	coord := artifact.Coordinate{Group: group, Artifact: artifactID, Version: info.Version}
	if m, err := c.Project(ctx, coord, repos, refresh); err != nil {
		c.Logger().Warn("POM unavailable for info", "artifact", coord.String(), "err", err)
	} else {
		info.Packaging = m.Packaging
		info.Name = m.Name
		info.Description = m.Description
		info.URL = m.URL
		info.Licenses = m.Licenses
	}
	if info.Packaging == "" {
		info.Packaging = artifact.DefaultExtension
	}
	info.Snippets = artifact.Snippets(info.Coordinate())
	return info, nil
}
