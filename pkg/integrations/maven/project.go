package maven

import (
	"context"
	"fmt"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/pom"
	"github.com/matzehuels/gavtree/pkg/errors"
)

// Project returns the effective model of c: its POM merged with up to
// MaxParents ancestors. A LATEST or RELEASE version is first resolved through
// maven-metadata.xml. Unreachable parents are skipped with a warning; the
// model is built from the ancestors that could be fetched.
func (c *Client) Project(ctx context.Context, coord artifact.Coordinate, repos []artifact.Repository, refresh bool) (*pom.Model, error) {
	for _, part := range []struct{ kind, value string }{
		{"groupId", coord.Group}, {"artifactId", coord.Artifact}, {"version", coord.Version},
	} {
		if err := errors.ValidateCoordinatePart(part.kind, part.value); err != nil {
			return nil, err
		}
	}

	if coord.Floating() {
		v, err := c.ResolveFloating(ctx, coord.Group, coord.Artifact, coord.Version, repos, refresh)
		if err != nil {
			return nil, err
		}
		coord = coord.WithVersion(v)
	}

	p, err := c.rawProject(ctx, coord, repos, refresh)
	if err != nil {
		return nil, err
	}

	ancestors := c.ancestors(ctx, p, repos, refresh)
	effective := p.Inherit(ancestors...)
	return pom.Build(effective, c.pomOpts)
}

// ancestors walks the <parent> chain, nearest first.
func (c *Client) ancestors(ctx context.Context, p *pom.Project, repos []artifact.Repository, refresh bool) []*pom.Project {
	var out []*pom.Project
	seen := map[string]bool{}
	cur := p
	for len(out) < c.maxParents && cur.Parent != nil && cur.Parent.ArtifactID != "" {
		ref := artifact.Coordinate{
			Group:    cur.Parent.GroupID,
			Artifact: cur.Parent.ArtifactID,
			Version:  cur.Parent.Version,
		}
		if seen[ref.String()] || ref.Group == "" || ref.Version == "" {
			break
		}
		seen[ref.String()] = true

		parent, err := c.rawProject(ctx, ref, repos, refresh)
		if err != nil {
			c.Logger().Warn("parent POM unavailable", "parent", ref.String(), "err", err)
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

func (c *Client) rawProject(ctx context.Context, coord artifact.Coordinate, repos []artifact.Repository, refresh bool) (*pom.Project, error) {
	data, repo, err := c.fetchFirst(ctx, repos, artifact.POMPath(coord), cache.TTLHTTP, refresh)
	if err != nil {
		return nil, fmt.Errorf("POM %s: %w", coord.String(), err)
	}
	p, err := pom.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("POM %s from %s: %w", coord.String(), repo.ID, err)
	}
	return p, nil
}
