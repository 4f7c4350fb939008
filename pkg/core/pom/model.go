package pom

import (
	"strings"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/errors"
)

// DefaultManagedPrefixes are the groups whose versionless dependencies
// inherit the parent's version.
var DefaultManagedPrefixes = []string{"org.springframework.boot"}

const defaultJavaVersion = "17"

// Options configures model construction.
type Options struct {
	// ManagedPrefixes lists group prefixes whose versionless dependencies
	// take the parent's version. Nil selects DefaultManagedPrefixes.
	ManagedPrefixes []string
}

func (o Options) prefixes() []string {
	if o.ManagedPrefixes == nil {
		return DefaultManagedPrefixes
	}
	return o.ManagedPrefixes
}

// Model is a built project model. It is not modified after construction.
type Model struct {
	Coordinate   artifact.Coordinate   `json:"coordinate"`
	Parent       *artifact.Coordinate  `json:"parent,omitempty"`
	Packaging    string                `json:"packaging"`
	Name         string                `json:"name,omitempty"`
	Description  string                `json:"description,omitempty"`
	URL          string                `json:"url,omitempty"`
	Licenses     []License             `json:"licenses,omitempty"`
	Properties   map[string]string     `json:"properties"`
	Dependencies []artifact.Dependency `json:"dependencies"`
	Managed      []artifact.Dependency `json:"managed,omitempty"`
	Modules      []string              `json:"modules,omitempty"`
}

// MultiModule reports whether the model declares sub-modules.
func (m *Model) MultiModule() bool { return len(m.Modules) > 0 }

// Parse decodes and builds a manifest. Manifests over the size cap fail with
// OVERSIZE_INPUT; malformed or incomplete ones with INVALID_MODEL.
func Parse(data []byte, opts Options) (*Model, error) {
	if err := errors.ValidateManifestSize(len(data)); err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(p, opts)
}

// Build turns a raw project into a Model.
func Build(p *Project, opts Options) (*Model, error) {
	if p.ArtifactID == "" {
		return nil, errors.InvalidModel("manifest has no artifactId")
	}

	var parent *artifact.Coordinate
	if p.Parent != nil && p.Parent.ArtifactID != "" {
		parent = &artifact.Coordinate{
			Group:     p.Parent.GroupID,
			Artifact:  p.Parent.ArtifactID,
			Version:   p.Parent.Version,
			Extension: "pom",
		}
	}

	explicit := p.Properties.Map()
	group := Interpolate(p.GroupID, explicit)
	version := Interpolate(p.Version, explicit)
	if group == "" && parent != nil {
		group = parent.Group
	}
	if version == "" && parent != nil {
		version = parent.Version
	}
	if group == "" {
		return nil, errors.InvalidModel("manifest %s has no groupId and no parent to inherit from", p.ArtifactID)
	}
	if version == "" {
		return nil, errors.InvalidModel("manifest %s:%s has no version and no parent to inherit from", group, p.ArtifactID)
	}

	props := explicit
	props["project.groupId"] = group
	props["project.artifactId"] = p.ArtifactID
	props["project.version"] = version
	if _, ok := props["java.version"]; !ok {
		props["java.version"] = defaultJavaVersion
	}

	packaging := p.Packaging
	if packaging == "" {
		packaging = artifact.DefaultExtension
	}

	m := &Model{
		Coordinate:  artifact.Coordinate{Group: group, Artifact: p.ArtifactID, Version: version, Extension: packaging},
		Parent:      parent,
		Packaging:   packaging,
		Name:        p.Name,
		Description: p.Description,
		URL:         p.URL,
		Licenses:    licenses(p.Licenses),
		Properties:  props,
		Modules:     p.Modules,
	}

	managed := make(map[string]artifact.Dependency, len(p.Management))
	for _, raw := range p.Management {
		d := convert(raw, props)
		if d.Group == "" || d.Artifact == "" {
			continue
		}
		m.Managed = append(m.Managed, d)
		if _, dup := managed[d.Name()]; !dup {
			managed[d.Name()] = d
		}
	}

	local := make(map[string]bool, len(p.Modules))
	for _, mod := range p.Modules {
		local[group+":"+mod] = true
	}

	for i, raw := range p.Dependencies {
		d := convert(raw, props)
		if d.Group == "" || d.Artifact == "" {
			return nil, errors.InvalidModel("dependency #%d of %s has no groupId or artifactId", i+1, m.Coordinate.Name())
		}
		if local[d.Name()] {
			continue
		}
		mgmt, hasMgmt := managed[d.Name()]
		if hasMgmt {
			if raw.Scope == "" {
				d.Scope = mgmt.Scope
			}
			d.Exclusions = append(d.Exclusions, mgmt.Exclusions...)
		}
		if d.Version == "" {
			d.Version = versionFallback(d, mgmt, hasMgmt, parent, opts)
		}
		m.Dependencies = append(m.Dependencies, d)
	}
	return m, nil
}

func versionFallback(d, mgmt artifact.Dependency, hasMgmt bool, parent *artifact.Coordinate, opts Options) string {
	if hasMgmt && mgmt.Version != "" {
		return mgmt.Version
	}
	if parent != nil && parent.Version != "" {
		for _, prefix := range opts.prefixes() {
			if strings.HasPrefix(d.Group, prefix) {
				return parent.Version
			}
		}
	}
	return artifact.VersionLatest
}

func convert(raw RawDep, props map[string]string) artifact.Dependency {
	d := artifact.Dependency{
		Coordinate: artifact.Coordinate{
			Group:     Interpolate(raw.GroupID, props),
			Artifact:  Interpolate(raw.ArtifactID, props),
			Version:   Interpolate(raw.Version, props),
			Extension: Interpolate(raw.Type, props),
		},
		Scope:    artifact.ParseScope(Interpolate(raw.Scope, props)),
		Optional: strings.EqualFold(Interpolate(raw.Optional, props), "true"),
	}
	for _, e := range raw.Exclusions {
		d.Exclusions = append(d.Exclusions, artifact.Exclusion{
			Group:    Interpolate(e.GroupID, props),
			Artifact: Interpolate(e.ArtifactID, props),
		})
	}
	return d
}

func licenses(in []License) []License {
	out := make([]License, 0, len(in))
	for _, l := range in {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			name = "Unknown"
		}
		out = append(out, License{Name: name, URL: strings.TrimSpace(l.URL)})
	}
	return out
}
