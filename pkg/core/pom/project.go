package pom

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/matzehuels/gavtree/pkg/errors"
)

// Project is the raw XML shape of a manifest. Fields hold text exactly as
// written, before inheritance, interpolation or defaulting.
type Project struct {
	XMLName      xml.Name   `xml:"project"`
	GroupID      string     `xml:"groupId"`
	ArtifactID   string     `xml:"artifactId"`
	Version      string     `xml:"version"`
	Packaging    string     `xml:"packaging"`
	Name         string     `xml:"name"`
	Description  string     `xml:"description"`
	URL          string     `xml:"url"`
	Parent       *Parent    `xml:"parent"`
	Properties   Properties `xml:"properties"`
	Dependencies []RawDep   `xml:"dependencies>dependency"`
	Management   []RawDep   `xml:"dependencyManagement>dependencies>dependency"`
	Modules      []string   `xml:"modules>module"`
	Licenses     []License  `xml:"licenses>license"`
}

// Parent is the <parent> reference of a manifest.
type Parent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// RawDep is one <dependency> element.
type RawDep struct {
	GroupID    string         `xml:"groupId"`
	ArtifactID string         `xml:"artifactId"`
	Version    string         `xml:"version"`
	Type       string         `xml:"type"`
	Scope      string         `xml:"scope"`
	Optional   string         `xml:"optional"`
	Exclusions []RawExclusion `xml:"exclusions>exclusion"`
}

// RawExclusion is one <exclusion> element.
type RawExclusion struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// License is one <license> element.
type License struct {
	Name string `xml:"name" json:"name"`
	URL  string `xml:"url" json:"url"`
}

// Properties holds the <properties> block in document order.
type Properties struct {
	Entries []Property `xml:",any"`
}

// Property is a single <key>value</key> entry.
type Property struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Map returns the properties as a map. Later duplicates win.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p.Entries))
	for _, e := range p.Entries {
		m[e.XMLName.Local] = strings.TrimSpace(e.Value)
	}
	return m
}

// Decode parses manifest XML into its raw shape. Text that is not a
// well-formed <project> document yields an INVALID_MODEL error.
func Decode(data []byte) (*Project, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.InvalidModel("manifest is empty")
	}
	var p Project
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "manifest is not well-formed")
	}
	p.trim()
	return &p, nil
}

func (p *Project) trim() {
	for _, s := range []*string{&p.GroupID, &p.ArtifactID, &p.Version, &p.Packaging, &p.Name, &p.Description, &p.URL} {
		*s = strings.TrimSpace(*s)
	}
	if p.Parent != nil {
		p.Parent.GroupID = strings.TrimSpace(p.Parent.GroupID)
		p.Parent.ArtifactID = strings.TrimSpace(p.Parent.ArtifactID)
		p.Parent.Version = strings.TrimSpace(p.Parent.Version)
	}
	for i := range p.Modules {
		p.Modules[i] = strings.TrimSpace(p.Modules[i])
	}
	trimDeps(p.Dependencies)
	trimDeps(p.Management)
}

func trimDeps(deps []RawDep) {
	for i := range deps {
		d := &deps[i]
		for _, s := range []*string{&d.GroupID, &d.ArtifactID, &d.Version, &d.Type, &d.Scope, &d.Optional} {
			*s = strings.TrimSpace(*s)
		}
		for j := range d.Exclusions {
			d.Exclusions[j].GroupID = strings.TrimSpace(d.Exclusions[j].GroupID)
			d.Exclusions[j].ArtifactID = strings.TrimSpace(d.Exclusions[j].ArtifactID)
		}
	}
}

// Inherit returns a copy of p merged with its ancestors, nearest first.
// The copy takes groupId and version from the nearest ancestor that declares
// them when p does not, and inherits properties, dependencyManagement and
// dependencies. Entries declared closer to p win.
func (p *Project) Inherit(ancestors ...*Project) *Project {
	out := *p
	out.Dependencies = append([]RawDep(nil), p.Dependencies...)
	out.Management = append([]RawDep(nil), p.Management...)

	var entries []Property
	for i := len(ancestors) - 1; i >= 0; i-- {
		entries = append(entries, ancestors[i].Properties.Entries...)
	}
	out.Properties = Properties{Entries: append(entries, p.Properties.Entries...)}

	depSeen := depKeys(out.Dependencies)
	mgmtSeen := depKeys(out.Management)
	for _, a := range ancestors {
		if out.GroupID == "" {
			out.GroupID = a.GroupID
		}
		if out.Version == "" {
			out.Version = a.Version
		}
		for _, d := range a.Dependencies {
			if k := d.GroupID + ":" + d.ArtifactID; !depSeen[k] {
				depSeen[k] = true
				out.Dependencies = append(out.Dependencies, d)
			}
		}
		for _, d := range a.Management {
			if k := d.GroupID + ":" + d.ArtifactID; !mgmtSeen[k] {
				mgmtSeen[k] = true
				out.Management = append(out.Management, d)
			}
		}
	}
	return &out
}

func depKeys(deps []RawDep) map[string]bool {
	m := make(map[string]bool, len(deps))
	for _, d := range deps {
		m[d.GroupID+":"+d.ArtifactID] = true
	}
	return m
}
