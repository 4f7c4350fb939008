package artifact

import (
	"strings"

	"github.com/matzehuels/gavtree/pkg/errors"
)

// DefaultExtension is the packaging assumed when a coordinate names none.
const DefaultExtension = "jar"

// Floating version sentinels. A dependency carrying one of these resolves to
// whatever the registry currently advertises, so results are not reproducible.
const (
	VersionLatest  = "LATEST"
	VersionRelease = "RELEASE"
)

// Coordinate identifies a single artifact: group, artifact, version and
// packaging extension.
type Coordinate struct {
	Group     string `json:"groupId" yaml:"groupId"`
	Artifact  string `json:"artifactId" yaml:"artifactId"`
	Version   string `json:"version" yaml:"version"`
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// Ext returns the extension, defaulting to [DefaultExtension].
func (c Coordinate) Ext() string {
	if c.Extension == "" {
		return DefaultExtension
	}
	return c.Extension
}

// Key returns the mediation identity "group:artifact:extension".
func (c Coordinate) Key() string {
	return c.Group + ":" + c.Artifact + ":" + c.Ext()
}

// Name returns "group:artifact", the form used by registries and feeds.
func (c Coordinate) Name() string {
	return c.Group + ":" + c.Artifact
}

// String renders "group:artifact:version", inserting the extension when it
// is not the default.
func (c Coordinate) String() string {
	if c.Ext() != DefaultExtension {
		return c.Group + ":" + c.Artifact + ":" + c.Extension + ":" + c.Version
	}
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// Floating reports whether the version is a LATEST or RELEASE sentinel.
func (c Coordinate) Floating() bool {
	return IsFloating(c.Version)
}

// WithVersion returns a copy of c with the version replaced.
func (c Coordinate) WithVersion(v string) Coordinate {
	c.Version = v
	return c
}

// IsFloating reports whether v is a LATEST or RELEASE sentinel.
func IsFloating(v string) bool {
	return v == VersionLatest || v == VersionRelease
}

// ParseCoordinate parses "group:artifact:version" or
// "group:artifact:extension:version". Surrounding whitespace is ignored.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	var c Coordinate
	switch len(parts) {
	case 3:
		c = Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	case 4:
		c = Coordinate{Group: parts[0], Artifact: parts[1], Extension: parts[2], Version: parts[3]}
	default:
		return Coordinate{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid coordinate %q (expected groupId:artifactId:version)", s)
	}
	for kind, v := range map[string]string{"groupId": c.Group, "artifactId": c.Artifact, "version": c.Version} {
		if err := errors.ValidateCoordinatePart(kind, v); err != nil {
			return Coordinate{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid coordinate %q", s)
		}
	}
	return c, nil
}

// ParseName parses "group:artifact".
func ParseName(s string) (group, artifact string, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return "", "", errors.New(errors.ErrCodeInvalidInput,
			"invalid artifact name %q (expected groupId:artifactId)", s)
	}
	if err := errors.ValidateCoordinatePart("groupId", parts[0]); err != nil {
		return "", "", err
	}
	if err := errors.ValidateCoordinatePart("artifactId", parts[1]); err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}

// Exclusion removes a group:artifact (either side may be "*") from the
// subtree of the dependency declaring it.
type Exclusion struct {
	Group    string `json:"groupId"`
	Artifact string `json:"artifactId"`
}

// Matches reports whether the exclusion covers group:artifact.
func (e Exclusion) Matches(group, artifact string) bool {
	return (e.Group == "*" || e.Group == group) && (e.Artifact == "*" || e.Artifact == artifact)
}

// Dependency is a coordinate as declared inside a project model.
type Dependency struct {
	Coordinate
	Scope      Scope       `json:"scope"`
	Optional   bool        `json:"optional,omitempty"`
	Exclusions []Exclusion `json:"exclusions,omitempty"`
}

// Excludes reports whether any of d's exclusions covers group:artifact.
func (d Dependency) Excludes(group, artifact string) bool {
	for _, e := range d.Exclusions {
		if e.Matches(group, artifact) {
			return true
		}
	}
	return false
}
