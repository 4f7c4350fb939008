package artifact

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gavtree/pkg/errors"
)

// DefaultRepositoryURL is the registry every resolution consults first.
const DefaultRepositoryURL = "https://repo.maven.apache.org/maven2/"

// Repository is one remote artifact registry.
type Repository struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RepositoryChain validates custom repository URLs and returns the ordered
// lookup chain: the default registry followed by the custom entries.
// An empty defaultURL selects [DefaultRepositoryURL]. Validation happens
// before any network access.
func RepositoryChain(defaultURL string, custom []string) ([]Repository, error) {
	if err := errors.ValidateRepositories(custom); err != nil {
		return nil, err
	}
	if defaultURL == "" {
		defaultURL = DefaultRepositoryURL
	}
	repos := make([]Repository, 0, len(custom)+1)
	repos = append(repos, Repository{ID: "central", URL: normalizeURL(defaultURL)})
	for i, u := range custom {
		repos = append(repos, Repository{ID: fmt.Sprintf("custom-%d", i), URL: normalizeURL(u)})
	}
	return repos, nil
}

// URLs returns the repository URLs in chain order.
func URLs(repos []Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.URL
	}
	return out
}

func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// Path returns the repository-relative directory for group:artifact,
// e.g. "org/apache/commons/commons-lang3/".
func Path(group, artifact string) string {
	return strings.ReplaceAll(group, ".", "/") + "/" + artifact + "/"
}

// POMPath returns the repository-relative path of c's POM file.
func POMPath(c Coordinate) string {
	return Path(c.Group, c.Artifact) + c.Version + "/" + c.Artifact + "-" + c.Version + ".pom"
}
