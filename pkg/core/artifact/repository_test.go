package artifact

import (
	"strings"
	"testing"

	"github.com/matzehuels/gavtree/pkg/errors"
)

func TestRepositoryChain(t *testing.T) {
	repos, err := RepositoryChain("", []string{"https://repo.example.com/releases"})
	if err != nil {
		t.Fatalf("RepositoryChain() error = %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("len = %d, want 2", len(repos))
	}
	if repos[0].URL != DefaultRepositoryURL {
		t.Errorf("first = %q, want default registry", repos[0].URL)
	}
	if repos[1].URL != "https://repo.example.com/releases/" {
		t.Errorf("custom = %q, want trailing slash", repos[1].URL)
	}
}

func TestRepositoryChainRejectsPlainHTTP(t *testing.T) {
	_, err := RepositoryChain("", []string{"http://repo.example.com"})
	if !errors.Is(err, errors.ErrCodeInvalidRepository) {
		t.Fatalf("error = %v, want INVALID_REPOSITORY", err)
	}
}

func TestPOMPath(t *testing.T) {
	c := Coordinate{Group: "org.apache.commons", Artifact: "commons-lang3", Version: "3.12.0"}
	want := "org/apache/commons/commons-lang3/3.12.0/commons-lang3-3.12.0.pom"
	if got := POMPath(c); got != want {
		t.Errorf("POMPath() = %q, want %q", got, want)
	}
}

func TestSnippets(t *testing.T) {
	s := Snippets(Coordinate{Group: "com.google.guava", Artifact: "guava", Version: "32.1.3-jre"})
	for _, f := range SnippetFormats {
		if s[f] == "" {
			t.Errorf("missing snippet %q", f)
		}
	}
	if s["gradle"] != "implementation 'com.google.guava:guava:32.1.3-jre'" {
		t.Errorf("gradle = %q", s["gradle"])
	}
	if s["sbt"] != `libraryDependencies += "com.google.guava" % "guava" % "32.1.3-jre"` {
		t.Errorf("sbt = %q", s["sbt"])
	}
	if !strings.Contains(s["maven"], "<artifactId>guava</artifactId>") {
		t.Errorf("maven = %q", s["maven"])
	}
	if s["buildr"] != "'com.google.guava:guava:jar:32.1.3-jre'" {
		t.Errorf("buildr = %q", s["buildr"])
	}
}
