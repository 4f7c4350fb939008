package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := UserAgent(); !strings.HasPrefix(got, "gavtree/v1.2.3 ") {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
}
