package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gavtree/pkg/config"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir(config.CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}
	// Should end with "gavtree"
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	want := filepath.Join(t.TempDir(), "responses")
	dir, err := cacheDir(config.CacheConfig{Backend: config.BackendFile, Dir: want})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
