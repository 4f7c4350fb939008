//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCacheIntegration(t *testing.T) {
	url := os.Getenv("GAVTREE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GAVTREE_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url, "gavtree-test:")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	exerciseCache(t, c)
}

func TestMongoCacheIntegration(t *testing.T) {
	uri := os.Getenv("GAVTREE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("GAVTREE_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, uri, "gavtree_test", "cache")
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	exerciseCache(t, c)
}
