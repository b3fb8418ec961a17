package testdb

import (
	"os"
	"strings"
	"testing"
	"time"
)

// GetTestMongoURI returns SHOP_TEST_MONGO_URI, or skips the test when unset.
func GetTestMongoURI(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("SHOP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SHOP_TEST_MONGO_URI not set - skipping integration test")
	}
	return uri
}

// TestMongoDatabase returns a per-test database name so tests can drop it
// afterwards without touching each other.
func TestMongoDatabase(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_", ".", "_").Replace(t.Name())
	if len(name) > 40 {
		name = name[:40]
	}
	return "shoptest_" + name + "_" + time.Now().Format("150405")
}
