package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neogan74/kvd/internal/logger"
	"github.com/neogan74/kvd/internal/store"
)

func setupAdmin() (*Server, *store.KVStore) {
	kvStore := store.NewKVStore()
	log := logger.NewFromConfig("error", "text")
	return New("127.0.0.1:0", kvStore, "test", log), kvStore
}

func TestAdmin_Healthz(t *testing.T) {
	srv, kvStore := setupAdmin()
	kvStore.Set("a", "1")
	kvStore.Set("b", "2")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status ok, got %v", result["status"])
	}
	if result["keys"] != float64(2) {
		t.Errorf("expected 2 keys, got %v", result["keys"])
	}
	if result["version"] != "test" {
		t.Errorf("expected version 'test', got %v", result["version"])
	}
}

func TestAdmin_Metrics(t *testing.T) {
	srv, _ := setupAdmin()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") {
		t.Errorf("expected prometheus text exposition, got content type %q", contentType)
	}
}
