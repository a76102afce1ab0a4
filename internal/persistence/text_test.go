package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neogan74/kvd/internal/logger"
)

func newTestTextEngine(t *testing.T) (*TextEngine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store")
	log := logger.NewFromConfig("info", "text")
	return NewTextEngine(path, log), path
}

func TestTextEngine_DumpFormat(t *testing.T) {
	engine, path := newTestTextEngine(t)

	entries := map[string]string{
		"alpha": "1",
		"beta":  "two",
		"gamma": "3 3 3",
	}
	if err := engine.Dump(entries); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(entries) {
		t.Fatalf("expected %d lines, got %d: %q", len(entries), len(lines), string(data))
	}

	// Each line must be "<key>: <value>" for a store entry
	seen := make(map[string]bool)
	for _, line := range lines {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			t.Errorf("line %q does not match '<key>: <value>'", line)
			continue
		}
		expected, ok := entries[key]
		if !ok {
			t.Errorf("unexpected key %q in snapshot", key)
			continue
		}
		if value != expected {
			t.Errorf("for key %q: expected %q, got %q", key, expected, value)
		}
		seen[key] = true
	}
	if len(seen) != len(entries) {
		t.Errorf("expected all %d entries in snapshot, saw %d", len(entries), len(seen))
	}
}

func TestTextEngine_DumpTruncates(t *testing.T) {
	engine, path := newTestTextEngine(t)

	if err := engine.Dump(map[string]string{"a": "1", "b": "2", "c": "3"}); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	// A smaller dump fully replaces the previous snapshot
	if err := engine.Dump(map[string]string{"a": "1"}); err != nil {
		t.Fatalf("second Dump failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot file: %v", err)
	}
	if string(data) != "a: 1\n" {
		t.Errorf("expected snapshot to contain only 'a: 1', got %q", string(data))
	}
}

func TestTextEngine_DumpEmpty(t *testing.T) {
	engine, path := newTestTextEngine(t)

	if err := engine.Dump(map[string]string{}); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected an empty snapshot file to exist: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", string(data))
	}
}

func TestTextEngine_LoadRoundTrip(t *testing.T) {
	engine, _ := newTestTextEngine(t)

	entries := map[string]string{
		"name":  "kvd",
		"port":  "4000",
		"value": "with spaces",
	}
	if err := engine.Dump(entries); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	loaded, err := engine.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(loaded))
	}
	for key, expected := range entries {
		if loaded[key] != expected {
			t.Errorf("for key %q: expected %q, got %q", key, expected, loaded[key])
		}
	}
}

func TestTextEngine_LoadMissingFile(t *testing.T) {
	engine, _ := newTestTextEngine(t)

	loaded, err := engine.Load()
	if err != nil {
		t.Fatalf("expected missing snapshot to load as empty, got error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty map, got %v", loaded)
	}
}

func TestTextEngine_LoadSkipsMalformedLines(t *testing.T) {
	engine, path := newTestTextEngine(t)

	content := "good: value\nmalformed-line\nother: thing\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to seed snapshot file: %v", err)
	}

	loaded, err := engine.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(loaded), loaded)
	}
	if loaded["good"] != "value" || loaded["other"] != "thing" {
		t.Errorf("unexpected entries: %v", loaded)
	}
}
