package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neogan74/kvd/internal/logger"
)

func TestNewEngine_Text(t *testing.T) {
	log := logger.NewFromConfig("info", "text")

	engine, err := NewEngine(Config{
		Type:      "text",
		StoreFile: filepath.Join(t.TempDir(), "store"),
	}, log)
	require.NoError(t, err)
	defer func() { _ = engine.Close() }()

	_, ok := engine.(*TextEngine)
	assert.True(t, ok, "expected a TextEngine")
}

func TestNewEngine_DefaultsToText(t *testing.T) {
	log := logger.NewFromConfig("info", "text")

	engine, err := NewEngine(Config{
		StoreFile: filepath.Join(t.TempDir(), "store"),
	}, log)
	require.NoError(t, err)

	_, ok := engine.(*TextEngine)
	assert.True(t, ok, "expected empty type to select the text engine")
}

func TestNewEngine_Memory(t *testing.T) {
	log := logger.NewFromConfig("info", "text")

	engine, err := NewEngine(Config{Type: "memory"}, log)
	require.NoError(t, err)

	_, ok := engine.(*MemoryEngine)
	assert.True(t, ok, "expected a MemoryEngine")
}

func TestNewEngine_Unknown(t *testing.T) {
	log := logger.NewFromConfig("info", "text")

	_, err := NewEngine(Config{Type: "bolt"}, log)
	assert.Error(t, err)
}

func TestMemoryEngine_DumpReplacesAndLoads(t *testing.T) {
	engine := NewMemoryEngine()

	require.NoError(t, engine.Dump(map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, engine.Dump(map[string]string{"a": "1"}))

	loaded, err := engine.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, loaded)

	// Load returns a copy
	loaded["a"] = "mutated"
	again, err := engine.Load()
	require.NoError(t, err)
	assert.Equal(t, "1", again["a"])
}
