package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/neogan74/kvd/internal/logger"
)

// TextEngine persists the store as a flat text file, one "key: value" line
// per entry. Every Dump truncates and rewrites the file in place; there is
// no temp-file-and-rename step, so a crash mid-write can leave a truncated
// snapshot. Keys and values containing ':' or newlines are written as-is
// and will not round-trip.
type TextEngine struct {
	path string
	log  logger.Logger
}

// NewTextEngine creates a text snapshot engine writing to path
func NewTextEngine(path string, log logger.Logger) *TextEngine {
	return &TextEngine{path: path, log: log}
}

func (t *TextEngine) Dump(entries map[string]string) error {
	file, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	w := bufio.NewWriter(file)
	for key, value := range entries {
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	t.log.Debug("Snapshot written",
		logger.String("path", t.path),
		logger.Int("entries", len(entries)))
	return nil
}

func (t *TextEngine) Load() (map[string]string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	entries := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ": ")
		if !found {
			t.log.Warn("Skipping malformed snapshot line", logger.String("line", line))
			continue
		}
		entries[key] = value
	}
	return entries, nil
}

func (t *TextEngine) Close() error {
	return nil
}
