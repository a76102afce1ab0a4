package persistence

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/neogan74/kvd/internal/logger"
)

const kvPrefix = "kv:"

// BadgerEngine implements Engine using BadgerDB. Dump replaces the full
// persisted snapshot inside a single transaction, so a crash never leaves
// a half-written snapshot (unlike the text engine).
type BadgerEngine struct {
	db  *badger.DB
	log logger.Logger
}

// NewBadgerEngine creates a new BadgerDB persistence engine
func NewBadgerEngine(dataDir string, syncWrites bool, log logger.Logger) (*BadgerEngine, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dataDir)
	opts.SyncWrites = syncWrites
	opts.Logger = nil // Disable BadgerDB internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	engine := &BadgerEngine{
		db:  db,
		log: log,
	}

	// Start garbage collection routine
	go engine.runGarbageCollection()

	log.Info("BadgerDB persistence engine initialized",
		logger.String("data_dir", dataDir),
		logger.String("sync_writes", fmt.Sprintf("%t", syncWrites)))

	return engine, nil
}

func (b *BadgerEngine) runGarbageCollection() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		err := b.db.RunValueLogGC(0.5)
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			b.log.Warn("BadgerDB garbage collection failed", logger.Error(err))
		}
	}
}

func (b *BadgerEngine) Dump(entries map[string]string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		// Drop persisted keys no longer present in the store
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(kvPrefix)})
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			if _, ok := entries[strings.TrimPrefix(key, kvPrefix)]; !ok {
				stale = append(stale, append([]byte{}, it.Item().Key()...))
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for key, value := range entries {
			if err := txn.Set([]byte(kvPrefix+key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerEngine) Load() (map[string]string, error) {
	entries := make(map[string]string)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			Prefix:         []byte(kvPrefix),
			PrefetchValues: true,
			PrefetchSize:   badger.DefaultIteratorOptions.PrefetchSize,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := strings.TrimPrefix(string(item.Key()), kvPrefix)
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entries[key] = string(value)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot from BadgerDB: %w", err)
	}
	return entries, nil
}

func (b *BadgerEngine) Close() error {
	return b.db.Close()
}
