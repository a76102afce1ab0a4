package persistence

// Engine represents a snapshot persistence backend. The whole store is
// written on every Dump; there is no per-key write path.
type Engine interface {
	// Dump replaces the persisted snapshot with the given entries.
	Dump(entries map[string]string) error

	// Load reads the persisted snapshot. A missing snapshot yields an
	// empty map, not an error.
	Load() (map[string]string, error)

	// Close releases backend resources.
	Close() error
}

// Config holds persistence configuration
type Config struct {
	Type       string // "text", "badger", "memory"
	StoreFile  string
	DataDir    string
	SyncWrites bool
}
