package store

import (
	"sync"
)

// KVStore is an in-memory string-to-string mapping. Access is sequential
// during normal operation; the mutex exists so the shutdown path can
// safely release the store while a request may be in flight.
type KVStore struct {
	Data  map[string]string
	Mutex sync.RWMutex
}

// NewKVStore creates an empty KV store
func NewKVStore() *KVStore {
	return &KVStore{
		Data: make(map[string]string),
	}
}

// Get returns the current value for key, or false if the key is absent.
func (kv *KVStore) Get(key string) (string, bool) {
	kv.Mutex.RLock()
	defer kv.Mutex.RUnlock()
	value, ok := kv.Data[key]
	return value, ok
}

// Set inserts or overwrites the mapping for key. The previous value, if
// any, is dropped by the assignment.
func (kv *KVStore) Set(key, value string) {
	kv.Mutex.Lock()
	defer kv.Mutex.Unlock()
	kv.Data[key] = value
}

// Len returns the number of entries
func (kv *KVStore) Len() int {
	kv.Mutex.RLock()
	defer kv.Mutex.RUnlock()
	return len(kv.Data)
}

// Items returns a copy of all entries, in map iteration order when ranged.
// Used by the persistence writer and by tests.
func (kv *KVStore) Items() map[string]string {
	kv.Mutex.RLock()
	defer kv.Mutex.RUnlock()
	items := make(map[string]string, len(kv.Data))
	for key, value := range kv.Data {
		items[key] = value
	}
	return items
}

// Replace swaps the full contents of the store. Used by the opt-in
// restore-on-start path.
func (kv *KVStore) Replace(items map[string]string) {
	kv.Mutex.Lock()
	defer kv.Mutex.Unlock()
	kv.Data = make(map[string]string, len(items))
	for key, value := range items {
		kv.Data[key] = value
	}
}

// Clear releases all entries. Idempotent; it is the single teardown path
// shared by normal shutdown and the interrupt handler.
func (kv *KVStore) Clear() {
	kv.Mutex.Lock()
	defer kv.Mutex.Unlock()
	kv.Data = make(map[string]string)
}
