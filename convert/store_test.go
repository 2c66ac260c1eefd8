package convert_test

import (
	"sort"

	"github.com/bgokden/pairset/db"
	"github.com/pkg/errors"
)

// memoryStore is an in-memory db.DB that counts commits
type memoryStore struct {
	entries  map[string][]byte
	commits  int
	discards int
	open     int
	failPut  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}}
}

func (m *memoryStore) NewTransaction() (db.Transaction, error) {
	m.open++
	return &memoryTransaction{store: m, pending: map[string][]byte{}}, nil
}

func (m *memoryStore) Iterate(fn func(key, value []byte) error) error {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), m.entries[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}

func (m *memoryStore) keys() []string {
	keys := make([]string, 0)
	m.Iterate(func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	return keys
}

type memoryTransaction struct {
	store   *memoryStore
	pending map[string][]byte
	done    bool
}

func (t *memoryTransaction) Put(key, value []byte) error {
	if t.done {
		return errors.New("transaction is finished")
	}
	if t.store.failPut > 0 && len(t.store.entries)+len(t.pending)+1 >= t.store.failPut {
		return &db.StoreError{Op: "put", Err: errors.New("disk full")}
	}
	t.pending[string(key)] = value
	return nil
}

func (t *memoryTransaction) Commit() error {
	if t.done {
		return errors.New("transaction is finished")
	}
	t.done = true
	for k, v := range t.pending {
		t.store.entries[k] = v
	}
	t.store.commits++
	t.store.open--
	return nil
}

func (t *memoryTransaction) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.store.discards++
	t.store.open--
}
