package db

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Mode selects how a store is opened
type Mode int

const (
	// ModeNew creates a store and fails if the path already exists
	ModeNew Mode = iota
	// ModeRead opens an existing store
	ModeRead
)

// Backends known to Open
const (
	BackendBadger = "badger"
	BackendBolt   = "bolt"
	BackendSqlite = "sqlite"
)

// DB is an ordered key value store
type DB interface {
	NewTransaction() (Transaction, error)
	// Iterate calls fn for every key in ascending order
	Iterate(fn func(key, value []byte) error) error
	Close() error
}

// Transaction buffers puts until Commit. Discard drops them;
// it is safe to call after Commit.
type Transaction interface {
	Put(key, value []byte) error
	Commit() error
	Discard()
}

// StoreError wraps any failure of the underlying store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// Options configure how a store is opened.
// BatchSize is the largest number of puts a single transaction must hold;
// 0 keeps the backend defaults.
type Options struct {
	Mode      Mode
	BatchSize int
}

// Open opens the named backend at path
func Open(backend string, path string, mode Mode) (DB, error) {
	return OpenWithOptions(backend, path, Options{Mode: mode})
}

// OpenWithOptions opens the named backend at path
func OpenWithOptions(backend string, path string, options Options) (DB, error) {
	switch options.Mode {
	case ModeNew:
		if _, err := os.Stat(path); err == nil {
			return nil, storeError("open", errors.Errorf("%v already exists", path))
		} else if !os.IsNotExist(err) {
			return nil, storeError("open", err)
		}
	case ModeRead:
		if _, err := os.Stat(path); err != nil {
			return nil, storeError("open", err)
		}
	default:
		return nil, storeError("open", errors.Errorf("unknown mode %d", options.Mode))
	}
	var store DB
	var err error
	switch backend {
	case BackendBadger:
		store, err = OpenBadger(path, options)
	case BackendBolt:
		store, err = OpenBolt(path, options.Mode)
	case BackendSqlite:
		store, err = OpenSqlite(path, options.Mode)
	default:
		return nil, storeError("open", errors.Errorf("unknown backend %q", backend))
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
