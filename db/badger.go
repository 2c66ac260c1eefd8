package db

import (
	badger "github.com/dgraph-io/badger/v3"
	"github.com/magneticio/go-common/logging"
)

const (
	// Values above this size go to the value log, so a transaction only
	// accounts for their 12 byte pointer.
	badgerValueThreshold = 1 << 10
	// Transaction budget per put: the value (at most the threshold) and a key.
	badgerEntryBudget = 2 << 10
	// Badger limits a transaction to 15% of the memtable size.
	badgerBatchPercent = 15
	badgerMinMemTable  = 64 << 20
)

type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Info("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Info("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {}

// BadgerDB stores entries in a badger directory
type BadgerDB struct {
	DB *badger.DB
}

// badgerMemTableSize is large enough for one transaction to hold batchSize puts
func badgerMemTableSize(batchSize int) int64 {
	size := int64(batchSize) * badgerEntryBudget * 100 / badgerBatchPercent
	if size < badgerMinMemTable {
		return badgerMinMemTable
	}
	return size
}

// OpenBadger opens the badger directory at path
func OpenBadger(path string, options Options) (*BadgerDB, error) {
	badgerOptions := badger.DefaultOptions(path).
		WithLogger(badgerLogger{}).
		WithReadOnly(options.Mode == ModeRead).
		WithValueThreshold(badgerValueThreshold).
		WithMemTableSize(badgerMemTableSize(options.BatchSize))
	db, err := badger.Open(badgerOptions)
	if err != nil {
		return nil, storeError("open", err)
	}
	return &BadgerDB{DB: db}, nil
}

// NewTransaction starts a read-write transaction
func (b *BadgerDB) NewTransaction() (Transaction, error) {
	return &badgerTransaction{txn: b.DB.NewTransaction(true)}, nil
}

// Iterate walks all keys in order
func (b *BadgerDB) Iterate(fn func(key, value []byte) error) error {
	err := b.DB.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), value); err != nil {
				return err
			}
		}
		return nil
	})
	return storeError("iterate", err)
}

// Close flushes and closes the directory
func (b *BadgerDB) Close() error {
	return storeError("close", b.DB.Close())
}

type badgerTransaction struct {
	txn *badger.Txn
}

// Put fails with badger.ErrTxnTooBig when the transaction is full;
// pending writes stay uncommitted until Commit.
func (t *badgerTransaction) Put(key, value []byte) error {
	return storeError("put", t.txn.Set(key, value))
}

func (t *badgerTransaction) Commit() error {
	return storeError("commit", t.txn.Commit())
}

func (t *badgerTransaction) Discard() {
	t.txn.Discard()
}
