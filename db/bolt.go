package db

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("datum")

// BoltDB stores entries in a single bucket of a bolt file
type BoltDB struct {
	DB *bolt.DB
}

// OpenBolt opens the bolt file at path
func OpenBolt(path string, mode Mode) (*BoltDB, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: mode == ModeRead,
	})
	if err != nil {
		return nil, storeError("open", err)
	}
	if mode == ModeNew {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltBucket)
			return err
		})
		if err != nil {
			db.Close()
			return nil, storeError("open", err)
		}
	}
	return &BoltDB{DB: db}, nil
}

// NewTransaction starts a writable bolt transaction
func (b *BoltDB) NewTransaction() (Transaction, error) {
	tx, err := b.DB.Begin(true)
	if err != nil {
		return nil, storeError("begin", err)
	}
	return &boltTransaction{tx: tx}, nil
}

// Iterate walks the bucket in key order
func (b *BoltDB) Iterate(fn func(key, value []byte) error) error {
	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			return fn(append([]byte(nil), k...), append([]byte(nil), v...))
		})
	})
	return storeError("iterate", err)
}

func (b *BoltDB) Close() error {
	return storeError("close", b.DB.Close())
}

type boltTransaction struct {
	tx   *bolt.Tx
	done bool
}

func (t *boltTransaction) Put(key, value []byte) error {
	return storeError("put", t.tx.Bucket(boltBucket).Put(key, value))
}

func (t *boltTransaction) Commit() error {
	t.done = true
	return storeError("commit", t.tx.Commit())
}

func (t *boltTransaction) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.tx.Rollback()
}
