package convert

import (
	"github.com/bgokden/pairset/datum"
	"github.com/bgokden/pairset/db"
	"github.com/pkg/errors"
)

// DefaultBatchSize is the number of puts per transaction
const DefaultBatchSize = 1000

type writerState int

const (
	stateOpen writerState = iota
	stateClosed
	stateAborted
)

// BatchWriter puts datums into a store, committing every BatchSize puts.
// Only committed batches are durable.
type BatchWriter struct {
	Store     db.DB
	BatchSize int
	Count     int
	Commits   int
	txn       db.Transaction
	state     writerState
}

// NewBatchWriter opens the first transaction
func NewBatchWriter(store db.DB, batchSize int) (*BatchWriter, error) {
	if batchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "batch size must be positive, got %d", batchSize)
	}
	txn, err := store.NewTransaction()
	if err != nil {
		return nil, err
	}
	return &BatchWriter{
		Store:     store,
		BatchSize: batchSize,
		txn:       txn,
	}, nil
}

// Put serializes d and stores it under key. It returns true when the
// put completed a batch and the batch was committed.
func (bw *BatchWriter) Put(key []byte, d *datum.Datum) (bool, error) {
	if bw.state != stateOpen {
		return false, errors.New("batch writer is closed")
	}
	if err := bw.txn.Put(key, datum.Marshal(d)); err != nil {
		return false, err
	}
	bw.Count++
	if bw.Count%bw.BatchSize != 0 {
		return false, nil
	}
	if err := bw.commit(); err != nil {
		return false, err
	}
	txn, err := bw.Store.NewTransaction()
	if err != nil {
		bw.state = stateAborted
		return true, err
	}
	bw.txn = txn
	return true, nil
}

func (bw *BatchWriter) commit() error {
	err := bw.txn.Commit()
	if err != nil {
		bw.txn.Discard()
		bw.state = stateAborted
		return err
	}
	bw.Commits++
	return nil
}

// Close commits the last partial batch. An empty batch is discarded.
func (bw *BatchWriter) Close() error {
	if bw.state != stateOpen {
		return nil
	}
	bw.state = stateClosed
	if bw.Count%bw.BatchSize == 0 {
		bw.txn.Discard()
		return nil
	}
	return bw.commit()
}

// Abort drops the writes of the open transaction
func (bw *BatchWriter) Abort() {
	if bw.state != stateOpen {
		return
	}
	bw.state = stateAborted
	bw.txn.Discard()
}
