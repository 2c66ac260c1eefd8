package convert_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bgokden/pairset/convert"
	"github.com/bgokden/pairset/datum"
	"github.com/bgokden/pairset/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeN(t *testing.T, writer *convert.BatchWriter, n int) int {
	keys := convert.KeyAssigner{Width: convert.DefaultKeyWidth}
	committed := 0
	for i := 0; i < n; i++ {
		done, err := writer.Put(keys.Key(i, "a.png"), datum.NewDatum(2, 2, 2, int32(i)))
		require.Nil(t, err)
		if done {
			committed++
		}
	}
	return committed
}

func TestBatchWriterBoundaries(t *testing.T) {
	store := newMemoryStore()
	writer, err := convert.NewBatchWriter(store, convert.DefaultBatchSize)
	require.Nil(t, err)

	assert.Equal(t, 2, writeN(t, writer, 2500))
	assert.Equal(t, 2, store.commits)
	assert.Len(t, store.entries, 2000)

	require.Nil(t, writer.Close())
	assert.Equal(t, 3, store.commits)
	assert.Equal(t, 3, writer.Commits)
	assert.Equal(t, 2500, writer.Count)
	assert.Len(t, store.entries, 2500)
	assert.Equal(t, 0, store.open)
}

func TestBatchWriterExactMultiple(t *testing.T) {
	store := newMemoryStore()
	writer, err := convert.NewBatchWriter(store, 10)
	require.Nil(t, err)

	writeN(t, writer, 20)
	require.Nil(t, writer.Close())
	assert.Equal(t, 2, store.commits)
	assert.Equal(t, 1, store.discards)
	assert.Equal(t, 0, store.open)
	assert.Len(t, store.entries, 20)
}

func TestBatchWriterAbortDropsOpenBatch(t *testing.T) {
	store := newMemoryStore()
	writer, err := convert.NewBatchWriter(store, 10)
	require.Nil(t, err)

	writeN(t, writer, 15)
	writer.Abort()
	assert.Len(t, store.entries, 10)
	assert.Equal(t, 0, store.open)

	// closing after abort is a no-op
	require.Nil(t, writer.Close())
	assert.Equal(t, 1, store.commits)

	_, err = writer.Put([]byte("k"), datum.NewDatum(1, 1, 1, 0))
	assert.NotNil(t, err)
}

func TestBatchWriterStoredValues(t *testing.T) {
	store := newMemoryStore()
	writer, err := convert.NewBatchWriter(store, 3)
	require.Nil(t, err)
	writeN(t, writer, 4)
	require.Nil(t, writer.Close())

	value, ok := store.entries["00000003_a.png"]
	require.True(t, ok)
	d, err := datum.Unmarshal(value)
	require.Nil(t, err)
	assert.Equal(t, int32(3), d.Label)
	assert.Len(t, d.Data, 8)
}

func TestBatchWriterPutError(t *testing.T) {
	store := newMemoryStore()
	store.failPut = 5
	writer, err := convert.NewBatchWriter(store, 100)
	require.Nil(t, err)

	keys := convert.KeyAssigner{Width: convert.DefaultKeyWidth}
	for i := 0; i < 4; i++ {
		_, err := writer.Put(keys.Key(i, "x"), datum.NewDatum(1, 1, 1, 0))
		require.Nil(t, err)
	}
	_, err = writer.Put(keys.Key(4, "x"), datum.NewDatum(1, 1, 1, 0))
	var storeError *db.StoreError
	assert.True(t, errors.As(err, &storeError))
}

func TestNewBatchWriterRejectsBatchSize(t *testing.T) {
	_, err := convert.NewBatchWriter(newMemoryStore(), 0)
	assert.True(t, errors.Is(err, convert.ErrInvalidConfig))
}

// putLarge writes n datums of 6x64x64 samples, the size of a resized RGB pair
func putLarge(t *testing.T, writer *convert.BatchWriter, n int) {
	keys := convert.KeyAssigner{Width: convert.DefaultKeyWidth}
	for i := 0; i < n; i++ {
		d := datum.NewDatum(6, 64, 64, int32(i))
		for j := range d.Data {
			d.Data[j] = byte(i + j)
		}
		_, err := writer.Put(keys.Key(i, "images/left.png"), d)
		require.Nil(t, err)
	}
}

func countEntries(t *testing.T, store db.DB) int {
	count := 0
	require.Nil(t, store.Iterate(func(key, value []byte) error {
		count++
		return nil
	}))
	return count
}

func TestBatchWriterBadgerAbortKeepsNothing(t *testing.T) {
	store, err := db.OpenWithOptions(db.BackendBadger, filepath.Join(t.TempDir(), "pairs"), db.Options{
		Mode:      db.ModeNew,
		BatchSize: convert.DefaultBatchSize,
	})
	require.Nil(t, err)
	defer store.Close()

	writer, err := convert.NewBatchWriter(store, convert.DefaultBatchSize)
	require.Nil(t, err)
	putLarge(t, writer, convert.DefaultBatchSize-1)
	writer.Abort()

	assert.Equal(t, 0, writer.Commits)
	assert.Equal(t, 0, countEntries(t, store))
}

func TestBatchWriterBadgerLargeBatches(t *testing.T) {
	store, err := db.OpenWithOptions(db.BackendBadger, filepath.Join(t.TempDir(), "pairs"), db.Options{
		Mode:      db.ModeNew,
		BatchSize: convert.DefaultBatchSize,
	})
	require.Nil(t, err)
	defer store.Close()

	writer, err := convert.NewBatchWriter(store, convert.DefaultBatchSize)
	require.Nil(t, err)
	putLarge(t, writer, 1200)
	assert.Equal(t, 1, writer.Commits)
	assert.Equal(t, convert.DefaultBatchSize, countEntries(t, store))

	require.Nil(t, writer.Close())
	assert.Equal(t, 2, writer.Commits)
	assert.Equal(t, 1200, countEntries(t, store))
}
