package convert

import (
	"github.com/bgokden/pairset/db"
	"github.com/bgokden/pairset/imageio"
	"github.com/bgokden/pairset/manifest"
	"github.com/magneticio/go-common/logging"
	"github.com/pkg/errors"
)

// Config holds the settings of one conversion run
type Config struct {
	Height    int
	Width     int
	CheckSize bool
	BatchSize int
	KeyWidth  int
}

// DefaultConfig returns a config with the default batch size and key width
func DefaultConfig(height, width int) Config {
	return Config{
		Height:    height,
		Width:     width,
		BatchSize: DefaultBatchSize,
		KeyWidth:  DefaultKeyWidth,
	}
}

// Validate rejects settings a run can not work with
func (c Config) Validate() error {
	if c.Height <= 0 || c.Width <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "resize_height and resize_width must be set, got %dx%d", c.Height, c.Width)
	}
	if c.BatchSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "batch size must be positive, got %d", c.BatchSize)
	}
	return KeyAssigner{Width: c.KeyWidth}.Validate(0)
}

// Stats summarizes a run
type Stats struct {
	Total   int
	Written int
	Skipped int
	Commits int
}

// Converter turns list entries into datums in a store
type Converter struct {
	Config Config
	Loader imageio.ImageLoader
	Store  db.DB
}

// NewConverter validates config
func NewConverter(config Config, loader imageio.ImageLoader, store db.DB) (*Converter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		Config: config,
		Loader: loader,
		Store:  store,
	}, nil
}

// Run converts entries in order. Entries whose images can not be loaded are
// skipped; any other failure stops the run and drops the open batch.
func (cv *Converter) Run(entries []manifest.Entry) (*Stats, error) {
	keys := KeyAssigner{Width: cv.Config.KeyWidth}
	if err := keys.Validate(len(entries)); err != nil {
		return nil, err
	}
	logging.Info("A total of %v images.\n", len(entries))

	writer, err := NewBatchWriter(cv.Store, cv.Config.BatchSize)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(entries)}
	err = cv.run(entries, keys, writer, stats)
	if err != nil {
		writer.Abort()
	} else {
		err = writer.Close()
		if err == nil && writer.Count%writer.BatchSize != 0 {
			logging.Info("Processed %v files.\n", writer.Count)
		}
	}
	stats.Written = writer.Count
	stats.Commits = writer.Commits
	return stats, err
}

func (cv *Converter) run(entries []manifest.Entry, keys KeyAssigner, writer *BatchWriter, stats *Stats) error {
	pairs := PairLoader{Loader: cv.Loader}
	guard := &SizeGuard{Enabled: cv.Config.CheckSize}
	for lineID, entry := range entries {
		pair := pairs.Load(entry)
		if pair.Skipped() {
			logging.Error("Skipping line %v: %v\n", lineID, pair.Err)
			stats.Skipped++
			continue
		}
		d, err := Pack(pair.A, pair.B, cv.Config.Height, cv.Config.Width, entry.Label)
		if err != nil {
			return errors.Wrapf(err, "line %v (%v, %v)", lineID, entry.PathA, entry.PathB)
		}
		key := keys.Key(lineID, entry.PathA)
		if err := guard.Check(string(key), d); err != nil {
			return errors.Wrapf(err, "line %v (%v, %v)", lineID, entry.PathA, entry.PathB)
		}
		committed, err := writer.Put(key, d)
		if err != nil {
			return errors.Wrapf(err, "line %v (%v, %v)", lineID, entry.PathA, entry.PathB)
		}
		if committed {
			logging.Info("Processed %v files.\n", writer.Count)
		}
	}
	return nil
}
