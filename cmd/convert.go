package cmd

import (
	"time"

	"github.com/bgokden/pairset/convert"
	"github.com/bgokden/pairset/db"
	"github.com/bgokden/pairset/imageio"
	"github.com/bgokden/pairset/manifest"
	"github.com/magneticio/go-common/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert ROOTFOLDER/ LISTFILE DB_NAME",
	Short: "Convert a list of image pairs into a store",
	Long: `Convert a set of image pairs to the badger/bolt/sqlite format.
Each line of LISTFILE holds two image paths relative to ROOTFOLDER and a label:
  subfolder1/file1.JPEG subfolder2/file1.JPEG 7
Both images are resized and stacked channel-wise into one datum.
  pairset convert --resize_height 64 --resize_width 64 images/ pairs.txt pairs_db
  `,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0], args[1], args[2])
	},
}

func runConvert(rootFolder, listFile, dbName string) error {
	config := convert.Config{
		Height:    viper.GetInt("resize_height"),
		Width:     viper.GetInt("resize_width"),
		CheckSize: viper.GetBool("check_size"),
		BatchSize: viper.GetInt("batch_size"),
		KeyWidth:  viper.GetInt("key_width"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	entries, err := manifest.ReadFile(listFile, viper.GetBool("strict"))
	if err != nil {
		return err
	}
	if viper.GetBool("shuffle") {
		seed := viper.GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logging.Info("Shuffling data with seed %v\n", seed)
		manifest.Shuffle(entries, seed)
	}

	loader, err := imageio.NewLoader(rootFolder, config.Height, config.Width, viper.GetBool("gray"))
	if err != nil {
		return err
	}
	var imageLoader imageio.ImageLoader = loader
	if cacheSize := viper.GetInt("cache_size"); cacheSize > 0 {
		imageLoader = imageio.NewCachedLoader(loader, cacheSize)
	}

	store, err := db.OpenWithOptions(viper.GetString("backend"), dbName, db.Options{
		Mode:      db.ModeNew,
		BatchSize: config.BatchSize,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	converter, err := convert.NewConverter(config, imageLoader, store)
	if err != nil {
		return err
	}
	stats, err := converter.Run(entries)
	if err != nil {
		return err
	}
	logging.Info("Wrote %v of %v pairs (%v skipped) in %v commits.\n", stats.Written, stats.Total, stats.Skipped, stats.Commits)
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
	flags := convertCmd.Flags()
	flags.BoolP("gray", "g", false, "When this option is on, treat images as grayscale ones")
	flags.BoolP("shuffle", "s", false, "Randomly shuffle the order of images and their labels")
	flags.Int64("seed", 0, "Seed for --shuffle, 0 picks one from the clock")
	flags.StringP("backend", "b", db.BackendBadger, "The backend {badger, bolt, sqlite} for storing the result")
	flags.Int("resize_width", 0, "Width images are resized to")
	flags.Int("resize_height", 0, "Height images are resized to")
	flags.Bool("check_size", false, "When this option is on, check that all the datum have the same size")
	flags.Int("batch_size", convert.DefaultBatchSize, "Number of datums committed per transaction")
	flags.Int("key_width", convert.DefaultKeyWidth, "Digits of the sequence number in keys")
	flags.Bool("strict", false, "Reject list lines without exactly three fields or with a malformed label")
	flags.Int("cache_size", 0, "Number of decoded images kept in memory, 0 disables the cache")
	viper.BindPFlags(flags)
}
