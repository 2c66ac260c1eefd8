package cmd

import (
	"fmt"

	"github.com/bgokden/pairset/datum"
	"github.com/bgokden/pairset/db"
	"github.com/spf13/cobra"
)

var inspectBackend string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect DB_NAME",
	Short: "Print a summary of a converted store",
	Long: `Print the number of datums, the first and last keys and the shape of the first datum:
  pairset inspect pairs_db
  `,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(inspectBackend, args[0], db.ModeRead)
		if err != nil {
			return err
		}
		defer store.Close()

		count := 0
		var firstKey, lastKey string
		var first *datum.Datum
		err = store.Iterate(func(key, value []byte) error {
			if count == 0 {
				firstKey = string(key)
				d, err := datum.Unmarshal(value)
				if err != nil {
					return err
				}
				first = d
			}
			lastKey = string(key)
			count++
			return nil
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Count: %v\n", count)
		if first != nil {
			fmt.Fprintf(out, "First: %v\n", firstKey)
			fmt.Fprintf(out, "Last: %v\n", lastKey)
			fmt.Fprintf(out, "Shape: %vx%vx%v Label: %v\n", first.Channels, first.Height, first.Width, first.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectBackend, "backend", "b", db.BackendBadger, "The backend {badger, bolt, sqlite} of the store")
}
