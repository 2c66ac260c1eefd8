package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magneticio/go-common/logging"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pairset",
	Short: "Convert pairs of images into a key value store",
	Long: `Convert pairs of images into a key value store:
  pairset convert [FLAGS] ROOTFOLDER/ LISTFILE DB_NAME
  pairset inspect DB_NAME
  `,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {

	logging.Init(os.Stdout, os.Stderr)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pairset/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&logging.Verbose, "verbose", "v", false, "Verbose output")

	viper.SetEnvPrefix("pairset")
	viper.BindEnv("config", "PAIRSETCONFIG")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AutomaticEnv() // read in environment variables that match
	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, homeDirError := homedir.Dir()
		if homeDirError != nil {
			logging.Error("Can not find home Directory: %v\n", homeDirError)
			return
		}
		// Search config in home directory with name ".pairset" (without extension).
		path := filepath.FromSlash(home + "/.pairset")
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logging.Info("Using config file: %v\n", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logging.Error("Config can not be read due to error: %v\n", err)
	}
}
