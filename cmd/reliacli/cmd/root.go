// Package cmd implements the reliacli command tree: propagate, validate,
// and serve, bound to viper for flags/env/config-file and zerolog for
// output logging.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	logger zerolog.Logger
)

// rootCmd is the base command; every subcommand hangs off it.
var rootCmd = &cobra.Command{
	Use:   "reliacli",
	Short: "Exact node-reachability belief propagation over DAGs",
	Long: `reliacli computes, for every node in a directed acyclic graph whose
nodes and edges fail independently, the exact probability that the node
is reachable from an active source.

It exposes the propagate, validate, and serve subcommands over the same
CSV or JSON graph file formats.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.reliacli.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in a config file and environment variables under the
// RELIA_ prefix if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".reliacli")
	}

	viper.SetEnvPrefix("RELIA")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// Logger returns the configured zerolog.Logger for subcommands.
func Logger() zerolog.Logger {
	return logger
}
