package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev" // Set via build flags
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pageseg",
	Short: "Segment page layouts into regions, columns and blocks",
	Long: `pageseg recovers the visual layout of pages from positioned text runs
and graphics produced by an upstream extractor.

Features:
  - Whitespace-driven column detection
  - Separator and container (boxed content) splitting
  - Figure and caption grouping
  - Connected text blocks per region
  - JSON/YAML fixtures and hOCR input`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pageseg.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file")

	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}
