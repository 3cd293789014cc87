// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the coverage-audit CLI, the data
// collection tool behind the Scopus/OpenAlex coverage study: it resolves a
// roster of ranked researchers against OpenAlex, fetches their complete
// publication lists, and aggregates per-researcher coverage metrics.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the coverage-audit CLI.
var rootCmd = &cobra.Command{
	Use:   "coverage-audit",
	Short: "Measure OpenAlex coverage for a roster of ranked researchers",
	Long: `coverage-audit collects the evidence table for the coverage-bias study.
The fetch subcommand drives the whole pipeline: author resolution, works
pagination, publisher classification, metric aggregation, and durable
per-row checkpointing so an interrupted run resumes where it stopped.

export-works and classify are small helpers for inspecting the retained
raw data and the publisher classification table.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coverage-audit.yaml or ~/.config/coverage-audit/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coverage-audit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coverage-audit"))
		}
	}

	viper.SetEnvPrefix("COVERAGE_AUDIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
