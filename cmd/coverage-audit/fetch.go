// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/coverage-audit/internal/openalex"
	"github.com/pdiddy/coverage-audit/internal/publisher"
	"github.com/pdiddy/coverage-audit/internal/roster"
	"github.com/pdiddy/coverage-audit/internal/runner"
	"github.com/pdiddy/coverage-audit/internal/workstore"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "coverage-audit/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch OpenAlex publication data for every roster researcher",
	Long: `Fetch resolves each roster researcher against the OpenAlex author search,
pages through the matched author's complete works list, and folds it into a
per-researcher metrics row. Progress is appended to a checkpoint file after
every row, so an interrupted run resumes from the last completed researcher.
Individual failures (name not found, a works page erroring out) become
degraded rows and never abort the batch.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("roster", "", "input roster CSV (required)")
	fetchCmd.Flags().String("output", "evidence_summary_table.csv", "final output table")
	fetchCmd.Flags().String("checkpoint", "fetch_checkpoint.csv", "checkpoint file for resume")
	fetchCmd.Flags().String("works-db", "openalex_works.db", "SQLite database retaining raw work lists (empty to disable)")
	fetchCmd.Flags().String("email", "", "contact email for the OpenAlex polite pool")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "per-request HTTP timeout")
	fetchCmd.Flags().Float64("rate", 5, "sustained requests per second")
	fetchCmd.Flags().Int("max-pages", 0, "works pagination ceiling (default 150)")
	fetchCmd.Flags().String("publisher-table", "", "YAML file replacing the built-in publisher table")

	viper.SetDefault("openalex.email", "")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rosterPath, _ := cmd.Flags().GetString("roster")
	if rosterPath == "" {
		return fmt.Errorf("--roster is required")
	}
	outputPath, _ := cmd.Flags().GetString("output")
	checkpointPath, _ := cmd.Flags().GetString("checkpoint")
	worksDB, _ := cmd.Flags().GetString("works-db")
	tablePath, _ := cmd.Flags().GetString("publisher-table")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	rate, _ := cmd.Flags().GetFloat64("rate")
	maxPages, _ := cmd.Flags().GetInt("max-pages")

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("openalex.email")
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, "warning: no contact email configured; requests go to the common pool (set --email or openalex.email)")
	}

	// The roster must be fully valid before the first network call.
	researchers, err := roster.LoadCSV(rosterPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded roster: %d researchers\n", len(researchers))

	table := publisher.DefaultTable()
	if tablePath != "" {
		if table, err = publisher.LoadTable(tablePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded publisher table: %d groups\n", len(table.Groups()))
	}

	client := openalex.New(types.OpenAlexConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email:         email,
		RatePerSecond: rate,
		MaxPages:      maxPages,
	}, table)

	var store runner.WorkStore
	if worksDB != "" {
		s, err := workstore.Open(worksDB)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	// Ctrl-C stops between rows; the checkpoint keeps everything completed.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := types.RunConfig{
		RosterPath:         rosterPath,
		OutputPath:         outputPath,
		CheckpointPath:     checkpointPath,
		WorksDBPath:        worksDB,
		PublisherTablePath: tablePath,
	}

	summary, err := runner.Run(ctx, researchers, client, client, store, cfg, cmd.OutOrStdout())
	if err != nil {
		if summary != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\ninterrupted after %d researchers; rerun to resume\n", summary.Total)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nresults written to %s\n", outputPath)
	return nil
}
