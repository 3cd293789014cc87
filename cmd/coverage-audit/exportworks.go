// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coverage-audit/internal/workstore"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

var exportWorksCmd = &cobra.Command{
	Use:   "export-works [sample-ids...]",
	Short: "Export retained raw work lists to CSV",
	Long: `Export-works reads the works database populated by fetch and writes one
CSV per requested researcher (all retained researchers when no sample IDs
are given). The per-work rows are the raw evidence behind the aggregated
metrics table.`,
	RunE: runExportWorks,
}

func init() {
	exportWorksCmd.Flags().String("works-db", "openalex_works.db", "SQLite database written by fetch")
	exportWorksCmd.Flags().String("out-dir", "openalex_works", "directory for the exported CSV files")

	rootCmd.AddCommand(exportWorksCmd)
}

func runExportWorks(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("works-db")
	outDir, _ := cmd.Flags().GetString("out-dir")

	store, err := workstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	authors, err := store.Authors(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) > 0 {
		wanted := make(map[int]bool, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("sample ID %q is not a number", arg)
			}
			wanted[id] = true
		}
		var filtered []workstore.StoredAuthor
		for _, a := range authors {
			if wanted[a.SampleID] {
				filtered = append(filtered, a)
			}
		}
		authors = filtered
	}
	if len(authors) == 0 {
		return fmt.Errorf("no matching researchers in %s", dbPath)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	for _, a := range authors {
		works, err := store.AuthorWorks(cmd.Context(), a.SampleID)
		if err != nil {
			return err
		}
		path := fmt.Sprintf("%s/works_%03d.csv", outDir, a.SampleID)
		if err := writeWorksCSV(path, works); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s: %d works (%s)\n", path, len(works), a.Name)
	}
	return nil
}

func writeWorksCSV(path string, works []types.Work) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write([]string{
		"work_id", "title", "year", "type", "cited_by_count", "is_oa",
		"venue", "publisher_raw", "publisher_group", "doi",
	})
	for _, work := range works {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{
			work.ID, work.Title, strconv.Itoa(work.Year), work.Type,
			strconv.Itoa(work.CitedByCount), strconv.FormatBool(work.IsOA),
			work.Venue, work.PublisherRaw, work.PublisherGroup, work.DOI,
		})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	return nil
}
