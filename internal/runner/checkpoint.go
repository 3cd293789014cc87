// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/coverage-audit/pkg/types"
)

// columns is the column order shared by the checkpoint file and the final
// output table.
var columns = []string{
	"sample_id", "authfull", "field", "field_type", "sample_stratum",
	"scopus_pubs", "scopus_citations", "scopus_h_index",
	"openalex_found", "openalex_id", "openalex_name", "match_quality",
	"total_works", "total_citations", "coverage_ratio", "citation_coverage",
	"books_count", "books_pct", "articles_count",
	"oa_count", "oa_pct",
	"elsevier_count", "elsevier_pct", "elsevier_citations", "elsevier_citations_pct",
	"wiley_count", "wiley_pct", "springer_count", "springer_pct",
	"plos_count", "frontiers_count", "oa_publisher_count", "oa_publisher_pct",
	"publisher_counts",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encodeRow(r types.MetricsRow) []string {
	return []string{
		strconv.Itoa(r.SampleID), r.Name, r.Field, r.FieldGroup, r.Stratum,
		strconv.Itoa(r.ScopusPubs), strconv.Itoa(r.ScopusCitations), strconv.Itoa(r.ScopusHIndex),
		strconv.FormatBool(r.Found), r.OpenAlexID, r.OpenAlexName, string(r.MatchQuality),
		strconv.Itoa(r.TotalWorks), strconv.Itoa(r.TotalCitations),
		formatFloat(r.CoverageRatio), formatFloat(r.CitationCoverage),
		strconv.Itoa(r.BooksCount), formatFloat(r.BooksPct), strconv.Itoa(r.ArticlesCount),
		strconv.Itoa(r.OACount), formatFloat(r.OAPct),
		strconv.Itoa(r.ElsevierCount), formatFloat(r.ElsevierPct),
		strconv.Itoa(r.ElsevierCitations), formatFloat(r.ElsevierCitationsPct),
		strconv.Itoa(r.WileyCount), formatFloat(r.WileyPct),
		strconv.Itoa(r.SpringerCount), formatFloat(r.SpringerPct),
		strconv.Itoa(r.PLOSCount), strconv.Itoa(r.FrontiersCount),
		strconv.Itoa(r.OAPublisherCount), formatFloat(r.OAPublisherPct),
		r.PublisherCounts,
	}
}

func decodeRow(record []string) (types.MetricsRow, error) {
	var r types.MetricsRow
	if len(record) != len(columns) {
		return r, fmt.Errorf("expected %d columns, got %d", len(columns), len(record))
	}

	var err error
	intAt := func(i int) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(record[i]); err != nil {
			err = fmt.Errorf("column %s: %w", columns[i], err)
		}
		return n
	}
	floatAt := func(i int) float64 {
		if err != nil {
			return 0
		}
		var f float64
		if f, err = strconv.ParseFloat(record[i], 64); err != nil {
			err = fmt.Errorf("column %s: %w", columns[i], err)
		}
		return f
	}

	r.SampleID = intAt(0)
	r.Name, r.Field, r.FieldGroup, r.Stratum = record[1], record[2], record[3], record[4]
	r.ScopusPubs = intAt(5)
	r.ScopusCitations = intAt(6)
	r.ScopusHIndex = intAt(7)
	if err == nil {
		if r.Found, err = strconv.ParseBool(record[8]); err != nil {
			err = fmt.Errorf("column openalex_found: %w", err)
		}
	}
	r.OpenAlexID, r.OpenAlexName = record[9], record[10]
	r.MatchQuality = types.MatchQuality(record[11])
	r.TotalWorks = intAt(12)
	r.TotalCitations = intAt(13)
	r.CoverageRatio = floatAt(14)
	r.CitationCoverage = floatAt(15)
	r.BooksCount = intAt(16)
	r.BooksPct = floatAt(17)
	r.ArticlesCount = intAt(18)
	r.OACount = intAt(19)
	r.OAPct = floatAt(20)
	r.ElsevierCount = intAt(21)
	r.ElsevierPct = floatAt(22)
	r.ElsevierCitations = intAt(23)
	r.ElsevierCitationsPct = floatAt(24)
	r.WileyCount = intAt(25)
	r.WileyPct = floatAt(26)
	r.SpringerCount = intAt(27)
	r.SpringerPct = floatAt(28)
	r.PLOSCount = intAt(29)
	r.FrontiersCount = intAt(30)
	r.OAPublisherCount = intAt(31)
	r.OAPublisherPct = floatAt(32)
	r.PublisherCounts = record[33]
	return r, err
}

// loadCheckpoint reads an existing checkpoint file. It returns the rows in
// file order and whether the file existed. Rows are written strictly in
// roster order with no gaps, so the row count is the resume position.
func loadCheckpoint(path string) ([]types.MetricsRow, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("opening checkpoint %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err == io.EOF {
		// Created but never written to; treat as a fresh file.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading checkpoint header: %w", err)
	}
	if len(header) != len(columns) || header[0] != columns[0] {
		return nil, false, fmt.Errorf("checkpoint %s has an unexpected column set; delete it to restart", path)
	}

	var rows []types.MetricsRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading checkpoint %s: %w", path, err)
		}
		line++
		row, err := decodeRow(record)
		if err != nil {
			return nil, false, fmt.Errorf("checkpoint %s line %d: %w", path, line, err)
		}
		rows = append(rows, row)
	}
	return rows, true, nil
}

// checkpointWriter appends one durable row per processed researcher. Each
// append is flushed and synced immediately, so the recovery point after a
// crash is always "all rows written so far".
type checkpointWriter struct {
	f *os.File
	w *csv.Writer
}

// openCheckpoint opens path for appending, writing the header when the file
// is new.
func openCheckpoint(path string, writeHeader bool) (*checkpointWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint %s: %w", path, err)
	}

	cw := &checkpointWriter{f: f, w: csv.NewWriter(f)}
	if writeHeader {
		if err := cw.w.Write(columns); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing checkpoint header: %w", err)
		}
		if err := cw.sync(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return cw, nil
}

func (cw *checkpointWriter) Append(row types.MetricsRow) error {
	if err := cw.w.Write(encodeRow(row)); err != nil {
		return fmt.Errorf("writing checkpoint row: %w", err)
	}
	return cw.sync()
}

func (cw *checkpointWriter) sync() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return fmt.Errorf("flushing checkpoint: %w", err)
	}
	if err := cw.f.Sync(); err != nil {
		return fmt.Errorf("syncing checkpoint: %w", err)
	}
	return nil
}

func (cw *checkpointWriter) Close() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}

// writeOutput writes the final table through a temp file and rename so an
// interrupted write never leaves a truncated output behind.
func writeOutput(path string, rows []types.MetricsRow) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".coverage-audit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(columns)
	for _, row := range rows {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(encodeRow(row))
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	closeErr := tmp.Close()

	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing output: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming output: %w", err)
	}
	return nil
}
