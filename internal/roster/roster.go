// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster loads and validates the input researcher roster.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/coverage-audit/pkg/types"
)

// columnAliases maps each logical column to the header names accepted for
// it. "sm-subfield-1" is the field column's name in the upstream ranking
// export; rosters built directly from it keep that header.
var columnAliases = map[string][]string{
	"sample_id":        {"sample_id"},
	"authfull":         {"authfull"},
	"field":            {"field", "sm-subfield-1"},
	"field_type":       {"field_type"},
	"sample_stratum":   {"sample_stratum"},
	"institution":      {"institution"},
	"scopus_pubs":      {"scopus_pubs"},
	"scopus_citations": {"scopus_citations"},
	"scopus_h_index":   {"scopus_h_index"},
}

// required lists the columns that must be present; institution is optional.
var required = []string{
	"sample_id", "authfull", "field", "field_type", "sample_stratum",
	"scopus_pubs", "scopus_citations", "scopus_h_index",
}

// LoadCSV reads the roster file. Columns are located by header name, so
// column order is free. A missing required column or an unparseable numeric
// cell is a fatal error: the roster must be fully valid before the first
// network call.
func LoadCSV(path string) ([]types.Researcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads roster rows from r; name is used in error messages only.
func Parse(r io.Reader, name string) ([]types.Researcher, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading roster header from %s: %w", name, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", name, err)
	}

	var researchers []types.Researcher
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster %s: %w", name, err)
		}
		line++

		res, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("roster %s line %d: %w", name, line, err)
		}
		researchers = append(researchers, res)
	}

	if len(researchers) == 0 {
		return nil, fmt.Errorf("roster %s contains no rows", name)
	}
	return researchers, nil
}

// mapColumns resolves logical column names to indices in the header.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	cols := make(map[string]int)
	for logical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[logical] = i
				break
			}
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int) (types.Researcher, error) {
	cell := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	intCell := func(col string) (int, error) {
		raw := cell(col)
		if raw == "" {
			return 0, nil
		}
		// Tolerate spreadsheet float formatting like "412.0".
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
			return int(f), nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", col, raw)
		}
		return n, nil
	}

	res := types.Researcher{
		Name:        cell("authfull"),
		Field:       cell("field"),
		FieldGroup:  cell("field_type"),
		Stratum:     cell("sample_stratum"),
		Institution: cell("institution"),
	}
	if res.Name == "" {
		return res, fmt.Errorf("empty authfull")
	}

	var err error
	if res.SampleID, err = intCell("sample_id"); err != nil {
		return res, err
	}
	if res.ScopusPubs, err = intCell("scopus_pubs"); err != nil {
		return res, err
	}
	if res.ScopusCitations, err = intCell("scopus_citations"); err != nil {
		return res, err
	}
	if res.ScopusHIndex, err = intCell("scopus_h_index"); err != nil {
		return res, err
	}
	return res, nil
}
