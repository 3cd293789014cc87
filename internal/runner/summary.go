// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/coverage-audit/pkg/types"
)

// Summary holds the completion counts for a run.
type Summary struct {
	Total    int
	Found    int
	NotFound int
	NoWorks  int
	Partial  int
}

func summarize(rows []types.MetricsRow) *Summary {
	s := &Summary{Total: len(rows)}
	for _, r := range rows {
		if !r.Found {
			s.NotFound++
			continue
		}
		s.Found++
		switch r.MatchQuality {
		case types.MatchNoWorks:
			s.NoWorks++
		case types.MatchPartial:
			s.Partial++
		}
	}
	return s
}

// median returns the middle value of vs (mean of the middle two for even
// lengths), 0 for an empty slice.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func medianOf(rows []types.MetricsRow, f func(types.MetricsRow) float64) float64 {
	vs := make([]float64, 0, len(rows))
	for _, r := range rows {
		vs = append(vs, f(r))
	}
	return median(vs)
}

// printSummary writes the end-of-run report: match counts, median coverage
// and publisher shares over found rows, and a per-field-group breakdown.
func printSummary(w io.Writer, s *Summary, rows []types.MetricsRow) {
	fmt.Fprintf(w, "\nRun summary: %d researchers\n", s.Total)
	if s.Total == 0 {
		return
	}

	fmt.Fprintf(w, "  found in OpenAlex: %d (%.1f%%)\n", s.Found, float64(s.Found)/float64(s.Total)*100)
	fmt.Fprintf(w, "  not found: %d (%.1f%%)\n", s.NotFound, float64(s.NotFound)/float64(s.Total)*100)
	if s.NoWorks > 0 {
		fmt.Fprintf(w, "  found with no works: %d\n", s.NoWorks)
	}
	if s.Partial > 0 {
		fmt.Fprintf(w, "  partial fetches: %d\n", s.Partial)
	}

	var found []types.MetricsRow
	for _, r := range rows {
		if r.Found && r.TotalWorks > 0 {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return
	}

	fmt.Fprintf(w, "\nMedians over %d matched researchers with works:\n", len(found))
	fmt.Fprintf(w, "  publication coverage: %.2f\n", medianOf(found, func(r types.MetricsRow) float64 { return r.CoverageRatio }))
	fmt.Fprintf(w, "  citation coverage:    %.2f\n", medianOf(found, func(r types.MetricsRow) float64 { return r.CitationCoverage }))
	fmt.Fprintf(w, "  book share:           %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.BooksPct }))
	fmt.Fprintf(w, "  open access share:    %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.OAPct }))
	fmt.Fprintf(w, "  Elsevier share:       %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.ElsevierPct }))
	fmt.Fprintf(w, "  Wiley share:          %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.WileyPct }))
	fmt.Fprintf(w, "  Springer share:       %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.SpringerPct }))
	fmt.Fprintf(w, "  OA-publisher share:   %.1f%%\n", medianOf(found, func(r types.MetricsRow) float64 { return r.OAPublisherPct }))

	for _, group := range []string{"book_heavy", "mixed", "journal_heavy"} {
		var subset []types.MetricsRow
		for _, r := range found {
			if r.FieldGroup == group {
				subset = append(subset, r)
			}
		}
		if len(subset) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (n=%d):\n", group, len(subset))
		fmt.Fprintf(w, "  coverage: %.2f  books: %.1f%%  Elsevier: %.1f%%\n",
			medianOf(subset, func(r types.MetricsRow) float64 { return r.CoverageRatio }),
			medianOf(subset, func(r types.MetricsRow) float64 { return r.BooksPct }),
			medianOf(subset, func(r types.MetricsRow) float64 { return r.ElsevierPct }))
	}
}
