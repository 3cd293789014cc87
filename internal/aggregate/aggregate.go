// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate folds an author's complete work list into the flat
// per-researcher metrics record.
package aggregate

import (
	"encoding/json"

	"github.com/pdiddy/coverage-audit/internal/publisher"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

// bookTypes is the fixed set of book-like OpenAlex work types.
var bookTypes = map[string]bool{
	"book":         true,
	"book-chapter": true,
	"monograph":    true,
	"edited-book":  true,
}

// IsBookType reports whether an OpenAlex work type counts as book-like.
func IsBookType(workType string) bool {
	return bookTypes[workType]
}

// Fold computes the aggregate metrics over a work list. It is a pure
// function: the same list always yields the same bytes, including the
// publisher_counts JSON (map keys are emitted sorted). Every percentage is
// 0 when its denominator is 0, so the empty list folds cleanly.
func Fold(works []types.Work) types.WorkMetrics {
	var m types.WorkMetrics
	m.TotalWorks = len(works)

	counts := make(map[string]int)
	for _, w := range works {
		m.TotalCitations += w.CitedByCount
		counts[w.PublisherGroup]++

		if IsBookType(w.Type) {
			m.BooksCount++
		}
		if w.IsOA {
			m.OACount++
		}
		if w.PublisherGroup == publisher.Elsevier {
			m.ElsevierCitations += w.CitedByCount
		}
	}

	m.ArticlesCount = m.TotalWorks - m.BooksCount
	m.ElsevierCount = counts[publisher.Elsevier]
	m.WileyCount = counts[publisher.Wiley]
	m.SpringerCount = counts[publisher.SpringerNature]
	m.PLOSCount = counts[publisher.PLOS]
	m.FrontiersCount = counts[publisher.Frontiers]
	m.OAPublisherCount = m.PLOSCount + m.FrontiersCount + counts[publisher.MDPI]

	m.BooksPct = pct(m.BooksCount, m.TotalWorks)
	m.OAPct = pct(m.OACount, m.TotalWorks)
	m.ElsevierPct = pct(m.ElsevierCount, m.TotalWorks)
	m.ElsevierCitationsPct = pct(m.ElsevierCitations, m.TotalCitations)
	m.WileyPct = pct(m.WileyCount, m.TotalWorks)
	m.SpringerPct = pct(m.SpringerCount, m.TotalWorks)
	m.OAPublisherPct = pct(m.OAPublisherCount, m.TotalWorks)

	// encoding/json sorts map keys, so this is deterministic.
	data, _ := json.Marshal(counts)
	m.PublisherCounts = string(data)

	return m
}

// pct returns n/total as a percentage, 0 when total is 0.
func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Ratio returns a/b as a plain ratio, 0 when b is 0. Used for the coverage
// columns comparing the source ranking's counts to the fetched counts.
func Ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
