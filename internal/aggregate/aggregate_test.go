// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/coverage-audit/internal/publisher"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

func TestIsBookType(t *testing.T) {
	for _, bookish := range []string{"book", "book-chapter", "monograph", "edited-book"} {
		assert.True(t, IsBookType(bookish), bookish)
	}
	for _, other := range []string{"article", "review", "dataset", "preprint", ""} {
		assert.False(t, IsBookType(other), other)
	}
}

func TestFold_EmptyList(t *testing.T) {
	m := Fold(nil)

	assert.Equal(t, 0, m.TotalWorks)
	assert.Equal(t, 0, m.TotalCitations)
	assert.Equal(t, 0.0, m.BooksPct)
	assert.Equal(t, 0.0, m.OAPct)
	assert.Equal(t, 0.0, m.ElsevierPct)
	assert.Equal(t, 0.0, m.ElsevierCitationsPct)
	assert.Equal(t, 0.0, m.OAPublisherPct)
	assert.Equal(t, "{}", m.PublisherCounts)
}

func TestFold_MixedList(t *testing.T) {
	works := []types.Work{
		{Type: "article", CitedByCount: 10, PublisherGroup: publisher.Elsevier},
		{Type: "book", CitedByCount: 5, PublisherGroup: publisher.Other},
	}

	m := Fold(works)

	assert.Equal(t, 2, m.TotalWorks)
	assert.Equal(t, 15, m.TotalCitations)
	assert.Equal(t, 1, m.BooksCount)
	assert.Equal(t, 50.0, m.BooksPct)
	assert.Equal(t, 1, m.ArticlesCount)
	assert.Equal(t, 1, m.ElsevierCount)
	assert.Equal(t, 50.0, m.ElsevierPct)
	assert.Equal(t, 10, m.ElsevierCitations)
	assert.InDelta(t, 66.666, m.ElsevierCitationsPct, 0.01)
	assert.Equal(t, `{"Elsevier":1,"Other":1}`, m.PublisherCounts)
}

func TestFold_BooksPlusArticlesIsTotal(t *testing.T) {
	works := []types.Work{
		{Type: "article"}, {Type: "monograph"}, {Type: "review"},
		{Type: "edited-book"}, {Type: "book-chapter"}, {Type: "dataset"},
	}
	m := Fold(works)
	assert.Equal(t, m.TotalWorks, m.BooksCount+m.ArticlesCount)
	assert.Equal(t, 3, m.BooksCount)
}

func TestFold_OAPublishers(t *testing.T) {
	works := []types.Work{
		{Type: "article", PublisherGroup: publisher.PLOS, IsOA: true},
		{Type: "article", PublisherGroup: publisher.Frontiers, IsOA: true},
		{Type: "article", PublisherGroup: publisher.MDPI, IsOA: true},
		{Type: "article", PublisherGroup: publisher.Wiley},
	}
	m := Fold(works)

	assert.Equal(t, 3, m.OAPublisherCount)
	assert.Equal(t, 75.0, m.OAPublisherPct)
	assert.Equal(t, 3, m.OACount)
	assert.Equal(t, 75.0, m.OAPct)
	assert.Equal(t, 1, m.WileyCount)
	assert.Equal(t, 25.0, m.WileyPct)
	assert.Equal(t, 1, m.PLOSCount)
	assert.Equal(t, 1, m.FrontiersCount)
}

// Folding the same list twice yields identical values, including the
// serialized publisher_counts.
func TestFold_Deterministic(t *testing.T) {
	works := []types.Work{
		{Type: "article", CitedByCount: 3, PublisherGroup: publisher.SpringerNature},
		{Type: "article", CitedByCount: 1, PublisherGroup: publisher.Wiley},
		{Type: "book", CitedByCount: 8, PublisherGroup: publisher.Cambridge},
		{Type: "article", CitedByCount: 2, PublisherGroup: publisher.Other},
		{Type: "article", CitedByCount: 0, PublisherGroup: publisher.Unknown},
	}

	first := Fold(works)
	second := Fold(works)
	assert.Equal(t, first, second)
	assert.Equal(t, `{"Cambridge":1,"Other":1,"Springer Nature":1,"Unknown":1,"Wiley":1}`, first.PublisherCounts)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 2.0, Ratio(10, 5))
}
