// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coverage-audit/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "works.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var testResearcher = types.Researcher{SampleID: 7, Name: "Doe, Jane"}
var testAuthor = types.ResolvedAuthor{ID: "A111", DisplayName: "Jane Doe"}

func TestReplaceAuthorWorks_Roundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	works := []types.Work{
		{ID: "W1", Title: "First", Year: 2019, Type: "article", CitedByCount: 4,
			Venue: "Journal A", PublisherRaw: "Elsevier BV", PublisherGroup: "Elsevier", IsOA: true, DOI: "10.1/x"},
		{ID: "W2", Title: "Second", Year: 2021, Type: "book", CitedByCount: 11,
			Venue: "Unknown", PublisherRaw: "Unknown", PublisherGroup: "Unknown"},
	}
	require.NoError(t, s.ReplaceAuthorWorks(ctx, testResearcher, testAuthor, works))

	got, err := s.AuthorWorks(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by citation count descending.
	assert.Equal(t, "W2", got[0].ID)
	assert.Equal(t, "W1", got[1].ID)
	assert.Equal(t, "Elsevier", got[1].PublisherGroup)
	assert.True(t, got[1].IsOA)
	assert.Equal(t, "10.1/x", got[1].DOI)

	authors, err := s.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, 7, authors[0].SampleID)
	assert.Equal(t, "A111", authors[0].OpenAlexID)
}

// Reprocessing a roster row after a resume must not duplicate works.
func TestReplaceAuthorWorks_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	works := []types.Work{
		{ID: "W1", Type: "article", CitedByCount: 1},
		{ID: "W2", Type: "article", CitedByCount: 2},
	}
	require.NoError(t, s.ReplaceAuthorWorks(ctx, testResearcher, testAuthor, works))
	require.NoError(t, s.ReplaceAuthorWorks(ctx, testResearcher, testAuthor, works[:1]))

	got, err := s.AuthorWorks(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	authors, err := s.Authors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestAuthorWorks_EmptyForUnknownAuthor(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AuthorWorks(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}
