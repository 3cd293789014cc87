// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner drives the checkpointed fetch-and-aggregate batch over the
// researcher roster: resolve each name, page through the resolved author's
// works, fold them into a metrics row, and append the row durably so an
// interrupted run resumes where it stopped.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/coverage-audit/internal/aggregate"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

// Resolver matches a researcher to an OpenAlex author.
type Resolver interface {
	Resolve(ctx context.Context, r types.Researcher) (*types.ResolvedAuthor, error)
}

// WorksLister fetches a resolved author's complete work list. A non-nil
// error alongside a non-empty list means pagination stopped early and the
// list is partial.
type WorksLister interface {
	ListWorks(ctx context.Context, authorID string) ([]types.Work, error)
}

// WorkStore retains raw work lists. May be nil to disable retention.
type WorkStore interface {
	ReplaceAuthorWorks(ctx context.Context, r types.Researcher, author types.ResolvedAuthor, works []types.Work) error
}

// Run processes the roster sequentially, one researcher at a time. Per-row
// failures degrade to not-found or partial rows and never abort the batch;
// checkpoint and output IO errors do. On full completion the output table is
// written, the checkpoint removed, and a summary printed to w. A context
// cancellation stops between rows with the checkpoint intact.
func Run(ctx context.Context, researchers []types.Researcher, resolver Resolver, lister WorksLister, store WorkStore, cfg types.RunConfig, w io.Writer) (*Summary, error) {
	rows, existed, err := loadCheckpoint(cfg.CheckpointPath)
	if err != nil {
		return nil, err
	}
	if len(rows) > len(researchers) {
		return nil, fmt.Errorf("checkpoint has %d rows but the roster only %d; wrong roster or stale checkpoint", len(rows), len(researchers))
	}

	cw, err := openCheckpoint(cfg.CheckpointPath, !existed)
	if err != nil {
		return nil, err
	}
	defer cw.Close()

	start := len(rows)
	if start > 0 {
		fmt.Fprintf(w, "checkpoint found: resuming from researcher %d/%d\n", start+1, len(researchers))
	}

	for idx := start; idx < len(researchers); idx++ {
		select {
		case <-ctx.Done():
			return summarize(rows), ctx.Err()
		default:
		}

		r := researchers[idx]
		fmt.Fprintf(w, "\n[%d/%d] %s\n", idx+1, len(researchers), r.Name)
		fmt.Fprintf(w, "  field: %s (%s, %s)\n", r.Field, r.FieldGroup, r.Stratum)
		fmt.Fprintf(w, "  scopus: %d pubs, %d citations, h=%d\n", r.ScopusPubs, r.ScopusCitations, r.ScopusHIndex)

		row := processRow(ctx, r, resolver, lister, store, w)

		if err := cw.Append(row); err != nil {
			return summarize(rows), err
		}
		rows = append(rows, row)
	}

	if err := writeOutput(cfg.OutputPath, rows); err != nil {
		return summarize(rows), err
	}
	if err := os.Remove(cfg.CheckpointPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(w, "warning: could not remove checkpoint: %v\n", err)
	} else {
		fmt.Fprintf(w, "\ncheckpoint removed\n")
	}

	summary := summarize(rows)
	printSummary(w, summary, rows)
	return summary, nil
}

// processRow resolves and aggregates one researcher. Every failure path
// returns a valid terminal row.
func processRow(ctx context.Context, r types.Researcher, resolver Resolver, lister WorksLister, store WorkStore, w io.Writer) types.MetricsRow {
	row := types.FromResearcher(r)

	author, err := resolver.Resolve(ctx, r)
	if err != nil {
		fmt.Fprintf(w, "  not found (%v)\n", err)
		row.Found = false
		row.MatchQuality = types.MatchNotFound
		return row
	}

	row.Found = true
	row.OpenAlexID = author.ID
	row.OpenAlexName = author.DisplayName
	fmt.Fprintf(w, "  matched: %s (%s)\n", author.DisplayName, author.ID)

	works, fetchErr := lister.ListWorks(ctx, author.ID)
	if len(works) == 0 {
		if fetchErr != nil {
			fmt.Fprintf(w, "  works fetch failed (%v)\n", fetchErr)
			row.MatchQuality = types.MatchPartial
		} else {
			fmt.Fprintf(w, "  no works found\n")
			row.MatchQuality = types.MatchNoWorks
		}
		return row
	}

	row.WorkMetrics = aggregate.Fold(works)
	row.CoverageRatio = aggregate.Ratio(r.ScopusPubs, row.TotalWorks)
	row.CitationCoverage = aggregate.Ratio(r.ScopusCitations, row.TotalCitations)

	if fetchErr != nil {
		// Partial list: totals undercount the author's true output.
		fmt.Fprintf(w, "  warning: pagination stopped early (%v)\n", fetchErr)
		row.MatchQuality = types.MatchPartial
	} else {
		row.MatchQuality = types.MatchGood
	}

	fmt.Fprintf(w, "  fetched %d works (%d books, %d citations)\n", row.TotalWorks, row.BooksCount, row.TotalCitations)
	fmt.Fprintf(w, "  coverage: %.2f pubs, %.2f citations\n", row.CoverageRatio, row.CitationCoverage)

	if store != nil {
		if err := store.ReplaceAuthorWorks(ctx, r, *author, works); err != nil {
			fmt.Fprintf(w, "  warning: works retention failed: %v\n", err)
		}
	}
	return row
}
