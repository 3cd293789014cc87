// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchQuality describes how a roster row's OpenAlex match resolved.
type MatchQuality string

const (
	// MatchNotFound: the author search returned no candidates (or failed).
	MatchNotFound MatchQuality = "not_found"

	// MatchNoWorks: an author was matched but their works list is empty.
	MatchNoWorks MatchQuality = "found_no_works"

	// MatchPartial: works were fetched but pagination stopped on an error,
	// so the totals undercount the author's true output.
	MatchPartial MatchQuality = "partial"

	// MatchGood: the full works list was fetched.
	MatchGood MatchQuality = "good"
)

// WorkMetrics is the flat aggregate folded from an author's complete work
// list. Every percentage is 0 when its denominator is 0.
type WorkMetrics struct {
	// TotalWorks is the number of works fetched.
	TotalWorks int `json:"total_works" yaml:"total_works"`

	// TotalCitations is the citation sum over all works.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`

	// BooksCount counts works whose type is book-like
	// (book, book-chapter, monograph, edited-book).
	BooksCount int     `json:"books_count" yaml:"books_count"`
	BooksPct   float64 `json:"books_pct" yaml:"books_pct"`

	// ArticlesCount counts the remaining, non-book-like works.
	ArticlesCount int `json:"articles_count" yaml:"articles_count"`

	// OACount counts works flagged open access.
	OACount int     `json:"oa_count" yaml:"oa_count"`
	OAPct   float64 `json:"oa_pct" yaml:"oa_pct"`

	ElsevierCount        int     `json:"elsevier_count" yaml:"elsevier_count"`
	ElsevierPct          float64 `json:"elsevier_pct" yaml:"elsevier_pct"`
	ElsevierCitations    int     `json:"elsevier_citations" yaml:"elsevier_citations"`
	ElsevierCitationsPct float64 `json:"elsevier_citations_pct" yaml:"elsevier_citations_pct"`

	WileyCount    int     `json:"wiley_count" yaml:"wiley_count"`
	WileyPct      float64 `json:"wiley_pct" yaml:"wiley_pct"`
	SpringerCount int     `json:"springer_count" yaml:"springer_count"`
	SpringerPct   float64 `json:"springer_pct" yaml:"springer_pct"`

	PLOSCount      int `json:"plos_count" yaml:"plos_count"`
	FrontiersCount int `json:"frontiers_count" yaml:"frontiers_count"`

	// OAPublisherCount counts works from the born-open-access publishers
	// (PLOS, Frontiers, MDPI).
	OAPublisherCount int     `json:"oa_publisher_count" yaml:"oa_publisher_count"`
	OAPublisherPct   float64 `json:"oa_publisher_pct" yaml:"oa_publisher_pct"`

	// PublisherCounts is a JSON object mapping every publisher group seen in
	// the work list to its count. Keys are emitted in sorted order so folding
	// the same list twice yields identical bytes.
	PublisherCounts string `json:"publisher_counts" yaml:"publisher_counts"`
}

// MetricsRow is the per-researcher output record: roster identity, the
// ranking's reported metrics, the resolution outcome, coverage ratios, and
// the work-list aggregate. One row per roster researcher, produced once per
// run and never mutated afterwards.
type MetricsRow struct {
	SampleID        int    `json:"sample_id" yaml:"sample_id"`
	Name            string `json:"authfull" yaml:"authfull"`
	Field           string `json:"field" yaml:"field"`
	FieldGroup      string `json:"field_type" yaml:"field_type"`
	Stratum         string `json:"sample_stratum" yaml:"sample_stratum"`
	ScopusPubs      int    `json:"scopus_pubs" yaml:"scopus_pubs"`
	ScopusCitations int    `json:"scopus_citations" yaml:"scopus_citations"`
	ScopusHIndex    int    `json:"scopus_h_index" yaml:"scopus_h_index"`

	// Found reports whether the author search produced a match. A found
	// author with zero works keeps Found=true; the distinction between
	// "doesn't exist in OpenAlex" and "exists but has no indexed output"
	// matters downstream.
	Found        bool         `json:"openalex_found" yaml:"openalex_found"`
	OpenAlexID   string       `json:"openalex_id,omitempty" yaml:"openalex_id,omitempty"`
	OpenAlexName string       `json:"openalex_name,omitempty" yaml:"openalex_name,omitempty"`
	MatchQuality MatchQuality `json:"match_quality" yaml:"match_quality"`

	// CoverageRatio is ScopusPubs / TotalWorks (0 when TotalWorks is 0).
	CoverageRatio float64 `json:"coverage_ratio" yaml:"coverage_ratio"`

	// CitationCoverage is ScopusCitations / TotalCitations
	// (0 when TotalCitations is 0).
	CitationCoverage float64 `json:"citation_coverage" yaml:"citation_coverage"`

	WorkMetrics `yaml:",inline"`
}

// FromResearcher returns a MetricsRow carrying only the roster identity and
// source-ranking fields, with the zero value everywhere else.
func FromResearcher(r Researcher) MetricsRow {
	return MetricsRow{
		SampleID:        r.SampleID,
		Name:            r.Name,
		Field:           r.Field,
		FieldGroup:      r.FieldGroup,
		Stratum:         r.Stratum,
		ScopusPubs:      r.ScopusPubs,
		ScopusCitations: r.ScopusCitations,
		ScopusHIndex:    r.ScopusHIndex,
	}
}
