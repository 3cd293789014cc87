// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the coverage-audit pipeline.
package types

// Researcher is one row of the input roster: a scientist drawn from the
// Scopus-derived ranking, with the ranking's own reported metrics attached.
// Records are read-only once loaded.
type Researcher struct {
	// SampleID is the unique roster row identifier.
	SampleID int `json:"sample_id" yaml:"sample_id"`

	// Name is the researcher's display name as listed in the ranking
	// (typically "Family, Given").
	Name string `json:"authfull" yaml:"authfull"`

	// Field is the fine-grained academic field label.
	Field string `json:"field" yaml:"field"`

	// FieldGroup is the coarse field classification: book_heavy, mixed,
	// or journal_heavy.
	FieldGroup string `json:"field_type" yaml:"field_type"`

	// Stratum is the sampling stratum the row was drawn from.
	Stratum string `json:"sample_stratum" yaml:"sample_stratum"`

	// Institution is an optional affiliation hint. It is carried for future
	// disambiguation scoring and is not used by the default match policy.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`

	// ScopusPubs is the publication count reported by the source ranking.
	ScopusPubs int `json:"scopus_pubs" yaml:"scopus_pubs"`

	// ScopusCitations is the citation count reported by the source ranking.
	ScopusCitations int `json:"scopus_citations" yaml:"scopus_citations"`

	// ScopusHIndex is the h-index reported by the source ranking.
	ScopusHIndex int `json:"scopus_h_index" yaml:"scopus_h_index"`
}

// ResolvedAuthor is a researcher matched to an OpenAlex author record.
type ResolvedAuthor struct {
	// ID is the bare OpenAlex author ID (e.g. "A1969205032"), with the
	// https://openalex.org/ prefix stripped.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the matched author's name as OpenAlex records it.
	DisplayName string `json:"display_name" yaml:"display_name"`

	// WorksCount is the work count from the author record's summary.
	WorksCount int `json:"works_count" yaml:"works_count"`

	// CitedByCount is the citation count from the author record's summary.
	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`
}
