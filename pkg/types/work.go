// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Work is one item in a resolved author's publication list, reduced to the
// fields the aggregation step consumes.
type Work struct {
	// ID is the bare OpenAlex work ID (e.g. "W2741809807").
	ID string `json:"work_id" yaml:"work_id"`

	// Title is the work title.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, 0 when OpenAlex has none.
	Year int `json:"year" yaml:"year"`

	// Type is the OpenAlex work type tag (article, book, book-chapter, ...).
	Type string `json:"type" yaml:"type"`

	// CitedByCount is the work's citation count.
	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`

	// Venue is the display name of the primary location's source.
	Venue string `json:"venue" yaml:"venue"`

	// PublisherRaw is the host organization name as OpenAlex reports it,
	// or "Unknown" when the work carries no source.
	PublisherRaw string `json:"publisher_raw" yaml:"publisher_raw"`

	// PublisherGroup is the canonical publisher group assigned at ingestion.
	PublisherGroup string `json:"publisher_group" yaml:"publisher_group"`

	// IsOA reports whether OpenAlex flags the work as open access.
	IsOA bool `json:"is_oa" yaml:"is_oa"`

	// DOI is the work's DOI with the https://doi.org/ prefix stripped,
	// empty when none is registered.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
}
