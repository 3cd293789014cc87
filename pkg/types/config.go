// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that call the API.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "coverage-audit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OpenAlexConfig holds settings for the OpenAlex client.
type OpenAlexConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto parameter on every call for polite-pool
	// access. OpenAlex needs no API key; this is the only identifying
	// courtesy parameter.
	Email string `json:"email" yaml:"email"`

	// MaxCandidates bounds the author-search result page (default 10).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// PerPage is the works page size (default 200, the API maximum).
	PerPage int `json:"per_page" yaml:"per_page"`

	// MaxPages is a hard ceiling on works pagination so a server reporting
	// an inconsistent total can never loop the fetch forever (default 150).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// RatePerSecond is the sustained request rate across all endpoints
	// (default 5). Applied before every request; this is the pipeline's
	// only admission control.
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`

	// Burst is the rate limiter burst size (default 1).
	Burst int `json:"burst" yaml:"burst"`
}

// RunConfig holds settings for a checkpointed batch run.
type RunConfig struct {
	// RosterPath is the input roster CSV.
	RosterPath string `json:"roster_path" yaml:"roster_path"`

	// OutputPath is the final output table, written on full completion.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// CheckpointPath is the append-only progress file. It is created on the
	// first processed row and removed after the output table is written.
	CheckpointPath string `json:"checkpoint_path" yaml:"checkpoint_path"`

	// WorksDBPath is the SQLite database retaining every fetched work list.
	// Empty disables retention.
	WorksDBPath string `json:"works_db_path" yaml:"works_db_path"`

	// PublisherTablePath optionally replaces the built-in publisher variant
	// table with a YAML file.
	PublisherTablePath string `json:"publisher_table_path,omitempty" yaml:"publisher_table_path,omitempty"`
}
