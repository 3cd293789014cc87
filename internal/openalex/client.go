// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex resolves researchers against the OpenAlex author search
// and pages through resolved authors' complete works lists.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/coverage-audit/internal/httputil"
	"github.com/pdiddy/coverage-audit/internal/publisher"
	"github.com/pdiddy/coverage-audit/pkg/types"
)

// DefaultBaseURL is the OpenAlex API root.
const DefaultBaseURL = "https://api.openalex.org"

const (
	defaultMaxCandidates = 10
	defaultPerPage       = 200
	defaultMaxPages      = 150
	defaultRatePerSecond = 5.0
)

const openAlexIDPrefix = "https://openalex.org/"

// MatchPolicy selects the best candidate for a researcher from author-search
// results, or nil when none is acceptable. The policy is a configuration
// point: the shipped FirstResult performs no scoring at all.
type MatchPolicy func(r types.Researcher, candidates []Author) *Author

// FirstResult picks the first candidate unconditionally. This reproduces the
// study's original matching behavior and is its biggest known correctness
// risk: a common name can resolve to the wrong author, and nothing checks
// the institution hint. Callers wanting disambiguation supply their own
// policy.
func FirstResult(_ types.Researcher, candidates []Author) *Author {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// Client calls the OpenAlex API. BaseURL is settable so tests can point the
// client at an httptest server.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	Limiter    *httputil.Limiter
	Email      string
	UserAgent  string
	Match      MatchPolicy
	Publishers *publisher.Table

	maxCandidates int
	perPage       int
	maxPages      int
}

// New builds a client from config, filling defaults for unset fields.
func New(cfg types.OpenAlexConfig, table *publisher.Table) *Client {
	c := &Client{
		BaseURL:       DefaultBaseURL,
		HTTP:          &http.Client{Timeout: cfg.Timeout},
		Email:         cfg.Email,
		UserAgent:     cfg.UserAgent,
		Match:         FirstResult,
		Publishers:    table,
		maxCandidates: cfg.MaxCandidates,
		perPage:       cfg.PerPage,
		maxPages:      cfg.MaxPages,
	}
	if c.maxCandidates <= 0 {
		c.maxCandidates = defaultMaxCandidates
	}
	if c.perPage <= 0 || c.perPage > defaultPerPage {
		c.perPage = defaultPerPage
	}
	if c.maxPages <= 0 {
		c.maxPages = defaultMaxPages
	}
	rate := cfg.RatePerSecond
	if rate == 0 {
		rate = defaultRatePerSecond
	}
	c.Limiter = httputil.NewLimiter(rate, cfg.Burst)
	return c
}

// get performs one rate-limited, retried GET and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, op, reqURL string, v any) error {
	if err := c.Limiter.Wait(ctx); err != nil {
		return &FetchError{Kind: KindTimeout, Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Kind: KindDecode, Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return &FetchError{Kind: KindTimeout, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpError(op, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{Kind: KindDecode, Op: op, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}

// SearchAuthors queries the author-search endpoint with the display name as
// free text and returns up to MaxCandidates candidates. Commas are stripped
// first: roster names arrive as "Family, Given" and the search endpoint
// scores the comma-free form better.
func (c *Client) SearchAuthors(ctx context.Context, name string) ([]Author, error) {
	params := url.Values{
		"search":   {strings.TrimSpace(strings.ReplaceAll(name, ",", ""))},
		"per_page": {strconv.Itoa(c.maxCandidates)},
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}

	var ar authorsResponse
	if err := c.get(ctx, "search authors", c.BaseURL+"/authors?"+params.Encode(), &ar); err != nil {
		return nil, err
	}
	return ar.Results, nil
}

// Resolve searches for a researcher and applies the match policy. It returns
// a KindNotFound error when the search yields no acceptable candidate.
func (c *Client) Resolve(ctx context.Context, r types.Researcher) (*types.ResolvedAuthor, error) {
	candidates, err := c.SearchAuthors(ctx, r.Name)
	if err != nil {
		return nil, err
	}

	match := c.Match
	if match == nil {
		match = FirstResult
	}
	best := match(r, candidates)
	if best == nil {
		return nil, &FetchError{Kind: KindNotFound, Op: "search authors"}
	}

	return &types.ResolvedAuthor{
		ID:           bareID(best.ID),
		DisplayName:  best.DisplayName,
		WorksCount:   best.WorksCount,
		CitedByCount: best.CitedByCount,
	}, nil
}

// ListWorks pages through an author's complete works list, classifying each
// work's publisher on ingestion. Pagination stops on an empty results page,
// when page*perPage reaches the server-reported total, or at the MaxPages
// ceiling, whichever comes first; the ceiling guarantees termination even
// against a server reporting an inconsistent total. A page error returns the
// works accumulated so far together with the error, so the caller can keep
// the partial list.
func (c *Client) ListWorks(ctx context.Context, authorID string) ([]types.Work, error) {
	authorID = bareID(authorID)

	var works []types.Work
	for page := 1; page <= c.maxPages; page++ {
		params := url.Values{
			"filter":   {"author.id:" + authorID},
			"per_page": {strconv.Itoa(c.perPage)},
			"page":     {strconv.Itoa(page)},
		}
		if c.Email != "" {
			params.Set("mailto", c.Email)
		}

		var wr worksResponse
		if err := c.get(ctx, "list works", c.BaseURL+"/works?"+params.Encode(), &wr); err != nil {
			return works, err
		}

		if len(wr.Results) == 0 {
			break
		}
		for _, w := range wr.Results {
			works = append(works, c.toWork(w))
		}
		if page*c.perPage >= wr.Meta.Count {
			break
		}
	}
	return works, nil
}

// toWork reduces an API work record to the fields the pipeline consumes.
func (c *Client) toWork(w workRecord) types.Work {
	publisherRaw := publisher.Unknown
	venue := publisher.Unknown
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		if w.PrimaryLocation.Source.HostOrganizationName != "" {
			publisherRaw = w.PrimaryLocation.Source.HostOrganizationName
		}
		if w.PrimaryLocation.Source.DisplayName != "" {
			venue = w.PrimaryLocation.Source.DisplayName
		}
	}

	return types.Work{
		ID:             bareID(w.ID),
		Title:          w.Title,
		Year:           w.PublicationYear,
		Type:           w.Type,
		CitedByCount:   w.CitedByCount,
		Venue:          venue,
		PublisherRaw:   publisherRaw,
		PublisherGroup: c.Publishers.Classify(publisherRaw),
		IsOA:           w.OpenAccess.IsOA,
		DOI:            strings.TrimPrefix(w.DOI, "https://doi.org/"),
	}
}

// bareID strips the https://openalex.org/ prefix from an entity ID.
func bareID(id string) string {
	return strings.TrimPrefix(id, openAlexIDPrefix)
}

// OpenAlex API JSON structures.

// Author is one candidate from the author-search endpoint.
type Author struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	WorksCount   int    `json:"works_count"`
	CitedByCount int    `json:"cited_by_count"`
}

type authorsResponse struct {
	Meta    responseMeta `json:"meta"`
	Results []Author     `json:"results"`
}

type responseMeta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type worksResponse struct {
	Meta    responseMeta `json:"meta"`
	Results []workRecord `json:"results"`
}

type workRecord struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	DOI             string            `json:"doi"`
	Type            string            `json:"type"`
	PublicationYear int               `json:"publication_year"`
	CitedByCount    int               `json:"cited_by_count"`
	PrimaryLocation *workLocation     `json:"primary_location"`
	OpenAccess      workOpenAccess    `json:"open_access"`
}

type workLocation struct {
	Source *workSource `json:"source"`
}

type workSource struct {
	DisplayName          string `json:"display_name"`
	HostOrganizationName string `json:"host_organization_name"`
}

type workOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
}
