// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publisher classifies free-text publisher names into a fixed set of
// canonical publisher groups via case-insensitive substring matching.
package publisher

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Canonical group labels. Other is the catch-all for names matching no
// variant; Unknown marks empty input.
const (
	Elsevier       = "Elsevier"
	Wiley          = "Wiley"
	SpringerNature = "Springer Nature"
	TaylorFrancis  = "Taylor & Francis"
	PLOS           = "PLOS"
	Frontiers      = "Frontiers"
	MDPI           = "MDPI"
	Oxford         = "Oxford"
	Cambridge      = "Cambridge"
	IEEE           = "IEEE"
	ACM            = "ACM"
	ACS            = "ACS"
	Other          = "Other"
	Unknown        = "Unknown"
)

// Entry maps one canonical group to its lowercase substring variants.
type Entry struct {
	Group    string   `yaml:"group"`
	Variants []string `yaml:"variants"`
}

// Table is an ordered publisher classification table. Variant lists are kept
// disjoint across groups; should an overlap ever be introduced, the
// first-declared group wins. The table is read-only after construction.
type Table struct {
	entries []Entry
}

// DefaultTable returns the built-in classification table.
func DefaultTable() *Table {
	return &Table{entries: []Entry{
		{Group: Elsevier, Variants: []string{"elsevier", "cell press", "the lancet", "academic press"}},
		{Group: Wiley, Variants: []string{"wiley", "john wiley", "wiley-blackwell", "blackwell"}},
		{Group: SpringerNature, Variants: []string{"springer", "nature", "palgrave", "springer nature", "bmc"}},
		{Group: TaylorFrancis, Variants: []string{"taylor", "francis", "routledge", "crc press", "informa"}},
		{Group: PLOS, Variants: []string{"plos", "public library of science"}},
		{Group: Frontiers, Variants: []string{"frontiers"}},
		{Group: MDPI, Variants: []string{"mdpi"}},
		{Group: Oxford, Variants: []string{"oxford university press", "oup"}},
		{Group: Cambridge, Variants: []string{"cambridge university press", "cup"}},
		{Group: IEEE, Variants: []string{"ieee", "institute of electrical"}},
		{Group: ACM, Variants: []string{"acm", "association for computing machinery"}},
		{Group: ACS, Variants: []string{"american chemical society", "acs publications"}},
	}}
}

// LoadTable reads a classification table from a YAML file: a list of
// {group, variants} entries whose order sets match precedence.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading publisher table %s: %w", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing publisher table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("publisher table %s contains no entries", path)
	}

	seen := make(map[string]bool)
	for i, e := range entries {
		if e.Group == "" {
			return nil, fmt.Errorf("publisher table %s: entry %d has no group name", path, i)
		}
		if seen[e.Group] {
			return nil, fmt.Errorf("publisher table %s: duplicate group %q", path, e.Group)
		}
		seen[e.Group] = true
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("publisher table %s: group %q has no variants", path, e.Group)
		}
		for j, v := range e.Variants {
			entries[i].Variants[j] = strings.ToLower(v)
		}
	}

	return &Table{entries: entries}, nil
}

// Classify maps a raw publisher or host-organization name to its canonical
// group. Empty input (or the literal "Unknown" OpenAlex emits for sourceless
// works) classifies as Unknown; input matching no variant as Other.
func (t *Table) Classify(raw string) string {
	if raw == "" || raw == Unknown {
		return Unknown
	}

	lower := strings.ToLower(raw)
	for _, e := range t.entries {
		for _, v := range e.Variants {
			if strings.Contains(lower, v) {
				return e.Group
			}
		}
	}
	return Other
}

// Groups returns the canonical group names in declaration order.
func (t *Table) Groups() []string {
	groups := make([]string, len(t.entries))
	for i, e := range t.entries {
		groups[i] = e.Group
	}
	return groups
}
