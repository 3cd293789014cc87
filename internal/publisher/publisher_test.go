// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publisher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty input", "", Unknown},
		{"literal unknown", "Unknown", Unknown},
		{"exact variant", "Elsevier BV", Elsevier},
		{"case insensitive", "ELSEVIER", Elsevier},
		{"substring inside longer name", "The Lancet Publishing Group", Elsevier},
		{"wiley blackwell", "Wiley-Blackwell", Wiley},
		{"bare blackwell", "Blackwell Publishing Ltd", Wiley},
		{"springer", "Springer Science and Business Media LLC", SpringerNature},
		{"nature", "Nature Portfolio", SpringerNature},
		{"bmc", "BMC", SpringerNature},
		{"routledge", "Routledge", TaylorFrancis},
		{"informa", "Informa UK Limited", TaylorFrancis},
		{"plos long form", "Public Library of Science (PLoS)", PLOS},
		{"frontiers", "Frontiers Media SA", Frontiers},
		{"mdpi", "MDPI AG", MDPI},
		{"oup", "Oxford University Press (OUP)", Oxford},
		{"cup", "Cambridge University Press (CUP)", Cambridge},
		{"ieee", "Institute of Electrical and Electronics Engineers (IEEE)", IEEE},
		{"acm", "Association for Computing Machinery (ACM)", ACM},
		{"acs", "American Chemical Society (ACS)", ACS},
		{"no match", "University of Chicago Press", Other},
		{"unmatched society", "Royal Society of Chemistry", Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Classify(tt.raw)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// First-declared group wins when two groups could both match, so a table
// with an overlapping variant stays deterministic.
func TestClassifyFirstDeclaredWins(t *testing.T) {
	table := &Table{entries: []Entry{
		{Group: "A", Variants: []string{"press"}},
		{Group: "B", Variants: []string{"university press"}},
	}}
	assert.Equal(t, "A", table.Classify("Some University Press"))
}

func TestGroups(t *testing.T) {
	got := DefaultTable().Groups()
	want := []string{
		Elsevier, Wiley, SpringerNature, TaylorFrancis, PLOS, Frontiers,
		MDPI, Oxford, Cambridge, IEEE, ACM, ACS,
	}
	assert.Equal(t, want, got)
}

func TestLoadTable(t *testing.T) {
	writeTable := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "publishers.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid table", func(t *testing.T) {
		path := writeTable(t, `
- group: Elsevier
  variants: [elsevier, "CELL PRESS"]
- group: Indie
  variants: [smallpub]
`)
		table, err := LoadTable(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"Elsevier", "Indie"}, table.Groups())
		assert.Equal(t, "Elsevier", table.Classify("Cell Press"))
		assert.Equal(t, "Indie", table.Classify("SmallPub Ltd"))
		assert.Equal(t, Other, table.Classify("Wiley"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := LoadTable(writeTable(t, "[]\n"))
		assert.ErrorContains(t, err, "no entries")
	})

	t.Run("duplicate group", func(t *testing.T) {
		_, err := LoadTable(writeTable(t, `
- group: Elsevier
  variants: [elsevier]
- group: Elsevier
  variants: [lancet]
`))
		assert.ErrorContains(t, err, "duplicate group")
	})

	t.Run("group without variants", func(t *testing.T) {
		_, err := LoadTable(writeTable(t, `
- group: Elsevier
  variants: []
`))
		assert.ErrorContains(t, err, "no variants")
	})
}
