// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRoster = `sample_id,authfull,field,field_type,sample_stratum,institution,scopus_pubs,scopus_citations,scopus_h_index
1,"Doe, Jane",History,book_heavy,top_quartile,Example University,120,3400,28
2,"Smith, John",Oncology,journal_heavy,bottom_quartile,,412,19000,61
`

func TestParse(t *testing.T) {
	researchers, err := Parse(strings.NewReader(validRoster), "test")
	require.NoError(t, err)
	require.Len(t, researchers, 2)

	first := researchers[0]
	assert.Equal(t, 1, first.SampleID)
	assert.Equal(t, "Doe, Jane", first.Name)
	assert.Equal(t, "History", first.Field)
	assert.Equal(t, "book_heavy", first.FieldGroup)
	assert.Equal(t, "top_quartile", first.Stratum)
	assert.Equal(t, "Example University", first.Institution)
	assert.Equal(t, 120, first.ScopusPubs)
	assert.Equal(t, 3400, first.ScopusCitations)
	assert.Equal(t, 28, first.ScopusHIndex)

	assert.Equal(t, "", researchers[1].Institution)
}

func TestParse_FieldColumnAlias(t *testing.T) {
	roster := `sample_id,authfull,sm-subfield-1,field_type,sample_stratum,scopus_pubs,scopus_citations,scopus_h_index
7,"Doe, Jane",Philosophy,book_heavy,anomaly,55,900,15
`
	researchers, err := Parse(strings.NewReader(roster), "test")
	require.NoError(t, err)
	assert.Equal(t, "Philosophy", researchers[0].Field)
}

func TestParse_ColumnOrderIsFree(t *testing.T) {
	roster := `authfull,scopus_h_index,sample_id,field,scopus_citations,field_type,sample_stratum,scopus_pubs
"Doe, Jane",28,1,History,3400,book_heavy,top_quartile,120
`
	researchers, err := Parse(strings.NewReader(roster), "test")
	require.NoError(t, err)
	assert.Equal(t, 120, researchers[0].ScopusPubs)
	assert.Equal(t, 28, researchers[0].ScopusHIndex)
}

func TestParse_SpreadsheetFloats(t *testing.T) {
	roster := `sample_id,authfull,field,field_type,sample_stratum,scopus_pubs,scopus_citations,scopus_h_index
1,"Doe, Jane",History,mixed,anomaly,120.0,3400.0,28.0
`
	researchers, err := Parse(strings.NewReader(roster), "test")
	require.NoError(t, err)
	assert.Equal(t, 120, researchers[0].ScopusPubs)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		roster string
		errMsg string
	}{
		{
			name:   "missing column",
			roster: "sample_id,authfull,field\n1,\"Doe, Jane\",History\n",
			errMsg: "missing required column",
		},
		{
			name: "bad numeric cell",
			roster: `sample_id,authfull,field,field_type,sample_stratum,scopus_pubs,scopus_citations,scopus_h_index
1,"Doe, Jane",History,mixed,anomaly,many,3400,28
`,
			errMsg: "not a number",
		},
		{
			name: "empty name",
			roster: `sample_id,authfull,field,field_type,sample_stratum,scopus_pubs,scopus_citations,scopus_h_index
1,,History,mixed,anomaly,120,3400,28
`,
			errMsg: "empty authfull",
		},
		{
			name:   "no rows",
			roster: "sample_id,authfull,field,field_type,sample_stratum,scopus_pubs,scopus_citations,scopus_h_index\n",
			errMsg: "no rows",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.roster), "test")
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(validRoster), 0o644))

	researchers, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, researchers, 2)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
