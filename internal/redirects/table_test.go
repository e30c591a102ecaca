package redirects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableLookup(t *testing.T) {
	entries := []Entry{
		{Short: "std", URL: "https://doc.rust-lang.org/std"},
		{Short: "Ex", URL: "https://doc.rust-lang.org/stable/rust-by-example"},
	}

	table, err := BuildTable(entries)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	testCases := []struct {
		short   string
		wantURL string
		wantOK  bool
	}{
		{short: "std", wantURL: "https://doc.rust-lang.org/std", wantOK: true},
		{short: "STD", wantURL: "https://doc.rust-lang.org/std", wantOK: true},
		{short: "ex", wantURL: "https://doc.rust-lang.org/stable/rust-by-example", wantOK: true},
		{short: "eX", wantURL: "https://doc.rust-lang.org/stable/rust-by-example", wantOK: true},
		{short: "unknown", wantURL: "", wantOK: false},
		{short: "", wantURL: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.short, func(t *testing.T) {
			url, ok := table.Lookup(tc.short)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantURL, url)
		})
	}
}

func TestBuildTableDuplicate(t *testing.T) {
	entries := []Entry{
		{Short: "std", URL: "https://doc.rust-lang.org/std"},
		{Short: "STD", URL: "https://example.com"},
	}

	table, err := BuildTable(entries)
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Nil(t, table)
}

func TestParseBuildLookupRoundTrip(t *testing.T) {
	data := []byte(`
[[redirect]]
short = "std"
url = "https://doc.rust-lang.org/std"

[[redirect]]
short = "nom"
url = "https://doc.rust-lang.org/nomicon/"
`)

	entries, err := ParseConfig(data)
	require.NoError(t, err)

	table, err := BuildTable(entries)
	require.NoError(t, err)

	for _, e := range entries {
		url, ok := table.Lookup(e.Short)
		require.True(t, ok)
		require.Equal(t, e.URL, url)
	}
}
