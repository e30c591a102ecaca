package redirects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
[[redirect]]
short = "std"
url = "https://doc.rust-lang.org/std"

[[redirect]]
short = "cook"
url = "https://doc.rust-lang.org/cargo/"
`)

	entries, err := ParseConfig(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "std", entries[0].Short)
	assert.Equal(t, "https://doc.rust-lang.org/std", entries[0].URL)
	assert.Equal(t, "cook", entries[1].Short)
	assert.Equal(t, "https://doc.rust-lang.org/cargo/", entries[1].URL)
}

func TestParseConfigMalformedTOML(t *testing.T) {
	entries, err := ParseConfig([]byte(`[[redirect]
short = "std"`))
	require.ErrorIs(t, err, ErrParse)
	require.Nil(t, entries)
}

func TestParseConfigValidation(t *testing.T) {
	testCases := []struct {
		name    string
		config  string
		wantErr error
	}{
		{
			name:    "missing scheme",
			config:  "[[redirect]]\nshort = \"std\"\nurl = \"doc.rust-lang.org/std\"\n",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "ftp scheme",
			config:  "[[redirect]]\nshort = \"std\"\nurl = \"ftp://doc.rust-lang.org/std\"\n",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "missing host",
			config:  "[[redirect]]\nshort = \"std\"\nurl = \"https://\"\n",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "empty short",
			config:  "[[redirect]]\nshort = \"\"\nurl = \"https://doc.rust-lang.org/std\"\n",
			wantErr: ErrEmptyField,
		},
		{
			name:    "empty url",
			config:  "[[redirect]]\nshort = \"std\"\nurl = \"\"\n",
			wantErr: ErrEmptyField,
		},
		{
			name:    "short with dot",
			config:  "[[redirect]]\nshort = \"std.lib\"\nurl = \"https://doc.rust-lang.org/std\"\n",
			wantErr: ErrInvalidShort,
		},
		{
			name:    "short with leading hyphen",
			config:  "[[redirect]]\nshort = \"-std\"\nurl = \"https://doc.rust-lang.org/std\"\n",
			wantErr: ErrInvalidShort,
		},
		{
			name:    "short with trailing hyphen",
			config:  "[[redirect]]\nshort = \"std-\"\nurl = \"https://doc.rust-lang.org/std\"\n",
			wantErr: ErrInvalidShort,
		},
		{
			name: "duplicate short",
			config: "[[redirect]]\nshort = \"std\"\nurl = \"https://doc.rust-lang.org/std\"\n" +
				"[[redirect]]\nshort = \"std\"\nurl = \"https://example.com\"\n",
			wantErr: ErrDuplicateKey,
		},
		{
			name: "duplicate short differing only in case",
			config: "[[redirect]]\nshort = \"std\"\nurl = \"https://doc.rust-lang.org/std\"\n" +
				"[[redirect]]\nshort = \"STD\"\nurl = \"https://example.com\"\n",
			wantErr: ErrDuplicateKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := ParseConfig([]byte(tc.config))
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, entries, "no entries may be produced from an invalid config")
		})
	}
}

func TestValidShort(t *testing.T) {
	valid := []string{"std", "ex", "rust-by-example", "a", "x86", "STD"}
	for _, s := range valid {
		assert.True(t, validShort(s), "expected %q to be a valid label", s)
	}

	invalid := []string{"", "-std", "std-", "st d", "st.d", "st_d", "stöd"}
	for _, s := range invalid {
		assert.False(t, validShort(s), "expected %q to be an invalid label", s)
	}
}
