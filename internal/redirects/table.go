package redirects

import (
	"fmt"
	"strings"
)

// Table - immutable mapping from lowercase short label to destination URL.
// A Table is never mutated after BuildTable returns; handlers may read it
// concurrently without synchronization.
type Table struct {
	urls map[string]string
}

// BuildTable constructs a lookup table from validated entries. Duplicate
// shorts are rejected here again, independently of the loader's own check,
// because the table is what the lookup contract relies on.
func BuildTable(entries []Entry) (*Table, error) {
	urls := make(map[string]string, len(entries))

	for _, e := range entries {
		key := strings.ToLower(e.Short)
		if _, dup := urls[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Short)
		}
		urls[key] = e.URL
	}

	return &Table{urls: urls}, nil
}

// Lookup returns the destination URL for a short label. Matching is
// case-insensitive.
func (t *Table) Lookup(short string) (string, bool) {
	url, ok := t.urls[strings.ToLower(short)]
	return url, ok
}

// Len returns the number of redirect rules in the table.
func (t *Table) Len() int {
	return len(t.urls)
}

// Entries returns a copy of the table's rules in unspecified order.
// Shorts come back in the lowercase form they are stored under.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.urls))
	for short, url := range t.urls {
		entries = append(entries, Entry{Short: short, URL: url})
	}
	return entries
}
