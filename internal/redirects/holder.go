package redirects

import "sync/atomic"

// Holder is the single publish point for the redirect table. Reloads store
// a fully built table; request handlers load whatever table is current.
// A nil table means no load has succeeded yet.
type Holder struct {
	value atomic.Pointer[Table]
}

// NewHolder returns an empty holder. Get returns nil until the first Set.
func NewHolder() *Holder {
	return &Holder{}
}

// Get returns the currently published table, or nil before the first load.
func (h *Holder) Get() *Table {
	return h.value.Load()
}

// Set publishes a new table. In-flight readers finish against the table
// they already loaded.
func (h *Holder) Set(t *Table) {
	h.value.Store(t)
}
