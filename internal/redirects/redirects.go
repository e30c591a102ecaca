// Package redirects contains the redirect table core: parsing the
// redirects.toml configuration, validating entries and building the
// immutable lookup table that request handlers read from.
package redirects

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// Entry - a single redirect rule mapping a subdomain label to a destination URL.
type Entry struct {
	// Short: the subdomain label a user types (e.g. "std" in std.rustref.com).
	Short string `toml:"short" json:"short"`
	// URL: the absolute destination URL for the label.
	URL string `toml:"url" json:"url"`
}

// tomlConfig mirrors the [[redirect]] array-of-tables layout of redirects.toml.
type tomlConfig struct {
	Redirect []Entry `toml:"redirect"`
}

// ErrParse - error for a config document that is not well-formed.
var ErrParse = errors.New("parse redirects config")

// ErrEmptyField - error for an entry with an empty short or url field.
var ErrEmptyField = errors.New("empty field in redirect entry")

// ErrInvalidShort - error for a short that is not a valid DNS label.
var ErrInvalidShort = errors.New("invalid short label")

// ErrInvalidURL - error for a destination URL without an http(s) scheme.
var ErrInvalidURL = errors.New("invalid destination URL")

// ErrDuplicateKey - error for two entries sharing the same short label.
var ErrDuplicateKey = errors.New("duplicate short label")

// ParseConfig parses raw redirects.toml text into an ordered list of entries.
// It fails closed: any malformed or duplicate entry invalidates the whole
// document and no entries are returned.
func ParseConfig(data []byte) ([]Entry, error) {
	var cfg tomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := ValidateEntries(cfg.Redirect); err != nil {
		return nil, err
	}

	return cfg.Redirect, nil
}

// ValidateEntries checks a list of entries against the rules every config
// source must satisfy: non-empty fields, shorts that are valid DNS labels,
// absolute http(s) destination URLs and no case-insensitive duplicates.
func ValidateEntries(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		if e.Short == "" || e.URL == "" {
			return fmt.Errorf("%w: short=%q url=%q", ErrEmptyField, e.Short, e.URL)
		}
		if !validShort(e.Short) {
			return fmt.Errorf("%w: %q", ErrInvalidShort, e.Short)
		}
		if err := checkURL(e.URL); err != nil {
			return err
		}

		key := strings.ToLower(e.Short)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, e.Short)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// maxLabelLen - maximum length of a DNS label per RFC 1035.
const maxLabelLen = 63

// validShort reports whether s is usable as a DNS label: letters, digits
// and hyphens only, not starting or ending with a hyphen.
func validShort(s string) bool {
	if len(s) == 0 || len(s) > maxLabelLen {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

// checkURL verifies that rawURL is an absolute http or https URL.
func checkURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: missing http(s) scheme", ErrInvalidURL, rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", ErrInvalidURL, rawURL)
	}
	return nil
}
