// Package services contains the implementation of RedirectServ.
package services

import (
	"context"
	"errors"
	"sort"

	"rustref/internal/redirects"
	"rustref/internal/source"

	"go.uber.org/zap"
)

// ErrNotFound - error for a short label with no redirect rule.
var ErrNotFound = errors.New("short label not found")

// ErrNotLoaded - error when no configuration has ever loaded successfully.
var ErrNotLoaded = errors.New("redirect table not loaded")

// RedirectService - interface for resolving shorts and reloading the table.
type RedirectService interface {
	// Reload re-reads the configuration source and, on success, publishes
	// a new redirect table. On failure the previous table keeps serving.
	Reload(ctx context.Context) error
	// Resolve returns the destination URL for a short label.
	Resolve(short string) (string, error)
	// Entries returns every redirect rule sorted by short label.
	Entries() ([]redirects.Entry, error)
	// Loaded reports whether a configuration has ever loaded successfully.
	Loaded() bool
}

type RedirectServ struct {
	src    source.ConfigSource
	holder *redirects.Holder
	sugar  *zap.SugaredLogger
}

func NewRedirectService(src source.ConfigSource, sugar *zap.SugaredLogger) RedirectService {
	return &RedirectServ{
		src:    src,
		holder: redirects.NewHolder(),
		sugar:  sugar,
	}
}

func (s *RedirectServ) Reload(ctx context.Context) error {
	entries, err := s.src.Load(ctx)
	if err != nil {
		s.sugar.Errorw("redirect reload failed, keeping current table", "error", err)
		return err
	}

	table, err := redirects.BuildTable(entries)
	if err != nil {
		s.sugar.Errorw("redirect table build failed, keeping current table", "error", err)
		return err
	}

	s.holder.Set(table)
	s.sugar.Infow("redirect table published", "rules", table.Len())
	return nil
}

func (s *RedirectServ) Resolve(short string) (string, error) {
	table := s.holder.Get()
	if table == nil {
		return "", ErrNotLoaded
	}

	url, ok := table.Lookup(short)
	if !ok {
		return "", ErrNotFound
	}
	return url, nil
}

func (s *RedirectServ) Entries() ([]redirects.Entry, error) {
	table := s.holder.Get()
	if table == nil {
		return nil, ErrNotLoaded
	}

	entries := table.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Short < entries[j].Short
	})
	return entries, nil
}

func (s *RedirectServ) Loaded() bool {
	return s.holder.Get() != nil
}
