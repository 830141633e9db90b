// Package configstore resolves the single site config document from the
// configured backend and writes it back.
package configstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"storefront-cms/internal/domain/siteconfig"
	"storefront-cms/internal/infra/backend"
	"storefront-cms/internal/metrics"
)

// ErrInvalidDocument wraps every rejection of a client supplied document.
var ErrInvalidDocument = errors.New("invalid site config document")

type Store struct {
	backend backend.Backend
	logger  zerolog.Logger
}

func New(b backend.Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: b,
		logger:  logger.With().Str("component", "configstore").Str("backend", b.Name()).Logger(),
	}
}

// Backend reports the name of the backend in use.
func (s *Store) Backend() string { return s.backend.Name() }

// Fetch reads and decodes the stored document. A backend with nothing stored
// yields the defaults and no error; every other failure is returned.
func (s *Store) Fetch(ctx context.Context) (siteconfig.SiteConfig, error) {
	name := s.backend.Name()

	raw, err := s.backend.Read(ctx)
	if errors.Is(err, backend.ErrNotFound) {
		metrics.ConfigLoadsTotal.WithLabelValues(name, metrics.ResultMissing).Inc()
		return siteconfig.Default(), nil
	}
	if err != nil {
		metrics.ConfigLoadsTotal.WithLabelValues(name, metrics.ResultError).Inc()
		return siteconfig.SiteConfig{}, fmt.Errorf("read site config: %w", err)
	}

	cfg, changes, err := siteconfig.Decode(raw)
	if err != nil {
		metrics.ConfigLoadsTotal.WithLabelValues(name, metrics.ResultError).Inc()
		return siteconfig.SiteConfig{}, err
	}
	if len(changes) > 0 {
		metrics.ConfigMigrationsTotal.WithLabelValues(name).Inc()
		s.logger.Info().Strs("changes", changes).Msg("migrated stored site config")
	}

	metrics.ConfigLoadsTotal.WithLabelValues(name, metrics.ResultOK).Inc()
	return cfg, nil
}

// Load never fails: any read or decode error is logged and the defaults are
// returned instead.
func (s *Store) Load(ctx context.Context) siteconfig.SiteConfig {
	cfg, err := s.Fetch(ctx)
	if err != nil {
		metrics.ConfigLoadsTotal.WithLabelValues(s.backend.Name(), metrics.ResultFallback).Inc()
		s.logger.Error().Err(err).Msg("site config unavailable, serving defaults")
		return siteconfig.Default()
	}
	return cfg
}

// Save overwrites the stored document with cfg.
func (s *Store) Save(ctx context.Context, cfg siteconfig.SiteConfig) error {
	raw, err := siteconfig.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}
	return s.write(ctx, raw)
}

// SaveDocument stores a raw JSON object as sent by a client. The document may
// be partial; missing fields are filled from the defaults when it is read.
func (s *Store) SaveDocument(ctx context.Context, raw []byte) error {
	doc, changes, err := siteconfig.ParseDocument(raw)
	if err != nil {
		metrics.ConfigSavesTotal.WithLabelValues(s.backend.Name(), metrics.ResultRejected).Inc()
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if len(changes) > 0 {
		metrics.ConfigMigrationsTotal.WithLabelValues(s.backend.Name()).Inc()
		s.logger.Info().Strs("changes", changes).Msg("migrated incoming site config")
	}

	out, err := siteconfig.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}
	return s.write(ctx, out)
}

// Reset overwrites the stored document with the defaults and returns them.
func (s *Store) Reset(ctx context.Context) (siteconfig.SiteConfig, error) {
	cfg := siteconfig.Default()
	if err := s.Save(ctx, cfg); err != nil {
		return siteconfig.SiteConfig{}, err
	}
	s.logger.Warn().Msg("site config reset to defaults")
	return siteconfig.Default(), nil
}

func (s *Store) write(ctx context.Context, raw []byte) error {
	name := s.backend.Name()
	if err := s.backend.Write(ctx, raw); err != nil {
		metrics.ConfigSavesTotal.WithLabelValues(name, metrics.ResultError).Inc()
		s.logger.Error().Err(err).Msg("site config write failed")
		return fmt.Errorf("write site config: %w", err)
	}
	metrics.ConfigSavesTotal.WithLabelValues(name, metrics.ResultOK).Inc()
	s.logger.Debug().Int("bytes", len(raw)).Msg("site config saved")
	return nil
}
