// Package catalog applies admin edits to the lists held in the site config.
// Every mutation goes through Editor so that reference checks and
// default-page protection are enforced in one place.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"storefront-cms/internal/domain/history"
	"storefront-cms/internal/domain/siteconfig"
	"storefront-cms/internal/metrics"
)

const (
	KindProducts    = "products"
	KindCategories  = "categories"
	KindFarms       = "farms"
	KindSocialMedia = "social-media"
	KindPages       = "pages"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ConfigSource is the part of the config store the editor needs.
type ConfigSource interface {
	Fetch(ctx context.Context) (siteconfig.SiteConfig, error)
	Save(ctx context.Context, cfg siteconfig.SiteConfig) error
	SaveDocument(ctx context.Context, raw []byte) error
	Reset(ctx context.Context) (siteconfig.SiteConfig, error)
}

type Editor struct {
	source   ConfigSource
	history  *history.Log
	validate *validator.Validate
	logger   zerolog.Logger

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func NewEditor(source ConfigSource, log *history.Log, logger zerolog.Logger) *Editor {
	if log == nil {
		log = history.New(history.DefaultCapacity)
	}
	return &Editor{
		source:   source,
		history:  log,
		validate: newValidator(),
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// Kinds lists the entity kinds the editor manages.
func Kinds() []string {
	return []string{KindProducts, KindCategories, KindFarms, KindSocialMedia, KindPages}
}

// EntityKey is the request body field carrying an entity of the given kind.
func EntityKey(kind string) (string, bool) {
	switch kind {
	case KindProducts:
		return "product", true
	case KindCategories:
		return "category", true
	case KindFarms:
		return "farm", true
	case KindSocialMedia:
		return "socialMedia", true
	case KindPages:
		return "page", true
	}
	return "", false
}

// History returns the latest admin actions, newest first.
func (e *Editor) History(limit int) []history.Entry {
	return e.history.Recent(limit)
}

// List returns the current list for kind.
func (e *Editor) List(ctx context.Context, kind string) (any, error) {
	if _, ok := EntityKey(kind); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	cfg, err := e.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindProducts:
		return cfg.Products, nil
	case KindCategories:
		return cfg.Categories, nil
	case KindFarms:
		return cfg.Farms, nil
	case KindSocialMedia:
		return cfg.SocialMediaLinks, nil
	default:
		return cfg.Pages, nil
	}
}

type change struct {
	id   int
	name string
}

// mutate runs one read-modify-write cycle. fn edits cfg in place; nothing is
// written when it fails.
func (e *Editor) mutate(ctx context.Context, kind, action string, fn func(cfg *siteconfig.SiteConfig) (change, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.source.Fetch(ctx)
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(kind, action, metrics.ResultError).Inc()
		return fmt.Errorf("load site config: %w", err)
	}

	ch, err := fn(&cfg)
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(kind, action, metrics.ResultRejected).Inc()
		return err
	}

	if err := e.source.Save(ctx, cfg); err != nil {
		metrics.AdminActionsTotal.WithLabelValues(kind, action, metrics.ResultError).Inc()
		return fmt.Errorf("save site config: %w", err)
	}
	metrics.AdminActionsTotal.WithLabelValues(kind, action, metrics.ResultOK).Inc()
	e.record(ctx, kind, action, ch)
	return nil
}

// ReplaceDocument overwrites the whole stored document with raw. The
// document, once filled from the defaults, must not leave products pointing
// at a category or farm it drops.
func (e *Editor) ReplaceDocument(ctx context.Context, raw []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// undecodable documents are rejected by the source with its own error
	if incoming, _, err := siteconfig.Decode(raw); err == nil {
		if err := danglingReference(incoming); err != nil {
			metrics.AdminActionsTotal.WithLabelValues("config", "replace", metrics.ResultRejected).Inc()
			return err
		}
	}

	if err := e.source.SaveDocument(ctx, raw); err != nil {
		return err
	}
	e.record(ctx, "config", "replace", change{})
	return nil
}

// Reset restores the seed document. It is the only recovery path for a
// broken or emptied config.
func (e *Editor) Reset(ctx context.Context) (siteconfig.SiteConfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.source.Reset(ctx)
	if err != nil {
		return siteconfig.SiteConfig{}, err
	}
	e.record(ctx, "config", "reset", change{})
	return cfg, nil
}

func (e *Editor) record(ctx context.Context, kind, action string, ch change) {
	actor := ActorFromContext(ctx)
	e.history.Add(history.Entry{
		Kind:     kind,
		Action:   action,
		EntityID: ch.id,
		Name:     ch.name,
		Actor:    actor,
	})
	e.logger.Info().
		Str("kind", kind).
		Str("action", action).
		Int("id", ch.id).
		Str("name", ch.name).
		Str("actor", actor).
		Msg("site config updated")
}

type actorKey struct{}

// ContextWithActor tags ctx with the admin performing the request.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
