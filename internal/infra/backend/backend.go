// Package backend holds the physical stores a site config document can live
// in. Every backend keeps exactly one document and overwrites it whole.
package backend

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Read when nothing has been stored yet.
var ErrNotFound = errors.New("site config not found")

type Backend interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc []byte) error
}

const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindRedis    = "redis"
	KindSQL      = "sql"
	KindSupabase = "supabase"
	KindHasura   = "hasura"
)

// NormalizeKind maps the accepted spellings of CONFIG_BACKEND onto a Kind*
// constant. Unknown values are returned trimmed and lowercased.
func NormalizeKind(s string) string {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case "", "mem", "memory":
		return KindMemory
	case "file", "json", "fs":
		return KindFile
	case "redis", "kv", "localstorage":
		return KindRedis
	case "sql", "postgres", "postgresql", "sqlite", "db":
		return KindSQL
	case "supabase", "postgrest":
		return KindSupabase
	case "hasura", "nhost", "graphql":
		return KindHasura
	default:
		return k
	}
}
