package siteconfig

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotObject = errors.New("site config must be a JSON object")

// DefaultDocument returns Default() as a generic JSON document.
func DefaultDocument() map[string]any {
	doc, err := toDocument(Default())
	if err != nil {
		// Default() is a plain struct literal; marshalling it cannot fail.
		panic(fmt.Sprintf("siteconfig: encode defaults: %v", err))
	}
	return doc
}

// ParseDocument parses raw JSON into a generic object and migrates it to the
// current version. A JSON null is treated as an empty document.
func ParseDocument(raw []byte) (map[string]any, []string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, nil, fmt.Errorf("parse site config: %w", err)
	}
	if v == nil {
		v = map[string]any{}
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, nil, ErrNotObject
	}
	changes, err := Migrate(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, changes, nil
}

// Decode turns a stored document into a complete SiteConfig: parse, migrate,
// fill from defaults, normalize.
func Decode(raw []byte) (SiteConfig, []string, error) {
	doc, changes, err := ParseDocument(raw)
	if err != nil {
		return SiteConfig{}, nil, err
	}
	cfg, err := FromDocument(Fill(doc, DefaultDocument()))
	if err != nil {
		return SiteConfig{}, nil, err
	}
	return cfg, changes, nil
}

// FromDocument converts a generic document into the typed value.
func FromDocument(doc map[string]any) (SiteConfig, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("encode site config: %w", err)
	}
	var cfg SiteConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode site config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Encode serializes a complete config for storage, stamped with the current
// version.
func Encode(cfg SiteConfig) ([]byte, error) {
	cfg.Version = CurrentVersion
	cfg.Normalize()
	return json.MarshalIndent(cfg, "", "  ")
}

// EncodeDocument serializes a generic document for storage.
func EncodeDocument(doc map[string]any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func toDocument(cfg SiteConfig) (map[string]any, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
