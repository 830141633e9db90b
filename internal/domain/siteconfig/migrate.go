package siteconfig

import (
	"errors"
	"fmt"
)

var ErrUnsupportedVersion = errors.New("unsupported site config version")

// legacyMoves maps keys of the flat, unversioned document shape to their
// place in the current schema. An empty section means top level.
var legacyMoves = []struct {
	from    string
	section string
	to      string
}{
	{"shopName", "shopInfo", "name"},
	{"shopDescription", "shopInfo", "description"},
	{"logo", "shopInfo", "logo"},
	{"backgroundImage", "shopInfo", "backgroundImage"},
	{"colors", "shopInfo", "theme"},
	{"orderLink", "contactInfo", "orderLink"},
	{"orderButtonText", "contactInfo", "orderButtonText"},
	{"email", "contactInfo", "email"},
	{"phone", "contactInfo", "phone"},
	{"socialMedia", "", "socialMediaLinks"},
}

// VersionOf reads the schema version of a raw document. Documents without a
// version field are version 1.
func VersionOf(doc map[string]any) (int, error) {
	raw, ok := doc["version"]
	if !ok || raw == nil {
		return 1, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) || v < 0 {
			return 0, fmt.Errorf("invalid version %v", v)
		}
		if v == 0 {
			return 1, nil
		}
		return int(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid version %v", v)
		}
		if v == 0 {
			return 1, nil
		}
		return v, nil
	default:
		return 0, fmt.Errorf("invalid version %v", raw)
	}
}

// Migrate rewrites doc in place to CurrentVersion and returns a description
// of every change it made.
func Migrate(doc map[string]any) ([]string, error) {
	version, err := VersionOf(doc)
	if err != nil {
		return nil, err
	}
	if version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (newest known is %d)", ErrUnsupportedVersion, version, CurrentVersion)
	}

	var changes []string
	if version < 2 {
		changes = append(changes, migrateFlatShape(doc)...)
	}
	if version != CurrentVersion {
		changes = append(changes, fmt.Sprintf("set version %d -> %d", version, CurrentVersion))
	}
	doc["version"] = CurrentVersion
	return changes, nil
}

func migrateFlatShape(doc map[string]any) []string {
	var changes []string
	for _, m := range legacyMoves {
		v, ok := doc[m.from]
		if !ok {
			continue
		}
		delete(doc, m.from)
		if v == nil {
			continue
		}

		target := doc
		dest := m.to
		if m.section != "" {
			obj, ok := doc[m.section].(map[string]any)
			if !ok {
				obj = map[string]any{}
				doc[m.section] = obj
			}
			target = obj
			dest = m.section + "." + m.to
		}

		if existing, taken := target[m.to]; taken && existing != nil {
			changes = append(changes, fmt.Sprintf("dropped legacy %s, %s already set", m.from, dest))
			continue
		}
		target[m.to] = v
		changes = append(changes, fmt.Sprintf("moved %s to %s", m.from, dest))
	}
	return changes
}
