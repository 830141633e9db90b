package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FlatLegacyShape(t *testing.T) {
	doc := map[string]any{
		"shopName":    "Old Shop",
		"logo":        "🍀",
		"colors":      map[string]any{"primary": "#ff0000"},
		"orderLink":   "https://t.me/old",
		"email":       "old@shop.fr",
		"socialMedia": []any{map[string]any{"id": float64(1), "name": "Telegram"}},
		"contactInfo": map[string]any{"email": "new@shop.fr"},
	}

	changes, err := Migrate(doc)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, doc["version"])
	assert.NotContains(t, doc, "shopName")
	assert.NotContains(t, doc, "socialMedia")

	shop := doc["shopInfo"].(map[string]any)
	assert.Equal(t, "Old Shop", shop["name"])
	assert.Equal(t, "🍀", shop["logo"])
	assert.Equal(t, map[string]any{"primary": "#ff0000"}, shop["theme"])

	contact := doc["contactInfo"].(map[string]any)
	assert.Equal(t, "https://t.me/old", contact["orderLink"])
	assert.Equal(t, "new@shop.fr", contact["email"], "value already at the new location wins")

	assert.Len(t, doc["socialMediaLinks"], 1)
	assert.Contains(t, changes, "moved shopName to shopInfo.name")
	assert.Contains(t, changes, "dropped legacy email, contactInfo.email already set")
	assert.Contains(t, changes, "set version 1 -> 2")
}

func TestMigrate_CurrentVersionIsNoop(t *testing.T) {
	doc := map[string]any{"version": float64(CurrentVersion), "logo": "stays"}
	changes, err := Migrate(doc)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, "stays", doc["logo"])
}

func TestDecode_LegacyDocumentIsFilled(t *testing.T) {
	cfg, changes, err := Decode([]byte(`{"shopName":"Old Shop","colors":{"primary":"#123456"}}`))
	require.NoError(t, err)
	assert.NotEmpty(t, changes)

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "Old Shop", cfg.ShopInfo.Name)
	assert.Equal(t, "#123456", cfg.ShopInfo.Theme.Primary)
	assert.Equal(t, Default().ShopInfo.Theme.Secondary, cfg.ShopInfo.Theme.Secondary)
}

func TestVersionOf(t *testing.T) {
	cases := []struct {
		doc     map[string]any
		want    int
		wantErr bool
	}{
		{map[string]any{}, 1, false},
		{map[string]any{"version": nil}, 1, false},
		{map[string]any{"version": float64(0)}, 1, false},
		{map[string]any{"version": float64(2)}, 2, false},
		{map[string]any{"version": 1.5}, 0, true},
		{map[string]any{"version": "2"}, 0, true},
		{map[string]any{"version": float64(-1)}, 0, true},
		{map[string]any{"version": -1}, 0, true},
		{map[string]any{"version": 0}, 1, false},
		{map[string]any{"version": 2}, 2, false},
	}
	for _, tc := range cases {
		got, err := VersionOf(tc.doc)
		if tc.wantErr {
			assert.Error(t, err, tc.doc)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.doc)
	}
}
