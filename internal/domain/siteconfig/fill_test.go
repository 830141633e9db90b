package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyDocumentIsDefault(t *testing.T) {
	for _, raw := range []string{`{}`, `null`} {
		cfg, _, err := Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, Default(), cfg, raw)
	}
}

func TestDecode_CompleteDocumentRoundTrips(t *testing.T) {
	want := Default()
	want.ShopInfo.Name = "Green Corner"
	want.Categories = append(want.Categories, Category{ID: 6, Name: "Huiles", Emoji: "💧"})
	want.Products[0].Images = []string{"https://cdn.example/a.jpg"}

	raw, err := Encode(want)
	require.NoError(t, err)

	got, changes, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, want, got)
}

func TestDecode_PartialShopInfoFallsBackPerField(t *testing.T) {
	cfg, _, err := Decode([]byte(`{"version":2,"shopInfo":{"name":"X"}}`))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "X", cfg.ShopInfo.Name)
	assert.Equal(t, def.ShopInfo.Description, cfg.ShopInfo.Description)
	assert.Equal(t, def.ShopInfo.Theme, cfg.ShopInfo.Theme)
	assert.Equal(t, def.Categories, cfg.Categories)
}

func TestDecode_EmptyListIsKept(t *testing.T) {
	cfg, _, err := Decode([]byte(`{"version":2,"categories":[],"products":null}`))
	require.NoError(t, err)

	assert.Empty(t, cfg.Categories)
	assert.NotNil(t, cfg.Categories)
	assert.Equal(t, Default().Products, cfg.Products)
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := Decode([]byte(`{"shopInfo":`))
	assert.Error(t, err)

	_, _, err = Decode([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, _, err = Decode([]byte(`{"version":99}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFill_Modes(t *testing.T) {
	defaults := map[string]any{
		"shopInfo": map[string]any{
			"name":  "Default",
			"theme": map[string]any{"primary": "#000", "text": "#fff"},
		},
		"categories":    []any{map[string]any{"id": float64(1)}},
		"adminSettings": map[string]any{"title": "Admin", "save": "Save"},
	}
	stored := map[string]any{
		"shopInfo": map[string]any{
			"theme": map[string]any{"primary": "#111"},
			"extra": "kept",
		},
		"categories":    []any{},
		"adminSettings": "not an object",
		"unknown":       true,
	}

	got := Fill(stored, defaults)

	shop := got["shopInfo"].(map[string]any)
	assert.Equal(t, "Default", shop["name"])
	assert.Equal(t, "kept", shop["extra"])
	assert.Equal(t, map[string]any{"primary": "#111", "text": "#fff"}, shop["theme"])
	assert.Equal(t, []any{}, got["categories"])
	assert.Equal(t, defaults["adminSettings"], got["adminSettings"])
	assert.Equal(t, true, got["unknown"])

	custom := Fill(map[string]any{"adminSettings": map[string]any{"title": "Custom"}}, defaults)
	assert.Equal(t, map[string]any{"title": "Custom"}, custom["adminSettings"])

	// inputs untouched
	assert.NotContains(t, stored["shopInfo"].(map[string]any), "name")
	got["adminSettings"].(map[string]any)["title"] = "changed"
	assert.Equal(t, "Admin", defaults["adminSettings"].(map[string]any)["title"])
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, MergeDeep, ModeFor("shopInfo", nil))
	assert.Equal(t, MergeReplace, ModeFor("products", []any{}))
	assert.Equal(t, MergeDeep, ModeFor("contactInfo", map[string]any{}))
	assert.Equal(t, MergeReplace, ModeFor("adminSettings", map[string]any{}))
	assert.Equal(t, MergeReplace, ModeFor("pageContent", map[string]any{}))
	assert.Equal(t, MergeReplace, ModeFor("shopInfo.name", "x"))
	assert.Equal(t, "deep", MergeDeep.String())
}
