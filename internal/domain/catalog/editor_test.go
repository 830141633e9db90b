package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-cms/internal/configstore"
	"storefront-cms/internal/domain/history"
	"storefront-cms/internal/domain/siteconfig"
	"storefront-cms/internal/infra/backend"
)

func newEditor(t *testing.T) (*Editor, *configstore.Store) {
	t.Helper()
	store := configstore.New(backend.NewMemory(), zerolog.Nop())
	return NewEditor(store, history.New(50), zerolog.Nop()), store
}

func TestCreateCategory_EndToEnd(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	require.Equal(t, siteconfig.Default(), store.Load(ctx))

	created, err := ed.CreateCategory(ctx, siteconfig.Category{ID: 99, Name: "Huiles", Emoji: "💧", Description: "Huiles CBD"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)

	// fresh session over the same backend
	got := store.Load(ctx)
	want := siteconfig.Default()
	want.Categories = append(want.Categories, siteconfig.Category{ID: 6, Name: "Huiles", Emoji: "💧", Description: "Huiles CBD"})
	assert.Equal(t, want, got)
}

func TestDeleteCategory_InUse(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	cat, ok := siteconfig.Default().CategoryByName("Fleurs")
	require.True(t, ok)

	_, err := ed.DeleteCategory(ctx, cat.ID)
	var inUse *InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "category", inUse.Kind)
	assert.Equal(t, "Fleurs", inUse.Name)
	assert.Equal(t, 1, inUse.Count)

	assert.Equal(t, siteconfig.Default().Categories, store.Load(ctx).Categories)

	// the same rule holds through the dispatcher
	_, err = ed.Dispatch(ctx, KindCategories, Request{Action: ActionDelete, ID: cat.ID})
	assert.ErrorAs(t, err, &inUse)
}

func TestDeleteCategory_Unused(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	cat, ok := siteconfig.Default().CategoryByName("Vapes")
	require.True(t, ok)

	removed, err := ed.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat, removed)

	cfg := store.Load(ctx)
	_, found := cfg.CategoryByName("Vapes")
	assert.False(t, found)
	assert.Len(t, cfg.Categories, 4)

	_, err = ed.DeleteCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFarm_InUse(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := context.Background()

	farm, ok := siteconfig.Default().FarmByName("Swiss Farm")
	require.True(t, ok)

	_, err := ed.DeleteFarm(ctx, farm.ID)
	var inUse *InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "farm", inUse.Kind)
	assert.Equal(t, 1, inUse.Count)

	unused, ok := siteconfig.Default().FarmByName("French Farm")
	require.True(t, ok)
	_, err = ed.DeleteFarm(ctx, unused.ID)
	assert.NoError(t, err)
}

func TestRenameCascadesToProducts(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	cat, _ := siteconfig.Default().CategoryByName("Fleurs")
	cat.Name = "Fleurs CBD"
	_, err := ed.UpdateCategory(ctx, cat)
	require.NoError(t, err)

	farm, _ := siteconfig.Default().FarmByName("Italian Farm")
	farm.Name = "Toscana"
	_, err = ed.UpdateFarm(ctx, farm)
	require.NoError(t, err)

	cfg := store.Load(ctx)
	assert.Equal(t, "Fleurs CBD", cfg.Products[0].Category)
	assert.Equal(t, "Toscana", cfg.Products[1].Farm)
	assert.Equal(t, "Résines", cfg.Products[1].Category)

	// the old name is free again, the new one is taken
	_, err = ed.CreateCategory(ctx, siteconfig.Category{Name: "Fleurs", Emoji: "🌸"})
	assert.NoError(t, err)
	_, err = ed.CreateFarm(ctx, siteconfig.Farm{Name: "Toscana", Emoji: "🇮🇹"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestDeletePage_DefaultIsProtected(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	for _, p := range siteconfig.Default().Pages {
		require.True(t, p.IsDefault)
		for attempt := 0; attempt < 2; attempt++ {
			_, err := ed.DeletePage(ctx, p.ID)
			assert.ErrorIs(t, err, ErrDefaultPage)
		}
	}
	assert.Equal(t, siteconfig.Default().Pages, store.Load(ctx).Pages)
}

func TestPages_IsDefaultCannotBeChanged(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := context.Background()

	created, err := ed.CreatePage(ctx, siteconfig.Page{Name: "FAQ", Href: "/faq", IsDefault: true})
	require.NoError(t, err)
	assert.False(t, created.IsDefault)

	created.IsDefault = true
	updated, err := ed.UpdatePage(ctx, created)
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)

	home := siteconfig.Default().Pages[0]
	home.Name = "Home"
	home.IsDefault = false
	updated, err = ed.UpdatePage(ctx, home)
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	_, err = ed.DeletePage(ctx, created.ID)
	assert.NoError(t, err)
}

func TestProducts_References(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	_, err := ed.CreateProduct(ctx, siteconfig.Product{Name: "Mystery", Category: "Nope"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ed.CreateProduct(ctx, siteconfig.Product{Name: "Mystery", Category: "Fleurs", Farm: "Nowhere"})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := ed.CreateProduct(ctx, siteconfig.Product{
		Name:     "Lemon Haze",
		Category: "Fleurs",
		Variants: []siteconfig.Variant{{Name: "5g", Price: "35€"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.NotNil(t, p.Images)

	p.Popular = true
	_, err = ed.UpdateProduct(ctx, p)
	require.NoError(t, err)
	assert.True(t, store.Load(ctx).Products[2].Popular)

	_, err = ed.UpdateProduct(ctx, siteconfig.Product{ID: 42, Name: "Ghost", Category: "Fleurs"})
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := ed.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lemon Haze", removed.Name)
	assert.Len(t, store.Load(ctx).Products, 2)
}

func TestValidation(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := context.Background()

	_, err := ed.CreateCategory(ctx, siteconfig.Category{Name: "  ", Emoji: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"name is required", "emoji is required"}, verr.Problems)

	_, err = ed.CreateSocialLink(ctx, siteconfig.SocialLink{Name: "Signal", Emoji: "📡", URL: "not a url"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"url must be a valid URL"}, verr.Problems)

	_, err = ed.CreateProduct(ctx, siteconfig.Product{Name: "X", Category: "Fleurs", Variants: []siteconfig.Variant{{Price: "1"}}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"variants[0].name is required"}, verr.Problems)

	_, err = ed.CreatePage(ctx, siteconfig.Page{Name: "  ", Href: "/blank"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ed.CreatePage(ctx, siteconfig.Page{Name: "!!!"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"href is required"}, verr.Problems)
}

func TestSocialLinks(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	link, err := ed.CreateSocialLink(ctx, siteconfig.SocialLink{Name: "Signal", Emoji: "📡", URL: "https://signal.me/#p/shop"})
	require.NoError(t, err)
	assert.Equal(t, 4, link.ID)

	link.Color = "#3a76f0"
	_, err = ed.UpdateSocialLink(ctx, link)
	require.NoError(t, err)

	_, err = ed.DeleteSocialLink(ctx, 1)
	require.NoError(t, err)

	links := store.Load(ctx).SocialMediaLinks
	require.Len(t, links, 3)
	assert.Equal(t, "#3a76f0", links[2].Color)
}

func TestDispatch(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := context.Background()

	out, err := ed.Dispatch(ctx, KindFarms, Request{
		Action: ActionCreate,
		Entity: json.RawMessage(`{"name":"Alpine Farm","emoji":"🏔️"}`),
	})
	require.NoError(t, err)
	farm, ok := out.(siteconfig.Farm)
	require.True(t, ok)
	assert.Equal(t, 4, farm.ID)

	out, err = ed.Dispatch(ctx, KindFarms, Request{
		Action: ActionUpdate,
		Entity: json.RawMessage(`{"id":4,"name":"Alpine Farm","emoji":"⛰️"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "⛰️", out.(siteconfig.Farm).Emoji)

	_, err = ed.Dispatch(ctx, KindFarms, Request{Action: ActionDelete, Entity: json.RawMessage(`{"id":4}`)})
	require.NoError(t, err)

	_, err = ed.Dispatch(ctx, KindFarms, Request{Action: ActionUpdate, Entity: json.RawMessage(`{"name":"No id","emoji":"?"}`)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ed.Dispatch(ctx, KindFarms, Request{Action: ActionDelete})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ed.Dispatch(ctx, KindFarms, Request{Action: ActionCreate, Entity: json.RawMessage(`"oops"`)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ed.Dispatch(ctx, KindFarms, Request{Action: "archive"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = ed.Dispatch(ctx, "users", Request{Action: ActionCreate})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestHistoryRecordsMutations(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := ContextWithActor(context.Background(), "admin")

	_, err := ed.CreateCategory(ctx, siteconfig.Category{Name: "Huiles", Emoji: "💧"})
	require.NoError(t, err)
	_, err = ed.DeletePage(ctx, 1)
	require.Error(t, err)

	entries := ed.History(0)
	require.Len(t, entries, 1)
	assert.Equal(t, KindCategories, entries[0].Kind)
	assert.Equal(t, ActionCreate, entries[0].Action)
	assert.Equal(t, 6, entries[0].EntityID)
	assert.Equal(t, "admin", entries[0].Actor)
}

func TestList(t *testing.T) {
	ed, _ := newEditor(t)
	ctx := context.Background()

	for _, kind := range Kinds() {
		out, err := ed.List(ctx, kind)
		require.NoError(t, err, kind)
		assert.NotNil(t, out, kind)
	}

	out, err := ed.List(ctx, KindCategories)
	require.NoError(t, err)
	assert.Len(t, out, 5)

	_, err = ed.List(ctx, "orders")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

type failingSource struct{ err error }

func (f failingSource) Fetch(context.Context) (siteconfig.SiteConfig, error) {
	return siteconfig.SiteConfig{}, f.err
}

func (f failingSource) Save(context.Context, siteconfig.SiteConfig) error { return f.err }

func (f failingSource) SaveDocument(context.Context, []byte) error { return f.err }

func (f failingSource) Reset(context.Context) (siteconfig.SiteConfig, error) {
	return siteconfig.SiteConfig{}, f.err
}

func TestStorageErrorsAreReturned(t *testing.T) {
	boom := errors.New("disk full")
	ed := NewEditor(failingSource{err: boom}, nil, zerolog.Nop())

	_, err := ed.CreateCategory(context.Background(), siteconfig.Category{Name: "Huiles", Emoji: "💧"})
	assert.ErrorIs(t, err, boom)
	_, err = ed.Reset(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, ed.ReplaceDocument(context.Background(), []byte(`{}`)), boom)
	assert.Empty(t, ed.History(0))
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := ed.CreatePage(ctx, siteconfig.Page{Name: "Page", Href: "/p"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, p := range store.Load(ctx).Pages {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 13)
}

func TestReplaceAndReset(t *testing.T) {
	ed, store := newEditor(t)
	ctx := ContextWithActor(context.Background(), "admin")

	require.NoError(t, ed.ReplaceDocument(ctx, []byte(`{"categories":[],"products":[]}`)))
	assert.Empty(t, store.Load(ctx).Categories)

	_, err := ed.CreateProduct(ctx, siteconfig.Product{Name: "Orphan", Category: "Fleurs"})
	assert.ErrorIs(t, err, ErrValidation)

	cfg, err := ed.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, siteconfig.Default(), cfg)
	assert.Equal(t, siteconfig.Default(), store.Load(ctx))

	entries := ed.History(2)
	require.Len(t, entries, 2)
	assert.Equal(t, "reset", entries[0].Action)
	assert.Equal(t, "replace", entries[1].Action)
}

func TestCreatePage_DerivesHref(t *testing.T) {
	ed, _ := newEditor(t)

	page, err := ed.CreatePage(context.Background(), siteconfig.Page{Name: "Qualité & Livraison"})
	require.NoError(t, err)
	assert.Equal(t, "/qualite-livraison", page.Href)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"FAQ":                 "faq",
		"  Nos Fermes  ":      "nos-fermes",
		"Qualité & Livraison": "qualite-livraison",
		"CBD -- 100%":         "cbd-100",
		"***":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestDuplicateNames_IgnoreCase(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	_, err := ed.CreateCategory(ctx, siteconfig.Category{Name: "fleurs", Emoji: "🌸"})
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = ed.CreateFarm(ctx, siteconfig.Farm{Name: "SWISS FARM", Emoji: "🇨🇭"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// another entry cannot take the name under a different case
	def := siteconfig.Default()
	other := def.Categories[1]
	other.Name = "FLEURS"
	_, err = ed.UpdateCategory(ctx, other)
	assert.ErrorIs(t, err, ErrDuplicateName)

	// changing the case of an entry's own name is a rename
	cat, _ := def.CategoryByName("Fleurs")
	cat.Name = "FLEURS"
	_, err = ed.UpdateCategory(ctx, cat)
	require.NoError(t, err)

	cfg := store.Load(ctx)
	assert.Len(t, cfg.Categories, len(def.Categories))
	assert.Len(t, cfg.Farms, len(def.Farms))
	assert.Equal(t, "FLEURS", cfg.Products[0].Category)
}

func TestReplaceDocument_RefusesDroppingReferencedEntries(t *testing.T) {
	ed, store := newEditor(t)
	ctx := context.Background()

	err := ed.ReplaceDocument(ctx, []byte(`{"categories":[{"id":9,"name":"Other","emoji":"x"}],"farms":[]}`))
	var inUse *InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "category", inUse.Kind)
	assert.Equal(t, "Fleurs", inUse.Name)
	assert.Equal(t, 1, inUse.Count)

	err = ed.ReplaceDocument(ctx, []byte(`{"farms":[]}`))
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "farm", inUse.Kind)

	assert.Equal(t, siteconfig.Default(), store.Load(ctx))
	assert.Empty(t, ed.History(0))

	// products stay editable after a rejected replace
	p := store.Load(ctx).Products[0]
	p.Popular = !p.Popular
	_, err = ed.UpdateProduct(ctx, p)
	assert.NoError(t, err)
}
