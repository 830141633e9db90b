package catalog

import (
	"context"
	"slices"
	"strings"

	"storefront-cms/internal/domain/siteconfig"
)

// Categories and farms share the same rules: unique names, renames cascade
// to products, deletion is refused while products reference them.

func (e *Editor) CreateCategory(ctx context.Context, c siteconfig.Category) (siteconfig.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := e.check(c); err != nil {
		return siteconfig.Category{}, err
	}
	err := e.mutate(ctx, KindCategories, ActionCreate, func(cfg *siteconfig.SiteConfig) (change, error) {
		if _, taken := findNamed(cfg.Categories, c.Name); taken {
			return change{}, duplicate("category", c.Name)
		}
		c.ID = siteconfig.NextID(cfg.Categories)
		cfg.Categories = append(cfg.Categories, c)
		return change{c.ID, c.Name}, nil
	})
	if err != nil {
		return siteconfig.Category{}, err
	}
	return c, nil
}

func (e *Editor) UpdateCategory(ctx context.Context, c siteconfig.Category) (siteconfig.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := e.check(c); err != nil {
		return siteconfig.Category{}, err
	}
	err := e.mutate(ctx, KindCategories, ActionUpdate, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Categories, c.ID)
		if i < 0 {
			return change{}, notFound("category", c.ID)
		}
		if other, taken := findNamed(cfg.Categories, c.Name); taken && other.ID != c.ID {
			return change{}, duplicate("category", c.Name)
		}
		old := cfg.Categories[i].Name
		cfg.Categories[i] = c
		if old != c.Name {
			n := renameReferences(cfg.Products, func(p *siteconfig.Product) *string { return &p.Category }, old, c.Name)
			if n > 0 {
				e.logger.Info().Str("from", old).Str("to", c.Name).Int("products", n).Msg("category renamed on products")
			}
		}
		return change{c.ID, c.Name}, nil
	})
	if err != nil {
		return siteconfig.Category{}, err
	}
	return c, nil
}

func (e *Editor) DeleteCategory(ctx context.Context, id int) (siteconfig.Category, error) {
	var removed siteconfig.Category
	err := e.mutate(ctx, KindCategories, ActionDelete, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Categories, id)
		if i < 0 {
			return change{}, notFound("category", id)
		}
		removed = cfg.Categories[i]
		if n := countReferences(cfg.Products, func(p siteconfig.Product) bool { return p.Category == removed.Name }); n > 0 {
			return change{}, &InUseError{Kind: "category", Name: removed.Name, Count: n}
		}
		cfg.Categories = slices.Delete(cfg.Categories, i, i+1)
		return change{removed.ID, removed.Name}, nil
	})
	if err != nil {
		return siteconfig.Category{}, err
	}
	return removed, nil
}

func (e *Editor) CreateFarm(ctx context.Context, f siteconfig.Farm) (siteconfig.Farm, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := e.check(f); err != nil {
		return siteconfig.Farm{}, err
	}
	err := e.mutate(ctx, KindFarms, ActionCreate, func(cfg *siteconfig.SiteConfig) (change, error) {
		if _, taken := findNamed(cfg.Farms, f.Name); taken {
			return change{}, duplicate("farm", f.Name)
		}
		f.ID = siteconfig.NextID(cfg.Farms)
		cfg.Farms = append(cfg.Farms, f)
		return change{f.ID, f.Name}, nil
	})
	if err != nil {
		return siteconfig.Farm{}, err
	}
	return f, nil
}

func (e *Editor) UpdateFarm(ctx context.Context, f siteconfig.Farm) (siteconfig.Farm, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := e.check(f); err != nil {
		return siteconfig.Farm{}, err
	}
	err := e.mutate(ctx, KindFarms, ActionUpdate, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Farms, f.ID)
		if i < 0 {
			return change{}, notFound("farm", f.ID)
		}
		if other, taken := findNamed(cfg.Farms, f.Name); taken && other.ID != f.ID {
			return change{}, duplicate("farm", f.Name)
		}
		old := cfg.Farms[i].Name
		cfg.Farms[i] = f
		if old != f.Name {
			n := renameReferences(cfg.Products, func(p *siteconfig.Product) *string { return &p.Farm }, old, f.Name)
			if n > 0 {
				e.logger.Info().Str("from", old).Str("to", f.Name).Int("products", n).Msg("farm renamed on products")
			}
		}
		return change{f.ID, f.Name}, nil
	})
	if err != nil {
		return siteconfig.Farm{}, err
	}
	return f, nil
}

func (e *Editor) DeleteFarm(ctx context.Context, id int) (siteconfig.Farm, error) {
	var removed siteconfig.Farm
	err := e.mutate(ctx, KindFarms, ActionDelete, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Farms, id)
		if i < 0 {
			return change{}, notFound("farm", id)
		}
		removed = cfg.Farms[i]
		if n := countReferences(cfg.Products, func(p siteconfig.Product) bool { return p.Farm == removed.Name }); n > 0 {
			return change{}, &InUseError{Kind: "farm", Name: removed.Name, Count: n}
		}
		cfg.Farms = slices.Delete(cfg.Farms, i, i+1)
		return change{removed.ID, removed.Name}, nil
	})
	if err != nil {
		return siteconfig.Farm{}, err
	}
	return removed, nil
}

type named interface {
	siteconfig.Category | siteconfig.Farm
}

// findNamed looks a category or farm up by name, ignoring case. Names are
// unique per kind under this comparison.
func findNamed[T named](items []T, name string) (T, bool) {
	for _, it := range items {
		if strings.EqualFold(nameOf(it), name) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func nameOf[T named](it T) string {
	switch v := any(it).(type) {
	case siteconfig.Category:
		return v.Name
	case siteconfig.Farm:
		return v.Name
	}
	return ""
}

// danglingReference reports the first category or farm that products in cfg
// point at but cfg no longer lists.
func danglingReference(cfg siteconfig.SiteConfig) error {
	if name, n := missingRef(cfg.Products, func(p siteconfig.Product) string { return p.Category }, func(name string) bool {
		_, ok := cfg.CategoryByName(name)
		return ok
	}); n > 0 {
		return &InUseError{Kind: "category", Name: name, Count: n}
	}
	if name, n := missingRef(cfg.Products, func(p siteconfig.Product) string { return p.Farm }, func(name string) bool {
		_, ok := cfg.FarmByName(name)
		return ok
	}); n > 0 {
		return &InUseError{Kind: "farm", Name: name, Count: n}
	}
	return nil
}

func missingRef(products []siteconfig.Product, ref func(siteconfig.Product) string, exists func(string) bool) (string, int) {
	for _, p := range products {
		name := ref(p)
		if name == "" || exists(name) {
			continue
		}
		return name, countReferences(products, func(q siteconfig.Product) bool { return ref(q) == name })
	}
	return "", 0
}

func countReferences(products []siteconfig.Product, match func(siteconfig.Product) bool) int {
	n := 0
	for _, p := range products {
		if match(p) {
			n++
		}
	}
	return n
}

func renameReferences(products []siteconfig.Product, field func(*siteconfig.Product) *string, from, to string) int {
	n := 0
	for i := range products {
		if ref := field(&products[i]); *ref == from {
			*ref = to
			n++
		}
	}
	return n
}
