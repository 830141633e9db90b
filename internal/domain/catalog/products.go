package catalog

import (
	"context"
	"slices"
	"strings"

	"storefront-cms/internal/domain/siteconfig"
)

func (e *Editor) CreateProduct(ctx context.Context, p siteconfig.Product) (siteconfig.Product, error) {
	p = cleanProduct(p)
	if err := e.check(p); err != nil {
		return siteconfig.Product{}, err
	}
	err := e.mutate(ctx, KindProducts, ActionCreate, func(cfg *siteconfig.SiteConfig) (change, error) {
		if err := checkProductRefs(cfg, p); err != nil {
			return change{}, err
		}
		p.ID = siteconfig.NextID(cfg.Products)
		cfg.Products = append(cfg.Products, p)
		return change{p.ID, p.Name}, nil
	})
	if err != nil {
		return siteconfig.Product{}, err
	}
	return p, nil
}

func (e *Editor) UpdateProduct(ctx context.Context, p siteconfig.Product) (siteconfig.Product, error) {
	p = cleanProduct(p)
	if err := e.check(p); err != nil {
		return siteconfig.Product{}, err
	}
	err := e.mutate(ctx, KindProducts, ActionUpdate, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Products, p.ID)
		if i < 0 {
			return change{}, notFound("product", p.ID)
		}
		if err := checkProductRefs(cfg, p); err != nil {
			return change{}, err
		}
		cfg.Products[i] = p
		return change{p.ID, p.Name}, nil
	})
	if err != nil {
		return siteconfig.Product{}, err
	}
	return p, nil
}

func (e *Editor) DeleteProduct(ctx context.Context, id int) (siteconfig.Product, error) {
	var removed siteconfig.Product
	err := e.mutate(ctx, KindProducts, ActionDelete, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Products, id)
		if i < 0 {
			return change{}, notFound("product", id)
		}
		removed = cfg.Products[i]
		cfg.Products = slices.Delete(cfg.Products, i, i+1)
		return change{removed.ID, removed.Name}, nil
	})
	if err != nil {
		return siteconfig.Product{}, err
	}
	return removed, nil
}

func cleanProduct(p siteconfig.Product) siteconfig.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Farm = strings.TrimSpace(p.Farm)
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Variants == nil {
		p.Variants = []siteconfig.Variant{}
	}
	return p
}

func checkProductRefs(cfg *siteconfig.SiteConfig, p siteconfig.Product) error {
	if _, ok := cfg.CategoryByName(p.Category); !ok {
		return invalid("category %q does not exist", p.Category)
	}
	if p.Farm != "" {
		if _, ok := cfg.FarmByName(p.Farm); !ok {
			return invalid("farm %q does not exist", p.Farm)
		}
	}
	return nil
}
