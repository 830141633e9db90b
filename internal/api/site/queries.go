package siteapi

import (
	"strings"

	"storefront-cms/internal/domain/siteconfig"
)

// ProductFilter narrows the storefront product list. Zero values match all.
type ProductFilter struct {
	Category    string
	Farm        string
	PopularOnly bool
}

func filterProducts(products []siteconfig.Product, f ProductFilter) []siteconfig.Product {
	out := make([]siteconfig.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Farm != "" && !strings.EqualFold(p.Farm, f.Farm) {
			continue
		}
		if f.PopularOnly && !p.Popular {
			continue
		}
		out = append(out, p)
	}
	return out
}

func findProduct(products []siteconfig.Product, id int) (siteconfig.Product, bool) {
	if i := siteconfig.IndexOf(products, id); i >= 0 {
		return products[i], true
	}
	return siteconfig.Product{}, false
}
