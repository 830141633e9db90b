package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"storefront-cms/internal/domain/siteconfig"
)

func (e *Editor) CreateSocialLink(ctx context.Context, s siteconfig.SocialLink) (siteconfig.SocialLink, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.URL = strings.TrimSpace(s.URL)
	if err := e.check(s); err != nil {
		return siteconfig.SocialLink{}, err
	}
	err := e.mutate(ctx, KindSocialMedia, ActionCreate, func(cfg *siteconfig.SiteConfig) (change, error) {
		s.ID = siteconfig.NextID(cfg.SocialMediaLinks)
		cfg.SocialMediaLinks = append(cfg.SocialMediaLinks, s)
		return change{s.ID, s.Name}, nil
	})
	if err != nil {
		return siteconfig.SocialLink{}, err
	}
	return s, nil
}

func (e *Editor) UpdateSocialLink(ctx context.Context, s siteconfig.SocialLink) (siteconfig.SocialLink, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.URL = strings.TrimSpace(s.URL)
	if err := e.check(s); err != nil {
		return siteconfig.SocialLink{}, err
	}
	err := e.mutate(ctx, KindSocialMedia, ActionUpdate, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.SocialMediaLinks, s.ID)
		if i < 0 {
			return change{}, notFound("social link", s.ID)
		}
		cfg.SocialMediaLinks[i] = s
		return change{s.ID, s.Name}, nil
	})
	if err != nil {
		return siteconfig.SocialLink{}, err
	}
	return s, nil
}

func (e *Editor) DeleteSocialLink(ctx context.Context, id int) (siteconfig.SocialLink, error) {
	var removed siteconfig.SocialLink
	err := e.mutate(ctx, KindSocialMedia, ActionDelete, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.SocialMediaLinks, id)
		if i < 0 {
			return change{}, notFound("social link", id)
		}
		removed = cfg.SocialMediaLinks[i]
		cfg.SocialMediaLinks = slices.Delete(cfg.SocialMediaLinks, i, i+1)
		return change{removed.ID, removed.Name}, nil
	})
	if err != nil {
		return siteconfig.SocialLink{}, err
	}
	return removed, nil
}

// CreatePage adds an admin page. Pages created here are never default pages.
// An empty href is derived from the name.
func (e *Editor) CreatePage(ctx context.Context, p siteconfig.Page) (siteconfig.Page, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Href = strings.TrimSpace(p.Href)
	if p.Href == "" {
		p.Href = pageHref(p.Name)
	}
	p.IsDefault = false
	if err := e.check(p); err != nil {
		return siteconfig.Page{}, err
	}
	err := e.mutate(ctx, KindPages, ActionCreate, func(cfg *siteconfig.SiteConfig) (change, error) {
		p.ID = siteconfig.NextID(cfg.Pages)
		cfg.Pages = append(cfg.Pages, p)
		return change{p.ID, p.Name}, nil
	})
	if err != nil {
		return siteconfig.Page{}, err
	}
	return p, nil
}

// UpdatePage replaces a page. The stored isDefault flag always wins over the
// incoming one.
func (e *Editor) UpdatePage(ctx context.Context, p siteconfig.Page) (siteconfig.Page, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Href = strings.TrimSpace(p.Href)
	if err := e.check(p); err != nil {
		return siteconfig.Page{}, err
	}
	err := e.mutate(ctx, KindPages, ActionUpdate, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Pages, p.ID)
		if i < 0 {
			return change{}, notFound("page", p.ID)
		}
		p.IsDefault = cfg.Pages[i].IsDefault
		cfg.Pages[i] = p
		return change{p.ID, p.Name}, nil
	})
	if err != nil {
		return siteconfig.Page{}, err
	}
	return p, nil
}

func (e *Editor) DeletePage(ctx context.Context, id int) (siteconfig.Page, error) {
	var removed siteconfig.Page
	err := e.mutate(ctx, KindPages, ActionDelete, func(cfg *siteconfig.SiteConfig) (change, error) {
		i := siteconfig.IndexOf(cfg.Pages, id)
		if i < 0 {
			return change{}, notFound("page", id)
		}
		removed = cfg.Pages[i]
		if removed.IsDefault {
			return change{}, fmt.Errorf("%w: %q", ErrDefaultPage, removed.Name)
		}
		cfg.Pages = slices.Delete(cfg.Pages, i, i+1)
		return change{removed.ID, removed.Name}, nil
	})
	if err != nil {
		return siteconfig.Page{}, err
	}
	return removed, nil
}
