package siteapi

import "storefront-cms/internal/domain/siteconfig"

type GetProductsResponse struct {
	Products []siteconfig.Product `json:"products"`
	Total    int                  `json:"total"`
}

type GetProductResponse struct {
	Product  siteconfig.Product   `json:"product"`
	Category *siteconfig.Category `json:"category,omitempty"`
	Farm     *siteconfig.Farm     `json:"farm,omitempty"`
}

type GetCategoriesResponse struct {
	Categories []siteconfig.Category `json:"categories"`
}

type GetFarmsResponse struct {
	Farms []siteconfig.Farm `json:"farms"`
}

type GetSocialMediaResponse struct {
	SocialMediaLinks []siteconfig.SocialLink `json:"socialMediaLinks"`
}

type GetPagesResponse struct {
	Pages []siteconfig.Page `json:"pages"`
}
