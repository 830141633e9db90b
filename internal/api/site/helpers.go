package siteapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-cms/internal/configstore"
)

// Handler serves the read-only storefront views of the site config.
type Handler struct {
	store *configstore.Store
}

func NewHandler(store *configstore.Store) *Handler {
	return &Handler{store: store}
}

// GET /api/site/products?category=&farm=&popular=
func (h *Handler) ListProducts(c *gin.Context) {
	filter := ProductFilter{
		Category: c.Query("category"),
		Farm:     c.Query("farm"),
	}
	if raw := c.Query("popular"); raw != "" {
		popular, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "popular must be true or false"})
			return
		}
		filter.PopularOnly = popular
	}

	cfg := h.store.Load(c.Request.Context())
	products := filterProducts(cfg.Products, filter)
	c.JSON(http.StatusOK, GetProductsResponse{Products: products, Total: len(products)})
}

// GET /api/site/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	cfg := h.store.Load(c.Request.Context())
	p, ok := findProduct(cfg.Products, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	resp := GetProductResponse{Product: p}
	if cat, ok := cfg.CategoryByName(p.Category); ok {
		resp.Category = &cat
	}
	if p.Farm != "" {
		if farm, ok := cfg.FarmByName(p.Farm); ok {
			resp.Farm = &farm
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/site/categories
func (h *Handler) ListCategories(c *gin.Context) {
	cfg := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, GetCategoriesResponse{Categories: cfg.Categories})
}

// GET /api/site/farms
func (h *Handler) ListFarms(c *gin.Context) {
	cfg := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, GetFarmsResponse{Farms: cfg.Farms})
}

// GET /api/site/social-media
func (h *Handler) ListSocialMedia(c *gin.Context) {
	cfg := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, GetSocialMediaResponse{SocialMediaLinks: cfg.SocialMediaLinks})
}

// GET /api/site/pages
func (h *Handler) ListPages(c *gin.Context) {
	cfg := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, GetPagesResponse{Pages: cfg.Pages})
}
