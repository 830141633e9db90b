package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminapi "storefront-cms/internal/api/admin"
	authapi "storefront-cms/internal/api/auth"
	configapi "storefront-cms/internal/api/config"
	siteapi "storefront-cms/internal/api/site"
	uploadapi "storefront-cms/internal/api/upload"
	"storefront-cms/internal/app/http/middleware"
	"storefront-cms/internal/domain/catalog"
)

type Deps struct {
	JWTSecret string
	// UploadDir is served under /uploads when files are stored locally.
	UploadDir string

	Config *configapi.Handler
	Site   *siteapi.Handler
	Auth   *authapi.Handler
	Admin  *adminapi.Handler
	Upload *uploadapi.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	api := r.Group("/api")
	api.GET("/config", d.Config.Get)

	site := api.Group("/site")
	site.GET("/products", d.Site.ListProducts)
	site.GET("/products/:id", d.Site.GetProduct)
	site.GET("/categories", d.Site.ListCategories)
	site.GET("/farms", d.Site.ListFarms)
	site.GET("/social-media", d.Site.ListSocialMedia)
	site.GET("/pages", d.Site.ListPages)

	// credentials are compared as sent, never sanitized
	api.POST("/admin/login", d.Auth.Login)

	// Admin routes
	admin := api.Group("/")
	admin.Use(
		middleware.AuthMiddleware(d.JWTSecret),
		middleware.RequireRole(authapi.RoleAdmin),
		middleware.SanitizeAndCleanInputMiddleware(),
	)
	admin.POST("/config", d.Config.Replace)
	admin.POST("/upload", d.Upload.Upload)
	admin.POST("/admin/reset", d.Admin.Reset)
	admin.GET("/admin/history", d.Admin.History)
	for _, kind := range catalog.Kinds() {
		admin.GET("/admin/"+kind, d.Admin.List(kind))
		admin.POST("/admin/"+kind, d.Admin.Mutate(kind))
	}
}
