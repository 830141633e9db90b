package configapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-cms/internal/configstore"
	"storefront-cms/internal/domain/catalog"
	xlog "storefront-cms/internal/log"
)

type Handler struct {
	store  *configstore.Store
	editor *catalog.Editor
	logger zerolog.Logger
}

func NewHandler(store *configstore.Store, editor *catalog.Editor, logger zerolog.Logger) *Handler {
	return &Handler{store: store, editor: editor, logger: logger}
}

// GET /api/config
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Load(c.Request.Context()))
}

// POST /api/config (admin)
func (h *Handler) Replace(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid body"})
		return
	}

	ctx := catalog.ContextWithActor(c.Request.Context(), c.GetString("actor"))
	if err := h.editor.ReplaceDocument(ctx, raw); err != nil {
		var inUse *catalog.InUseError
		switch {
		case errors.Is(err, configstore.ErrInvalidDocument):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		case errors.As(err, &inUse):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		xlog.For(ctx, h.logger).Error().Err(err).Msg("replace site config")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
