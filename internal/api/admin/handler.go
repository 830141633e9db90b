package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-cms/internal/domain/catalog"
	xlog "storefront-cms/internal/log"
)

type Handler struct {
	editor *catalog.Editor
	logger zerolog.Logger
}

func NewHandler(editor *catalog.Editor, logger zerolog.Logger) *Handler {
	return &Handler{editor: editor, logger: logger}
}

// List serves GET /api/admin/{kind}.
func (h *Handler) List(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h.editor.List(c.Request.Context(), kind)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, Response{Success: true, Data: data})
	}
}

// Mutate serves POST /api/admin/{kind} with {action, <entity key>, id?}.
func (h *Handler) Mutate(kind string) gin.HandlerFunc {
	entityKey, _ := catalog.EntityKey(kind)

	return func(c *gin.Context) {
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: "Malformed JSON"})
			return
		}

		req := catalog.Request{Entity: body[entityKey]}
		if err := json.Unmarshal(body["action"], &req.Action); err != nil || req.Action == "" {
			c.JSON(http.StatusBadRequest, Response{Error: "action is required"})
			return
		}
		if raw, ok := body["id"]; ok {
			id, err := parseID(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, Response{Error: "id must be a number"})
				return
			}
			req.ID = id
		}

		ctx := catalog.ContextWithActor(c.Request.Context(), c.GetString("actor"))
		data, err := h.editor.Dispatch(ctx, kind, req)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message(kind, req.Action)})
	}
}

// POST /api/admin/reset
func (h *Handler) Reset(c *gin.Context) {
	ctx := catalog.ContextWithActor(c.Request.Context(), c.GetString("actor"))
	cfg, err := h.editor.Reset(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: cfg, Message: "Configuration reset to defaults"})
}

// GET /api/admin/history?limit=N
func (h *Handler) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, Response{Error: "limit must be a positive number"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: h.editor.History(limit)})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		xlog.For(c.Request.Context(), h.logger).Error().Err(err).Str("path", c.FullPath()).Msg("admin request failed")
		c.JSON(status, Response{Error: "Failed to save configuration"})
		return
	}
	c.JSON(status, Response{Error: err.Error()})
}

func statusFor(err error) int {
	var inUse *catalog.InUseError
	switch {
	case errors.As(err, &inUse),
		errors.Is(err, catalog.ErrDefaultPage),
		errors.Is(err, catalog.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrValidation), errors.Is(err, catalog.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseID accepts 3 and "3".
func parseID(raw json.RawMessage) (int, error) {
	var id int
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}
