package uploadapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-cms/internal/infra/upload"
	xlog "storefront-cms/internal/log"
	"storefront-cms/internal/metrics"
)

type Handler struct {
	uploader upload.Uploader
	logger   zerolog.Logger
}

func NewHandler(uploader upload.Uploader, logger zerolog.Logger) *Handler {
	return &Handler{uploader: uploader, logger: logger}
}

// POST /api/upload (admin), multipart field "file"
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.MaxSize+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large (max 20 MiB)"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fh.Size > upload.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large (max 20 MiB)"})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})
		return
	}
	defer file.Close()

	provider := h.uploader.Provider()
	url, err := h.uploader.Upload(c.Request.Context(), fh.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			metrics.UploadsTotal.WithLabelValues(provider, metrics.ResultRejected).Inc()
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, upload.ErrUnsupportedType), errors.Is(err, upload.ErrEmpty):
			metrics.UploadsTotal.WithLabelValues(provider, metrics.ResultRejected).Inc()
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		default:
			metrics.UploadsTotal.WithLabelValues(provider, metrics.ResultError).Inc()
			xlog.For(c.Request.Context(), h.logger).Error().Err(err).Str("provider", provider).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		}
		return
	}

	metrics.UploadsTotal.WithLabelValues(provider, metrics.ResultOK).Inc()
	xlog.For(c.Request.Context(), h.logger).Info().Str("provider", provider).Str("url", url).Msg("file uploaded")
	c.JSON(http.StatusOK, gin.H{"url": url})
}
