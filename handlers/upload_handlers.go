package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type UploadHandlers struct {
	Storage Uploader
	log     *zerolog.Logger
}

func NewUploadHandlers(storage Uploader, log *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{Storage: storage, log: log}
}

const maxUploadSize = 10 << 20 // 10 MiB

// UploadImage accepts a multipart "image" file and stores it under a
// generated key. Only image content types are accepted.
func (h *UploadHandlers) UploadImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	key := "projects/" + uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	url, err := h.Storage.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("failed to upload image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
