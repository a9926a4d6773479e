package api

import (
	"net/http"
	"os"

	"vantage-backend/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	store *storage.LocalFileStore
}

func NewFileHandler(store *storage.LocalFileStore) *FileHandler {
	return &FileHandler{store: store}
}

// @Summary Serve uploaded document
// @Description Serve a stored quote document by filename
// @Tags files
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /uploads/quotes/{filename} [get]
func (h *FileHandler) ServeQuoteFile(c *gin.Context) {
	path, err := h.store.Resolve(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.File(path)
}
