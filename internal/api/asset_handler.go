package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-content-api/internal/config"
	"github.com/rs/zerolog"
)

const resumeFilename = "resume.jpg"

// AssetHandler serves static files
type AssetHandler struct {
	cfg config.AssetsConfig
	log zerolog.Logger
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(cfg config.AssetsConfig, log zerolog.Logger) *AssetHandler {
	return &AssetHandler{
		cfg: cfg,
		log: log.With().Str("handler", "asset").Logger(),
	}
}

// Resume handles GET /resume
func (h *AssetHandler) Resume(c *gin.Context) {
	if !h.resumeExists(c) {
		return
	}
	c.File(h.cfg.ResumePath)
}

// DownloadResume handles GET /resume/download
func (h *AssetHandler) DownloadResume(c *gin.Context) {
	if !h.resumeExists(c) {
		return
	}
	c.FileAttachment(h.cfg.ResumePath, resumeFilename)
}

func (h *AssetHandler) resumeExists(c *gin.Context) bool {
	info, err := os.Stat(h.cfg.ResumePath)
	if err != nil || info.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			h.log.Error().Err(err).Str("path", h.cfg.ResumePath).Msg("Failed to stat resume")
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
		return false
	}
	return true
}
