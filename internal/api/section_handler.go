package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio-content-api/internal/section"
	"github.com/portfolio-content-api/internal/service"
	"github.com/rs/zerolog"
)

const heartbeatInterval = 15 * time.Second

// SectionHandler handles section view endpoints
type SectionHandler struct {
	services  *service.Services
	log       zerolog.Logger
	heartbeat time.Duration
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(services *service.Services, log zerolog.Logger) *SectionHandler {
	return &SectionHandler{
		services:  services,
		log:       log.With().Str("handler", "section").Logger(),
		heartbeat: heartbeatInterval,
	}
}

// ListSections handles GET /v1/sections
func (h *SectionHandler) ListSections(c *gin.Context) {
	out := make(gin.H)
	for _, name := range h.services.Site.Sections() {
		v, err := h.services.Site.View(name, section.Query{Page: 1})
		if err != nil {
			h.log.Error().Err(err).Str("section", name).Msg("Failed to read section")
			continue
		}
		out[name] = v
	}
	c.JSON(http.StatusOK, gin.H{"sections": out})
}

// GetSection handles GET /v1/sections/:name?page=N
func (h *SectionHandler) GetSection(c *gin.Context) {
	name := c.Param("name")
	v, err := h.services.Site.View(name, queryFrom(c))
	if errors.Is(err, service.ErrUnknownSection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("section", name).Msg("Failed to read section")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read section"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// StreamSection handles GET /v1/sections/:name/stream
// Sends the current view, then the new view after every change
func (h *SectionHandler) StreamSection(c *gin.Context) {
	name := c.Param("name")
	q := queryFrom(c)

	changes, stop, err := h.services.Site.Watch(name)
	if errors.Is(err, service.ErrUnknownSection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to watch section"})
		return
	}
	defer stop()

	streamID := uuid.NewString()
	log := h.log.With().Str("stream_id", streamID).Str("section", name).Logger()
	log.Debug().Msg("Section stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("X-Stream-ID", streamID)

	send := func() bool {
		v, err := h.services.Site.View(name, q)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read section")
			return false
		}
		c.SSEvent(name, v)
		return true
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			return send()
		}
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			return send()
		case <-heartbeat.C:
			_, err := io.WriteString(w, ": ping\n\n")
			return err == nil
		}
	})

	log.Debug().Msg("Section stream closed")
}

// ReportImageError handles POST /v1/sections/hero/images/:index/error
func (h *SectionHandler) ReportImageError(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a non-negative integer"})
		return
	}
	c.JSON(http.StatusOK, h.services.Site.ReportHeroImageError(index))
}

// queryFrom reads ?page; anything unreadable is page 1 and the section
// clamps the rest
func queryFrom(c *gin.Context) section.Query {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	return section.Query{Page: page}
}
