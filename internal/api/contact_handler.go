package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/service"
	"github.com/portfolio-content-api/internal/validation"
	"github.com/rs/zerolog"
)

const submitTimeout = 10 * time.Second

// ContactHandler handles the contact form endpoint
type ContactHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(services *service.Services, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		services: services,
		log:      log.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /v1/contact
// Accepts JSON or form-encoded bodies
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c, submitTimeout)
	defer cancel()

	id, err := h.services.Contact.Submit(ctx, &req)

	var verrs validation.Errors
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"id":      id,
			"message": "Message sent successfully!",
		})
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"errors": verrs.Fields(),
		})
	case errors.Is(err, service.ErrSubmission):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message. Please try again."})
	default:
		h.log.Error().Err(err).Msg("Contact submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
