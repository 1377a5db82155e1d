package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/portfolio-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// contactService is the concrete implementation of ContactService
type contactService struct {
	docs repository.DocumentRepository
	path string
	now  func() time.Time
	log  zerolog.Logger
}

// NewContactService appends contact messages under path
func NewContactService(docs repository.DocumentRepository, path string, log zerolog.Logger) ContactService {
	return &contactService{
		docs: docs,
		path: path,
		now:  time.Now,
		log:  log.With().Str("service", "contact").Logger(),
	}
}

// Submit validates req and appends it. Validation failures come back as
// validation.Errors with nothing written; store failures wrap ErrSubmission.
func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) (string, error) {
	if errs := validation.ValidateContact(req); len(errs) > 0 {
		return "", errs
	}

	msg := models.ContactMessage{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal contact message: %w", err)
	}

	id, err := s.docs.Push(ctx, s.path, value)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Failed to store contact message")
		return "", fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	s.log.Info().Str("id", id).Str("subject", msg.Subject).Msg("Contact message stored")
	return id, nil
}
