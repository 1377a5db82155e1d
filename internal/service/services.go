package service

import (
	"context"
	"errors"

	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/normalize"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/portfolio-content-api/internal/section"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownSection is returned for a section name that does not exist
	ErrUnknownSection = errors.New("unknown section")
	// ErrSubmission wraps a failed contact store write
	ErrSubmission = errors.New("failed to send message")
)

// SiteService defines the read side of the page sections
type SiteService interface {
	Sections() []string
	View(name string, q section.Query) (any, error)
	Watch(name string) (<-chan struct{}, func(), error)
	ReportHeroImageError(index int) models.SectionState[models.HeroView]
	Close()
}

// ContactService defines contact form submission
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) (string, error)
}

// Services holds all service interfaces
type Services struct {
	Site    SiteService
	Contact ContactService
}

// NewServices creates all services and mounts every section on client
func NewServices(repos *repository.Repositories, client feed.Client, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	n := normalize.New(normalize.DefaultsFromConfig(cfg.Content), log)
	sections := section.NewSet(cfg.Feed.Paths, n, cfg.Hero.RotateInterval, log)
	if err := sections.Mount(client); err != nil {
		sections.Close()
		return nil, err
	}

	return &Services{
		Site:    NewSiteService(sections, log),
		Contact: NewContactService(repos.Documents, cfg.Feed.Paths.Contact, log),
	}, nil
}
