package service

import (
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/section"
	"github.com/rs/zerolog"
)

// siteService is the concrete implementation of SiteService
type siteService struct {
	sections *section.Set
	log      zerolog.Logger
}

// NewSiteService serves views from mounted sections
func NewSiteService(sections *section.Set, log zerolog.Logger) SiteService {
	return &siteService{
		sections: sections,
		log:      log.With().Str("service", "site").Logger(),
	}
}

func (s *siteService) Sections() []string {
	return append([]string(nil), section.Names...)
}

func (s *siteService) View(name string, q section.Query) (any, error) {
	v, ok := s.sections.Lookup(name)
	if !ok {
		return nil, ErrUnknownSection
	}
	return v.View(q), nil
}

func (s *siteService) Watch(name string) (<-chan struct{}, func(), error) {
	v, ok := s.sections.Lookup(name)
	if !ok {
		return nil, nil, ErrUnknownSection
	}
	ch, stop := v.Watch()
	return ch, stop, nil
}

// ReportHeroImageError advances the hero rotator past a broken image
func (s *siteService) ReportHeroImageError(index int) models.SectionState[models.HeroView] {
	st := s.sections.Hero.FailImage(index)
	s.log.Warn().Int("index", index).Int("now_showing", st.Data.CurrentIndex).Msg("Hero image failed to load")
	return st
}

func (s *siteService) Close() {
	s.sections.Close()
	s.log.Info().Msg("Sections closed")
}
