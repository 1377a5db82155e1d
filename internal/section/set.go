package section

import (
	"errors"
	"time"

	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/normalize"
	"github.com/rs/zerolog"
)

// Set holds one instance of every section. Sections share nothing but the
// feed client they are mounted on.
type Set struct {
	About     *Section[models.AboutView]
	Education *Section[models.EducationView]
	Skills    *Section[models.SkillsView]
	Projects  *Projects
	Hero      *Hero

	byName map[string]Viewer
}

// NewSet builds every section against the configured paths
func NewSet(paths config.FeedPaths, n *normalize.Normalizer, rotateInterval time.Duration, log zerolog.Logger) *Set {
	s := &Set{
		About:     NewAbout(paths.About, n, log),
		Education: NewEducation(paths.Education, n, log),
		Skills:    NewSkills(paths, n, log),
		Projects:  NewProjects(paths.Projects, n, log),
		Hero:      NewHero(paths.Homepage, n, rotateInterval, log),
	}
	s.byName = map[string]Viewer{
		NameAbout:     s.About,
		NameEducation: s.Education,
		NameSkills:    s.Skills,
		NameProjects:  s.Projects,
		NameHero:      s.Hero,
	}
	return s
}

// Mount mounts every section on client
func (s *Set) Mount(client feed.Client) error {
	return errors.Join(
		s.Hero.Mount(client),
		s.About.Mount(client),
		s.Skills.Mount(client),
		s.Education.Mount(client),
		s.Projects.Mount(client),
	)
}

// Close tears every section down
func (s *Set) Close() {
	s.Hero.Close()
	s.About.Close()
	s.Skills.Close()
	s.Education.Close()
	s.Projects.Close()
}

// Lookup finds a section by name
func (s *Set) Lookup(name string) (Viewer, bool) {
	v, ok := s.byName[name]
	return v, ok
}
