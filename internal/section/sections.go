package section

import (
	"fmt"

	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/normalize"
	"github.com/portfolio-content-api/internal/view"
	"github.com/rs/zerolog"
)

// Section names as exposed over HTTP
const (
	NameAbout     = "about"
	NameEducation = "education"
	NameSkills    = "skills"
	NameProjects  = "projects"
	NameHero      = "hero"
)

// Names lists the sections in page order
var Names = []string{NameHero, NameAbout, NameSkills, NameEducation, NameProjects}

// Query narrows a section view
type Query struct {
	Page int
}

// Viewer is the read side shared by every section
type Viewer interface {
	Name() string
	View(q Query) any
	Watch() (<-chan struct{}, func())
}

// View returns the current state
func (s *Section[V]) View(Query) any {
	return s.State()
}

// NewAbout builds the About section. No active profile is the inactive
// state, and both inactive and error keep a fallback profile.
func NewAbout(path string, n *normalize.Normalizer, log zerolog.Logger) *Section[models.AboutView] {
	fallback := aboutView(n.FallbackAbout())
	return New(Options[models.AboutView]{
		Name:    NameAbout,
		Initial: fallback,
		Feeds: []Feed[models.AboutView]{{
			Path: path,
			Apply: func(_ models.AboutView, snap models.Snapshot) (models.AboutView, models.SectionStatus) {
				rec, active := n.About(snap)
				if !active {
					return aboutView(rec), models.SectionInactive
				}
				return aboutView(rec), models.SectionActive
			},
		}},
		ErrorMessage: func(err error) string {
			return fmt.Sprintf("Failed to load content: %v", err)
		},
		ErrorData: func(models.AboutView) models.AboutView {
			v := fallback
			v.Description = "Failed to load description"
			return v
		},
	}, log)
}

func aboutView(rec models.AboutRecord) models.AboutView {
	return models.AboutView{
		Name:        rec.Name,
		Profession:  rec.Profession,
		Description: rec.Description,
		Image:       rec.Image,
		SocialLinks: view.SocialLinks(rec.SocialMedia),
	}
}

// NewEducation builds the education timeline section
func NewEducation(path string, n *normalize.Normalizer, log zerolog.Logger) *Section[models.EducationView] {
	return New(Options[models.EducationView]{
		Name:    NameEducation,
		Initial: models.EducationView{Items: []models.EducationRecord{}},
		Feeds: []Feed[models.EducationView]{{
			Path: path,
			Apply: func(_ models.EducationView, snap models.Snapshot) (models.EducationView, models.SectionStatus) {
				return models.EducationView{Items: n.Education(snap)}, models.SectionActive
			},
		}},
		ErrorMessage: func(error) string {
			return "Failed to load education data. Please try again later."
		},
	}, log)
}

// NewSkills builds the skills section from the skill bars and the optional
// floating icons feed
func NewSkills(paths config.FeedPaths, n *normalize.Normalizer, log zerolog.Logger) *Section[models.SkillsView] {
	return New(Options[models.SkillsView]{
		Name:    NameSkills,
		Initial: models.SkillsView{Skills: []models.SkillRecord{}, Icons: []models.SkillIcon{}},
		Feeds: []Feed[models.SkillsView]{
			{
				Path: paths.Skills,
				Apply: func(data models.SkillsView, snap models.Snapshot) (models.SkillsView, models.SectionStatus) {
					data.Skills = n.Skills(snap)
					return data, models.SectionActive
				},
			},
			{
				Path:     paths.SkillIcons,
				Optional: true,
				Apply: func(data models.SkillsView, snap models.Snapshot) (models.SkillsView, models.SectionStatus) {
					data.Icons = view.SkillIcons(n.SkillIcons(snap))
					return data, models.SectionActive
				},
			},
		},
		ErrorMessage: func(error) string {
			return "Failed to load skills data. Please try again later."
		},
	}, log)
}

// Projects keeps the full normalized list and paginates on read
type Projects struct {
	*Section[[]models.ProjectRecord]
}

// NewProjects builds the projects section
func NewProjects(path string, n *normalize.Normalizer, log zerolog.Logger) *Projects {
	return &Projects{New(Options[[]models.ProjectRecord]{
		Name:    NameProjects,
		Initial: []models.ProjectRecord{},
		Feeds: []Feed[[]models.ProjectRecord]{{
			Path: path,
			Apply: func(_ []models.ProjectRecord, snap models.Snapshot) ([]models.ProjectRecord, models.SectionStatus) {
				return n.Projects(snap), models.SectionActive
			},
		}},
		ErrorMessage: func(error) string {
			return "Failed to load projects. Please try again later."
		},
	}, log)}
}

// Page projects one page of the current list. Out of range pages clamp.
func (p *Projects) Page(page int) models.SectionState[models.ProjectsView] {
	st := p.State()
	return models.SectionState[models.ProjectsView]{
		Section: st.Section,
		Status:  st.Status,
		Data:    view.ProjectCards(st.Data, page),
		Error:   st.Error,
	}
}

// View returns the requested page
func (p *Projects) View(q Query) any {
	return p.Page(q.Page)
}
