package models

// SectionStatus is the state of a section's pipeline
type SectionStatus string

const (
	SectionLoading  SectionStatus = "loading"
	SectionActive   SectionStatus = "active"
	SectionInactive SectionStatus = "inactive"
	SectionError    SectionStatus = "error"
)

// SectionState is what the render stage receives for a section. Data is
// always fully defaulted; it may be set for inactive and error states when
// the section renders a fallback.
type SectionState[V any] struct {
	Section string        `json:"section"`
	Status  SectionStatus `json:"status"`
	Data    V             `json:"data"`
	Error   string        `json:"error,omitempty"`
}

// SocialLink is a resolved social entry. URL is never empty.
type SocialLink struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// AboutView is the About section view model
type AboutView struct {
	Name        string       `json:"name"`
	Profession  string       `json:"profession"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	SocialLinks []SocialLink `json:"social_links"`
}

// EducationView is the education timeline
type EducationView struct {
	Items []EducationRecord `json:"items"`
}

// SkillIcon is a resolved floating icon. Icon is empty for unknown names.
type SkillIcon struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Icon string            `json:"icon,omitempty"`
	Pos  map[string]string `json:"pos,omitempty"`
}

// SkillsView is the Skills section view model
type SkillsView struct {
	Skills []SkillRecord `json:"skills"`
	Icons  []SkillIcon   `json:"icons"`
}

// TechItem is one tech-stack badge. Icon is empty for unknown technologies.
type TechItem struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ProjectCard is a projected project
type ProjectCard struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	TechStack   []TechItem `json:"tech_stack"`
	GitHub      string     `json:"github,omitempty"`
	Live        string     `json:"live,omitempty"`
	Views       float64    `json:"views"`
}

// Pagination describes the window of a paginated list
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// ProjectsView is one page of projects
type ProjectsView struct {
	Projects   []ProjectCard `json:"projects"`
	Pagination Pagination    `json:"pagination"`
}

// HeroView is the hero section view model
type HeroView struct {
	Customer     string   `json:"customer"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	Images       []string `json:"images"`
	CurrentIndex int      `json:"current_index"`
	CurrentImage string   `json:"current_image"`
	Rotating     bool     `json:"rotating"`
}
