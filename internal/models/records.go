package models

// Status values used as the per-record visibility flag
const (
	StatusActive   = "active"
	StatusUnActive = "unActive"
)

// SocialLinkInput is a social entry as stored: either an object with
// id/url/label or a bare URL string.
type SocialLinkInput struct {
	ID    string
	URL   string
	Label string
}

// AboutRecord is the active profile of the About section
type AboutRecord struct {
	ID          string
	Name        string
	Profession  string
	Description string
	Image       string
	SocialMedia []SocialLinkInput
}

// EducationRecord is one entry of the education timeline
type EducationRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Position    string `json:"position"`
	// EndYear is the parsed second half of Duration; see EndYearKind
	EndYear     int         `json:"-"`
	EndYearKind EndYearKind `json:"-"`
}

// EndYearKind classifies how a duration's end year parsed
type EndYearKind int

const (
	EndYearMalformed EndYearKind = iota
	EndYearKnown
	EndYearOngoing
)

// SkillRecord is one skill bar
type SkillRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SkillIconRecord is one floating icon of the skills section
type SkillIconRecord struct {
	ID   string            `json:"id"`
	Icon string            `json:"icon"`
	Pos  map[string]string `json:"pos,omitempty"`
}

// ProjectRecord is one project card before projection
type ProjectRecord struct {
	ID          string
	Title       string
	Description string
	Image       string
	TechStack   []string
	GitHub      string
	Live        string
	Views       float64
}

// HomepageRecord is the active hero content
type HomepageRecord struct {
	ID          string
	Customer    string
	Description string
	Images      []string
	Skills      []string
}
