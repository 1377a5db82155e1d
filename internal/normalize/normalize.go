// Package normalize turns raw feed snapshots into filtered, sorted and
// fully defaulted records. Nothing here returns an error: shape problems
// degrade to the emptiest safe output and are logged.
package normalize

import (
	"github.com/portfolio-content-api/internal/config"
	"github.com/rs/zerolog"
)

// Defaults are substituted for missing display fields
type Defaults struct {
	OwnerName        string
	Profession       string
	AboutDescription string
	ProfileImage     string
	HeroDescription  string
	HeroSkills       []string
	HeroPlaceholder  string
	ProjectImage     string
}

// DefaultsFromConfig maps content configuration onto Defaults
func DefaultsFromConfig(cfg config.ContentConfig) Defaults {
	return Defaults{
		OwnerName:        cfg.OwnerName,
		Profession:       cfg.Profession,
		AboutDescription: cfg.AboutDescription,
		ProfileImage:     cfg.ProfileImage,
		HeroDescription:  cfg.HeroDescription,
		HeroSkills:       append([]string(nil), cfg.HeroSkills...),
		HeroPlaceholder:  cfg.HeroPlaceholder,
		ProjectImage:     cfg.ProjectImage,
	}
}

// Normalizer holds the defaults and the diagnostic logger shared by the
// per-section functions
type Normalizer struct {
	defaults Defaults
	log      zerolog.Logger
}

// New creates a Normalizer
func New(defaults Defaults, log zerolog.Logger) *Normalizer {
	return &Normalizer{
		defaults: defaults,
		log:      log.With().Str("component", "normalizer").Logger(),
	}
}

// Defaults returns the configured fallback values
func (n *Normalizer) Defaults() Defaults {
	d := n.defaults
	d.HeroSkills = append([]string(nil), n.defaults.HeroSkills...)
	return d
}
