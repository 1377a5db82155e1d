// Package view derives presentation-ready values from normalized records
package view

import (
	"fmt"
	"strings"

	"github.com/portfolio-content-api/internal/models"
)

// SocialLabel is the closed set of social platforms a link can resolve to
type SocialLabel string

const (
	SocialBehance   SocialLabel = "behance"
	SocialDribbble  SocialLabel = "dribbble"
	SocialTwitter   SocialLabel = "twitter"
	SocialInstagram SocialLabel = "instagram"
	SocialLinkedIn  SocialLabel = "linkedin"
	SocialGitHub    SocialLabel = "github"
	SocialLink      SocialLabel = "link"
)

// SocialLabels lists every label, in inference priority order
var SocialLabels = []SocialLabel{
	SocialBehance,
	SocialDribbble,
	SocialTwitter,
	SocialInstagram,
	SocialLinkedIn,
	SocialGitHub,
	SocialLink,
}

// domains checked in order; the first match wins
var socialDomains = []struct {
	label   SocialLabel
	domains []string
}{
	{SocialBehance, []string{"behance.net"}},
	{SocialDribbble, []string{"dribbble.com"}},
	{SocialTwitter, []string{"twitter.com", "x.com"}},
	{SocialInstagram, []string{"instagram.com"}},
	{SocialLinkedIn, []string{"linkedin.com"}},
	{SocialGitHub, []string{"github.com"}},
}

// InferSocialLabel matches known platform domains in url. Any input,
// including the empty string, yields a label.
func InferSocialLabel(url string) SocialLabel {
	normalized := strings.ToLower(url)
	for _, candidate := range socialDomains {
		for _, domain := range candidate.domains {
			if strings.Contains(normalized, domain) {
				return candidate.label
			}
		}
	}
	return SocialLink
}

// ParseSocialLabel maps free text onto a label; unknown text is SocialLink
func ParseSocialLabel(s string) SocialLabel {
	switch l := SocialLabel(strings.ToLower(strings.TrimSpace(s))); l {
	case SocialBehance, SocialDribbble, SocialTwitter, SocialInstagram, SocialLinkedIn, SocialGitHub:
		return l
	default:
		return SocialLink
	}
}

// Icon returns the icon token of the label
func (l SocialLabel) Icon() string {
	switch l {
	case SocialBehance:
		return "FaBehance"
	case SocialDribbble:
		return "FaDribbble"
	case SocialTwitter:
		return "FaTwitter"
	case SocialInstagram:
		return "FaInstagram"
	case SocialLinkedIn:
		return "FaLinkedin"
	case SocialGitHub:
		return "FaGithub"
	default:
		return "FaLink"
	}
}

// SocialLinks resolves stored social entries. An explicit label wins over
// the inferred one; entries without a URL are dropped.
func SocialLinks(raw []models.SocialLinkInput) []models.SocialLink {
	out := make([]models.SocialLink, 0, len(raw))
	for i, in := range raw {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			continue
		}
		label := InferSocialLabel(url)
		if strings.TrimSpace(in.Label) != "" {
			label = ParseSocialLabel(in.Label)
		}
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("social-%d", i)
		}
		out = append(out, models.SocialLink{
			ID:    id,
			URL:   url,
			Label: string(label),
			Icon:  label.Icon(),
		})
	}
	return out
}
