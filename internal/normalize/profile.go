package normalize

import (
	"encoding/json"

	"github.com/portfolio-content-api/internal/models"
)

// social links are stored under either key depending on the record's age
var socialKeys = []string{"socialMediaLinks", "Social Media"}

// About selects the first active profile. The second result is false when
// there is none; the returned record is then the fallback profile.
func (n *Normalizer) About(snap models.Snapshot) (models.AboutRecord, bool) {
	for _, r := range n.records(snap) {
		if r.status() != models.StatusActive {
			continue
		}
		return models.AboutRecord{
			ID:          r.id,
			Name:        firstNonEmpty(r.str("name"), n.defaults.OwnerName),
			Profession:  firstNonEmpty(r.str("profession"), n.defaults.Profession),
			Description: firstNonEmpty(r.str("description"), n.defaults.AboutDescription),
			Image:       firstNonEmpty(r.str("image"), n.defaults.ProfileImage),
			SocialMedia: n.socialInputs(snap.Path, r),
		}, true
	}

	n.log.Info().Str("path", snap.Path).Msg("No active about profile")
	return n.FallbackAbout(), false
}

// FallbackAbout is the profile rendered when no active record is available
func (n *Normalizer) FallbackAbout() models.AboutRecord {
	return models.AboutRecord{
		Name:        n.defaults.OwnerName,
		Profession:  n.defaults.Profession,
		Description: n.defaults.AboutDescription,
		Image:       n.defaults.ProfileImage,
		SocialMedia: []models.SocialLinkInput{},
	}
}

func (n *Normalizer) socialInputs(path string, r record) []models.SocialLinkInput {
	var items []models.Entry
	for _, key := range socialKeys {
		if r.has(key) {
			items = r.list(key)
			break
		}
	}

	out := make([]models.SocialLinkInput, 0, len(items))
	for _, item := range items {
		var url string
		if err := json.Unmarshal(item.Value, &url); err == nil {
			out = append(out, models.SocialLinkInput{URL: url})
			continue
		}
		var obj struct {
			ID    json.RawMessage `json:"id"`
			URL   json.RawMessage `json:"url"`
			Label json.RawMessage `json:"label"`
		}
		if err := json.Unmarshal(item.Value, &obj); err != nil {
			n.log.Warn().Str("path", path).Str("id", r.id).Str("index", item.Key).Msg("Dropping unreadable social link")
			continue
		}
		out = append(out, models.SocialLinkInput{
			ID:    rawString(obj.ID),
			URL:   rawString(obj.URL),
			Label: rawString(obj.Label),
		})
	}
	return out
}

// Homepage selects the first active hero record. The second result is false
// when there is none; the returned record is then the fallback hero.
func (n *Normalizer) Homepage(snap models.Snapshot) (models.HomepageRecord, bool) {
	for _, r := range n.records(snap) {
		if r.status() != models.StatusActive {
			continue
		}
		skills := r.strings("skills")
		if len(skills) == 0 {
			skills = n.Defaults().HeroSkills
		}
		return models.HomepageRecord{
			ID:          r.id,
			Customer:    firstNonEmpty(r.str("customer"), n.defaults.OwnerName),
			Description: firstNonEmpty(r.str("description"), n.defaults.HeroDescription),
			Images:      nonNil(r.strings("images")),
			Skills:      nonNil(skills),
		}, true
	}

	n.log.Info().Str("path", snap.Path).Msg("No active homepage record")
	return n.FallbackHomepage(), false
}

// FallbackHomepage is the hero rendered when no active record is available
func (n *Normalizer) FallbackHomepage() models.HomepageRecord {
	return models.HomepageRecord{
		Customer:    n.defaults.OwnerName,
		Description: n.defaults.HeroDescription,
		Images:      []string{},
		Skills:      nonNil(n.Defaults().HeroSkills),
	}
}
