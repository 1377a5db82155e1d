package normalize

import (
	"math"

	"github.com/portfolio-content-api/internal/models"
)

// Skills keeps active skills in document order with level clamped to 0..100
func (n *Normalizer) Skills(snap models.Snapshot) []models.SkillRecord {
	recs := n.records(snap)
	out := make([]models.SkillRecord, 0, len(recs))

	for _, r := range recs {
		if r.status() != models.StatusActive {
			continue
		}
		level, ok := r.number("level")
		if !ok && r.has("level") {
			n.log.Warn().Str("path", snap.Path).Str("id", r.id).Msg("Skill level is not a number, using 0")
		}
		out = append(out, models.SkillRecord{
			ID:    r.id,
			Name:  r.str("name"),
			Level: clampLevel(level),
		})
	}
	return out
}

// SkillIcons keeps active floating icons in document order
func (n *Normalizer) SkillIcons(snap models.Snapshot) []models.SkillIconRecord {
	recs := n.records(snap)
	out := make([]models.SkillIconRecord, 0, len(recs))

	for _, r := range recs {
		if r.status() != models.StatusActive {
			continue
		}
		out = append(out, models.SkillIconRecord{
			ID:   r.id,
			Icon: r.str("icon"),
			Pos:  r.stringMap("pos"),
		})
	}
	return out
}

func clampLevel(level float64) int {
	switch {
	case math.IsNaN(level) || level < 0:
		return 0
	case level > 100:
		return 100
	default:
		return int(math.Round(level))
	}
}
