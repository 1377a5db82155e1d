package normalize

import (
	"sort"

	"github.com/portfolio-content-api/internal/models"
)

// Projects keeps every project not marked unActive, most viewed first.
// Missing or unreadable views count as 0 and ties keep document order.
func (n *Normalizer) Projects(snap models.Snapshot) []models.ProjectRecord {
	recs := n.records(snap)
	out := make([]models.ProjectRecord, 0, len(recs))

	for _, r := range recs {
		if r.status() == models.StatusUnActive {
			continue
		}
		views, ok := r.number("views")
		if !ok && r.has("views") {
			n.log.Warn().Str("path", snap.Path).Str("id", r.id).Msg("Project views is not a number, using 0")
		}
		if !ok || views < 0 {
			views = 0
		}
		out = append(out, models.ProjectRecord{
			ID:          r.id,
			Title:       r.str("title"),
			Description: r.str("description"),
			Image:       firstNonEmpty(r.str("image"), n.defaults.ProjectImage),
			TechStack:   nonNil(r.strings("techStack")),
			GitHub:      r.str("github"),
			Live:        r.str("live"),
			Views:       views,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Views > out[j].Views
	})
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
