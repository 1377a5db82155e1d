package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/portfolio-content-api/internal/models"
)

const durationSeparator = " - "

var ongoingMarkers = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
}

// Education keeps active entries, most recent end year first. Ongoing
// entries sort ahead of every year; entries whose duration has no readable
// end year sort last, in document order.
func (n *Normalizer) Education(snap models.Snapshot) []models.EducationRecord {
	recs := n.records(snap)
	out := make([]models.EducationRecord, 0, len(recs))

	for _, r := range recs {
		if r.status() != models.StatusActive {
			continue
		}
		item := models.EducationRecord{
			ID:          r.id,
			Title:       r.str("title"),
			Institution: r.str("institution"),
			Duration:    r.str("duration"),
			Description: r.str("description"),
			Position:    r.str("position"),
		}
		item.EndYear, item.EndYearKind = ParseEndYear(item.Duration)
		if item.EndYearKind == models.EndYearMalformed {
			n.log.Warn().
				Str("path", snap.Path).
				Str("id", item.ID).
				Str("duration", item.Duration).
				Msg("Education duration has no end year, sorting last")
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := endYearRank(a.EndYearKind), endYearRank(b.EndYearKind); ra != rb {
			return ra < rb
		}
		if a.EndYearKind == models.EndYearKnown {
			return a.EndYear > b.EndYear
		}
		return false
	})

	for i := range out {
		if out[i].Position != "left" && out[i].Position != "right" {
			out[i].Position = "left"
			if i%2 == 1 {
				out[i].Position = "right"
			}
		}
	}

	return out
}

// ParseEndYear reads the end of a "<start> - <end>" duration. The end
// token's leading digits are the year, so "2023 (expected)" reads as 2023.
func ParseEndYear(duration string) (int, models.EndYearKind) {
	parts := strings.Split(duration, durationSeparator)
	if len(parts) < 2 {
		return 0, models.EndYearMalformed
	}
	end := strings.TrimSpace(parts[1])
	if ongoingMarkers[strings.ToLower(end)] {
		return 0, models.EndYearOngoing
	}

	digits := 0
	for digits < len(end) && end[digits] >= '0' && end[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, models.EndYearMalformed
	}
	year, err := strconv.Atoi(end[:digits])
	if err != nil {
		return 0, models.EndYearMalformed
	}
	return year, models.EndYearKnown
}

func endYearRank(kind models.EndYearKind) int {
	switch kind {
	case models.EndYearOngoing:
		return 0
	case models.EndYearKnown:
		return 1
	default:
		return 2
	}
}
