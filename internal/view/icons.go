package view

import "github.com/portfolio-content-api/internal/models"

var techIcons = map[string]string{
	"React":    "FaReact",
	"Node.js":  "FaNodeJs",
	"MongoDB":  "SiMongodb",
	"Express":  "SiExpress",
	"Firebase": "SiFirebase",
	"Tailwind": "SiTailwindcss",
	"PHP":      "FaPhp",
	"MySQL":    "SiMysql",
	"HTML5":    "FaHtml5",
	"CSS3":     "FaCss3Alt",
}

// skill icon records name their icon directly; only these are rendered
var skillIcons = map[string]bool{
	"SiFlutter":     true,
	"FaSketch":      true,
	"FaJsSquare":    true,
	"FaReact":       true,
	"FaCss3Alt":     true,
	"FaHtml5":       true,
	"SiTailwindcss": true,
	"FaPython":      true,
}

// TechIcon looks up the icon of a tech-stack name. Names are matched
// exactly; unknown names have no icon.
func TechIcon(name string) (string, bool) {
	icon, ok := techIcons[name]
	return icon, ok
}

// SkillIcon reports whether name is a renderable skill icon
func SkillIcon(name string) (string, bool) {
	if skillIcons[name] {
		return name, true
	}
	return "", false
}

// TechStack resolves every tech-stack name to a badge
func TechStack(names []string) []models.TechItem {
	out := make([]models.TechItem, 0, len(names))
	for _, name := range names {
		icon, _ := TechIcon(name)
		out = append(out, models.TechItem{Name: name, Icon: icon})
	}
	return out
}

// SkillIcons resolves floating icon records
func SkillIcons(recs []models.SkillIconRecord) []models.SkillIcon {
	out := make([]models.SkillIcon, 0, len(recs))
	for _, r := range recs {
		icon, _ := SkillIcon(r.Icon)
		out = append(out, models.SkillIcon{
			ID:   r.ID,
			Name: r.Icon,
			Icon: icon,
			Pos:  r.Pos,
		})
	}
	return out
}
