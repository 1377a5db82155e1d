package view

import "github.com/portfolio-content-api/internal/models"

// ProjectsPerPage is the fixed page size of the projects grid
const ProjectsPerPage = 6

// Page is a clamped window over a list of Total items
type Page struct {
	Number     int
	Size       int
	TotalPages int
	Total      int
	Start      int
	End        int
}

// Paginate clamps page into [1, TotalPages] and computes the [Start, End)
// bounds of that page. An empty list still has one (empty) page.
func Paginate(total, page, size int) Page {
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	switch {
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	return Page{
		Number:     page,
		Size:       size,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
	}
}

// Pagination converts the window into its view model
func (p Page) Pagination() models.Pagination {
	return models.Pagination{
		Page:       p.Number,
		PageSize:   p.Size,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		HasPrev:    p.Number > 1,
		HasNext:    p.Number < p.TotalPages,
	}
}

// ProjectCards projects one page of projects
func ProjectCards(recs []models.ProjectRecord, page int) models.ProjectsView {
	p := Paginate(len(recs), page, ProjectsPerPage)
	cards := make([]models.ProjectCard, 0, p.End-p.Start)
	for _, r := range recs[p.Start:p.End] {
		cards = append(cards, models.ProjectCard{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Image:       r.Image,
			TechStack:   TechStack(r.TechStack),
			GitHub:      r.GitHub,
			Live:        r.Live,
			Views:       r.Views,
		})
	}
	return models.ProjectsView{Projects: cards, Pagination: p.Pagination()}
}
