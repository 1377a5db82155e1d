package section

import (
	"context"
	"time"

	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/normalize"
	"github.com/portfolio-content-api/internal/view"
	"github.com/rs/zerolog"
)

type heroData struct {
	record  models.HomepageRecord
	rotator *view.Rotator
}

// Hero is the landing section: the active homepage record plus an image
// rotator that is replaced on every snapshot
type Hero struct {
	s           *Section[heroData]
	placeholder string
}

// NewHero builds the hero section. Images rotate every interval.
func NewHero(path string, n *normalize.Normalizer, interval time.Duration, log zerolog.Logger) *Hero {
	h := &Hero{placeholder: n.Defaults().HeroPlaceholder}

	newData := func(rec models.HomepageRecord) heroData {
		r := view.NewRotator(rec.Images, h.placeholder)
		r.OnChange(func(int) { h.s.Notify() })
		r.Start(context.Background(), interval)
		return heroData{record: rec, rotator: r}
	}

	h.s = New(Options[heroData]{
		Name:    NameHero,
		Initial: heroData{record: n.FallbackHomepage(), rotator: view.NewRotator(nil, h.placeholder)},
		Feeds: []Feed[heroData]{{
			Path: path,
			Apply: func(prev heroData, snap models.Snapshot) (heroData, models.SectionStatus) {
				prev.rotator.Stop()
				rec, active := n.Homepage(snap)
				if !active {
					return newData(rec), models.SectionInactive
				}
				return newData(rec), models.SectionActive
			},
		}},
		ErrorMessage: func(error) string {
			return "Failed to load portfolio data"
		},
		ErrorData: func(prev heroData) heroData {
			prev.rotator.Stop()
			return heroData{record: n.FallbackHomepage(), rotator: view.NewRotator(nil, h.placeholder)}
		},
		OnClose: func(data heroData) {
			data.rotator.Stop()
		},
	}, log)

	return h
}

func (h *Hero) Name() string { return h.s.Name() }

// Mount subscribes to the homepage feed
func (h *Hero) Mount(client feed.Client) error { return h.s.Mount(client) }

// Close cancels the subscription and stops the rotator
func (h *Hero) Close() { h.s.Close() }

func (h *Hero) Watch() (<-chan struct{}, func()) { return h.s.Watch() }

func (h *Hero) View(Query) any { return h.State() }

// State returns the hero view with the currently displayed image
func (h *Hero) State() models.SectionState[models.HeroView] {
	return heroView(h.s.State())
}

// FailImage reports that the image at index failed to load and returns the
// updated view
func (h *Hero) FailImage(index int) models.SectionState[models.HeroView] {
	if h.s.isClosed() {
		return h.State()
	}
	st := h.s.State()
	st.Data.rotator.Fail(index)
	return heroView(h.s.State())
}

func heroView(st models.SectionState[heroData]) models.SectionState[models.HeroView] {
	idx, current := st.Data.rotator.Current()
	rec := st.Data.record
	return models.SectionState[models.HeroView]{
		Section: st.Section,
		Status:  st.Status,
		Error:   st.Error,
		Data: models.HeroView{
			Customer:     rec.Customer,
			Description:  rec.Description,
			Skills:       rec.Skills,
			Images:       st.Data.rotator.Images(),
			CurrentIndex: idx,
			CurrentImage: current,
			Rotating:     st.Data.rotator.Rotating(),
		},
	}
}
