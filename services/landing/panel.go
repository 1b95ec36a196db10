// File: services/landing/panel.go
package landing

import (
	"context"
	"strings"
	"sync"

	"bookview/models"
	"bookview/services/geocode"

	"go.uber.org/zap"
)

// Catalog is the slice of the REST client the landing page needs.
type Catalog interface {
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	AISearch(ctx context.Context, query string) ([]models.Business, error)
}

// Page-level failure banners.
const (
	msgLoadFailed   = "We couldn't load the businesses right now. Please try again later."
	msgSearchFailed = "The search service is unavailable. Please try again."
)

// searchZoom is applied when a search re-centers the map on its first result.
const searchZoom = 15

// state is one snapshot of the panel. Transitions build a fresh snapshot
// from the previous one and publish it with a single assignment; a
// published state is never mutated.
type state struct {
	businesses []models.Business
	categories []models.Category
	pins       []models.GeocodedPin

	filter   models.Filter
	visible  []models.Business
	viewport models.Viewport
	selected string

	loading bool
	err     string
}

func (s *state) clone() *state {
	next := *s
	return &next
}

// Panel owns the landing page's search-and-map state for one session.
type Panel struct {
	catalog  Catalog
	geocoder geocode.Geocoder
	logger   *zap.Logger
	navigate models.NavigateFunc

	defaultView models.Viewport

	mu    sync.Mutex
	state *state
}

func NewPanel(catalog Catalog, geocoder geocode.Geocoder, defaultView models.Viewport, navigate models.NavigateFunc, logger *zap.Logger) *Panel {
	return &Panel{
		catalog:     catalog,
		geocoder:    geocoder,
		logger:      logger,
		navigate:    navigate,
		defaultView: defaultView,
		state: &state{
			filter:   models.AllFilter(),
			viewport: defaultView,
			loading:  true,
		},
	}
}

// Load fetches the business and category catalogs concurrently and, once
// both arrive, geocodes every business address. Either catalog failing
// leaves the page in an error state with nothing rendered.
func (p *Panel) Load(ctx context.Context) {
	var (
		wg         sync.WaitGroup
		businesses []models.Business
		categories []models.Category
		bizErr     error
		catErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		businesses, bizErr = p.catalog.ListBusinesses(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = p.catalog.ListCategories(ctx)
	}()
	wg.Wait()

	if bizErr != nil || catErr != nil {
		p.logger.Error("Initial catalog load failed",
			zap.NamedError("businesses", bizErr), zap.NamedError("categories", catErr))
		p.mu.Lock()
		next := p.state.clone()
		next.loading = false
		next.err = msgLoadFailed
		p.state = next
		p.mu.Unlock()
		return
	}

	pins := p.resolvePins(ctx, businesses)

	p.mu.Lock()
	next := p.state.clone()
	next.businesses = businesses
	next.categories = categories
	next.pins = pins
	next.filter = models.AllFilter()
	next.visible = businesses
	next.viewport = p.defaultView
	next.loading = false
	next.err = ""
	p.state = next
	p.mu.Unlock()
}

// SelectCategory applies or clears the category filter. Choosing the
// already-selected category again returns to the full catalog; any active
// query is dropped and the map resets to the default region.
func (p *Panel) SelectCategory(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	next := s.clone()
	if s.filter.Kind == models.FilterCategory && s.filter.Category == name {
		next.filter = models.AllFilter()
		next.visible = s.businesses
	} else {
		next.filter = models.CategoryFilter(name)
		visible := make([]models.Business, 0, len(s.businesses))
		for _, b := range s.businesses {
			if b.HasCategory(name) {
				visible = append(visible, b)
			}
		}
		next.visible = visible
	}
	next.viewport = p.defaultView
	next.selected = ""
	next.err = ""
	p.state = next
}

// Search runs the backend's free-text search, clearing any category
// filter. A blank query restores the full catalog and default viewport
// without a network call. A failed search surfaces a banner and leaves the
// previous filter state untouched.
func (p *Panel) Search(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		p.mu.Lock()
		next := p.state.clone()
		next.filter = models.AllFilter()
		next.visible = next.businesses
		next.viewport = p.defaultView
		next.selected = ""
		next.err = ""
		p.state = next
		p.mu.Unlock()
		return
	}

	results, err := p.catalog.AISearch(ctx, trimmed)
	if err != nil {
		p.logger.Error("Search request failed", zap.String("query", trimmed), zap.Error(err))
		p.mu.Lock()
		next := p.state.clone()
		next.err = msgSearchFailed
		p.state = next
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.state.clone()
	next.filter = models.QueryFilter(trimmed)
	next.visible = results
	next.viewport = p.defaultView
	next.selected = ""
	next.err = ""
	if len(results) > 0 {
		first := results[0]
		next.selected = first.ID
		if pin, ok := findPin(next.pins, first.ID); ok {
			next.viewport = models.Viewport{Lat: pin.Lat, Lng: pin.Lng, Zoom: searchZoom}
		}
	}
	p.state = next
}

// SelectPin opens the detail overlay for a visible business. It reports
// whether the business is currently visible.
func (p *Panel) SelectPin(businessID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, b := range p.state.visible {
		if b.ID == businessID {
			next := p.state.clone()
			next.selected = businessID
			p.state = next
			return true
		}
	}
	return false
}

// ClearSelection closes the detail overlay. Filter and lists are untouched.
func (p *Panel) ClearSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.state.clone()
	next.selected = ""
	p.state = next
}

// ViewDetails navigates the host application to the business detail page.
func (p *Panel) ViewDetails(businessID string) {
	if p.navigate != nil {
		p.navigate(models.PageBusinessDetail, businessID)
	}
}

// View is the render-ready projection of the panel state.
type View struct {
	Businesses []models.Business    `json:"businesses"`
	Categories []models.Category    `json:"categories"`
	Pins       []models.GeocodedPin `json:"pins"`
	Filter     models.Filter        `json:"filter"`
	Viewport   models.Viewport      `json:"viewport"`
	SelectedID string               `json:"selected_id,omitempty"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
}

// View snapshots the current state. Pins are recomputed from the visible
// subset on every call rather than stored, so the map can never drift from
// the filter.
func (p *Panel) View() View {
	p.mu.Lock()
	s := p.state
	p.mu.Unlock()

	return View{
		Businesses: s.visible,
		Categories: s.categories,
		Pins:       visiblePins(s.visible, s.pins),
		Filter:     s.filter,
		Viewport:   s.viewport,
		SelectedID: s.selected,
		Loading:    s.loading,
		Error:      s.err,
	}
}
