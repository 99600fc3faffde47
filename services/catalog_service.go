package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"plush-store/models"
)

// CatalogFacade is the remote product source the coordinator pulls from.
type CatalogFacade interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// FilterProducts derives the visible subset of a catalog. A non-blank
// search term matches case-insensitively on the product name and takes
// precedence over the category selection entirely; otherwise category and
// subcategory are conjunctive, with a nil dimension meaning unfiltered.
func FilterProducts(products []models.Product, category, subcategory *string, search string) []models.Product {
	term := strings.TrimSpace(search)
	result := []models.Product{}

	if term != "" {
		lowered := strings.ToLower(term)
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), lowered) {
				result = append(result, p)
			}
		}
		return result
	}

	if category == nil && subcategory == nil {
		return append(result, products...)
	}

	for _, p := range products {
		if category != nil && p.Category != *category {
			continue
		}
		if subcategory != nil && (p.Subcategory == nil || *p.Subcategory != *subcategory) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// CatalogSession holds one session's filter selection and a snapshot of
// the catalog it filters. The selection is mutated directly by the filter
// handlers; the visible subset is recomputed on every read.
type CatalogSession struct {
	mu          sync.Mutex
	facade      CatalogFacade
	products    []models.Product
	category    *string
	subcategory *string
	search      string
	generation  uint64
	subscribers []func()
}

// NewCatalogSession loads the initial catalog synchronously. A facade
// failure is logged and leaves the session with an empty catalog, which
// renders as "nothing found" rather than an error.
func NewCatalogSession(ctx context.Context, facade CatalogFacade) *CatalogSession {
	s := &CatalogSession{facade: facade, products: []models.Product{}}

	products, err := facade.ListAll(ctx)
	if err != nil {
		log.Printf("[Catalog] Failed to load catalog: %v", err)
		return s
	}
	s.products = products
	return s
}

// Refresh reloads the catalog in the background. Rapid successive calls
// each bump the generation, and a fetch that completes after it has been
// superseded is dropped so stale results never overwrite newer ones.
func (s *CatalogSession) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go func() {
		products, err := s.facade.ListAll(ctx)
		if err != nil {
			log.Printf("[Catalog] Refresh failed, keeping previous catalog: %v", err)
			return
		}

		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			return
		}
		s.products = products
		subscribers := s.subscribers
		s.mu.Unlock()

		for _, fn := range subscribers {
			fn()
		}
	}()
}

// SetCategory replaces the selected category and resets the subcategory,
// since a subcategory only makes sense under its parent.
func (s *CatalogSession) SetCategory(category *string) {
	s.mu.Lock()
	s.category = category
	s.subcategory = nil
	subscribers := s.subscribers
	s.mu.Unlock()
	notify(subscribers)
}

// SetSubcategory selects a subcategory under the current category. It is
// ignored when no category is selected.
func (s *CatalogSession) SetSubcategory(subcategory *string) {
	s.mu.Lock()
	if s.category == nil {
		s.mu.Unlock()
		return
	}
	s.subcategory = subcategory
	subscribers := s.subscribers
	s.mu.Unlock()
	notify(subscribers)
}

func (s *CatalogSession) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	subscribers := s.subscribers
	s.mu.Unlock()
	notify(subscribers)
}

func (s *CatalogSession) Selection() (category, subcategory *string, search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category, s.subcategory, s.search
}

// Visible recomputes the filtered subset from the latest catalog and
// selection. No caching: the result always reflects current inputs.
func (s *CatalogSession) Visible() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterProducts(s.products, s.category, s.subcategory, s.search)
}

// Categories returns the distinct category values of the full catalog,
// independent of the current selection.
func (s *CatalogSession) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DistinctCategories(s.products)
}

// Subcategories returns the distinct non-nil subcategory values among
// products of the given category.
func (s *CatalogSession) Subcategories(category string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DistinctSubcategories(s.products, category)
}

func (s *CatalogSession) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func notify(subscribers []func()) {
	for _, fn := range subscribers {
		fn()
	}
}

func DistinctCategories(products []models.Product) []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

func DistinctSubcategories(products []models.Product, category string) []string {
	seen := map[string]bool{}
	subcategories := []string{}
	for _, p := range products {
		if p.Category != category || p.Subcategory == nil {
			continue
		}
		if !seen[*p.Subcategory] {
			seen[*p.Subcategory] = true
			subcategories = append(subcategories, *p.Subcategory)
		}
	}
	return subcategories
}

// CatalogService hands out one filter session per storefront session,
// mirroring how CartService scopes cart engines.
type CatalogService struct {
	mu       sync.Mutex
	facade   CatalogFacade
	sessions map[string]*CatalogSession
}

func NewCatalogService(facade CatalogFacade) *CatalogService {
	return &CatalogService{
		facade:   facade,
		sessions: make(map[string]*CatalogSession),
	}
}

func (s *CatalogService) Session(ctx context.Context, sessionID string) *CatalogSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := NewCatalogSession(ctx, s.facade)
	s.sessions[sessionID] = session
	return session
}
