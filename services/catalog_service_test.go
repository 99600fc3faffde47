package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plush-store/models"
)

func strptr(s string) *string { return &s }

func testCatalog() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Pelúcia Stitch", Category: "Personagens", Subcategory: strptr("Stitch")},
		{ID: "2", Name: "Pelúcia Angel", Category: "Personagens", Subcategory: strptr("Stitch")},
		{ID: "3", Name: "Pelúcia Homem-Aranha", Category: "Personagens", Subcategory: strptr("Marvel")},
		{ID: "4", Name: "Urso Gigante 1,2m", Category: "Gigantes"},
		{ID: "5", Name: "Capivara Deitada", Category: "Animais"},
	}
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFilterProducts_NoSelectionReturnsAll(t *testing.T) {
	result := FilterProducts(testCatalog(), nil, nil, "")
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, productIDs(result))
}

func TestFilterProducts_CategoryOnly(t *testing.T) {
	result := FilterProducts(testCatalog(), strptr("Personagens"), nil, "")
	assert.Equal(t, []string{"1", "2", "3"}, productIDs(result))
}

func TestFilterProducts_CategoryAndSubcategory(t *testing.T) {
	result := FilterProducts(testCatalog(), strptr("Personagens"), strptr("Marvel"), "")
	assert.Equal(t, []string{"3"}, productIDs(result))
}

func TestFilterProducts_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	result := FilterProducts(testCatalog(), nil, nil, "ANGEL")
	assert.Equal(t, []string{"2"}, productIDs(result))

	result = FilterProducts(testCatalog(), nil, nil, "  capivara ")
	assert.Equal(t, []string{"5"}, productIDs(result))
}

func TestFilterProducts_SearchWinsOverCategory(t *testing.T) {
	withCategory := FilterProducts(testCatalog(), strptr("Gigantes"), nil, "stitch")
	withoutCategory := FilterProducts(testCatalog(), nil, nil, "stitch")
	assert.Equal(t, productIDs(withoutCategory), productIDs(withCategory))
	assert.Equal(t, []string{"1"}, productIDs(withCategory))
}

func TestFilterProducts_BlankSearchFallsThrough(t *testing.T) {
	result := FilterProducts(testCatalog(), strptr("Gigantes"), nil, "   ")
	assert.Equal(t, []string{"4"}, productIDs(result))
}

func TestFilterProducts_Idempotent(t *testing.T) {
	catalog := testCatalog()
	first := FilterProducts(catalog, strptr("Personagens"), strptr("Stitch"), "")
	second := FilterProducts(catalog, strptr("Personagens"), strptr("Stitch"), "")
	assert.Equal(t, first, second)
}

func TestFilterProducts_NoMatchesIsEmptyNotNil(t *testing.T) {
	result := FilterProducts(testCatalog(), nil, nil, "dinossauro")
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestDistinctCategories(t *testing.T) {
	assert.Equal(t, []string{"Personagens", "Gigantes", "Animais"}, DistinctCategories(testCatalog()))
}

func TestDistinctSubcategories(t *testing.T) {
	assert.Equal(t, []string{"Stitch", "Marvel"}, DistinctSubcategories(testCatalog(), "Personagens"))
	assert.Empty(t, DistinctSubcategories(testCatalog(), "Gigantes"))
}

type stubFacade struct {
	products []models.Product
	err      error
}

func (f *stubFacade) ListAll(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func TestCatalogSession_PersonagensScenario(t *testing.T) {
	session := NewCatalogSession(context.Background(), &stubFacade{products: testCatalog()})

	session.SetCategory(strptr("Personagens"))
	visible := session.Visible()

	require.Len(t, visible, 3)
	for _, p := range visible {
		assert.Equal(t, "Personagens", p.Category)
	}
}

func TestCatalogSession_ChangingCategoryResetsSubcategory(t *testing.T) {
	session := NewCatalogSession(context.Background(), &stubFacade{products: testCatalog()})

	session.SetCategory(strptr("Personagens"))
	session.SetSubcategory(strptr("Marvel"))
	assert.Equal(t, []string{"3"}, productIDs(session.Visible()))

	session.SetCategory(strptr("Gigantes"))
	_, subcategory, _ := session.Selection()
	assert.Nil(t, subcategory)
	assert.Equal(t, []string{"4"}, productIDs(session.Visible()))
}

func TestCatalogSession_SubcategoryWithoutCategoryIgnored(t *testing.T) {
	session := NewCatalogSession(context.Background(), &stubFacade{products: testCatalog()})

	session.SetSubcategory(strptr("Marvel"))
	_, subcategory, _ := session.Selection()
	assert.Nil(t, subcategory)
	assert.Len(t, session.Visible(), 5)
}

func TestCatalogSession_SearchPrecedenceOverSelection(t *testing.T) {
	session := NewCatalogSession(context.Background(), &stubFacade{products: testCatalog()})

	session.SetSearch("angel")
	before := productIDs(session.Visible())

	session.SetCategory(strptr("Gigantes"))
	session.SetSubcategory(strptr("qualquer"))
	assert.Equal(t, before, productIDs(session.Visible()))
}

func TestCatalogSession_FailedLoadRendersEmpty(t *testing.T) {
	session := NewCatalogSession(context.Background(), &stubFacade{err: errors.New("network down")})

	visible := session.Visible()
	require.NotNil(t, visible)
	assert.Empty(t, visible)
}

// gatedFacade serves the constructor's initial load immediately and
// parks every later fetch until the test releases it, so completion
// order can be forced.
type gatedFacade struct {
	initial []models.Product

	mu          sync.Mutex
	initialDone bool
	pending     []chan []models.Product
	started     chan struct{}
}

func newGatedFacade(initial []models.Product) *gatedFacade {
	return &gatedFacade{initial: initial, started: make(chan struct{}, 16)}
}

func (f *gatedFacade) ListAll(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	if !f.initialDone {
		f.initialDone = true
		f.mu.Unlock()
		return f.initial, nil
	}
	gate := make(chan []models.Product, 1)
	f.pending = append(f.pending, gate)
	f.mu.Unlock()

	f.started <- struct{}{}
	return <-gate, nil
}

func (f *gatedFacade) release(index int, products []models.Product) {
	f.mu.Lock()
	gate := f.pending[index]
	f.mu.Unlock()
	gate <- products
}

func TestCatalogSession_StaleRefreshDropped(t *testing.T) {
	facade := newGatedFacade(testCatalog())
	session := NewCatalogSession(context.Background(), facade)

	newer := []models.Product{{ID: "new", Name: "Pelúcia Nova", Category: "Personagens"}}
	older := []models.Product{{ID: "old", Name: "Pelúcia Velha", Category: "Personagens"}}

	session.Refresh(context.Background())
	<-facade.started
	session.Refresh(context.Background())
	<-facade.started

	// The newest refresh completes first and wins.
	facade.release(1, newer)
	require.Eventually(t, func() bool {
		visible := session.Visible()
		return len(visible) == 1 && visible[0].ID == "new"
	}, time.Second, 5*time.Millisecond)

	// The superseded fetch completes late and must be dropped.
	facade.release(0, older)
	time.Sleep(50 * time.Millisecond)
	visible := session.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "new", visible[0].ID)
}

func TestCatalogSession_FailedRefreshKeepsPreviousCatalog(t *testing.T) {
	facade := &stubFacade{products: testCatalog()}
	session := NewCatalogSession(context.Background(), facade)

	facade.err = errors.New("network down")
	facade.products = nil
	session.Refresh(context.Background())

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, session.Visible(), 5)
}

func TestCatalogService_SessionPerID(t *testing.T) {
	service := NewCatalogService(&stubFacade{products: testCatalog()})
	ctx := context.Background()

	first := service.Session(ctx, "session-1")
	first.SetCategory(strptr("Gigantes"))

	again := service.Session(ctx, "session-1")
	assert.Same(t, first, again)

	other := service.Session(ctx, "session-2")
	category, _, _ := other.Selection()
	assert.Nil(t, category)
}
