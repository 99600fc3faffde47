package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plush-store/models"
)

// memoryStore is safe for concurrent use, like the Redis-backed store it
// stands in for.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("quota exceeded")
}

var subcatStitch = "Stitch"

func stitch() models.Product {
	return models.Product{
		ID:          "a",
		Name:        "Pelúcia Stitch",
		Price:       89.90,
		Category:    "Personagens",
		Subcategory: &subcatStitch,
		Images:      []string{"stitch.webp"},
	}
}

func angel() models.Product {
	return models.Product{
		ID:       "b",
		Name:     "Pelúcia Angel",
		Price:    65.90,
		Category: "Personagens",
	}
}

func newTestEngine(t *testing.T) (*CartEngine, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	engine, err := NewCartEngine(context.Background(), store, "cart:test")
	require.NoError(t, err)
	return engine, store
}

func TestNewCartEngine_RequiresStore(t *testing.T) {
	_, err := NewCartEngine(context.Background(), nil, "cart:test")
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestNewCartEngine_MissingKeyStartsEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)
	assert.Empty(t, engine.Items())
	assert.Zero(t, engine.TotalPrice())
	assert.Zero(t, engine.TotalItemCount())
}

func TestNewCartEngine_CorruptSnapshotStartsEmpty(t *testing.T) {
	store := newMemoryStore()
	store.data["cart:test"] = "{not json"

	engine, err := NewCartEngine(context.Background(), store, "cart:test")
	require.NoError(t, err)
	assert.Empty(t, engine.Items())
}

func TestCartEngine_AddItem_RepeatedAddsIncrement(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		engine.AddItem(ctx, stitch())
	}

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartEngine_StitchAngelScenario(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	engine.AddItem(ctx, stitch())
	engine.AddItem(ctx, angel())
	engine.AddItem(ctx, angel())

	items := engine.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "b", items[1].Product.ID)
	assert.Equal(t, 2, items[1].Quantity)

	assert.InDelta(t, 221.70, engine.TotalPrice(), 0.001)
	assert.Equal(t, 3, engine.TotalItemCount())
}

func TestCartEngine_QuantityUpdatePreservesPosition(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	engine.AddItem(ctx, stitch())
	engine.AddItem(ctx, angel())
	engine.SetQuantity(ctx, "a", 7)

	items := engine.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, "b", items[1].Product.ID)
}

func TestCartEngine_SetQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		engine, _ := newTestEngine(t)
		ctx := context.Background()

		engine.AddItem(ctx, stitch())
		engine.AddItem(ctx, angel())
		engine.SetQuantity(ctx, "a", quantity)

		items := engine.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "b", items[0].Product.ID)

		// Re-adding goes to the end of current ordering, back at one unit.
		engine.AddItem(ctx, stitch())
		items = engine.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[1].Product.ID)
		assert.Equal(t, 1, items[1].Quantity)
	}
}

func TestCartEngine_SetQuantityUnknownProductIsNoop(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	engine.AddItem(ctx, stitch())
	engine.SetQuantity(ctx, "missing", 3)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Product.ID)
}

func TestCartEngine_RemoveItem(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	engine.AddItem(ctx, stitch())
	before := engine.TotalItemCount()
	engine.AddItem(ctx, angel())
	engine.RemoveItem(ctx, "b")

	assert.Equal(t, before, engine.TotalItemCount())

	// Removing an absent product is not an error.
	engine.RemoveItem(ctx, "b")
	assert.Equal(t, before, engine.TotalItemCount())
}

func TestCartEngine_Clear(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	engine.AddItem(ctx, stitch())
	engine.AddItem(ctx, angel())
	engine.Clear(ctx)

	assert.Empty(t, engine.Items())
	assert.Zero(t, engine.TotalPrice())
}

func TestCartEngine_SnapshotRoundTrip(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	engine, err := NewCartEngine(ctx, store, "cart:test")
	require.NoError(t, err)
	engine.AddItem(ctx, stitch())
	engine.AddItem(ctx, angel())
	engine.AddItem(ctx, angel())

	restored, err := NewCartEngine(ctx, store, "cart:test")
	require.NoError(t, err)
	assert.Equal(t, engine.Items(), restored.Items())
	assert.Equal(t, engine.TotalPrice(), restored.TotalPrice())
	assert.Equal(t, engine.TotalItemCount(), restored.TotalItemCount())
}

func TestCartEngine_FailingStoreDegradesToInMemory(t *testing.T) {
	engine, err := NewCartEngine(context.Background(), failingStore{}, "cart:test")
	require.NoError(t, err)

	ctx := context.Background()
	engine.AddItem(ctx, stitch())
	engine.AddItem(ctx, stitch())

	assert.Equal(t, 2, engine.TotalItemCount())
	assert.InDelta(t, 179.80, engine.TotalPrice(), 0.001)
}

func TestCartEngine_VisibilityFlag(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.False(t, engine.IsOpen())
	engine.Open()
	assert.True(t, engine.IsOpen())
	engine.Toggle()
	assert.False(t, engine.IsOpen())
	engine.Toggle()
	engine.Close()
	assert.False(t, engine.IsOpen())

	// The flag never touches the entries.
	assert.Empty(t, engine.Items())
}

func TestCartEngine_SubscribersNotifiedOnMutation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	notified := 0
	engine.Subscribe(func() { notified++ })

	engine.AddItem(ctx, stitch())
	engine.SetQuantity(ctx, "a", 3)
	engine.RemoveItem(ctx, "a")
	engine.Clear(ctx)

	assert.Equal(t, 4, notified)
}

func TestCartService_EnginePerSession(t *testing.T) {
	service, err := NewCartService(newMemoryStore())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := service.Engine(ctx, "session-1")
	require.NoError(t, err)
	first.AddItem(ctx, stitch())

	again, err := service.Engine(ctx, "session-1")
	require.NoError(t, err)
	assert.Same(t, first, again)

	other, err := service.Engine(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items())
}

// Two requests carrying the same session cookie are served on separate
// goroutines but share one engine, so mutations and reads must be safe
// to interleave. Run with -race.
func TestCartService_ConcurrentRequestsSameSession(t *testing.T) {
	service, err := NewCartService(newMemoryStore())
	require.NoError(t, err)
	ctx := context.Background()

	const workers = 2
	const addsPerWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine, err := service.Engine(ctx, "session-1")
			assert.NoError(t, err)
			for i := 0; i < addsPerWorker; i++ {
				engine.AddItem(ctx, stitch())
				_ = engine.TotalPrice()
				_ = engine.Items()
				engine.Toggle()
			}
		}()
	}
	wg.Wait()

	engine, err := service.Engine(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, workers*addsPerWorker, engine.TotalItemCount())

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, workers*addsPerWorker, items[0].Quantity)
}

func TestCartService_RequiresStore(t *testing.T) {
	_, err := NewCartService(nil)
	assert.ErrorIs(t, err, ErrNoStore)
}
