package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, profile, document string) error {
	args := m.Called(ctx, profile, document)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func TestCachedStore_LoadHitsBackingStoreOnce(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Load", ctx, "ue").Return(`{"money":1}`, nil).Once()

	c := NewCachedStore(backing, 4, time.Minute)

	for i := 0; i < 3; i++ {
		doc, err := c.Load(ctx, "ue")
		require.NoError(t, err)
		assert.Equal(t, `{"money":1}`, doc)
	}
	backing.AssertExpectations(t)
}

func TestCachedStore_SaveWritesThrough(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Save", ctx, "ue", `{"money":2}`).Return(nil).Once()

	c := NewCachedStore(backing, 4, time.Minute)
	require.NoError(t, c.Save(ctx, "ue", `{"money":2}`))

	doc, err := c.Load(ctx, "ue")
	require.NoError(t, err)
	assert.Equal(t, `{"money":2}`, doc)
	backing.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestCachedStore_FailedSaveEvicts(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Save", ctx, "ue", `{"money":1}`).Return(nil).Once()
	backing.On("Save", ctx, "ue", `{"money":2}`).Return(errors.New("disk full")).Once()
	backing.On("Load", ctx, "ue").Return(`{"money":1}`, nil).Once()

	c := NewCachedStore(backing, 4, time.Minute)
	require.NoError(t, c.Save(ctx, "ue", `{"money":1}`))
	require.Error(t, c.Save(ctx, "ue", `{"money":2}`))
	assert.Equal(t, 0, c.Len())

	doc, err := c.Load(ctx, "ue")
	require.NoError(t, err)
	assert.Equal(t, `{"money":1}`, doc)
	backing.AssertExpectations(t)
}

func TestCachedStore_NotFoundNotCached(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Load", ctx, "ghost").Return("", domain.ErrProfileNotFound).Twice()

	c := NewCachedStore(backing, 4, time.Minute)
	for i := 0; i < 2; i++ {
		_, err := c.Load(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	}
	backing.AssertExpectations(t)
}

func TestCachedStore_StaleVersionInvalidated(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Load", ctx, "ue").Return(`{"money":5}`, nil).Once()

	c := NewCachedStore(backing, 4, time.Minute)
	c.lru.Add("ue", &cachedEntry{Version: "0.9", Document: `{"money":0}`, CachedAt: time.Now()})

	doc, err := c.Load(ctx, "ue")
	require.NoError(t, err)
	assert.Equal(t, `{"money":5}`, doc)
	backing.AssertExpectations(t)
}

func TestCachedStore_Expiry(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Load", ctx, "ue").Return(`{}`, nil).Twice()

	c := NewCachedStore(backing, 4, 20*time.Millisecond)
	_, err := c.Load(ctx, "ue")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = c.Load(ctx, "ue")
	require.NoError(t, err)
	backing.AssertExpectations(t)
}

func TestCachedStore_InvalidateAndClose(t *testing.T) {
	ctx := context.Background()
	backing := new(MockStore)
	backing.On("Save", ctx, "ue", "{}").Return(nil)
	backing.On("Close").Return(nil).Once()

	c := NewCachedStore(backing, 4, time.Minute)
	require.NoError(t, c.Save(ctx, "ue", "{}"))
	assert.Equal(t, 1, c.Len())

	c.Invalidate("ue")
	assert.Equal(t, 0, c.Len())

	backing.On("Ping", ctx).Return(nil).Once()
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Close())
	backing.AssertExpectations(t)
}

// gatedStore reports each call on entered and holds it until release
// receives a value
type gatedStore struct {
	mu      sync.Mutex
	doc     string
	entered chan string
	release chan struct{}
}

func newGatedStore(doc string) *gatedStore {
	return &gatedStore{doc: doc, entered: make(chan string, 4), release: make(chan struct{})}
}

func (g *gatedStore) Load(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	doc := g.doc
	g.mu.Unlock()
	g.entered <- "load"
	<-g.release
	return doc, nil
}

func (g *gatedStore) Save(_ context.Context, _ string, document string) error {
	g.entered <- "save " + document
	<-g.release
	g.mu.Lock()
	g.doc = document
	g.mu.Unlock()
	return nil
}

func (g *gatedStore) Ping(context.Context) error { return nil }
func (g *gatedStore) Close() error               { return nil }

func (g *gatedStore) current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.doc
}

// assertNoCallEntered fails if the backing store sees a call within the wait
func assertNoCallEntered(t *testing.T, g *gatedStore) {
	t.Helper()
	select {
	case call := <-g.entered:
		t.Fatalf("backing store entered %q while the profile was locked", call)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCachedStore_ConcurrentSavesKeepLastWrite(t *testing.T) {
	ctx := context.Background()
	backing := newGatedStore("")
	c := NewCachedStore(backing, 4, time.Minute)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Save(ctx, "ue", "A"))
	}()
	require.Equal(t, "save A", <-backing.entered)

	go func() {
		defer wg.Done()
		assert.NoError(t, c.Save(ctx, "ue", "B"))
	}()
	assertNoCallEntered(t, backing)

	backing.release <- struct{}{}
	require.Equal(t, "save B", <-backing.entered)
	backing.release <- struct{}{}
	wg.Wait()

	doc, err := c.Load(ctx, "ue")
	require.NoError(t, err)
	assert.Equal(t, "B", backing.current())
	assert.Equal(t, "B", doc)
}

func TestCachedStore_LoadMissDoesNotOverwriteConcurrentSave(t *testing.T) {
	ctx := context.Background()
	backing := newGatedStore("A")
	c := NewCachedStore(backing, 4, time.Minute)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		doc, err := c.Load(ctx, "ue")
		assert.NoError(t, err)
		assert.Equal(t, "A", doc)
	}()
	require.Equal(t, "load", <-backing.entered)

	go func() {
		defer wg.Done()
		assert.NoError(t, c.Save(ctx, "ue", "B"))
	}()
	assertNoCallEntered(t, backing)

	backing.release <- struct{}{}
	require.Equal(t, "save B", <-backing.entered)
	backing.release <- struct{}{}
	wg.Wait()

	doc, err := c.Load(ctx, "ue")
	require.NoError(t, err)
	assert.Equal(t, "B", doc)
}
