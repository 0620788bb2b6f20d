package cache

import (
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore captures every Forget and Flush for assertions.
type recordingStore struct {
	forgotten []string
	flushes   int
}

func (s *recordingStore) Remember(key string, ttl time.Duration, producer Producer) ([]byte, error) {
	return producer()
}

func (s *recordingStore) Forget(key string) error {
	s.forgotten = append(s.forgotten, key)
	return nil
}

func (s *recordingStore) Flush() error {
	s.flushes++
	return nil
}

func TestProductChangeForgetsLatestKeysThenFlushes(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return nil })

	inv.EntityChanged(EntityProduct, 1)

	assert.Len(t, store.forgotten, MaxLatestLimit)
	assert.Contains(t, store.forgotten, "products_latest_1")
	assert.Contains(t, store.forgotten, "products_latest_50")
	assert.Equal(t, 1, store.flushes)
}

func TestBlogChangeForgetsShowRelatedAndAllRelated(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return []int64{7, 8} })

	inv.EntityChanged(EntityBlog, 7)

	assert.Contains(t, store.forgotten, "blog_show_api_7")
	assert.Contains(t, store.forgotten, "blog_related_7")
	assert.Contains(t, store.forgotten, "blog_related_8")
	assert.Contains(t, store.forgotten, "blogs_latest_1")
	assert.Contains(t, store.forgotten, "blogs_latest_50")
	assert.Equal(t, 1, store.flushes)
}

func TestPrincipalChangeForgetsProductAndPrincipalKeys(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return nil })

	inv.EntityChanged(EntityPrincipal, 3)

	assert.Contains(t, store.forgotten, "products_latest_1")
	assert.Contains(t, store.forgotten, "products_featured_50")
	assert.Contains(t, store.forgotten, KeyPrincipals)
	assert.Contains(t, store.forgotten, KeyPrincipalsFeatured)
	assert.Contains(t, store.forgotten, "principal_3_products")
	assert.Equal(t, 1, store.flushes)
}

func TestHeroChangeForgetsFrontendKey(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return nil })

	inv.EntityChanged(EntityHero, 2)

	assert.Equal(t, []string{KeyHeroBackgrounds}, store.forgotten)
	assert.Equal(t, 1, store.flushes)
}

func TestUnknownEntityDoesNotFlush(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return nil })

	inv.EntityChanged("unknown", 1)

	assert.Empty(t, store.forgotten)
	assert.Equal(t, 0, store.flushes)
}

func TestBindSubscribesLifecycleTopics(t *testing.T) {
	store := &recordingStore{}
	inv := NewKeySetInvalidator(store, func() []int64 { return nil })

	bus := EventBus.New()
	require.NoError(t, inv.Bind(bus))

	bus.Publish(Topic(EntityProduct, "created"), int64(9))
	bus.WaitAsync()

	assert.Equal(t, 1, store.flushes)
	assert.Contains(t, store.forgotten, "products_latest_1")
}
