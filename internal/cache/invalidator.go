package cache

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Entity names used in lifecycle event topics and invalidation policy.
const (
	EntityProduct      = "product"
	EntityBlog         = "blog"
	EntityPrincipal    = "principal"
	EntityAnnouncement = "announcement"
	EntityUser         = "user"
	EntityHero         = "hero_background"
)

var lifecycleActions = []string{"created", "updated", "deleted"}

// Topic returns the event bus topic for an entity lifecycle action.
func Topic(entity, action string) string {
	return entity + "." + action
}

// Invalidator keeps cached reads from diverging from persisted state after a
// mutation. Implementations may use smarter strategies (tag-based backends);
// call sites only ever see EntityChanged.
type Invalidator interface {
	EntityChanged(entity string, id int64)
}

// BlogIDLister returns the ids of all existing blogs. Needed because a content
// change in any blog can alter the "related" ranking of every other blog.
type BlogIDLister func() []int64

// KeySetInvalidator forgets the enumerated key set of the mutated entity for
// debuggability, then unconditionally flushes the store. The flush is the
// actual correctness mechanism: list-query keys are derived from hashed
// arbitrary parameters and cannot be enumerated.
type KeySetInvalidator struct {
	store   Store
	blogIDs BlogIDLister
}

// NewKeySetInvalidator creates the default invalidation strategy.
func NewKeySetInvalidator(store Store, blogIDs BlogIDLister) *KeySetInvalidator {
	return &KeySetInvalidator{store: store, blogIDs: blogIDs}
}

// Bind subscribes the invalidator to every lifecycle topic of the entities it
// covers. Handlers run synchronously in the publishing goroutine, after the
// mutation committed.
func (inv *KeySetInvalidator) Bind(bus EventBus.Bus) error {
	for _, entity := range []string{EntityProduct, EntityBlog, EntityPrincipal, EntityHero} {
		entity := entity
		for _, action := range lifecycleActions {
			if err := bus.Subscribe(Topic(entity, action), func(id int64) {
				inv.EntityChanged(entity, id)
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// EntityChanged applies the per-entity invalidation policy. The triggering
// write already succeeded, so failures are logged and swallowed; a stale read
// is then bounded by the TTL.
func (inv *KeySetInvalidator) EntityChanged(entity string, id int64) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("cache invalidation panic for %s %d: %v", entity, id, r)
		}
	}()

	switch entity {
	case EntityProduct:
		inv.forgetLatest("products")
	case EntityBlog:
		inv.forget(ShowKey("blog", id))
		inv.forget(RelatedKey("blog", id))
		inv.forgetLatest("blogs")
		for _, other := range inv.blogIDs() {
			inv.forget(RelatedKey("blog", other))
		}
	case EntityPrincipal:
		inv.forgetLatest("products")
		for i := 1; i <= MaxLatestLimit; i++ {
			inv.forget(FeaturedKey("products", i))
		}
		inv.forget(KeyPrincipals)
		inv.forget(KeyPrincipalsFeatured)
		inv.forget(PrincipalProductsKey(id))
	case EntityHero:
		inv.forget(KeyHeroBackgrounds)
	default:
		return
	}

	if err := inv.store.Flush(); err != nil {
		zap.L().Warn("cache flush failed after mutation",
			zap.String("entity", entity), zap.Int64("id", id), zap.Error(err))
	}
}

func (inv *KeySetInvalidator) forgetLatest(prefix string) {
	for i := 1; i <= MaxLatestLimit; i++ {
		inv.forget(LatestKey(prefix, i))
	}
}

func (inv *KeySetInvalidator) forget(key string) {
	if err := inv.store.Forget(key); err != nil {
		zap.L().Warn("cache forget failed", zap.String("key", key), zap.Error(err))
	}
}
