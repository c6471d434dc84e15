package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

const notFoundMarker = "notfound"

// CachedStore decorates a Store with a Redis read cache. Item and
// restaurant-menu reads are cached with a TTL; writes pass through and
// invalidate. Cache failures degrade to the underlying store.
type CachedStore struct {
	inner  Store
	redis  *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedStore wraps a Store with Redis caching.
func NewCachedStore(inner Store, client *redis.Client, log *logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		redis:  client,
		ttl:    5 * time.Minute,
		logger: log,
	}
}

func itemKey(id uuid.UUID) string {
	return fmt.Sprintf("menu:item:%s", id)
}

func restaurantMenuKey(restaurantID uuid.UUID) string {
	return fmt.Sprintf("menu:restaurant:%s", restaurantID)
}

// List is not cached: it is an admin-facing paginated browse.
func (c *CachedStore) List(ctx context.Context, category models.MenuCategory, limit, offset int) ([]models.MenuItem, int, error) {
	return c.inner.List(ctx, category, limit, offset)
}

// Get returns a menu item, serving from cache when possible. Misses are
// cached negatively so repeated lookups of deleted items stay cheap.
func (c *CachedStore) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	key := itemKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, models.ErrMenuItemNotFound
		}
		var item models.MenuItem
		if err := json.Unmarshal(data, &item); err == nil {
			return &item, nil
		}
		// Corrupt cache entry: fall through to the database.

	case !errors.Is(err, redis.Nil):
		c.logger.Error("cache_read_failed", "Redis read failed, using database", "", err, map[string]interface{}{"key": key})
	}

	item, err := c.inner.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrMenuItemNotFound) {
			c.redis.Set(ctx, key, notFoundMarker, c.ttl)
		}
		return nil, err
	}

	if body, err := json.Marshal(item); err == nil {
		c.redis.Set(ctx, key, body, c.ttl)
	}

	return item, nil
}

// ListByRestaurant returns a restaurant's menu, serving from cache when
// possible.
func (c *CachedStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	key := restaurantMenuKey(restaurantID)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []models.MenuItem
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}

	case !errors.Is(err, redis.Nil):
		c.logger.Error("cache_read_failed", "Redis read failed, using database", "", err, map[string]interface{}{"key": key})
	}

	items, err := c.inner.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(items); err == nil {
		c.redis.Set(ctx, key, body, c.ttl)
	}

	return items, nil
}

// Create passes through and invalidates the restaurant's cached menu.
func (c *CachedStore) Create(ctx context.Context, identity models.Identity, req *models.UpsertMenuItemRequest) (*models.MenuItem, error) {
	item, err := c.inner.Create(ctx, identity, req)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, item.RestaurantID, item.ID)
	return item, nil
}

// Update passes through and invalidates both the item and its menu.
func (c *CachedStore) Update(ctx context.Context, identity models.Identity, id uuid.UUID, req *models.UpsertMenuItemRequest) (*models.MenuItem, error) {
	item, err := c.inner.Update(ctx, identity, id, req)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, item.RestaurantID, item.ID)
	return item, nil
}

// Delete passes through and invalidates both the item and its menu.
func (c *CachedStore) Delete(ctx context.Context, identity models.Identity, id uuid.UUID) error {
	item, err := c.inner.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.inner.Delete(ctx, identity, id); err != nil {
		return err
	}
	c.invalidate(ctx, item.RestaurantID, id)
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context, restaurantID, itemID uuid.UUID) {
	if err := c.redis.Del(ctx, itemKey(itemID), restaurantMenuKey(restaurantID)).Err(); err != nil {
		c.logger.Error("cache_invalidate_failed", "Failed to invalidate menu cache", "", err, map[string]interface{}{
			"restaurant_id": restaurantID.String(),
			"menu_item_id":  itemID.String(),
		})
	}
}
