package question

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

const (
	defaultCacheTTL  = 5 * time.Minute
	categoryCacheKey = "trivia:categories"
)

// CategoryCache fronts a CategoryStore with a Redis copy of the category list.
// Categories are seeded outside the API, so staleness is bounded by the TTL.
// Any Redis failure falls through to the store.
type CategoryCache struct {
	store  CategoryStore
	client redis.Cmdable
	ttl    time.Duration
	logger zerolog.Logger
}

var _ CategoryStore = (*CategoryCache)(nil)

func NewCategoryCache(store CategoryStore, client redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *CategoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CategoryCache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "category_cache").Logger(),
	}
}

func (c *CategoryCache) FindAll(ctx context.Context) ([]repository.Category, error) {
	data, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err == nil {
		var cats []repository.Category
		if err := json.Unmarshal(data, &cats); err == nil {
			return cats, nil
		}
		c.logger.Warn().Msg("discarding undecodable category cache entry")
	} else if err != redis.Nil {
		c.logger.Warn().Err(err).Msg("category cache read failed")
	}
	return c.Refresh(ctx)
}

func (c *CategoryCache) FindByID(ctx context.Context, id int64) (repository.Category, error) {
	cats, err := c.FindAll(ctx)
	if err != nil {
		return repository.Category{}, err
	}
	for _, cat := range cats {
		if cat.ID == id {
			return cat, nil
		}
	}
	return repository.Category{}, repository.ErrNotFound
}

// Refresh reloads the categories from the store and rewrites the cache entry.
func (c *CategoryCache) Refresh(ctx context.Context) ([]repository.Category, error) {
	cats, err := c.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return cats, nil
	}
	if err := c.client.Set(ctx, categoryCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return cats, nil
}
