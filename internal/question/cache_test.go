package question

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// unreachableRedis returns a client whose every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCategoryCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	store := repository.NewMemory(repository.DefaultCategories()...).Categories()
	cache := NewCategoryCache(store, unreachableRedis(t), 0, zerolog.Nop())
	assert.Equal(t, defaultCacheTTL, cache.ttl)

	cats, err := cache.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 6)

	cat, err := cache.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Geography", cat.Type)

	_, err = cache.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestServiceWorksBehindCategoryCache(t *testing.T) {
	mem := repository.NewMemory(repository.DefaultCategories()...)
	cache := NewCategoryCache(mem.Categories(), unreachableRedis(t), time.Minute, zerolog.Nop())
	svc := NewService(mem.Questions(), cache, zerolog.Nop(), ServiceOptions{})

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sports", cats[6])
}

// fakeRedis implements the Get and Set commands the cache uses over a map.
type fakeRedis struct {
	redis.Cmdable
	data map[string][]byte
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

// countingCategories counts how often the backing store is read.
type countingCategories struct {
	CategoryStore
	finds int
}

func (c *countingCategories) FindAll(ctx context.Context) ([]repository.Category, error) {
	c.finds++
	return c.CategoryStore.FindAll(ctx)
}

func TestCategoryCacheServesHitsFromRedis(t *testing.T) {
	store := &countingCategories{CategoryStore: repository.NewMemory(repository.DefaultCategories()...).Categories()}
	client := newFakeRedis()
	cache := NewCategoryCache(store, client, time.Minute, zerolog.Nop())

	first, err := cache.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.finds)
	assert.Contains(t, client.data, categoryCacheKey)
	assert.Equal(t, time.Minute, client.ttls[categoryCacheKey])

	second, err := cache.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.finds, "a cached list must not reach the store")
	assert.Equal(t, first, second)

	cat, err := cache.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Entertainment", cat.Type)
	assert.Equal(t, 1, store.finds)
}

func TestCategoryCacheRecoversFromCorruptEntry(t *testing.T) {
	store := &countingCategories{CategoryStore: repository.NewMemory(repository.DefaultCategories()...).Categories()}
	client := newFakeRedis()
	client.data[categoryCacheKey] = []byte("{not json")
	cache := NewCategoryCache(store, client, time.Minute, zerolog.Nop())

	cats, err := cache.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 6)
	assert.Equal(t, 1, store.finds)

	var cached []repository.Category
	require.NoError(t, json.Unmarshal(client.data[categoryCacheKey], &cached))
	assert.Equal(t, cats, cached)
}
