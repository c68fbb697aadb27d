package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

func newCacheRepoMock(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheRepository(client, nil), mr
}

func TestCacheRepositorySetGet(t *testing.T) {
	repo, _ := newCacheRepoMock(t)
	ctx := context.Background()

	payload := map[string]int{"total": 3}
	require.NoError(t, repo.Set(ctx, "dash:summary", payload, time.Minute))

	var got map[string]int
	require.NoError(t, repo.Get(ctx, "dash:summary", &got))
	assert.Equal(t, 3, got["total"])
}

func TestCacheRepositoryGetMiss(t *testing.T) {
	repo, _ := newCacheRepoMock(t)

	var got map[string]int
	err := repo.Get(context.Background(), "dash:absent", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, mr := newCacheRepoMock(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "dash:summary", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "dash:other", 2, time.Minute))
	require.NoError(t, repo.Set(ctx, "session:u1", 3, time.Minute))

	require.NoError(t, repo.DeleteByPattern(ctx, "dash:*"))

	assert.False(t, mr.Exists("dash:summary"))
	assert.False(t, mr.Exists("dash:other"))
	assert.True(t, mr.Exists("session:u1"))
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var got int
	assert.True(t, errors.Is(repo.Get(ctx, "k", &got), appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(ctx, "k", 1, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "k*"))
}
