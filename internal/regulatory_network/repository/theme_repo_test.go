package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

func setupRedis(t *testing.T) (*ThemeRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewThemeRepository(client), mr
}

func exerciseStore(t *testing.T, store ThemeStore) {
	ctx := context.Background()

	got, err := store.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMode(""), got)

	require.NoError(t, store.Set(ctx, "client-a", domain.ThemeLight))
	got, err = store.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, got)

	other, err := store.Get(ctx, "client-b")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMode(""), other)

	require.NoError(t, store.Set(ctx, "client-a", ""))
	got, err = store.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMode(""), got)

	require.NoError(t, store.Clear(ctx, "never-set"))
}

func TestThemeRepository(t *testing.T) {
	repo, mr := setupRedis(t)
	exerciseStore(t, repo)

	require.NoError(t, repo.Set(context.Background(), "client-c", domain.ThemeDark))
	v, err := mr.Get("regmap:theme:client-c")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, themeTTL, mr.TTL("regmap:theme:client-c"))

	mr.FastForward(themeTTL + time.Second)
	got, err := repo.Get(context.Background(), "client-c")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMode(""), got)
}

func TestThemeRepositoryUnavailable(t *testing.T) {
	repo, mr := setupRedis(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "client-a")
	assert.Error(t, err)
	assert.Error(t, repo.Set(context.Background(), "client-a", domain.ThemeDark))
}

func TestMemoryThemeStore(t *testing.T) {
	exerciseStore(t, NewMemoryThemeStore())
}
