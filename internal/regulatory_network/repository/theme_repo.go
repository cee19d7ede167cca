package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

const (
	themeKeyPrefix = "regmap:theme:"      // Stored preference: regmap:theme:{client_id}
	themeTTL       = 365 * 24 * time.Hour // Preferences expire after a year of inactivity
)

// ThemeStore persists the single theme preference key of a client. An empty mode means
// the client follows the system preference.
type ThemeStore interface {
	Get(ctx context.Context, clientID string) (domain.ThemeMode, error)
	Set(ctx context.Context, clientID string, mode domain.ThemeMode) error
	Clear(ctx context.Context, clientID string) error
}

// ThemeRepository handles Redis operations for theme preferences
type ThemeRepository struct {
	client *redis.Client
}

// NewThemeRepository creates a new ThemeRepository
func NewThemeRepository(client *redis.Client) *ThemeRepository {
	return &ThemeRepository{client: client}
}

func (r *ThemeRepository) Get(ctx context.Context, clientID string) (domain.ThemeMode, error) {
	v, err := r.client.Get(ctx, r.key(clientID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get theme preference: %w", err)
	}
	return domain.ThemeMode(v), nil
}

func (r *ThemeRepository) Set(ctx context.Context, clientID string, mode domain.ThemeMode) error {
	if mode == "" {
		return r.Clear(ctx, clientID)
	}
	if err := r.client.Set(ctx, r.key(clientID), string(mode), themeTTL).Err(); err != nil {
		return fmt.Errorf("failed to set theme preference: %w", err)
	}
	return nil
}

func (r *ThemeRepository) Clear(ctx context.Context, clientID string) error {
	if err := r.client.Del(ctx, r.key(clientID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to clear theme preference: %w", err)
	}
	return nil
}

func (r *ThemeRepository) key(clientID string) string {
	return themeKeyPrefix + clientID
}

// MemoryThemeStore is used when Redis is not configured.
type MemoryThemeStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.ThemeMode
}

func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{prefs: map[string]domain.ThemeMode{}}
}

func (m *MemoryThemeStore) Get(_ context.Context, clientID string) (domain.ThemeMode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs[clientID], nil
}

func (m *MemoryThemeStore) Set(ctx context.Context, clientID string, mode domain.ThemeMode) error {
	if mode == "" {
		return m.Clear(ctx, clientID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[clientID] = mode
	return nil
}

func (m *MemoryThemeStore) Clear(_ context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.prefs, clientID)
	return nil
}
