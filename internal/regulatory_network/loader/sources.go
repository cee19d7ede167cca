package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/loader/fallback"
)

const (
	schemeHTTP     = "http://"
	schemeHTTPS    = "https://"
	schemeFile     = "file://"
	schemeEmbedded = "embedded://"
	schemeRedis    = "redis://"
	schemePG       = "pg://"

	maxDocumentBytes = 32 << 20
)

// Source is one candidate location of a dataset or news document.
type Source interface {
	Locator() string
	Fetch(ctx context.Context) ([]byte, error)
}

// RowQuerier is the slice of pgxpool.Pool used by table sources.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Resolver turns locator strings into Sources.
type Resolver struct {
	HTTP  *http.Client
	Redis *redis.Client
	DB    RowQuerier
}

func NewResolver(timeout time.Duration, rdb *redis.Client, db RowQuerier) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		HTTP:  &http.Client{Timeout: timeout},
		Redis: rdb,
		DB:    db,
	}
}

func (r *Resolver) Resolve(locator string) (Source, error) {
	switch {
	case strings.HasPrefix(locator, schemeHTTP), strings.HasPrefix(locator, schemeHTTPS):
		client := r.HTTP
		if client == nil {
			client = http.DefaultClient
		}
		return &httpSource{url: locator, client: client}, nil
	case strings.HasPrefix(locator, schemeEmbedded):
		return &embeddedSource{name: strings.TrimPrefix(locator, schemeEmbedded)}, nil
	case strings.HasPrefix(locator, schemeRedis):
		if r.Redis == nil {
			return nil, fmt.Errorf("%w: %s (redis not configured)", domain.ErrUnsupportedSrc, locator)
		}
		return &redisSource{key: strings.TrimPrefix(locator, schemeRedis), client: r.Redis}, nil
	case strings.HasPrefix(locator, schemePG):
		if r.DB == nil {
			return nil, fmt.Errorf("%w: %s (database not configured)", domain.ErrUnsupportedSrc, locator)
		}
		return &tableSource{table: strings.TrimPrefix(locator, schemePG), db: r.DB}, nil
	case strings.HasPrefix(locator, schemeFile):
		return &fileSource{path: strings.TrimPrefix(locator, schemeFile)}, nil
	case strings.Contains(locator, "://"):
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSrc, locator)
	default:
		return &fileSource{path: locator}, nil
	}
}

type httpSource struct {
	url    string
	client *http.Client
}

func (s *httpSource) Locator() string { return s.url }

func (s *httpSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, s.url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}

type fileSource struct {
	path string
}

func (s *fileSource) Locator() string { return s.path }

func (s *fileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

type embeddedSource struct {
	name string
}

func (s *embeddedSource) Locator() string { return schemeEmbedded + s.name }

func (s *embeddedSource) Fetch(ctx context.Context) ([]byte, error) {
	b, err := fallback.Files.ReadFile(s.name)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", s.name, err)
	}
	return b, nil
}

type redisSource struct {
	key    string
	client *redis.Client
}

func (s *redisSource) Locator() string { return schemeRedis + s.key }

func (s *redisSource) Fetch(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis key %q not found", s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", s.key, err)
	}
	return b, nil
}

// tableSource reads the newest published document from a read-only table with columns
// (payload jsonb, published_at timestamptz).
type tableSource struct {
	table string
	db    RowQuerier
}

func (s *tableSource) Locator() string { return schemePG + s.table }

func (s *tableSource) Fetch(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(
		`SELECT payload::text FROM %s ORDER BY published_at DESC LIMIT 1`,
		pgx.Identifier{s.table}.Sanitize(),
	)
	var payload string
	if err := s.db.QueryRow(ctx, query).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %s has no published dataset", s.table)
		}
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	return []byte(payload), nil
}
