package loader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/ingest/parser"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/ingest/validator"
)

// Loader fetches documents from candidate sources in priority order. Candidates are tried
// once each, sequentially, with no retry or backoff.
type Loader struct {
	resolver  *Resolver
	validator *validator.Validator
	// fallback is tried after every candidate; empty disables it.
	fallback string
}

func New(resolver *Resolver, v *validator.Validator, fallbackLocator string) *Loader {
	return &Loader{resolver: resolver, validator: v, fallback: fallbackLocator}
}

// Load returns the dataset from the first source that both responds and validates.
// When every attempt fails the last error is returned; when nothing was attempted the
// result is an empty dataset.
func (l *Loader) Load(ctx context.Context, candidates []string) (domain.Dataset, error) {
	locators := dedupe(append(append([]string{}, candidates...), l.fallback))

	var lastErr error
	for _, locator := range locators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ds, err := l.loadOne(ctx, locator)
		if err != nil {
			log.Warn().Str("source", locator).Err(err).Msg("dataset source failed")
			lastErr = err
			continue
		}
		log.Info().Str("source", locator).Int("countries", len(ds)).Msg("dataset loaded")
		return ds, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoSources, lastErr)
	}
	return domain.Dataset{}, nil
}

func (l *Loader) loadOne(ctx context.Context, locator string) (domain.Dataset, error) {
	raw, err := l.fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return l.validator.ValidateDataset(raw)
}

// LoadNews mirrors Load but never fails: total failure yields an empty list. The bundled
// fallback does not apply to news.
func (l *Loader) LoadNews(ctx context.Context, candidates []string) []domain.NewsItem {
	for _, locator := range dedupe(candidates) {
		raw, err := l.fetch(ctx, locator)
		if err != nil {
			log.Debug().Str("source", locator).Err(err).Msg("news source failed")
			continue
		}
		items, err := l.validator.ValidateNews(raw)
		if err != nil {
			log.Debug().Str("source", locator).Err(err).Msg("news source rejected")
			continue
		}
		return items
	}
	return []domain.NewsItem{}
}

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	src, err := l.resolver.Resolve(locator)
	if err != nil {
		return nil, err
	}
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return parser.Normalize(locator, raw)
}

func dedupe(locators []string) []string {
	seen := make(map[string]bool, len(locators))
	out := make([]string, 0, len(locators))
	for _, l := range locators {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
