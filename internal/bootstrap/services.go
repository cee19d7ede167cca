package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/regnet-backend/config"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/ingest/validator"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/loader"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/repository"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
)

type Services struct {
	Dashboard *service.DashboardService
	Layouts   *service.LayoutService
	Themes    *service.ThemeService
}

// NewLoader wires the source resolver. db and rdb may be nil, which leaves pg:// and
// redis:// sources unavailable.
func NewLoader(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) (*loader.Loader, error) {
	v, err := validator.New()
	if err != nil {
		return nil, err
	}
	var rows loader.RowQuerier
	if db != nil {
		rows = db
	}
	resolver := loader.NewResolver(cfg.Sources.FetchTimeout, rdb, rows)
	return loader.New(resolver, v, cfg.Sources.Fallback), nil
}

// BuildServices wires the dashboard, layout and theme services. Layout runners live
// until ctx is cancelled or Layouts.Close is called.
func BuildServices(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) (*Services, error) {
	l, err := NewLoader(cfg, db, rdb)
	if err != nil {
		return nil, err
	}

	var store repository.ThemeStore = repository.NewMemoryThemeStore()
	if rdb != nil {
		store = repository.NewThemeRepository(rdb)
	}

	dash := service.NewDashboardService(l, cfg.Sources.Dataset, cfg.Sources.News)
	return &Services{
		Dashboard: dash,
		Layouts: service.NewLayoutService(ctx, dash, service.LayoutOptions{
			Width:       cfg.Graph.Width,
			Height:      cfg.Graph.Height,
			MaxWidth:    cfg.Graph.MaxWidth,
			MaxHeight:   cfg.Graph.MaxHeight,
			Interval:    cfg.Graph.TickInterval,
			SessionTTL:  cfg.Graph.SessionTTL,
			MaxSessions: cfg.Graph.MaxSessions,
		}),
		Themes: service.NewThemeService(store),
	}, nil
}
