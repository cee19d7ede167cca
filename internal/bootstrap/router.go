package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/GoSim-25-26J-441/regnet-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	ExportRate  float64
	ExportBurst int

	DB    *pgxpool.Pool
	Redis *redis.Client

	Dashboard *service.DashboardService
	Layouts   *service.LayoutService
	Themes    *service.ThemeService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id", "X-Client-Id", "Sec-CH-Prefers-Color-Scheme"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis, dep.Dashboard)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	routes.RegisterV1(api, routes.V1Deps{
		Dashboard:   dep.Dashboard,
		Layouts:     dep.Layouts,
		Themes:      dep.Themes,
		ExportLimit: middleware.RateLimit(dep.ExportRate, dep.ExportBurst),
	})

	return r
}
