package routes

import (
	"github.com/gin-gonic/gin"

	regnethttp "github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/http"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
)

type V1Deps struct {
	Dashboard   *service.DashboardService
	Layouts     *service.LayoutService
	Themes      *service.ThemeService
	ExportLimit gin.HandlerFunc
}

func RegisterV1(api *gin.RouterGroup, dep V1Deps) {
	h := regnethttp.New(dep.Dashboard, dep.Layouts, dep.Themes, dep.ExportLimit)
	h.Register(api)
}
