package http

import "github.com/gin-gonic/gin"

// Register registers the dashboard routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/dataset", h.GetDataset)
	rg.POST("/dataset/reload", h.ReloadDataset)
	rg.GET("/countries/:iso3", h.GetCountry)

	rg.GET("/metrics", h.GetMetrics)
	rg.GET("/metrics/distribution", h.GetDistribution)
	rg.GET("/metrics/benchmark", h.GetBenchmark)
	rg.GET("/metrics/regulators", h.ListRegulators)
	rg.GET("/metrics/regulators/:id", h.GetRegulator)
	rg.GET("/metrics/rule-coverage", h.GetRuleCoverage)

	rg.GET("/news", h.ListNews)

	rg.GET("/selection", h.GetSelection)
	rg.PUT("/selection", h.PutSelection)
	rg.POST("/selection/regulator/:id/toggle", h.ToggleRegulator)

	rg.GET("/theme", h.GetTheme)
	rg.PUT("/theme", h.PutTheme)

	graph := rg.Group("/graph")
	graph.GET("/categories", h.ListCategories)
	graph.POST("/sessions", h.CreateSession)
	graph.GET("/sessions/:id", h.GetSession)
	graph.DELETE("/sessions/:id", h.DeleteSession)
	graph.POST("/sessions/:id/reset", h.ResetSession)
	graph.POST("/sessions/:id/nodes/:node/drag", h.DragNode)
	graph.GET("/sessions/:id/nodes/:node/hover", h.HoverNode)

	exports := graph.Group("/sessions/:id/export")
	if h.exportLimit != nil {
		exports.Use(h.exportLimit)
	}
	exports.GET("/:format", h.ExportSession)
}
