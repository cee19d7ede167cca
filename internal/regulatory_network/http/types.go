package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
)

const (
	clientIDHeader    = "X-Client-Id"
	systemThemeHeader = "Sec-CH-Prefers-Color-Scheme"
	defaultClientID   = "default"
	contentTypeSVG    = "image/svg+xml; charset=utf-8"
	contentTypePNG    = "image/png"
	contentTypeDOT    = "text/vnd.graphviz; charset=utf-8"
	contentTypeJSON   = "application/json; charset=utf-8"
	exportFilePrefix  = "fta-compliance-"
)

// Handler handles HTTP requests for the regulatory dashboard
type Handler struct {
	dash    *service.DashboardService
	layouts *service.LayoutService
	themes  *service.ThemeService
	// exportLimit guards the image export endpoints; nil disables limiting.
	exportLimit gin.HandlerFunc
}

// New creates a new Handler
func New(dash *service.DashboardService, layouts *service.LayoutService, themes *service.ThemeService, exportLimit gin.HandlerFunc) *Handler {
	return &Handler{dash: dash, layouts: layouts, themes: themes, exportLimit: exportLimit}
}

type selectionRequest struct {
	Country     string `json:"country"`
	RegulatorID string `json:"regulatorId"`
}

type dragRequest struct {
	Phase string  `json:"phase" binding:"required"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type themeRequest struct {
	Preference string `json:"preference"`
}
