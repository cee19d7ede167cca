package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph/export"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.dash.Categories(), "all": domain.AllCategories})
}

// CreateSession builds a graph for the current selection and starts its layout
func (h *Handler) CreateSession(c *gin.Context) {
	var body service.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	view, err := h.layouts.Create(body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": view})
}

func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.layouts.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.layouts.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetSession re-heats the layout without rebuilding the graph
func (h *Handler) ResetSession(c *gin.Context) {
	view, err := h.layouts.Reset(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

func (h *Handler) DragNode(c *gin.Context) {
	var body dragRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	switch body.Phase {
	case service.DragStart, service.DragMove, service.DragEnd:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be start, move or end"})
		return
	}
	view, err := h.layouts.Drag(c.Param("id"), c.Param("node"), body.Phase, body.X, body.Y)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

func (h *Handler) HoverNode(c *gin.Context) {
	view, err := h.layouts.Hover(c.Param("id"), c.Param("node"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hover": view})
}

// ExportSession renders the session as svg, png, dot or json in the client's theme
func (h *Handler) ExportSession(c *gin.Context) {
	mode := h.themes.Resolve(c.Request.Context(), clientID(c), theme.SystemPreference(c.GetHeader(systemThemeHeader))).Resolved
	scene, err := h.layouts.Scene(c.Param("id"), mode)
	if err != nil {
		writeError(c, err)
		return
	}

	format := c.Param("format")
	name := exportFilePrefix + string(scene.Graph.Mode) + "." + format
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))

	switch format {
	case "svg":
		c.Data(http.StatusOK, contentTypeSVG, []byte(export.ToSVG(scene)))
	case "png":
		b, err := export.ToPNG(scene)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, contentTypePNG, b)
	case "dot":
		c.Data(http.StatusOK, contentTypeDOT, []byte(export.ToDOT(scene.Graph, export.PositionMap(scene), scene.Tokens, "Regulator network")))
	case "json":
		b, err := export.ToJSON(export.NewDocument(scene))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, contentTypeJSON, b)
	default:
		c.Header("Content-Disposition", "")
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be svg, png, dot or json"})
	}
}
