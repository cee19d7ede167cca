package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/selection"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

// GetDataset returns the current snapshot including its loading and error state
func (h *Handler) GetDataset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"snapshot": h.dash.Snapshot()})
}

// ReloadDataset replaces the snapshot from the configured sources
func (h *Handler) ReloadDataset(c *gin.Context) {
	if err := h.dash.Reload(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": h.dash.Snapshot()})
}

// GetCountry returns one country record by ISO3
func (h *Handler) GetCountry(c *gin.Context) {
	rec, err := h.dash.Country(c.Param("iso3"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": rec})
}

func (h *Handler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": h.dash.Metrics()})
}

func (h *Handler) GetDistribution(c *gin.Context) {
	m := h.dash.Metrics()
	c.JSON(http.StatusOK, gin.H{"distribution": m.Distribution, "averages": m.Averages})
}

func (h *Handler) GetBenchmark(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"benchmark": h.dash.Metrics().Benchmark})
}

func (h *Handler) ListRegulators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regulators": h.dash.Metrics().Regulators.Items})
}

func (h *Handler) GetRegulator(c *gin.Context) {
	reg, err := h.dash.Regulator(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regulator": reg})
}

func (h *Handler) GetRuleCoverage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ruleCoverage": h.dash.Metrics().RuleCoverage})
}

// ListNews returns news, optionally filtered with ?country=ISO3
func (h *Handler) ListNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"news": h.dash.News(c.Query("country"))})
}

func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"selection": h.dash.Selection()})
}

// PutSelection replaces the selection; an unknown regulator ID is dropped
func (h *Handler) PutSelection(c *gin.Context) {
	var body selectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	st := h.dash.SetSelection(selection.State{Country: body.Country, RegulatorID: body.RegulatorID})
	c.JSON(http.StatusOK, gin.H{"selection": st})
}

// ToggleRegulator applies click semantics to a regulator
func (h *Handler) ToggleRegulator(c *gin.Context) {
	st, err := h.dash.ToggleRegulator(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": st})
}

func (h *Handler) GetTheme(c *gin.Context) {
	view := h.themes.Resolve(c.Request.Context(), clientID(c), theme.SystemPreference(c.GetHeader(systemThemeHeader)))
	c.JSON(http.StatusOK, gin.H{"theme": view})
}

// PutTheme stores the client's preference; "system" clears it
func (h *Handler) PutTheme(c *gin.Context) {
	var body themeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	view, err := h.themes.SetPreference(c.Request.Context(), clientID(c), body.Preference,
		theme.SystemPreference(c.GetHeader(systemThemeHeader)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": view})
}

func clientID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(clientIDHeader)); id != "" {
		return id
	}
	return defaultClientID
}
