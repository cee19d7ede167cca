package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/repository"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/service"
)

type stubLoader struct {
	dataset domain.Dataset
	err     error
}

func (s stubLoader) Load(context.Context, []string) (domain.Dataset, error) {
	return s.dataset, s.err
}

func (s stubLoader) LoadNews(context.Context, []string) []domain.NewsItem {
	return []domain.NewsItem{
		{ID: "n1", Title: "FCA consults on crypto", CountryISO3: "GBR"},
		{ID: "n2", Title: "BIS annual report"},
	}
}

func stubDataset() domain.Dataset {
	return domain.Dataset{{
		ISO3:    "GBR",
		Country: "United Kingdom",
		Regulators: []domain.Regulator{
			{ID: "fca", Name: "Financial Conduct Authority", URL: "https://fca.org.uk", Category: "Conduct"},
			{ID: "boe", Name: "Bank of England", URL: "https://bankofengland.co.uk"},
		},
		Rules:  []domain.Rule{{Code: "PSD2", Title: "Payment Services Directive 2"}},
		Scores: domain.Scores{APIMaturity: domain.Float(72)},
	}}
}

func setupRouter(t *testing.T, l service.DatasetLoader, limit gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dash := service.NewDashboardService(l, []string{"file://x"}, nil)
	_ = dash.Reload(context.Background())
	layouts := service.NewLayoutService(context.Background(), dash, service.LayoutOptions{
		Width: 320, Height: 200, MaxWidth: 2048, MaxHeight: 2048, Interval: time.Millisecond,
	})
	t.Cleanup(layouts.Close)
	themes := service.NewThemeService(repository.NewMemoryThemeStore())

	r := gin.New()
	New(dash, layouts, themes, limit).Register(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	} else {
		buf = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/graph/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["session"].(map[string]any)["id"].(string)
}

func TestDatasetEndpoints(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)

	w := do(r, http.MethodGet, "/api/v1/dataset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	snap := decode(t, w)["snapshot"].(map[string]any)
	assert.Equal(t, false, snap["loading"])
	assert.Len(t, snap["dataset"], 1)

	w = do(r, http.MethodGet, "/api/v1/countries/gbr", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "United Kingdom", decode(t, w)["country"].(map[string]any)["country"])

	w = do(r, http.MethodGet, "/api/v1/countries/FRA", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/v1/dataset/reload", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReloadFailureIsBadGateway(t *testing.T) {
	r := setupRouter(t, stubLoader{err: domain.ErrNoSources}, nil)

	w := do(r, http.MethodPost, "/api/v1/dataset/reload", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decode(t, w)["error"], "no dataset source succeeded")

	w = do(r, http.MethodGet, "/api/v1/dataset", nil)
	snap := decode(t, w)["snapshot"].(map[string]any)
	assert.Equal(t, "no dataset source succeeded", snap["error"])
}

func TestMetricsEndpoints(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)

	w := do(r, http.MethodGet, "/api/v1/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode(t, w)["metrics"].(map[string]any)["totals"].(map[string]any)
	assert.EqualValues(t, 1, totals["countries"])
	assert.EqualValues(t, 2, totals["regulators"])

	w = do(r, http.MethodGet, "/api/v1/metrics/distribution", nil)
	body := decode(t, w)
	assert.Len(t, body["distribution"], 5)
	assert.Contains(t, body, "averages")

	w = do(r, http.MethodGet, "/api/v1/metrics/benchmark", nil)
	assert.Len(t, decode(t, w)["benchmark"], 1)

	w = do(r, http.MethodGet, "/api/v1/metrics/regulators", nil)
	assert.Len(t, decode(t, w)["regulators"], 2)

	w = do(r, http.MethodGet, "/api/v1/metrics/regulators/fca", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/api/v1/metrics/regulators/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/metrics/rule-coverage", nil)
	assert.Len(t, decode(t, w)["ruleCoverage"], 1)

	w = do(r, http.MethodGet, "/api/v1/news?country=gbr", nil)
	assert.Len(t, decode(t, w)["news"], 1)
	w = do(r, http.MethodGet, "/api/v1/news", nil)
	assert.Len(t, decode(t, w)["news"], 2)

	w = do(r, http.MethodGet, "/api/v1/graph/categories", nil)
	body = decode(t, w)
	assert.Equal(t, []any{"Central Bank", "Conduct"}, body["categories"])
	assert.Equal(t, domain.AllCategories, body["all"])
}

func TestSelectionEndpoints(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)

	w := do(r, http.MethodPut, "/api/v1/selection", map[string]string{"country": "gbr", "regulatorId": "fca"})
	require.Equal(t, http.StatusOK, w.Code)
	sel := decode(t, w)["selection"].(map[string]any)
	assert.Equal(t, "GBR", sel["country"])
	assert.Equal(t, "fca", sel["regulatorId"])

	w = do(r, http.MethodPost, "/api/v1/selection/regulator/fca/toggle", nil)
	assert.NotContains(t, decode(t, w)["selection"], "regulatorId")

	w = do(r, http.MethodPost, "/api/v1/selection/regulator/ghost/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/selection", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	w = do(r, http.MethodGet, "/api/v1/selection", nil)
	assert.Equal(t, "GBR", decode(t, w)["selection"].(map[string]any)["country"])
}

func TestThemeEndpoints(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)

	w := do(r, http.MethodGet, "/api/v1/theme", nil, systemThemeHeader, "light")
	th := decode(t, w)["theme"].(map[string]any)
	assert.Equal(t, "light", th["resolved"])

	w = do(r, http.MethodPut, "/api/v1/theme", map[string]string{"preference": "dark"}, clientIDHeader, "alice")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/theme", nil, clientIDHeader, "alice", systemThemeHeader, "light")
	assert.Equal(t, "dark", decode(t, w)["theme"].(map[string]any)["resolved"])

	w = do(r, http.MethodGet, "/api/v1/theme", nil, systemThemeHeader, "light")
	assert.Equal(t, "light", decode(t, w)["theme"].(map[string]any)["resolved"], "other clients unaffected")

	w = do(r, http.MethodPut, "/api/v1/theme", map[string]string{"preference": "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)
	id := createSession(t, r)

	w := do(r, http.MethodGet, "/api/v1/graph/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess := decode(t, w)["session"].(map[string]any)
	assert.Len(t, sess["positions"], 3)

	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/nodes/fca/drag", map[string]any{"phase": "start"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/nodes/fca/drag", map[string]any{"phase": "move", "x": 100, "y": 100})
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/nodes/fca/drag", map[string]any{"phase": "fling"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/nodes/fca/drag", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/nodes/ghost/drag", map[string]any{"phase": "start"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/graph/sessions/"+id+"/nodes/fca/hover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tip := decode(t, w)["hover"].(map[string]any)["tooltip"].(map[string]any)
	assert.Equal(t, "Regulator", tip["kind"])
	assert.Equal(t, "United Kingdom", tip["jurisdiction"])

	w = do(r, http.MethodPost, "/api/v1/graph/sessions/"+id+"/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/v1/graph/sessions", map[string]any{"mode": "orbit"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/graph/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, "/api/v1/graph/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionRejectsOversizedCanvas(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)

	w := do(r, http.MethodPost, "/api/v1/graph/sessions", map[string]any{"width": 1e6, "height": 1e6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "invalid canvas size")

	w = do(r, http.MethodPost, "/api/v1/graph/sessions", map[string]any{"width": -10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/graph/sessions", map[string]any{"width": 2048, "height": 600})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestExportFormats(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, nil)
	id := createSession(t, r)
	base := "/api/v1/graph/sessions/" + id + "/export/"

	w := do(r, http.MethodGet, base+"svg", nil, systemThemeHeader, "light")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeSVG, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="fta-compliance-global.svg"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), `fill="#FFFFFF"`)

	w = do(r, http.MethodGet, base+"png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())

	w = do(r, http.MethodGet, base+"dot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"country:GBR" -- "fca"`)

	w = do(r, http.MethodGet, base+"json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 320, decode(t, w)["width"])

	w = do(r, http.MethodGet, base+"gif", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	w = do(r, http.MethodGet, "/api/v1/graph/sessions/missing/export/svg", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportRateLimit(t *testing.T) {
	r := setupRouter(t, stubLoader{dataset: stubDataset()}, middleware.RateLimit(0.001, 2))
	id := createSession(t, r)
	path := "/api/v1/graph/sessions/" + id + "/export/svg"

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, path, nil).Code)
	w := do(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// only exports are limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/graph/sessions/"+id, nil).Code)
}
