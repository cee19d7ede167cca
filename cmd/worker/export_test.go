package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

const workerDataset = `[
  {
    "iso3": "GBR",
    "country": "United Kingdom",
    "regulators": [
      {"name": "Financial Conduct Authority", "url": "https://fca.org.uk", "id": "fca"},
      {"name": "Bank of England", "url": "https://bankofengland.co.uk"}
    ],
    "rules": [{"code": "PSD2", "title": "Payment Services Directive 2"}],
    "sources": [],
    "scores": {"apiMaturity": 72, "auditReadiness": 64, "reportingCadence": 80}
  }
]`

func writeDataset(t *testing.T) string {
	t.Helper()
	t.Setenv("FALLBACK_DATASET", "embedded://countries.json")
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte(workerDataset), 0644))
	return path
}

func TestRunExportWritesEveryFormat(t *testing.T) {
	src := writeDataset(t)
	out := filepath.Join(t.TempDir(), "export")

	require.NoError(t, RunExport([]string{src, out, "country", "gbr"}))

	for _, name := range []string{"metrics.json", "graph.json", "graph.dot", "graph.svg", "graph.png"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}

	raw, err := os.ReadFile(filepath.Join(out, "graph.json"))
	require.NoError(t, err)
	var doc struct {
		Graph struct {
			Mode  string           `json:"mode"`
			Nodes []map[string]any `json:"nodes"`
		} `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "country", doc.Graph.Mode)
	assert.Len(t, doc.Graph.Nodes, 3)
}

func TestRunExportRejectsUnknownMode(t *testing.T) {
	err := RunExport([]string{writeDataset(t), t.TempDir(), "orbit"})
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestWriteMetricsUsesOnlyTheNamedSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMetrics(context.Background(), writeDataset(t), &buf))

	var m struct {
		Totals struct {
			Countries  int `json:"countries"`
			Regulators int `json:"regulators"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, 1, m.Totals.Countries)
	assert.Equal(t, 2, m.Totals.Regulators)
}

func TestMissingSourceDoesNotFallBack(t *testing.T) {
	missing := filepath.Join(writeDataset(t), "..", "absent.json")

	var buf bytes.Buffer
	err := writeMetrics(context.Background(), missing, &buf)
	require.ErrorIs(t, err, domain.ErrNoSources)
	assert.Empty(t, buf.String())

	out := filepath.Join(t.TempDir(), "export")
	require.ErrorIs(t, RunExport([]string{missing, out}), domain.ErrNoSources)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "nothing is written for a failed load")
}
