package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/config"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph/export"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

// maxTicks bounds the offline run; the default cooling schedule converges in ~300 ticks.
const maxTicks = 1000

// loadDataset loads exactly the named source. The bundled fallback is not consulted;
// pass embedded://countries.json to export it explicitly.
func loadDataset(ctx context.Context, source string) (domain.Dataset, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.Sources.Fallback = ""
	l, err := bootstrap.NewLoader(cfg, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	ds, err := l.Load(ctx, []string{source})
	if err != nil {
		return nil, nil, err
	}
	return ds, cfg, nil
}

// RunMetrics prints the aggregated metrics of a dataset as JSON.
func RunMetrics(args []string) error {
	return writeMetrics(context.Background(), args[0], os.Stdout)
}

func writeMetrics(ctx context.Context, source string, w io.Writer) error {
	ds, _, err := loadDataset(ctx, source)
	if err != nil {
		return err
	}
	b, err := export.ToJSON(metrics.Aggregate(ds))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// RunExport lays out the graph of a dataset to convergence and writes every export
// format to outDir.
func RunExport(args []string) error {
	source := args[0]
	out := "out"
	if len(args) > 1 {
		out = args[1]
	}
	mode := domain.ModeGlobal
	if len(args) > 2 {
		mode = domain.GraphMode(args[2])
	}
	iso3 := ""
	if len(args) > 3 {
		iso3 = strings.ToUpper(args[3])
	}
	if mode != domain.ModeGlobal && mode != domain.ModeCountry {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	ds, cfg, err := loadDataset(context.Background(), source)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}

	g := graph.Build(graph.Input{Dataset: ds, Mode: mode, Country: iso3, Category: domain.AllCategories})
	sim, err := g.NewSimulation(cfg.Graph.Width, cfg.Graph.Height)
	if err != nil {
		return err
	}
	ticks := sim.Run(maxTicks)

	scene := export.Scene{
		Graph:     g,
		Positions: sim.Positions(),
		Width:     cfg.Graph.Width,
		Height:    cfg.Graph.Height,
		Tokens:    theme.TokensFor(theme.DefaultMode),
		Country:   iso3,
	}
	pngBytes, err := export.ToPNG(scene)
	if err != nil {
		return err
	}

	files := map[string]func(string) error{
		"metrics.json": func(p string) error { return export.WriteJSON(p, metrics.Aggregate(ds)) },
		"graph.json":   func(p string) error { return export.WriteJSON(p, export.NewDocument(scene)) },
		"graph.dot": func(p string) error {
			return export.WriteFile(p, []byte(export.ToDOT(g, export.PositionMap(scene), scene.Tokens, "Regulator network")))
		},
		"graph.svg": func(p string) error { return export.WriteFile(p, []byte(export.ToSVG(scene))) },
		"graph.png": func(p string) error { return export.WriteFile(p, pngBytes) },
	}
	for name, write := range files {
		if err := write(filepath.Join(out, name)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	log.Info().Str("out", out).Str("mode", string(g.Mode)).Int("nodes", len(g.Nodes)).
		Int("ticks", ticks).Str("placeholder", g.Placeholder).Msg("export written")
	return nil
}
