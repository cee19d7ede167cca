package export

import (
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/layout"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

const (
	countryNodeRadius   = 10.0
	regulatorNodeRadius = 7.0
	placeholderFontSize = 14
)

// Scene is a read-only view of a laid-out graph at the current canvas size. Exporters
// only read from it.
type Scene struct {
	Graph     *graph.Graph
	Positions []layout.Position
	Width     float64
	Height    float64
	Highlight graph.Highlight
	Tokens    theme.Tokens
	// Country is the selected ISO3, drawn with an accent ring.
	Country string
}

type point struct{ x, y float64 }

func (s Scene) positions() map[string]point {
	out := make(map[string]point, len(s.Positions))
	for _, p := range s.Positions {
		out[p.ID] = point{p.X, p.Y}
	}
	return out
}

// at returns the position of id, defaulting to the canvas centre for unplaced nodes.
func (s Scene) at(pos map[string]point, id string) point {
	if p, ok := pos[id]; ok {
		return p
	}
	return point{s.Width / 2, s.Height / 2}
}

func nodeRadius(n graph.Node) float64 {
	if n.Group == domain.GroupCountry {
		return countryNodeRadius
	}
	return regulatorNodeRadius
}

func (s Scene) fill(n graph.Node) string {
	if n.Group == domain.GroupCountry {
		return s.Tokens.Get("accent", "#2F81F7")
	}
	return s.Tokens.Get(n.Color, s.Tokens.Get("accent", "#2F81F7"))
}

func (s Scene) ring(n graph.Node) (string, float64) {
	if n.Group == domain.GroupCountry && n.ISO3 == s.Country && s.Country != "" {
		return s.Tokens.Get("accent-2", "#A5D6FF"), 2.4
	}
	return s.Tokens.Get("bg-2", "#161B22"), 1.6
}

func (s Scene) dimmed(id string) bool {
	return s.Highlight.Dimmed[id]
}
