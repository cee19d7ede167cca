package graph

import (
	"fmt"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
)

const (
	paletteSize = 12
	AccentToken = "accent"
)

// Palette maps categories to theme colour tokens. The mapping is ordinal over the
// sorted distinct category set, so the same dataset always yields the same colours.
type Palette struct {
	colors map[string]string
}

func NewPalette(categories []string) Palette {
	p := Palette{colors: make(map[string]string, len(categories))}
	for i, c := range categories {
		p.colors[c] = fmt.Sprintf("graph-color-%d", i%paletteSize+1)
	}
	return p
}

// Color returns the token for category. Unknown categories take the default
// category's colour, and an empty palette falls back to the accent token.
func (p Palette) Color(category string) string {
	if len(p.colors) == 0 {
		return AccentToken
	}
	if c, ok := p.colors[category]; ok {
		return c
	}
	if c, ok := p.colors[metrics.DefaultCategory]; ok {
		return c
	}
	return AccentToken
}

// Legend lists category → token pairs in palette order.
func (p Palette) Legend(categories []string) []LegendEntry {
	out := make([]LegendEntry, 0, len(categories))
	for _, c := range categories {
		out = append(out, LegendEntry{Category: c, Color: p.Color(c)})
	}
	return out
}

type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}
