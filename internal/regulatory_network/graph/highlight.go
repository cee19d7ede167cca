package graph

import (
	"fmt"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

// Highlight is the per-node and per-edge emphasis state.
type Highlight struct {
	Focus    string          `json:"focus,omitempty"`
	Selected map[string]bool `json:"selected"`
	Dimmed   map[string]bool `json:"dimmed"`
	// Active holds indexes into Graph.Edges.
	Active map[int]bool `json:"active"`
}

func emptyHighlight() Highlight {
	return Highlight{Selected: map[string]bool{}, Dimmed: map[string]bool{}, Active: map[int]bool{}}
}

// Selection returns the persistent highlight for a selected regulator: the node and its
// neighbours are selected, the rest dimmed, incident edges active. An empty ID or an ID
// not in the graph highlights nothing.
func (g *Graph) Selection(selectedID string) Highlight {
	h := emptyHighlight()
	if selectedID == "" || !g.Has(selectedID) {
		return h
	}
	h.Focus = selectedID
	neighbours := g.Neighbors(selectedID)
	for _, n := range g.Nodes {
		if n.ID == selectedID || neighbours[n.ID] {
			h.Selected[n.ID] = true
		} else {
			h.Dimmed[n.ID] = true
		}
	}
	g.markIncident(selectedID, h.Active)
	return h
}

// Hover returns the transient highlight and tooltip for the node under the pointer.
// Non-adjacent nodes are dimmed and incident edges active.
func (g *Graph) Hover(id string) (Highlight, Tooltip, error) {
	node, ok := g.Node(id)
	if !ok {
		return emptyHighlight(), Tooltip{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	h := emptyHighlight()
	h.Focus = id
	neighbours := g.Neighbors(id)
	for _, n := range g.Nodes {
		if n.ID != id && !neighbours[n.ID] {
			h.Dimmed[n.ID] = true
		}
	}
	g.markIncident(id, h.Active)
	return h, TooltipFor(node), nil
}

func (g *Graph) markIncident(id string, active map[int]bool) {
	for i, e := range g.Edges {
		if e.Source == id || e.Target == id {
			active[i] = true
		}
	}
}

// Tooltip is the contextual card shown for a hovered node.
type Tooltip struct {
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	Category     string `json:"category,omitempty"`
	Scope        string `json:"scope,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
	Website      string `json:"website,omitempty"`
}

func TooltipFor(n Node) Tooltip {
	if n.Group == domain.GroupCountry {
		return Tooltip{Title: n.Label, Kind: "Country node"}
	}
	return Tooltip{
		Title:        n.Label,
		Kind:         "Regulator",
		Category:     n.Category,
		Scope:        n.Scope,
		Jurisdiction: n.Country,
		Website:      n.URL,
	}
}
