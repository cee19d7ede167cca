package graph

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/selection"
)

const (
	PlaceholderLoading       = "Loading dataset …"
	PlaceholderNoCountryData = "No data for selected country"
	PlaceholderNoMatches     = "No regulators match the current filters"
)

type Node struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Group    domain.NodeGroup `json:"group"`
	ISO3     string           `json:"iso3"`
	Country  string           `json:"country"`
	Scope    string           `json:"scope,omitempty"`
	Category string           `json:"category,omitempty"`
	URL      string           `json:"url,omitempty"`
	Color    string           `json:"color"`
}

type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Category string `json:"category"`
}

// Graph is an immutable country → regulator network for one mode and filter.
type Graph struct {
	Mode        domain.GraphMode `json:"mode"`
	Country     string           `json:"country,omitempty"`
	Category    string           `json:"category"`
	Categories  []string         `json:"categories"`
	Legend      []LegendEntry    `json:"legend"`
	Nodes       []Node           `json:"nodes"`
	Edges       []Edge           `json:"edges"`
	Placeholder string           `json:"placeholder,omitempty"`
	// Error is set when the placeholder reports a load failure.
	Error bool `json:"error,omitempty"`

	adj   *simple.UndirectedGraph
	ids   map[string]int64
	names map[int64]string
}

// Input is everything graph construction depends on.
type Input struct {
	Dataset  domain.Dataset
	Loading  bool
	LoadErr  string
	Mode     domain.GraphMode
	Country  string
	Category string
}

// Build constructs the graph for in. Degenerate inputs (loading, load error, missing
// selection, nothing matching the filter) produce a graph with a placeholder message and
// no nodes rather than an error.
func Build(in Input) *Graph {
	categories := metrics.Categories(in.Dataset)
	palette := NewPalette(categories)

	filter := in.Category
	if filter == "" || !contains(categories, filter) {
		filter = domain.AllCategories
	}

	g := &Graph{
		Mode:       selection.ResolveMode(in.Mode, in.Country),
		Country:    in.Country,
		Category:   filter,
		Categories: categories,
		Legend:     palette.Legend(categories),
		Nodes:      []Node{},
		Edges:      []Edge{},
		adj:        simple.NewUndirectedGraph(),
		ids:        map[string]int64{},
		names:      map[int64]string{},
	}

	switch {
	case in.Loading:
		return g.placeholder(PlaceholderLoading, false)
	case in.LoadErr != "":
		return g.placeholder(in.LoadErr, true)
	}

	regulatorNodes := 0
	if g.Mode == domain.ModeCountry {
		var rec *domain.CountryRecord
		for i := range in.Dataset {
			if in.Dataset[i].ISO3 == in.Country {
				rec = &in.Dataset[i]
				break
			}
		}
		if rec == nil {
			return g.placeholder(PlaceholderNoCountryData, false)
		}
		regulatorNodes += g.addCountry(*rec, filter, palette)
	} else {
		for _, rec := range in.Dataset {
			regulatorNodes += g.addCountry(rec, filter, palette)
		}
	}

	if len(g.Nodes) == 0 || (filter != domain.AllCategories && regulatorNodes == 0) {
		return g.placeholder(PlaceholderNoMatches, false)
	}
	return g
}

func (g *Graph) addCountry(rec domain.CountryRecord, filter string, palette Palette) int {
	countryID := metrics.CountryNodeID(rec.ISO3)
	g.addNode(Node{
		ID:      countryID,
		Label:   rec.Country,
		Group:   domain.GroupCountry,
		ISO3:    rec.ISO3,
		Country: rec.Country,
		Color:   AccentToken,
	})

	added := 0
	for i, reg := range rec.Regulators {
		category := metrics.InferCategory(reg)
		if filter != domain.AllCategories && category != filter {
			continue
		}
		id := metrics.RegulatorID(rec.ISO3, reg, i)
		if _, dup := g.ids[id]; dup {
			continue
		}
		g.addNode(Node{
			ID:       id,
			Label:    reg.Name,
			Group:    domain.GroupRegulator,
			ISO3:     rec.ISO3,
			Country:  rec.Country,
			Scope:    reg.Scope,
			Category: category,
			URL:      reg.URL,
			Color:    palette.Color(category),
		})
		g.addEdge(Edge{Source: countryID, Target: id, Category: category})
		added++
	}
	return added
}

func (g *Graph) addNode(n Node) {
	if _, ok := g.ids[n.ID]; ok {
		return
	}
	gn := g.adj.NewNode()
	g.adj.AddNode(gn)
	g.ids[n.ID] = gn.ID()
	g.names[gn.ID()] = n.ID
	g.Nodes = append(g.Nodes, n)
}

func (g *Graph) addEdge(e Edge) {
	g.Edges = append(g.Edges, e)
	g.adj.SetEdge(g.adj.NewEdge(g.adj.Node(g.ids[e.Source]), g.adj.Node(g.ids[e.Target])))
}

func (g *Graph) placeholder(msg string, isErr bool) *Graph {
	g.Placeholder = msg
	g.Error = isErr
	g.Nodes = []Node{}
	g.Edges = []Edge{}
	g.adj = simple.NewUndirectedGraph()
	g.ids = map[string]int64{}
	g.names = map[int64]string{}
	return g
}

// Empty reports whether the graph renders a placeholder instead of nodes.
func (g *Graph) Empty() bool { return g.Placeholder != "" }

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.ids[id]
	return ok
}

// Node returns the node with id.
func (g *Graph) Node(id string) (Node, bool) {
	if !g.Has(id) {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Neighbors returns the IDs adjacent to id.
func (g *Graph) Neighbors(id string) map[string]bool {
	out := map[string]bool{}
	gid, ok := g.ids[id]
	if !ok {
		return out
	}
	it := g.adj.From(gid)
	for it.Next() {
		out[g.names[it.Node().ID()]] = true
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
