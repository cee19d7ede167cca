package graph

import "github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/layout"

// NewSimulation seeds a force simulation for g on a width×height canvas using the
// force parameters of g's mode.
func (g *Graph) NewSimulation(width, height float64) (*layout.Simulation, error) {
	nodes := make([]layout.NodeSpec, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, layout.NodeSpec{ID: n.ID, Radius: layout.CollisionRadius(n.Group)})
	}
	links := make([]layout.LinkSpec, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, layout.LinkSpec{Source: e.Source, Target: e.Target})
	}
	return layout.New(nodes, links, layout.ConfigFor(g.Mode, width, height))
}
