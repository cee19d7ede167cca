package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NodeSpec describes a node to lay out.
type NodeSpec struct {
	ID     string
	Radius float64
}

// LinkSpec connects two nodes by ID.
type LinkSpec struct {
	Source string
	Target string
}

type body struct {
	id     string
	radius float64
	pos    r2.Vec
	vel    r2.Vec
	pin    *r2.Vec
}

type link struct {
	source, target int
	bias           float64
}

// Position is a node's placement after the latest tick.
type Position struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned,omitempty"`
}

// Simulation is the numerical core of the force layout: positions, velocities and
// forces integrated one tick at a time. It has no drawing or timer dependency and is
// not safe for concurrent use; Runner serializes access.
type Simulation struct {
	cfg   Config
	nodes []body
	links []link
	index map[string]int

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	forces []force
	rng    lcg
	ticks  int
}

// New places nodes on a phyllotaxis spiral around the viewport centre. Links naming an
// unknown node are rejected.
func New(nodes []NodeSpec, links []LinkSpec, cfg Config) (*Simulation, error) {
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultMargin
	}
	s := &Simulation{
		cfg:           cfg,
		nodes:         make([]body, len(nodes)),
		index:         make(map[string]int, len(nodes)),
		alpha:         1,
		alphaMin:      defaultAlphaMin,
		alphaDecay:    1 - math.Pow(defaultAlphaMin, 1.0/300),
		velocityDecay: defaultVelocityDecay,
		rng:           newLCG(),
	}

	center := r2.Vec{X: cfg.Width / 2, Y: cfg.Height / 2}
	for i, n := range nodes {
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node %q", n.ID)
		}
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		s.nodes[i] = body{
			id:     n.ID,
			radius: n.Radius,
			pos:    r2.Add(center, r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}),
		}
		s.index[n.ID] = i
	}

	degree := make([]int, len(nodes))
	for _, l := range links {
		si, ok := s.index[l.Source]
		if !ok {
			return nil, fmt.Errorf("link source %q: unknown node", l.Source)
		}
		ti, ok := s.index[l.Target]
		if !ok {
			return nil, fmt.Errorf("link target %q: unknown node", l.Target)
		}
		s.links = append(s.links, link{source: si, target: ti})
		degree[si]++
		degree[ti]++
	}
	for i := range s.links {
		l := &s.links[i]
		l.bias = float64(degree[l.source]) / float64(degree[l.source]+degree[l.target])
	}

	s.forces = []force{
		linkForce{distance: cfg.LinkDistance, strength: cfg.LinkStrength},
		manyBodyForce{strength: cfg.ChargeStrength, distanceMin2: 1},
		centerForce{center: center},
		collideForce{strength: cfg.CollideStrength},
		axisForce{target: center, strength: cfg.AxisStrength},
	}
	return s, nil
}

// Tick advances the simulation one step and clamps every node into the margin box.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay
	for _, f := range s.forces {
		f.apply(s, s.alpha)
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.pin != nil {
			n.pos = *n.pin
			n.vel = r2.Vec{}
		} else {
			n.vel = r2.Scale(s.velocityDecay, n.vel)
			n.pos = r2.Add(n.pos, n.vel)
		}
		n.pos = s.clamp(n.pos)
	}
	s.ticks++
}

// Run ticks until the simulation cools below alphaMin or maxTicks is reached and
// returns the number of ticks taken.
func (s *Simulation) Run(maxTicks int) int {
	n := 0
	for !s.Done() && n < maxTicks {
		s.Tick()
		n++
	}
	return n
}

// Done reports whether the simulation has cooled and would stop scheduling ticks.
func (s *Simulation) Done() bool { return s.alpha < s.alphaMin }

func (s *Simulation) Alpha() float64 { return s.alpha }

func (s *Simulation) Ticks() int { return s.ticks }

func (s *Simulation) Config() Config { return s.cfg }

// Reheat restarts convergence without rebuilding the graph.
func (s *Simulation) Reheat() {
	s.alpha = 1
}

func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
}

// DragStart pins id at its current position and keeps the simulation warm.
func (s *Simulation) DragStart(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("node %q not in layout", id)
	}
	s.alphaTarget = dragAlphaTarget
	if s.alpha < dragAlphaTarget {
		s.alpha = dragAlphaTarget
	}
	p := s.nodes[i].pos
	s.nodes[i].pin = &p
	return nil
}

// DragMove moves the pin of id, clamped into the margin box.
func (s *Simulation) DragMove(id string, x, y float64) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("node %q not in layout", id)
	}
	p := s.clamp(r2.Vec{X: x, Y: y})
	s.nodes[i].pin = &p
	s.nodes[i].pos = p
	return nil
}

// DragEnd releases the pin and lets the simulation cool again.
func (s *Simulation) DragEnd(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("node %q not in layout", id)
	}
	s.alphaTarget = 0
	s.nodes[i].pin = nil
	return nil
}

// Positions returns a copy of every node position in construction order.
func (s *Simulation) Positions() []Position {
	out := make([]Position, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = Position{ID: n.id, X: n.pos.X, Y: n.pos.Y, Pinned: n.pin != nil}
	}
	return out
}

// Position returns the current position of id.
func (s *Simulation) Position(id string) (Position, bool) {
	i, ok := s.index[id]
	if !ok {
		return Position{}, false
	}
	n := s.nodes[i]
	return Position{ID: n.id, X: n.pos.X, Y: n.pos.Y, Pinned: n.pin != nil}, true
}

func (s *Simulation) clamp(p r2.Vec) r2.Vec {
	m := s.cfg.Margin
	return r2.Vec{
		X: clampRange(p.X, m, s.cfg.Width-m),
		Y: clampRange(p.Y, m, s.cfg.Height-m),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if math.IsNaN(v) {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// lcg is the deterministic generator used to separate coincident nodes.
type lcg struct{ s uint64 }

func newLCG() lcg { return lcg{s: 1} }

func (g *lcg) next() float64 {
	const a, c, m = 1664525, 1013904223, 4294967296
	g.s = (a*g.s + c) % m
	return float64(g.s) / m
}

func (g *lcg) jiggle() float64 {
	return (g.next() - 0.5) * 1e-6
}
