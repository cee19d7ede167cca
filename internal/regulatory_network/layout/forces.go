package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type force interface {
	apply(s *Simulation, alpha float64)
}

// linkForce pulls linked nodes toward the rest distance, splitting the correction by
// degree so hubs move less.
type linkForce struct {
	distance float64
	strength float64
}

func (f linkForce) apply(s *Simulation, alpha float64) {
	for _, l := range s.links {
		src, tgt := &s.nodes[l.source], &s.nodes[l.target]
		d := r2.Sub(r2.Add(tgt.pos, tgt.vel), r2.Add(src.pos, src.vel))
		if d.X == 0 {
			d.X = s.rng.jiggle()
		}
		if d.Y == 0 {
			d.Y = s.rng.jiggle()
		}
		dist := r2.Norm(d)
		k := (dist - f.distance) / dist * alpha * f.strength
		d = r2.Scale(k, d)
		tgt.vel = r2.Sub(tgt.vel, r2.Scale(l.bias, d))
		src.vel = r2.Add(src.vel, r2.Scale(1-l.bias, d))
	}
}

// manyBodyForce applies pairwise repulsion (negative strength) between all nodes. The
// exact O(n²) sum is fine for the few hundred nodes a dataset produces.
type manyBodyForce struct {
	strength     float64
	distanceMin2 float64
}

func (f manyBodyForce) apply(s *Simulation, alpha float64) {
	for i := range s.nodes {
		ni := &s.nodes[i]
		for j := range s.nodes {
			if i == j {
				continue
			}
			d := r2.Sub(s.nodes[j].pos, ni.pos)
			l := r2.Norm2(d)
			if d.X == 0 {
				d.X = s.rng.jiggle()
				l += d.X * d.X
			}
			if d.Y == 0 {
				d.Y = s.rng.jiggle()
				l += d.Y * d.Y
			}
			if l < f.distanceMin2 {
				l = math.Sqrt(f.distanceMin2 * l)
			}
			ni.vel = r2.Add(ni.vel, r2.Scale(f.strength*alpha/l, d))
		}
	}
}

// centerForce translates the whole graph so its mean position sits on the centre.
type centerForce struct {
	center r2.Vec
}

func (f centerForce) apply(s *Simulation, _ float64) {
	if len(s.nodes) == 0 {
		return
	}
	var sum r2.Vec
	for _, n := range s.nodes {
		sum = r2.Add(sum, n.pos)
	}
	shift := r2.Sub(r2.Scale(1/float64(len(s.nodes)), sum), f.center)
	for i := range s.nodes {
		s.nodes[i].pos = r2.Sub(s.nodes[i].pos, shift)
	}
}

// collideForce pushes apart nodes whose exclusion circles overlap, weighting the push
// by the other node's radius.
type collideForce struct {
	strength float64
}

func (f collideForce) apply(s *Simulation, _ float64) {
	for i := range s.nodes {
		ni := &s.nodes[i]
		ri := ni.radius
		ri2 := ri * ri
		pi := r2.Add(ni.pos, ni.vel)
		for j := i + 1; j < len(s.nodes); j++ {
			nj := &s.nodes[j]
			rj := nj.radius
			r := ri + rj
			d := r2.Sub(pi, r2.Add(nj.pos, nj.vel))
			l := r2.Norm2(d)
			if l >= r*r {
				continue
			}
			if d.X == 0 {
				d.X = s.rng.jiggle()
				l += d.X * d.X
			}
			if d.Y == 0 {
				d.Y = s.rng.jiggle()
				l += d.Y * d.Y
			}
			l = math.Sqrt(l)
			d = r2.Scale((r-l)/l*f.strength, d)
			w := rj * rj / (ri2 + rj*rj)
			ni.vel = r2.Add(ni.vel, r2.Scale(w, d))
			nj.vel = r2.Sub(nj.vel, r2.Scale(1-w, d))
		}
	}
}

// axisForce is a weak spring toward the centre on each axis.
type axisForce struct {
	target   r2.Vec
	strength float64
}

func (f axisForce) apply(s *Simulation, alpha float64) {
	k := f.strength * alpha
	for i := range s.nodes {
		n := &s.nodes[i]
		n.vel = r2.Add(n.vel, r2.Scale(k, r2.Sub(f.target, n.pos)))
	}
}
