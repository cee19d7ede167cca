package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
)

// ToSVG serializes the scene as a standalone SVG document with theme tokens resolved
// to concrete colours.
func ToSVG(s Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-label="Regulator network">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Tokens.Get("bg", "#0D1117"))

	g := s.Graph
	if g == nil || g.Empty() {
		msg := ""
		fill := s.Tokens.Get("muted", "#8B949E")
		if g != nil {
			msg = g.Placeholder
			if g.Error {
				fill = s.Tokens.Get("danger", "#F85149")
			}
		}
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="middle" font-size="%d" fill="%s">%s</text>`+"\n",
			num(s.Width/2), num(s.Height/2), placeholderFontSize, fill, html.EscapeString(msg))
		b.WriteString("</svg>\n")
		return b.String()
	}

	pos := s.positions()

	fmt.Fprintf(&b, `  <g class="fta-links" stroke="%s" stroke-width="1.4" stroke-linecap="round" opacity="0.9">`+"\n",
		s.Tokens.Get("line", "#30363D"))
	for i, e := range g.Edges {
		a, c := s.at(pos, e.Source), s.at(pos, e.Target)
		attrs := ""
		if s.Highlight.Active[i] {
			attrs = fmt.Sprintf(` class="is-active" stroke="%s" stroke-width="2.2"`, s.Tokens.Get("accent", "#2F81F7"))
		}
		fmt.Fprintf(&b, `    <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n", num(a.x), num(a.y), num(c.x), num(c.y), attrs)
	}
	b.WriteString("  </g>\n")

	b.WriteString(`  <g class="fta-nodes">` + "\n")
	for _, n := range g.Nodes {
		p := s.at(pos, n.ID)
		stroke, width := s.ring(n)
		fmt.Fprintf(&b, `    <circle class="%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			s.classes(n), num(p.x), num(p.y), num(nodeRadius(n)), s.fill(n), stroke, num(width))
	}
	b.WriteString("  </g>\n")

	b.WriteString(`  <g class="fta-labels">` + "\n")
	text := s.Tokens.Get("text-default", "#E6EDF3")
	for _, n := range g.Nodes {
		p := s.at(pos, n.ID)
		size, weight, dy := 11, 500, -14
		if n.Group == domain.GroupCountry {
			size, weight, dy = 12, 600, -16
		}
		opacity := ""
		if s.dimmed(n.ID) {
			opacity = ` opacity="0.35"`
		}
		fmt.Fprintf(&b, `    <g transform="translate(%s, %s)"%s>`+"\n", num(p.x), num(p.y), opacity)
		fmt.Fprintf(&b, `      <text y="%d" text-anchor="middle" font-size="%d" font-weight="%d" fill="%s">%s</text>`+"\n",
			dy, size, weight, text, html.EscapeString(n.Label))
		if n.Group == domain.GroupRegulator {
			s.writeBadge(&b, n)
		}
		b.WriteString("    </g>\n")
	}
	b.WriteString("  </g>\n")
	b.WriteString("</svg>\n")
	return b.String()
}

func (s Scene) writeBadge(b *strings.Builder, n graph.Node) {
	label := n.Category
	if label == "" {
		label = metrics.DefaultCategory
	}
	// 9px semibold text averages ~5.5px per glyph.
	w := float64(len([]rune(label)))*5.5 + 14
	fmt.Fprintf(b, `      <g class="fta-badge" transform="translate(0, 18)"><rect x="%s" y="-9" width="%s" height="14" rx="7" fill="%s"/>`,
		num(-w/2), num(w), s.Tokens.Get("bg-3", "#21262D"))
	fmt.Fprintf(b, `<text text-anchor="middle" font-size="9" font-weight="600" dominant-baseline="middle" fill="%s">%s</text></g>`+"\n",
		s.fill(n), html.EscapeString(label))
}

func (s Scene) classes(n graph.Node) string {
	c := "fta-node fta-node-" + string(n.Group)
	if s.Highlight.Selected[n.ID] {
		c += " is-selected"
	}
	if s.Highlight.Dimmed[n.ID] {
		c += " is-dimmed"
	}
	return c
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
