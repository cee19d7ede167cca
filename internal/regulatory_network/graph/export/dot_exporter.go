package export

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/theme"
)

// ToDOT renders the graph as an undirected Graphviz document. Node positions are
// emitted as pinned `pos` attributes when known so `neato -n` reproduces the layout.
func ToDOT(g *graph.Graph, positions map[string][2]float64, tokens theme.Tokens, title string) string {
	var b strings.Builder
	b.WriteString("graph G {\n  layout=neato;\n  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, dotEscape(title)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf(`  bgcolor="%s";`+"\n", tokens.Get("bg", "#0D1117")))

	if g == nil {
		b.WriteString("}\n")
		return b.String()
	}
	if g.Empty() {
		b.WriteString(fmt.Sprintf(`  placeholder [shape=plaintext, style="", label="%s"];`+"\n", dotEscape(g.Placeholder)))
		b.WriteString("}\n")
		return b.String()
	}

	for _, n := range g.Nodes {
		fill := tokens.Get(n.Color, tokens.Get("accent", "#2F81F7"))
		style := fmt.Sprintf(`width=0.25, fillcolor="%s", tooltip="%s"`, fill, dotEscape(n.Category))
		if n.Group == domain.GroupCountry {
			style = fmt.Sprintf(`width=0.35, fillcolor="%s", penwidth=2`, tokens.Get("accent", "#2F81F7"))
		}
		if p, ok := positions[n.ID]; ok {
			style += fmt.Sprintf(`, pos="%.2f,%.2f!"`, p[0], -p[1])
		}
		b.WriteString(fmt.Sprintf(`  "%s" [xlabel="%s", label="", %s];`+"\n", dotEscape(n.ID), dotEscape(n.Label), style))
	}

	for i, e := range g.Edges {
		b.WriteString(fmt.Sprintf(`  "%s" -- "%s" [color="%s", tooltip="%s #%d"];`+"\n",
			dotEscape(e.Source), dotEscape(e.Target), tokens.Get("line", "#30363D"), dotEscape(e.Category), i))
	}

	b.WriteString("}\n")
	return b.String()
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}

// PositionMap indexes layout positions for ToDOT.
func PositionMap(s Scene) map[string][2]float64 {
	out := make(map[string][2]float64, len(s.Positions))
	for _, p := range s.Positions {
		out[p.ID] = [2]float64{p.X, p.Y}
	}
	return out
}
