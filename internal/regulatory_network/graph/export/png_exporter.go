package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

const circleSegments = 32

// MaxPNGPixels caps the raster area ToPNG will allocate.
const MaxPNGPixels = 4096 * 4096

// ToPNG rasterizes the scene on the theme background at the canvas dimensions.
func ToPNG(s Scene) ([]byte, error) {
	if !(s.Width > 0 && s.Height > 0) || s.Width*s.Height > MaxPNGPixels {
		return nil, fmt.Errorf("%w: %gx%g", domain.ErrInvalidCanvas, s.Width, s.Height)
	}
	w, h := int(math.Round(s.Width)), int(math.Round(s.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidCanvas, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseHex(s.Tokens.Get("bg", "#0D1117"))), image.Point{}, draw.Src)

	g := s.Graph
	if g == nil || g.Empty() {
		if g != nil {
			col := s.Tokens.Get("muted", "#8B949E")
			if g.Error {
				col = s.Tokens.Get("danger", "#F85149")
			}
			drawText(img, g.Placeholder, s.Width/2, s.Height/2, parseHex(col))
		}
		return encodePNG(img)
	}

	pos := s.positions()
	line := parseHex(s.Tokens.Get("line", "#30363D"))
	active := parseHex(s.Tokens.Get("accent", "#2F81F7"))
	for i, e := range g.Edges {
		a, b := s.at(pos, e.Source), s.at(pos, e.Target)
		col, width := line, 1.4
		if s.Highlight.Active[i] {
			col, width = active, 2.2
		}
		fillPath(img, segment(a, b, width), col)
	}

	for _, n := range g.Nodes {
		p := s.at(pos, n.ID)
		r := nodeRadius(n)
		stroke, width := s.ring(n)
		var fill color.Color = parseHex(s.fill(n))
		if s.dimmed(n.ID) {
			c := parseHex(s.fill(n))
			fill = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 90}
		}
		fillPath(img, circle(p, r+width/2), parseHex(stroke))
		fillPath(img, circle(p, r-width/2), fill)
	}

	text := parseHex(s.Tokens.Get("text-default", "#E6EDF3"))
	for _, n := range g.Nodes {
		p := s.at(pos, n.ID)
		drawText(img, n.Label, p.x, p.y-nodeRadius(n)-6, text)
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fillPath(dst *image.RGBA, pts []point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.x), float32(p.y))
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(col), image.Point{})
}

func circle(c point, r float64) []point {
	if r <= 0 {
		return nil
	}
	pts := make([]point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = point{c.x + r*math.Cos(a), c.y + r*math.Sin(a)}
	}
	return pts
}

// segment returns the quad covering a straight stroke of the given width.
func segment(a, b point, width float64) []point {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	return []point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}
}

// drawText draws s horizontally centred on x with its baseline at y.
func drawText(dst *image.RGBA, s string, x, y float64, col color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(x))) - w/2,
		Y: fixed.I(int(math.Round(y))),
	}
	d.DrawString(s)
}

// parseHex reads #RGB or #RRGGBB; anything else is opaque grey.
func parseHex(s string) color.RGBA {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
