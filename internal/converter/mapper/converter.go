package mapper

import (
	"fmt"
	"io"
	"log"
	"strings"

	"dxf-service/internal/converter/models"
	"dxf-service/internal/converter/parser"
	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/document"
	"dxf-service/internal/dxf/linetype"
)

// ============================================================
// Converter
// ============================================================

// defaultFontSize is the SVG initial value of font-size.
const defaultFontSize = 16

type Converter struct {
	defaults Defaults
	height   float64
	doc      *document.Document
}

func New(def Defaults) *Converter {
	return &Converter{defaults: def}
}

// Convert SVG → DXF document
func (c *Converter) Convert(r io.Reader) (*document.Document, error) {
	svg, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	units, version, err := resolve("", "", c.defaults)
	if err != nil {
		return nil, err
	}

	c.height = svg.Height
	c.doc = document.New(units, document.WithVersion(version))

	var skipped int
	for _, elem := range svg.Elements {
		c.useLayer(elem)
		if err := c.addElement(elem); err != nil {
			log.Printf("[CONVERT] skip %s %q: %v", elem.Type, elem.ID, err)
			skipped++
		}
	}

	log.Printf("[CONVERT] %d elements → %d entities (%d skipped)", len(svg.Elements), c.doc.Entities(), skipped)
	return c.doc, nil
}

// useLayer activates the element's layer. The first stroke seen on a layer
// decides its color.
func (c *Converter) useLayer(elem models.SVGElement) {
	if c.doc.Layer() == elem.Layer {
		return
	}
	c.doc.SetLayer(elem.Layer, strokeColor(elem.Stroke), linetype.Continuous)
}

func (c *Converter) addElement(elem models.SVGElement) error {
	switch geom := elem.Geometry.(type) {
	case models.RectGeometry:
		if geom.Width <= 0 || geom.Height <= 0 {
			return fmt.Errorf("empty rect")
		}
		x1, y1 := geom.X, c.flip(geom.Y)
		x2, y2 := geom.X+geom.Width, c.flip(geom.Y+geom.Height)
		c.doc.AddPolyline([]float64{x1, y1, x2, y1, x2, y2, x1, y2}, document.Closed)

	case models.PathGeometry:
		subpaths, err := parser.ParsePath(geom.D)
		if err != nil {
			return err
		}
		for _, sp := range subpaths {
			c.addPoints(sp.Points, sp.Closed)
		}

	case models.PointsGeometry:
		if len(geom.Points) < 2 {
			return fmt.Errorf("need at least 2 points, got %d", len(geom.Points))
		}
		c.addPoints(geom.Points, geom.Closed)

	case models.LineGeometry:
		c.doc.AddLine(geom.X1, c.flip(geom.Y1), 0, geom.X2, c.flip(geom.Y2), 0)

	case models.CircleGeometry:
		if geom.R <= 0 {
			return fmt.Errorf("invalid radius %g", geom.R)
		}
		c.doc.AddCircle(geom.CX, c.flip(geom.CY), 0, geom.R)

	case models.EllipseGeometry:
		if geom.RX <= 0 || geom.RY <= 0 {
			return fmt.Errorf("invalid radii %g, %g", geom.RX, geom.RY)
		}
		cx, cy := geom.CX, c.flip(geom.CY)
		if geom.RX >= geom.RY {
			c.doc.AddEllipse(cx, cy, 0, cx+geom.RX, cy, 0, geom.RY/geom.RX)
		} else {
			c.doc.AddEllipse(cx, cy, 0, cx, cy+geom.RY, 0, geom.RX/geom.RY)
		}

	case models.TextGeometry:
		if geom.Text == "" {
			return fmt.Errorf("empty text")
		}
		size := geom.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		c.doc.AddText(geom.X, c.flip(geom.Y), 0, geom.Text, size, anchorPosition(geom.Anchor))

	default:
		return fmt.Errorf("unsupported geometry %T", elem.Geometry)
	}

	return nil
}

func (c *Converter) addPoints(points []models.Point, closed bool) {
	if len(points) < 2 {
		return
	}
	// A closed subpath that returns to its start repeats the first vertex.
	if closed && len(points) > 2 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}

	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.X, c.flip(p.Y))
	}

	if closed {
		c.doc.AddPolyline(flat, document.Closed)
	} else {
		c.doc.AddPolyline(flat)
	}
}

// flip turns SVG's downward Y axis into the drawing's upward one.
func (c *Converter) flip(y float64) float64 {
	return c.height - y
}

// anchorPosition maps text-anchor onto the bottom row of the justification
// grid; SVG places text on its baseline.
func anchorPosition(anchor string) int {
	switch anchor {
	case "middle":
		return 8
	case "end":
		return 9
	}
	return 7
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"orange":  "#ffa500",
}

func strokeColor(stroke string) color.Color {
	s := strings.ToLower(strings.TrimSpace(stroke))
	if s == "" || s == "none" {
		return color.Default
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := color.Hex(s)
	if err != nil {
		return color.Default
	}
	return c
}
