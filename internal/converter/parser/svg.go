package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"dxf-service/internal/converter/models"
)

// ============================================================
// XML Structures
// ============================================================

type Rect struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	X      Length `xml:"x,attr"`
	Y      Length `xml:"y,attr"`
	Width  Length `xml:"width,attr"`
	Height Length `xml:"height,attr"`
}

type Path struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	D      string `xml:"d,attr"`
}

type Line struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	X1     Length `xml:"x1,attr"`
	Y1     Length `xml:"y1,attr"`
	X2     Length `xml:"x2,attr"`
	Y2     Length `xml:"y2,attr"`
}

type Circle struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	CX     Length `xml:"cx,attr"`
	CY     Length `xml:"cy,attr"`
	R      Length `xml:"r,attr"`
}

type Ellipse struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	CX     Length `xml:"cx,attr"`
	CY     Length `xml:"cy,attr"`
	RX     Length `xml:"rx,attr"`
	RY     Length `xml:"ry,attr"`
}

type Poly struct {
	ID     string `xml:"id,attr"`
	Stroke string `xml:"stroke,attr"`
	Points string `xml:"points,attr"`
}

type Text struct {
	ID       string `xml:"id,attr"`
	Stroke   string `xml:"stroke,attr"`
	X        Length `xml:"x,attr"`
	Y        Length `xml:"y,attr"`
	FontSize Length `xml:"font-size,attr"`
	Anchor   string `xml:"text-anchor,attr"`
	Content  string `xml:",chardata"`
}

// Length is a numeric attribute; unit suffixes (px, pt, mm, ...) are dropped.
type Length float64

func (l *Length) UnmarshalXMLAttr(attr xml.Attr) error {
	v, err := parseLength(attr.Value)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", attr.Name.Local, err)
	}
	*l = Length(v)
	return nil
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return r == '%' || unicode.IsLetter(r)
	})
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ============================================================
// Parser
// ============================================================

// group is the inherited state of an open <g>.
type group struct {
	layer  string
	stroke string
}

// ParseSVG decodes the supported element subset in document order. Groups
// pass their id (as layer) and stroke down to the elements they contain;
// other containers such as <defs> are skipped.
func ParseSVG(r io.Reader) (*models.SVGDocument, error) {
	decoder := xml.NewDecoder(r)

	root, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}

	doc := &models.SVGDocument{}
	if doc.Width, err = lengthAttr(root, "width"); err != nil {
		return nil, err
	}
	if doc.Height, err = lengthAttr(root, "height"); err != nil {
		return nil, err
	}
	if vb := parseCoords(attr(root, "viewBox")); len(vb) == 4 {
		if doc.Width == 0 {
			doc.Width = vb[2]
		}
		if doc.Height == 0 {
			doc.Height = vb[3]
		}
	}

	stack := []group{{}}
	for len(stack) > 0 {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of SVG")
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			top := stack[len(stack)-1]
			if t.Name.Local == "g" {
				stack = append(stack, inherit(top, t))
				continue
			}
			elem, ok, err := decodeElement(decoder, t)
			if err != nil {
				return nil, fmt.Errorf("<%s>: %w", t.Name.Local, err)
			}
			if !ok {
				continue
			}
			if elem.Stroke == "" {
				elem.Stroke = top.stroke
			}
			elem.Layer = classifyLayer(elem.ID, top.layer)
			doc.Elements = append(doc.Elements, elem)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	return doc, nil
}

func rootElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "svg" {
				return xml.StartElement{}, fmt.Errorf("root element is <%s>, want <svg>", start.Name.Local)
			}
			return start, nil
		}
	}
}

func inherit(parent group, start xml.StartElement) group {
	g := parent
	if id := attr(start, "id"); id != "" {
		g.layer = id
	}
	if stroke := attr(start, "stroke"); stroke != "" {
		g.stroke = stroke
	}
	return g
}

// decodeElement consumes one element. ok is false for elements outside the
// supported subset, which are skipped with their content.
func decodeElement(decoder *xml.Decoder, start xml.StartElement) (models.SVGElement, bool, error) {
	var elem models.SVGElement

	switch start.Name.Local {
	case "rect":
		var rect Rect
		if err := decoder.DecodeElement(&rect, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: rect.ID, Stroke: rect.Stroke, Geometry: models.RectGeometry{
			X:      float64(rect.X),
			Y:      float64(rect.Y),
			Width:  float64(rect.Width),
			Height: float64(rect.Height),
		}}

	case "path":
		var path Path
		if err := decoder.DecodeElement(&path, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: path.ID, Stroke: path.Stroke, Geometry: models.PathGeometry{D: path.D}}

	case "line":
		var line Line
		if err := decoder.DecodeElement(&line, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: line.ID, Stroke: line.Stroke, Geometry: models.LineGeometry{
			X1: float64(line.X1), Y1: float64(line.Y1),
			X2: float64(line.X2), Y2: float64(line.Y2),
		}}

	case "circle":
		var c Circle
		if err := decoder.DecodeElement(&c, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: c.ID, Stroke: c.Stroke, Geometry: models.CircleGeometry{
			CX: float64(c.CX), CY: float64(c.CY), R: float64(c.R),
		}}

	case "ellipse":
		var e Ellipse
		if err := decoder.DecodeElement(&e, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: e.ID, Stroke: e.Stroke, Geometry: models.EllipseGeometry{
			CX: float64(e.CX), CY: float64(e.CY),
			RX: float64(e.RX), RY: float64(e.RY),
		}}

	case "polyline", "polygon":
		var p Poly
		if err := decoder.DecodeElement(&p, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: p.ID, Stroke: p.Stroke, Geometry: models.PointsGeometry{
			Points: pointList(p.Points),
			Closed: start.Name.Local == "polygon",
		}}

	case "text":
		var t Text
		if err := decoder.DecodeElement(&t, &start); err != nil {
			return elem, false, err
		}
		elem = models.SVGElement{ID: t.ID, Stroke: t.Stroke, Geometry: models.TextGeometry{
			X:        float64(t.X),
			Y:        float64(t.Y),
			FontSize: float64(t.FontSize),
			Anchor:   t.Anchor,
			Text:     strings.TrimSpace(t.Content),
		}}

	default:
		return elem, false, decoder.Skip()
	}

	elem.Type = start.Name.Local
	return elem, true, nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func lengthAttr(start xml.StartElement, name string) (float64, error) {
	v, err := parseLength(attr(start, name))
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return v, nil
}

func pointList(s string) []models.Point {
	coords := parseCoords(s)
	points := make([]models.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, models.Point{X: coords[i], Y: coords[i+1]})
	}
	return points
}

// classifyLayer places an element on its group's layer, else on the prefix
// of its id ("Wall_3" → "Wall"), else on layer "0".
func classifyLayer(id, group string) string {
	if group != "" {
		return group
	}
	if i := strings.Index(id, "_"); i > 0 {
		return id[:i]
	}
	return "0"
}
