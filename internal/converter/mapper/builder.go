package mapper

import (
	"fmt"
	"math"
	"strings"

	"dxf-service/internal/converter/models"
	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/document"
	"dxf-service/internal/dxf/encoder"
	"dxf-service/internal/dxf/linetype"
)

// ============================================================
// Drawing description → Document
// ============================================================

// Defaults fill in units and version a drawing description leaves empty.
type Defaults struct {
	Units   string
	Version string
}

// Build creates a document for d and replays its operations on it.
func Build(d *models.Drawing, def Defaults) (*document.Document, error) {
	units, version, err := resolve(d.Units, d.Version, def)
	if err != nil {
		return nil, err
	}

	doc := document.New(units, document.WithVersion(version))
	if len(d.Offset) > 0 {
		o := pad(d.Offset, 3)
		doc.SetOffset(o[0], o[1], o[2])
	}

	if err := Apply(doc, d.Operations); err != nil {
		return nil, err
	}
	return doc, nil
}

func resolve(unitsName, versionName string, def Defaults) (document.Units, encoder.Version, error) {
	if unitsName == "" {
		unitsName = def.Units
	}
	if versionName == "" {
		versionName = def.Version
	}

	units, err := document.ParseUnits(unitsName)
	if err != nil {
		return 0, 0, err
	}
	version, err := encoder.ParseVersion(versionName)
	if err != nil {
		return 0, 0, err
	}
	return units, version, nil
}

// Apply replays ops on doc in order. Malformed point lists for polylines
// and solids are ignored the way the builder ignores them; fixed-arity
// primitives and unknown operations fail.
func Apply(doc *document.Document, ops []models.Operation) error {
	for i, op := range ops {
		if err := apply(doc, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func apply(doc *document.Document, op models.Operation) error {
	p := op.Points

	switch op.Op {
	case "layer", "add_layer":
		if op.Name == "" {
			return fmt.Errorf("layer name is required")
		}
		c, err := colorOf(op, color.Default)
		if err != nil {
			return err
		}
		if op.Op == "layer" {
			doc.SetLayer(op.Name, c, lineTypeOf(op.LineType))
		} else {
			doc.AddLayer(op.Name, c, lineTypeOf(op.LineType))
		}

	case "color":
		c, err := colorOf(op, color.Default)
		if err != nil {
			return err
		}
		doc.SetColor(c)

	case "line_type":
		doc.SetLineType(lineTypeOf(op.LineType))

	case "text_style":
		if op.Name == "" {
			return fmt.Errorf("style name is required")
		}
		var opts []document.StyleOption
		if op.WidthFactor != 0 {
			opts = append(opts, document.StyleWidthFactor(op.WidthFactor))
		}
		if op.Oblique != 0 {
			opts = append(opts, document.StyleOblique(op.Oblique))
		}
		if op.FixedHeight != 0 {
			opts = append(opts, document.StyleFixedHeight(op.FixedHeight))
		}
		if op.BigFont != "" {
			opts = append(opts, document.StyleBigFont(op.BigFont))
		}
		doc.SetTextStyle(op.Name, op.Font, opts...)

	case "offset":
		o := pad(p, 3)
		doc.SetOffset(o[0], o[1], o[2])

	case "point":
		if err := arity(p, 3); err != nil {
			return err
		}
		doc.AddPoint(p[0], p[1], p[2])

	case "line":
		if err := arity(p, 6); err != nil {
			return err
		}
		doc.AddLine(p[0], p[1], p[2], p[3], p[4], p[5])

	case "circle":
		if err := arity(p, 3); err != nil {
			return err
		}
		doc.AddCircle(p[0], p[1], p[2], op.Radius)

	case "arc":
		if err := arity(p, 3); err != nil {
			return err
		}
		doc.AddArc(p[0], p[1], p[2], op.Radius, valueOr(op.Start, 0), valueOr(op.End, 360))

	case "ellipse":
		if err := arity(p, 6); err != nil {
			return err
		}
		doc.AddEllipse(p[0], p[1], p[2], p[3], p[4], p[5], op.Ratio, span(op)...)

	case "ellipse3p":
		if err := arity(p, 9); err != nil {
			return err
		}
		doc.AddEllipseBy3Points(p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8], span(op)...)

	case "polyline":
		doc.AddPolyline(p, flags(op)...)

	case "polyline3d":
		doc.AddPolyline3D(p, flags(op)...)

	case "solid":
		doc.AddSolid(p)

	case "text":
		if err := arity(p, 3); err != nil {
			return err
		}
		height := op.Height
		if height == 0 {
			height = 1
		}
		var opts []document.TextOption
		if op.Angle != 0 {
			opts = append(opts, document.TextAngle(op.Angle))
		}
		if op.Thickness != 0 {
			opts = append(opts, document.TextThickness(op.Thickness))
		}
		doc.AddText(p[0], p[1], p[2], op.Text, height, op.Position, opts...)

	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}

	return nil
}

// ============================================================
// Helpers
// ============================================================

func arity(points []float64, n int) error {
	if len(points) != n {
		return fmt.Errorf("expected %d coordinates, got %d", n, len(points))
	}
	return nil
}

func pad(values []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, values)
	return out
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func span(op models.Operation) []document.EllipseOption {
	if op.Start == nil && op.End == nil {
		return nil
	}
	return []document.EllipseOption{
		document.EllipseSpan(valueOr(op.Start, 0), valueOr(op.End, 2*math.Pi)),
	}
}

func flags(op models.Operation) []document.PolylineFlag {
	if op.Closed {
		return []document.PolylineFlag{document.Closed}
	}
	return nil
}

// colorOf resolves an explicit color index, then an RGB hex string.
func colorOf(op models.Operation, fallback color.Color) (color.Color, error) {
	c := fallback
	switch {
	case op.Color != nil:
		c = color.Color(*op.Color)
	case op.RGB != "":
		var err error
		if c, err = color.Hex(op.RGB); err != nil {
			return 0, fmt.Errorf("rgb %q: %w", op.RGB, err)
		}
	}
	if op.Hidden {
		c = color.Hidden(c)
	}
	return c, nil
}

// lineTypeOf normalizes the name; unknown names are left for the document
// to replace with CONTINUOUS.
func lineTypeOf(name string) linetype.LineType {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return linetype.Continuous
	}
	return linetype.LineType(name)
}
