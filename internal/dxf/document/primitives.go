package document

import (
	"errors"
	"math"

	"dxf-service/internal/dxf/encoder"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidPointList is returned by the checked polyline variants when the
// coordinate list does not describe at least two whole points.
var ErrInvalidPointList = errors.New("invalid point list")

func (d *Document) base() encoder.Base {
	return encoder.Base{Layer: d.layerName}
}

func (d *Document) push(e encoder.Entity) *Document {
	d.entities = append(d.entities, &entityEntry{entity: e})
	return d
}

// Entities returns the number of entities added so far.
func (d *Document) Entities() int {
	return len(d.entities)
}

// Entity returns the i-th entity in append order.
func (d *Document) Entity(i int) (encoder.Entity, bool) {
	if i < 0 || i >= len(d.entities) {
		return nil, false
	}
	return d.entities[i].entity, true
}

// ============================================================
// Points, lines, circles, arcs
// ============================================================

// AddPoint adds a POINT to the active layer.
func (d *Document) AddPoint(x, y, z float64) *Document {
	return d.push(encoder.Point{Base: d.base(), At: d.at(x, y, z)})
}

// AddLine adds a LINE from (x, y, z) to (x2, y2, z2).
func (d *Document) AddLine(x, y, z, x2, y2, z2 float64) *Document {
	return d.push(encoder.Line{
		Base:  d.base(),
		Start: d.at(x, y, z),
		End:   d.at(x2, y2, z2),
	})
}

// AddCircle adds a CIRCLE.
func (d *Document) AddCircle(x, y, z, radius float64) *Document {
	return d.push(encoder.Circle{Base: d.base(), Center: d.at(x, y, z), Radius: radius})
}

// AddArc adds an ARC drawn counter-clockwise from startAngle to endAngle
// (degrees).
func (d *Document) AddArc(x, y, z, radius, startAngle, endAngle float64) *Document {
	return d.push(encoder.Arc{
		Base:   d.base(),
		Center: d.at(x, y, z),
		Radius: radius,
		Start:  startAngle,
		End:    endAngle,
	})
}

// ============================================================
// Ellipses
// ============================================================

type ellipseSpan struct {
	start, end float64
}

// EllipseOption adjusts an ellipse.
type EllipseOption func(*ellipseSpan)

// EllipseSpan limits the ellipse to the parameters start..end (radians).
func EllipseSpan(start, end float64) EllipseOption {
	return func(s *ellipseSpan) {
		s.start = start
		s.end = end
	}
}

func spanOf(opts []EllipseOption) ellipseSpan {
	s := ellipseSpan{start: 0, end: 2 * math.Pi}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// AddEllipse adds an ELLIPSE centered at (cx, cy, cz) whose major axis ends
// at (mx, my, mz); ratio is minor/major.
func (d *Document) AddEllipse(cx, cy, cz, mx, my, mz, ratio float64, opts ...EllipseOption) *Document {
	center := r3.Vec{X: cx, Y: cy, Z: cz}
	major := r3.Sub(r3.Vec{X: mx, Y: my, Z: mz}, center)
	span := spanOf(opts)

	return d.push(encoder.Ellipse{
		Base:   d.base(),
		Center: r3.Add(center, d.offset),
		Major:  major,
		Ratio:  ratio,
		Start:  span.start,
		End:    span.end,
	})
}

// AddEllipseBy3Points adds an ELLIPSE given its center, the endpoint of the
// major axis and the endpoint of the minor axis. The ratio is rounded to
// three decimals.
func (d *Document) AddEllipseBy3Points(cx, cy, cz, mx, my, mz, rx, ry, rz float64, opts ...EllipseOption) *Document {
	center := r3.Vec{X: cx, Y: cy, Z: cz}
	major := r3.Sub(r3.Vec{X: mx, Y: my, Z: mz}, center)
	minor := r3.Sub(r3.Vec{X: rx, Y: ry, Z: rz}, center)

	return d.AddEllipse(cx, cy, cz, mx, my, mz, AxisRatio(major, minor), opts...)
}

// AxisRatio returns |minor| / |major| rounded to three decimals. A zero
// major axis gives 1.
func AxisRatio(major, minor r3.Vec) float64 {
	length := r3.Norm(major)
	if length == 0 {
		return 1
	}
	return math.Round(r3.Norm(minor)/length*1000) / 1000
}

// ============================================================
// Polylines
// ============================================================

// PolylineFlag is a bit of the polyline flag field.
type PolylineFlag int

const (
	Closed   PolylineFlag = encoder.PolylineClosed
	Plinegen PolylineFlag = encoder.PolylinePlinegen
)

func joinFlags(flags []PolylineFlag) int {
	var out int
	for _, f := range flags {
		out |= int(f)
	}
	return out
}

func validPoints(points []float64, dim int) bool {
	return len(points) > dim && len(points)%dim == 0
}

// AddPolyline adds a 2D polyline from a flat x, y list. Lists holding fewer
// than two points or an odd number of values are ignored.
func (d *Document) AddPolyline(points []float64, flags ...PolylineFlag) *Document {
	if !validPoints(points, 2) {
		return d
	}

	pts := make([]r3.Vec, 0, len(points)/2)
	for i := 0; i < len(points); i += 2 {
		pts = append(pts, r3.Vec{X: points[i] + d.offset.X, Y: points[i+1] + d.offset.Y})
	}

	return d.push(encoder.Polyline{
		Base:      d.base(),
		Points:    pts,
		Elevation: d.offset.Z,
		Flags:     joinFlags(flags),
	})
}

// AddPolyline2D is AddPolyline.
//
// Deprecated: use AddPolyline.
func (d *Document) AddPolyline2D(points []float64) *Document {
	return d.AddPolyline(points)
}

// AddPolylineChecked is AddPolyline reporting ErrInvalidPointList instead of
// ignoring a malformed list.
func (d *Document) AddPolylineChecked(points []float64, flags ...PolylineFlag) error {
	if !validPoints(points, 2) {
		return ErrInvalidPointList
	}
	d.AddPolyline(points, flags...)
	return nil
}

// AddPolyline3D adds a 3D polyline from a flat x, y, z list. Lists holding
// fewer than two points or a length not divisible by 3 are ignored.
func (d *Document) AddPolyline3D(points []float64, flags ...PolylineFlag) *Document {
	if !validPoints(points, 3) {
		return d
	}

	pts := make([]r3.Vec, 0, len(points)/3)
	for i := 0; i < len(points); i += 3 {
		pts = append(pts, d.at(points[i], points[i+1], points[i+2]))
	}

	return d.push(encoder.Polyline3D{
		Base:   d.base(),
		Points: pts,
		Flags:  joinFlags(flags) &^ encoder.PolylineFlag3D,
	})
}

// AddPolyline3DChecked is AddPolyline3D reporting ErrInvalidPointList.
func (d *Document) AddPolyline3DChecked(points []float64, flags ...PolylineFlag) error {
	if !validPoints(points, 3) {
		return ErrInvalidPointList
	}
	d.AddPolyline3D(points, flags...)
	return nil
}

// ============================================================
// Solids
// ============================================================

// AddSolid adds a filled SOLID from a flat x, y, z list of three (triangle)
// or four corners. Corners are in DXF order: the fourth corner sits
// diagonally from the first. Other lengths are ignored.
func (d *Document) AddSolid(points []float64) *Document {
	if len(points) != 9 && len(points) != 12 {
		return d
	}

	var corners [4]r3.Vec
	for i := 0; i < len(points)/3; i++ {
		corners[i] = d.at(points[3*i], points[3*i+1], points[3*i+2])
	}
	if len(points) == 9 {
		corners[3] = corners[2]
	}

	return d.push(encoder.Solid{Base: d.base(), Corners: corners})
}

// ============================================================
// Text
// ============================================================

type textParams struct {
	angle     float64
	thickness float64
}

// TextOption adjusts a text entity.
type TextOption func(*textParams)

// TextAngle rotates the text by deg degrees.
func TextAngle(deg float64) TextOption {
	return func(p *textParams) { p.angle = deg }
}

// TextThickness sets the extrusion thickness.
func TextThickness(t float64) TextOption {
	return func(p *textParams) { p.thickness = t }
}

// AddText adds single-line TEXT using the active style. position places the
// anchor on a 3×3 grid: 1 top-left, 2 top-center, 3 top-right, 4 middle-left,
// 5 center, 6 middle-right, 7 bottom-left, 8 bottom-center, 9 bottom-right.
// Positions outside 1..9 use 7.
func (d *Document) AddText(x, y, z float64, text string, height float64, position int, opts ...TextOption) *Document {
	var p textParams
	for _, opt := range opts {
		opt(&p)
	}
	if position < 1 || position > 9 {
		position = encoder.DefaultTextPosition
	}

	return d.push(encoder.Text{
		Base:      d.base(),
		At:        d.at(x, y, z),
		Height:    height,
		Value:     text,
		Position:  position,
		Rotation:  p.angle,
		Thickness: p.thickness,
		Style:     d.styleName,
	})
}
