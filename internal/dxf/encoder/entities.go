package encoder

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ============================================================
// Entities
// ============================================================

// Entity is one drawable record. Encode is pure: the same entity, version
// and handles always give the same record.
type Entity interface {
	// Kind is the entity type name.
	Kind() string
	// OnLayer is the name of the owning layer.
	OnLayer() string
	// HandleCount is the number of handles Encode consumes.
	HandleCount(v Version) int
	Encode(v Version, handles []string) Record
}

// Base carries the attributes every entity shares.
type Base struct {
	Layer string
}

func (b Base) OnLayer() string { return b.Layer }

func handleAt(handles []string, i int) string {
	if i < len(handles) {
		return handles[i]
	}
	return ""
}

// Point is a POINT entity.
type Point struct {
	Base
	At r3.Vec
}

func (Point) Kind() string { return "POINT" }
func (Point) HandleCount(v Version) int { return 1 }

func (e Point) Encode(v Version, handles []string) Record {
	return newWriter(v, "POINT").
		entity(handleAt(handles, 0), e.Layer, "AcDbPoint").
		point(10, e.At).
		record()
}

// Line is a LINE entity.
type Line struct {
	Base
	Start, End r3.Vec
}

func (Line) Kind() string { return "LINE" }
func (Line) HandleCount(v Version) int { return 1 }

func (e Line) Encode(v Version, handles []string) Record {
	return newWriter(v, "LINE").
		entity(handleAt(handles, 0), e.Layer, "AcDbLine").
		point(10, e.Start).
		point(11, e.End).
		record()
}

// Circle is a CIRCLE entity.
type Circle struct {
	Base
	Center r3.Vec
	Radius float64
}

func (Circle) Kind() string { return "CIRCLE" }
func (Circle) HandleCount(v Version) int { return 1 }

func (e Circle) Encode(v Version, handles []string) Record {
	return newWriter(v, "CIRCLE").
		entity(handleAt(handles, 0), e.Layer, "AcDbCircle").
		point(10, e.Center).
		num(40, e.Radius).
		record()
}

// Arc is an ARC entity. Angles are degrees, drawn counter-clockwise from Start to End.
type Arc struct {
	Base
	Center     r3.Vec
	Radius     float64
	Start, End float64
}

func (Arc) Kind() string { return "ARC" }
func (Arc) HandleCount(v Version) int { return 1 }

func (e Arc) Encode(v Version, handles []string) Record {
	return newWriter(v, "ARC").
		entity(handleAt(handles, 0), e.Layer, "AcDbCircle").
		num(39, 0).
		point(10, e.Center).
		num(40, e.Radius).
		subclass("AcDbArc").
		num(50, e.Start).
		num(51, e.End).
		record()
}

// ============================================================
// Ellipse
// ============================================================

// EllipseSegments is the number of polyline segments a full ellipse is
// approximated with when the target version has no ELLIPSE entity.
const EllipseSegments = 72

// Ellipse is an ELLIPSE entity. Major is the major-axis endpoint relative to Center,
// Start and End are parameters in radians (0 and 2π for a full ellipse).
type Ellipse struct {
	Base
	Center     r3.Vec
	Major      r3.Vec
	Ratio      float64
	Start, End float64
}

func (e Ellipse) Kind() string { return "ELLIPSE" }

func (e Ellipse) HandleCount(v Version) int {
	if v.Ellipses() {
		return 1
	}
	pts, _ := e.Approximate(EllipseSegments)
	return len(pts) + 2
}

func (e Ellipse) Encode(v Version, handles []string) Record {
	if !v.Ellipses() {
		pts, closed := e.Approximate(EllipseSegments)
		flags := 0
		if closed {
			flags = PolylineClosed
		}
		return heavyPolyline(v, e.Layer, handles, pts, e.Center.Z, flags, false)
	}

	return newWriter(v, "ELLIPSE").
		entity(handleAt(handles, 0), e.Layer, "AcDbEllipse").
		point(10, e.Center).
		point(11, e.Major).
		num(40, e.Ratio).
		num(41, e.Start).
		num(42, e.End).
		record()
}

// Approximate samples the ellipse outline with n segments per full turn.
// A full ellipse yields n distinct points and closed = true; a partial one
// yields the points from Start to End inclusive.
func (e Ellipse) Approximate(n int) (pts []r3.Vec, closed bool) {
	if n < 3 {
		n = 3
	}
	span := e.End - e.Start
	for span <= 0 {
		span += 2 * math.Pi
	}
	minor := r3.Scale(e.Ratio, r3.Cross(r3.Vec{Z: 1}, e.Major))

	at := func(t float64) r3.Vec {
		p := r3.Add(e.Center, r3.Scale(math.Cos(t), e.Major))
		return r3.Add(p, r3.Scale(math.Sin(t), minor))
	}

	if span >= 2*math.Pi-1e-9 {
		for i := 0; i < n; i++ {
			pts = append(pts, at(e.Start+2*math.Pi*float64(i)/float64(n)))
		}
		return pts, true
	}

	steps := int(math.Ceil(float64(n) * span / (2 * math.Pi)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		pts = append(pts, at(e.Start+span*float64(i)/float64(steps)))
	}
	return pts, false
}

// ============================================================
// Polylines
// ============================================================

// Polyline flag bits (group code 70).
const (
	PolylineClosed   = 1
	PolylineFlag3D   = 8
	PolylinePlinegen = 128

	vertex3D = 32
)

// Polyline is a 2D polyline at a fixed elevation. Written as LWPOLYLINE
// where available and as POLYLINE/VERTEX/SEQEND otherwise.
type Polyline struct {
	Base
	Points    []r3.Vec
	Elevation float64
	Flags     int
}

func (e Polyline) Kind() string {
	return "LWPOLYLINE"
}

func (e Polyline) HandleCount(v Version) int {
	if v.LightweightPolylines() {
		return 1
	}
	return len(e.Points) + 2
}

func (e Polyline) Encode(v Version, handles []string) Record {
	if !v.LightweightPolylines() {
		return heavyPolyline(v, e.Layer, handles, e.Points, e.Elevation, e.Flags, false)
	}

	w := newWriter(v, "LWPOLYLINE").
		entity(handleAt(handles, 0), e.Layer, "AcDbPolyline").
		integer(90, len(e.Points)).
		integer(70, e.Flags).
		num(43, 0).
		num(38, e.Elevation).
		num(39, 0)
	for _, p := range e.Points {
		w.point2(10, p)
	}
	return w.record()
}

// Polyline3D is a POLYLINE with 3D vertices.
type Polyline3D struct {
	Base
	Points []r3.Vec
	Flags  int
}

func (Polyline3D) Kind() string { return "POLYLINE" }

func (e Polyline3D) HandleCount(v Version) int {
	return len(e.Points) + 2
}

func (e Polyline3D) Encode(v Version, handles []string) Record {
	return heavyPolyline(v, e.Layer, handles, e.Points, 0, e.Flags|PolylineFlag3D, true)
}

// heavyPolyline writes POLYLINE, one VERTEX per point and SEQEND. Handles are
// consumed in that order.
func heavyPolyline(v Version, layer string, handles []string, pts []r3.Vec, elevation float64, flags int, is3D bool) Record {
	plClass, vxClass, vxFlags := "AcDb2dPolyline", "AcDb2dVertex", 0
	if is3D {
		plClass, vxClass, vxFlags = "AcDb3dPolyline", "AcDb3dPolylineVertex", vertex3D
	}

	w := newWriter(v, "POLYLINE").
		entity(handleAt(handles, 0), layer, plClass).
		integer(66, 1).
		point(10, r3.Vec{Z: elevation}).
		integer(70, flags)

	for i, p := range pts {
		if !is3D {
			p.Z = elevation
		}
		w.next("VERTEX").
			entity(handleAt(handles, i+1), layer, "AcDbVertex", vxClass).
			point(10, p).
			integer(70, vxFlags)
	}

	w.next("SEQEND").entity(handleAt(handles, len(pts)+1), layer)
	return w.record()
}

// ============================================================
// Solid
// ============================================================

// Solid is a SOLID entity. Corners follow the DXF zig-zag order: the quad
// p1 p2 p3 p4 is filled as triangles (p1 p2 p3) and (p2 p3 p4); a triangle
// repeats its third corner.
type Solid struct {
	Base
	Corners [4]r3.Vec
}

func (Solid) Kind() string { return "SOLID" }
func (Solid) HandleCount(v Version) int { return 1 }

func (e Solid) Encode(v Version, handles []string) Record {
	w := newWriter(v, "SOLID").
		entity(handleAt(handles, 0), e.Layer, "AcDbTrace").
		num(39, 0)
	for i, c := range e.Corners {
		w.point(10+i, c)
	}
	return w.record()
}

// ============================================================
// Text
// ============================================================

// Text is a single-line TEXT entity.
type Text struct {
	Base
	At        r3.Vec
	Height    float64
	Value     string
	Position  int     // 1..9, row-major from top-left
	Rotation  float64 // degrees
	Thickness float64
	Style     string
}

func (Text) Kind() string { return "TEXT" }
func (Text) HandleCount(v Version) int { return 1 }

// DefaultTextPosition is bottom-left.
const DefaultTextPosition = 7

// Justification maps a 3×3 grid position (1 = top-left ... 9 = bottom-right)
// to horizontal (0 left, 1 center, 2 right) and vertical (3 top, 2 middle,
// 1 bottom) codes. Positions outside 1..9 use DefaultTextPosition.
func Justification(position int) (horizontal, vertical int) {
	if position < 1 || position > 9 {
		position = DefaultTextPosition
	}
	return (position - 1) % 3, 3 - (position-1)/3
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func (e Text) Encode(v Version, handles []string) Record {
	h, vert := Justification(e.Position)
	style := e.Style
	if style == "" {
		style = StandardStyle
	}

	return newWriter(v, "TEXT").
		entity(handleAt(handles, 0), e.Layer, "AcDbText").
		num(39, e.Thickness).
		point(10, e.At).
		num(40, e.Height).
		str(1, lineBreaks.Replace(e.Value)).
		num(50, DegToRad(e.Rotation)).
		num(41, 1).
		num(51, 0).
		str(7, style).
		integer(71, 0).
		integer(72, h).
		point(11, e.At).
		subclass("AcDbText").
		integer(73, vert).
		record()
}
