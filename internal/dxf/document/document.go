// Package document accumulates drawing state and renders it as a DXF
// document. A Document is not safe for concurrent use.
package document

import (
	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/encoder"
	"dxf-service/internal/dxf/linetype"

	"gonum.org/v1/gonum/spatial/r3"
)

// ============================================================
// Document
// ============================================================

// DefaultHandleSeed is the counter value handles are allocated after. Lower
// handles are reserved for the fixed records of the templates.
const DefaultHandleSeed = 0x4FF

// DefaultLayer exists in every document.
const DefaultLayer = "0"

// Layer is a named drawing channel.
type Layer struct {
	Name     string
	Color    color.Color
	LineType linetype.LineType

	handle string
}

// TextStyle is a STYLE table entry.
type TextStyle = encoder.TextStyle

type styleEntry struct {
	style  TextStyle
	handle string
}

type entityEntry struct {
	entity  encoder.Entity
	handles []string
}

type tableHandles struct {
	lineTypes, byBlock, byLayer string
	layers                      string
	styles                      string
}

// Document is a fluent DXF builder.
type Document struct {
	version encoder.Version
	units   Units

	layers     []*Layer
	layerIndex map[string]*Layer
	layerName  string

	lineTypes       []linetype.LineType
	lineTypeHandles map[linetype.LineType]string

	styles     []*styleEntry
	styleIndex map[string]*styleEntry
	styleName  string
	standard   *styleEntry

	entities []*entityEntry
	offset   r3.Vec

	handleNumber uint64
	tables       tableHandles

	err string
}

// Option configures a new Document.
type Option func(*Document)

// WithVersion selects the target DXF revision.
func WithVersion(v encoder.Version) Option {
	return func(d *Document) {
		d.version = v
	}
}

// WithHandleSeed sets the value handle allocation starts after.
func WithHandleSeed(seed uint64) Option {
	return func(d *Document) {
		d.handleNumber = seed
	}
}

// New creates an empty document holding only layer "0".
func New(units Units, opts ...Option) *Document {
	d := &Document{
		version:         encoder.R2000,
		units:           units,
		layerIndex:      make(map[string]*Layer),
		layerName:       DefaultLayer,
		lineTypeHandles: make(map[linetype.LineType]string),
		styleIndex:      make(map[string]*styleEntry),
		handleNumber:    DefaultHandleSeed,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.version != encoder.R12 {
		d.version = encoder.R2000
	}

	d.AddLayer(DefaultLayer, color.Default, linetype.Solid)
	return d
}

// Version returns the target DXF revision.
func (d *Document) Version() encoder.Version { return d.version }

// Units returns the drawing units.
func (d *Document) Units() Units { return d.units }

// SetUnits changes the drawing units.
func (d *Document) SetUnits(u Units) *Document {
	d.units = u
	return d
}

// ============================================================
// Layers
// ============================================================

// AddLayer inserts a layer or overwrites the color and line type of an
// existing one. Unknown line types fall back to Continuous.
func (d *Document) AddLayer(name string, c color.Color, lt linetype.LineType) *Document {
	lt = knownOrSolid(lt)

	if l, ok := d.layerIndex[name]; ok {
		l.Color = c
		l.LineType = lt
	} else {
		l := &Layer{Name: name, Color: c, LineType: lt}
		d.layers = append(d.layers, l)
		d.layerIndex[name] = l
	}

	d.useLineType(lt)
	return d
}

// SetLayer activates a layer, creating it with the given color and line
// type when it does not exist yet. Existing layers keep their attributes.
func (d *Document) SetLayer(name string, c color.Color, lt linetype.LineType) *Document {
	if _, ok := d.layerIndex[name]; !ok {
		d.AddLayer(name, c, lt)
	}
	d.layerName = name
	return d
}

// Layer returns the name of the active layer.
func (d *Document) Layer() string {
	return d.layerName
}

// SetColor changes the color of the active layer.
func (d *Document) SetColor(c color.Color) *Document {
	if l, ok := d.layerIndex[d.layerName]; ok {
		l.Color = c
	}
	return d
}

// SetLineType changes the line type of the active layer.
func (d *Document) SetLineType(lt linetype.LineType) *Document {
	l, ok := d.layerIndex[d.layerName]
	if !ok {
		return d
	}
	l.LineType = knownOrSolid(lt)
	d.useLineType(l.LineType)
	return d
}

// Layers returns a copy of the layer table in insertion order.
func (d *Document) Layers() []Layer {
	out := make([]Layer, 0, len(d.layers))
	for _, l := range d.layers {
		out = append(out, Layer{Name: l.Name, Color: l.Color, LineType: l.LineType})
	}
	return out
}

// LineTypes returns the line types in use, in first-use order.
func (d *Document) LineTypes() []linetype.LineType {
	out := make([]linetype.LineType, len(d.lineTypes))
	copy(out, d.lineTypes)
	return out
}

func (d *Document) useLineType(lt linetype.LineType) {
	for _, known := range d.lineTypes {
		if known == lt {
			return
		}
	}
	d.lineTypes = append(d.lineTypes, lt)
}

func knownOrSolid(lt linetype.LineType) linetype.LineType {
	if linetype.Known(lt) {
		return lt
	}
	return linetype.Solid
}

// ============================================================
// Text styles
// ============================================================

// StyleOption adjusts a text style before it is registered.
type StyleOption func(*TextStyle)

// StyleFixedHeight sets a fixed text height (0 = not fixed).
func StyleFixedHeight(h float64) StyleOption {
	return func(s *TextStyle) { s.FixedHeight = h }
}

// StyleWidthFactor sets the width factor.
func StyleWidthFactor(f float64) StyleOption {
	return func(s *TextStyle) { s.WidthFactor = f }
}

// StyleOblique sets the oblique angle in degrees.
func StyleOblique(deg float64) StyleOption {
	return func(s *TextStyle) { s.ObliqueAngle = deg }
}

// StyleFlags sets the standard flags and the text generation flags.
func StyleFlags(flags, generation int) StyleOption {
	return func(s *TextStyle) {
		s.Flags = flags
		s.GenerationFlags = generation
	}
}

// StyleLastHeight sets the last height used.
func StyleLastHeight(h float64) StyleOption {
	return func(s *TextStyle) { s.LastHeight = h }
}

// StyleBigFont sets the big font file.
func StyleBigFont(font string) StyleOption {
	return func(s *TextStyle) { s.BigFont = font }
}

// SetTextStyle registers a style on first use and activates it. Later calls
// with the same name only activate it; their parameters are ignored.
func (d *Document) SetTextStyle(name, font string, opts ...StyleOption) *Document {
	if _, ok := d.styleIndex[name]; !ok {
		s := TextStyle{
			Name:        name,
			Font:        font,
			WidthFactor: 1,
			LastHeight:  1,
		}
		for _, opt := range opts {
			opt(&s)
		}
		e := &styleEntry{style: s}
		d.styles = append(d.styles, e)
		d.styleIndex[name] = e
	}
	d.styleName = name
	return d
}

// TextStyle returns the name of the active text style ("" = STANDARD).
func (d *Document) TextStyle() string {
	return d.styleName
}

// TextStyles returns the registered styles in registration order.
func (d *Document) TextStyles() []TextStyle {
	out := make([]TextStyle, 0, len(d.styles))
	for _, s := range d.styles {
		out = append(out, s.style)
	}
	return out
}

// ============================================================
// Offset
// ============================================================

// SetOffset replaces the vector added to coordinates of primitives added
// from now on.
func (d *Document) SetOffset(x, y, z float64) *Document {
	d.offset = r3.Vec{X: x, Y: y, Z: z}
	return d
}

// Offset returns the current offset as x, y, z.
func (d *Document) Offset() [3]float64 {
	return [3]float64{d.offset.X, d.offset.Y, d.offset.Z}
}

func (d *Document) at(x, y, z float64) r3.Vec {
	return r3.Add(r3.Vec{X: x, Y: y, Z: z}, d.offset)
}
