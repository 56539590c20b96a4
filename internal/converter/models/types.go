package models

// ============================================================
// SVG Elements
// ============================================================

type SVGElement struct {
	ID       string
	Type     string // rect, path, line, circle, ellipse, polyline, polygon, text
	Layer    string
	Stroke   string
	Geometry interface{}
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}

type LineGeometry struct {
	X1, Y1 float64
	X2, Y2 float64
}

type CircleGeometry struct {
	CX, CY float64
	R      float64
}

type EllipseGeometry struct {
	CX, CY float64
	RX, RY float64
}

type PointsGeometry struct {
	Points []Point
	Closed bool
}

type TextGeometry struct {
	X, Y     float64
	FontSize float64
	Anchor   string // start, middle, end
	Text     string
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Subpath is one M..(Z) run of a path.
type Subpath struct {
	Points []Point
	Closed bool
}

// ============================================================
// Drawing description
// ============================================================

// Drawing is a JSON drawing description: builder operations replayed in
// order on a fresh document.
type Drawing struct {
	Name       string      `json:"name"`
	Units      string      `json:"units,omitempty"`
	Version    string      `json:"version,omitempty"`
	Offset     []float64   `json:"offset,omitempty"`
	Operations []Operation `json:"operations"`
}

// Operation is one builder call. Geometric operations read their
// coordinates from Points as a flat list.
type Operation struct {
	Op string `json:"op"`

	// layers, colors, styles
	Name     string `json:"name,omitempty"`
	Color    *int   `json:"color,omitempty"`
	RGB      string `json:"rgb,omitempty"`
	LineType string `json:"line_type,omitempty"`
	Font     string `json:"font,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`

	// geometry
	Points    []float64 `json:"points,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Start     *float64  `json:"start,omitempty"`
	End       *float64  `json:"end,omitempty"`
	Ratio     float64   `json:"ratio,omitempty"`
	Closed    bool      `json:"closed,omitempty"`
	Text      string    `json:"text,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Position  int       `json:"position,omitempty"`
	Angle     float64   `json:"angle,omitempty"`
	Thickness float64   `json:"thickness,omitempty"`

	// text style
	WidthFactor float64 `json:"width_factor,omitempty"`
	Oblique     float64 `json:"oblique,omitempty"`
	FixedHeight float64 `json:"fixed_height,omitempty"`
	BigFont     string  `json:"big_font,omitempty"`
}

// ============================================================
// Stored drawings
// ============================================================

type StoredDrawing struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Units     string `json:"units"`
	Version   string `json:"version"`
	Entities  int    `json:"entities"`
	Size      int    `json:"size"`
	CreatedAt string `json:"created_at"`
	Content   []byte `json:"-"`
	Source    string `json:"-"`
}

// SVGDocument is the parsed subset of an SVG file.
type SVGDocument struct {
	Width    float64
	Height   float64
	Elements []SVGElement
}
