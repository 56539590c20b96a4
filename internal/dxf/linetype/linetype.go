package linetype

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Line Types
// ============================================================

// LineType is the name of a line-type table entry.
type LineType string

const (
	Continuous LineType = "CONTINUOUS"
	Center     LineType = "CENTER"
	CenterX2   LineType = "CENTERX2"
	Center2    LineType = "CENTER2"
	Dashed     LineType = "DASHED"
	DashedX2   LineType = "DASHEDX2"
	Dashed2    LineType = "DASHED2"
	Phantom    LineType = "PHANTOM"
	PhantomX2  LineType = "PHANTOMX2"
	Phantom2   LineType = "PHANTOM2"
	DashDot    LineType = "DASHDOT"
	DashDotX2  LineType = "DASHDOTX2"
	DashDot2   LineType = "DASHDOT2"
	Dot        LineType = "DOT"
	DotX2      LineType = "DOTX2"
	Dot2       LineType = "DOT2"
	Divide     LineType = "DIVIDE"
	DivideX2   LineType = "DIVIDEX2"
	Divide2    LineType = "DIVIDE2"

	// pseudo entries every R2000 line-type table starts with
	ByBlock LineType = "ByBlock"
	ByLayer LineType = "ByLayer"
)

// Solid is the default line type of new layers.
const Solid = Continuous

// Definition describes one line type: a label and a dash pattern where
// positive lengths are dashes, negative lengths gaps and zero a dot.
type Definition struct {
	Name     LineType
	Label    string
	Elements []float64
}

// Total returns the length of one pattern repetition.
func (d Definition) Total() float64 {
	var total float64
	for _, e := range d.Elements {
		total += math.Abs(e)
	}
	return total
}

var order = []LineType{
	Continuous,
	Center, CenterX2, Center2,
	Dashed, DashedX2, Dashed2,
	Phantom, PhantomX2, Phantom2,
	DashDot, DashDotX2, DashDot2,
	Dot, DotX2, Dot2,
	Divide, DivideX2, Divide2,
}

var definitions = map[LineType]Definition{
	Continuous: {Continuous, "Continuous", nil},
	Center:     {Center, "Center", []float64{1.25, -0.25, 0.25, -0.25}},
	CenterX2:   {CenterX2, "Center (x2)", []float64{2.5, -0.5, 0.5, -0.5}},
	Center2:    {Center2, "Center (2)", []float64{0.75, -0.125, 0.125, -0.125}},
	Dashed:     {Dashed, "Dashed", []float64{0.5, -0.25}},
	DashedX2:   {DashedX2, "Dashed (x2)", []float64{1.0, -0.5}},
	Dashed2:    {Dashed2, "Dashed (2)", []float64{0.25, -0.125}},
	Phantom:    {Phantom, "Phantom", []float64{1.25, -0.25, 0.25, -0.25, 0.25, -0.25}},
	PhantomX2:  {PhantomX2, "Phantom (x2)", []float64{2.5, -0.5, 0.5, -0.5, 0.5, -0.5}},
	Phantom2:   {Phantom2, "Phantom (2)", []float64{0.625, -0.125, 0.125, -0.125, 0.125, -0.125}},
	DashDot:    {DashDot, "Dashdot", []float64{0.5, -0.25, 0, -0.25}},
	DashDotX2:  {DashDotX2, "Dashdot (x2)", []float64{1.0, -0.5, 0, -0.5}},
	DashDot2:   {DashDot2, "Dashdot (2)", []float64{0.25, -0.125, 0, -0.125}},
	Dot:        {Dot, "Dot", []float64{0, -0.25}},
	DotX2:      {DotX2, "Dot (x2)", []float64{0, -0.5}},
	Dot2:       {Dot2, "Dot (2)", []float64{0, -0.125}},
	Divide:     {Divide, "Divide", []float64{0.5, -0.25, 0, -0.25, 0, -0.25}},
	DivideX2:   {DivideX2, "Divide (x2)", []float64{1.0, -0.5, 0, -0.5, 0, -0.5}},
	Divide2:    {Divide2, "Divide (2)", []float64{0.25, -0.125, 0, -0.125, 0, -0.125}},
}

// Lookup returns the definition of a known line type.
func Lookup(lt LineType) (Definition, bool) {
	d, ok := definitions[lt]
	return d, ok
}

// Known reports whether lt is part of the fixed enumeration.
func Known(lt LineType) bool {
	_, ok := definitions[lt]
	return ok
}

// All returns every line type in table order.
func All() []LineType {
	out := make([]LineType, len(order))
	copy(out, order)
	return out
}

// Parse accepts a line-type name in any case. An empty name is Continuous.
func Parse(s string) (LineType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Continuous, nil
	}
	lt := LineType(strings.ToUpper(s))
	if !Known(lt) {
		return "", fmt.Errorf("unknown line type %q", s)
	}
	return lt, nil
}
