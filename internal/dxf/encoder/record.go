package encoder

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ============================================================
// Group code / value pairs
// ============================================================

// Tag is one group-code/value pair.
type Tag struct {
	Code  int
	Value string
}

// Record is an ordered run of tags. It always starts with a code 0 tag
// naming the record and may hold several records (POLYLINE ... SEQEND).
type Record []Tag

// String renders the record as alternating code and value lines.
func (r Record) String() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}

// WriteTo appends the rendered record to sb.
func (r Record) WriteTo(sb *strings.Builder) {
	for _, t := range r {
		sb.WriteString(strconv.Itoa(t.Code))
		sb.WriteByte('\n')
		sb.WriteString(t.Value)
		sb.WriteByte('\n')
	}
}

// Value returns the first value stored under code.
func (r Record) Value(code int) (string, bool) {
	for _, t := range r {
		if t.Code == code {
			return t.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under code, in order.
func (r Record) Values(code int) []string {
	var out []string
	for _, t := range r {
		if t.Code == code {
			out = append(out, t.Value)
		}
	}
	return out
}

// FormatFloat renders a number with the shortest representation that
// round-trips. Negative zero is written as 0.
func FormatFloat(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ============================================================
// Record writer
// ============================================================

type writer struct {
	v   Version
	rec Record
}

func newWriter(v Version, kind string) *writer {
	w := &writer{v: v}
	return w.str(0, kind)
}

func (w *writer) next(kind string) *writer {
	return w.str(0, kind)
}

func (w *writer) str(code int, s string) *writer {
	w.rec = append(w.rec, Tag{Code: code, Value: s})
	return w
}

func (w *writer) num(code int, f float64) *writer {
	return w.str(code, FormatFloat(f))
}

func (w *writer) integer(code, i int) *writer {
	return w.str(code, strconv.Itoa(i))
}

// point writes X, Y, Z under code, code+10 and code+20.
func (w *writer) point(code int, p r3.Vec) *writer {
	return w.num(code, p.X).num(code+10, p.Y).num(code+20, p.Z)
}

func (w *writer) point2(code int, p r3.Vec) *writer {
	return w.num(code, p.X).num(code+10, p.Y)
}

func (w *writer) handle(h string) *writer {
	if h != "" {
		w.str(5, h)
	}
	return w
}

func (w *writer) owner(h string) *writer {
	if w.v.SubclassMarkers() {
		w.str(330, h)
	}
	return w
}

func (w *writer) subclass(names ...string) *writer {
	if w.v.SubclassMarkers() {
		for _, n := range names {
			w.str(100, n)
		}
	}
	return w
}

// entity writes the common entity header.
func (w *writer) entity(handle, layer string, subclasses ...string) *writer {
	w.handle(handle).subclass("AcDbEntity").str(8, layer)
	return w.subclass(subclasses...)
}

func (w *writer) record() Record {
	return w.rec
}
