package document

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/encoder"
	"dxf-service/internal/dxf/linetype"
)

func demoDocument(opts ...Option) *Document {
	d := New(Millimeters, opts...)
	d.SetTextStyle("Consolas Regular", "consola").
		AddText(50, 50, 0, "DXF testing", 8, 5).
		SetLayer("cyan", color.Cyan, linetype.Solid).
		AddLine(25, 0, 0, 100, 0, 0).
		AddLine(100, 0, 0, 100, 75, 0).
		SetLayer("blue", color.Blue, linetype.DashDot).
		AddCircle(0, 0, 0, 25).
		SetLayer("red", color.Red, linetype.Solid).
		AddArc(0, 100, 0, 25, 0, 270).
		AddEllipseBy3Points(0, 0, 0, 10, 0, 0, 0, 5, 0).
		AddPolyline([]float64{100, 100, 100, 50, 50, 50, 50, 100}).
		AddPolyline3D([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2}).
		SetLayer("black", color.Black, linetype.Solid).
		AddPoint(0, 0, 0)
	return d
}

// ============================================================================
// Layers
// ============================================================================

func TestNewHasDefaultLayer(t *testing.T) {
	d := New(Millimeters)
	layers := d.Layers()
	if len(layers) != 1 || layers[0].Name != DefaultLayer {
		t.Fatalf("Layers() = %+v, want only layer 0", layers)
	}
	if d.Layer() != DefaultLayer {
		t.Errorf("Layer() = %q, want 0", d.Layer())
	}
	if d.Version() != encoder.R2000 {
		t.Errorf("Version() = %v, want R2000", d.Version())
	}
}

func TestAddLayerOverwrites(t *testing.T) {
	d := New(Millimeters).
		AddLayer("walls", color.Red, linetype.Dashed).
		AddLayer("walls", color.Blue, linetype.Center)

	layers := d.Layers()
	if len(layers) != 2 {
		t.Fatalf("len(Layers()) = %d, want 2", len(layers))
	}
	if layers[1].Color != color.Blue || layers[1].LineType != linetype.Center {
		t.Errorf("walls = %+v", layers[1])
	}

	lts := d.LineTypes()
	want := []linetype.LineType{linetype.Continuous, linetype.Dashed, linetype.Center}
	if len(lts) != len(want) {
		t.Fatalf("LineTypes() = %v, want %v", lts, want)
	}
	for i := range want {
		if lts[i] != want[i] {
			t.Errorf("LineTypes()[%d] = %s, want %s", i, lts[i], want[i])
		}
	}
}

func TestSetLayerKeepsExisting(t *testing.T) {
	d := New(Millimeters).
		SetLayer("red", color.Red, linetype.Solid).
		SetLayer("0", color.Blue, linetype.Solid).
		SetLayer("red", color.Green, linetype.Dashed)

	if d.Layer() != "red" {
		t.Errorf("Layer() = %q", d.Layer())
	}
	if l := d.Layers()[1]; l.Color != color.Red || l.LineType != linetype.Solid {
		t.Errorf("existing layer changed: %+v", l)
	}
}

func TestSetColorAndLineType(t *testing.T) {
	d := New(Millimeters).
		SetColor(color.RGB(0, 100, 0)).
		SetLineType(linetype.DashDotX2).
		SetLineType("NOPE")

	l := d.Layers()[0]
	if l.LineType != linetype.Solid {
		t.Errorf("unknown line type kept: %s", l.LineType)
	}
	if l.Color == color.Default {
		t.Error("SetColor() had no effect")
	}
	found := false
	for _, lt := range d.LineTypes() {
		if lt == linetype.DashDotX2 {
			found = true
		}
	}
	if !found {
		t.Error("DASHDOTX2 not registered as in use")
	}
}

func TestLayerAttributionIsNotRetroactive(t *testing.T) {
	d := New(Millimeters).
		SetLayer("red", color.Red, linetype.Solid).
		AddCircle(0, 0, 0, 10).
		SetLayer("blue", color.Blue, linetype.Solid).
		AddCircle(0, 0, 0, 20)

	first, _ := d.Entity(0)
	second, _ := d.Entity(1)
	if first.OnLayer() != "red" {
		t.Errorf("first circle on %q, want red", first.OnLayer())
	}
	if second.OnLayer() != "blue" {
		t.Errorf("second circle on %q, want blue", second.OnLayer())
	}
	if !strings.Contains(d.Render(), "8\nred\n100\nAcDbCircle\n") {
		t.Error("rendered circle not on layer red")
	}
}

// ============================================================================
// Text styles
// ============================================================================

func TestSetTextStyleFirstWins(t *testing.T) {
	d := New(Millimeters).
		SetTextStyle("mono", "consola", StyleWidthFactor(0.8)).
		SetTextStyle("serif", "times").
		SetTextStyle("mono", "arial", StyleWidthFactor(2))

	styles := d.TextStyles()
	if len(styles) != 2 {
		t.Fatalf("len(TextStyles()) = %d, want 2", len(styles))
	}
	if styles[0].Font != "consola" || styles[0].WidthFactor != 0.8 {
		t.Errorf("mono = %+v, first registration should win", styles[0])
	}
	if d.TextStyle() != "mono" {
		t.Errorf("TextStyle() = %q, want mono", d.TextStyle())
	}

	d.AddText(0, 0, 0, "T", 2, 7)
	e, _ := d.Entity(0)
	if e.(encoder.Text).Style != "mono" {
		t.Errorf("text style = %q", e.(encoder.Text).Style)
	}
}

func TestStyleTableOnlyWhenUsed(t *testing.T) {
	if strings.Contains(New(Millimeters).Render(), "2\nSTYLE\n") {
		t.Error("empty document renders a STYLE table")
	}
	out := New(Millimeters).SetTextStyle("mono", "consola").Render()
	if !strings.Contains(out, "0\nTABLE\n2\nSTYLE\n") {
		t.Error("STYLE table missing")
	}
	ltype := strings.Index(out, "2\nLTYPE\n")
	layer := strings.Index(out, "2\nLAYER\n")
	style := strings.Index(out, "2\nSTYLE\n")
	entities := strings.Index(out, "2\nENTITIES\n")
	if !(ltype < layer && layer < style && style < entities) {
		t.Errorf("section order ltype=%d layer=%d style=%d entities=%d", ltype, layer, style, entities)
	}
}

func TestStandardStyleDefinedForUnstyledText(t *testing.T) {
	for _, v := range []encoder.Version{encoder.R12, encoder.R2000} {
		t.Run(v.String(), func(t *testing.T) {
			out := New(Millimeters, WithVersion(v)).AddText(0, 0, 0, "plain", 2, 7).Render()
			if !strings.Contains(out, "0\nTABLE\n2\nSTYLE\n") {
				t.Fatal("STYLE table missing for text on STANDARD")
			}
			if !strings.Contains(out, "0\nSTYLE\n") || !strings.Contains(out, "\n2\nSTANDARD\n") {
				t.Error("STANDARD style record missing")
			}
			if !strings.Contains(out, "\n7\nSTANDARD\n") {
				t.Error("TEXT does not reference STANDARD")
			}
		})
	}
}

func TestStandardStyleBeforeRegisteredStyles(t *testing.T) {
	d := New(Millimeters).
		AddText(0, 0, 0, "plain", 2, 7).
		SetTextStyle("Mono", "consola").
		AddText(0, 5, 0, "mono", 2, 7)
	first := d.Render()

	standard := strings.Index(first, "\n2\nSTANDARD\n")
	mono := strings.Index(first, "\n2\nMono\n")
	if standard < 0 || mono < 0 || standard > mono {
		t.Errorf("style order standard=%d mono=%d", standard, mono)
	}
	if !strings.Contains(first, "STYLE\n5\n") {
		t.Error("style records carry no handles")
	}
	if d.Render() != first {
		t.Error("Render() not idempotent with STANDARD style")
	}
}

func TestRegisteredStandardNotDuplicated(t *testing.T) {
	out := New(Millimeters).
		SetTextStyle(encoder.StandardStyle, "arial").
		AddText(0, 0, 0, "a", 2, 7).
		Render()
	if n := strings.Count(out, "\n2\nSTANDARD\n"); n != 1 {
		t.Errorf("STANDARD defined %d times, want 1", n)
	}
}

// ============================================================================
// Offset
// ============================================================================

func TestOffsetAppliesAtAddTime(t *testing.T) {
	d := New(Millimeters).SetOffset(10, 20, 0)
	if d.Offset() != [3]float64{10, 20, 0} {
		t.Errorf("Offset() = %v", d.Offset())
	}

	d.AddPoint(1, 1, 1)
	d.SetOffset(0, 0, 0)
	d.AddPoint(1, 1, 1)

	first, _ := d.Entity(0)
	second, _ := d.Entity(1)
	if p := first.(encoder.Point).At; p.X != 11 || p.Y != 21 || p.Z != 1 {
		t.Errorf("first point = %v, want (11, 21, 1)", p)
	}
	if p := second.(encoder.Point).At; p.X != 1 || p.Y != 1 {
		t.Errorf("second point = %v, want (1, 1, 1)", p)
	}
}

// ============================================================================
// Primitives
// ============================================================================

func TestTextJustification(t *testing.T) {
	d := New(Millimeters).AddText(1, 2, 0, "T", 8, 5)
	e, _ := d.Entity(0)
	rec := e.Encode(d.Version(), nil)

	if v, _ := rec.Value(72); v != "1" {
		t.Errorf("horizontal = %q, want 1", v)
	}
	if v, _ := rec.Value(73); v != "2" {
		t.Errorf("vertical = %q, want 2", v)
	}
}

func TestEllipseBy3Points(t *testing.T) {
	d := New(Millimeters).AddEllipseBy3Points(0, 0, 0, 10, 0, 0, 0, 5, 0)
	e, _ := d.Entity(0)
	el := e.(encoder.Ellipse)

	if el.Ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", el.Ratio)
	}
	if el.Major.X != 10 || el.Major.Y != 0 || el.Major.Z != 0 {
		t.Errorf("major = %v, want (10, 0, 0)", el.Major)
	}

	rec := e.Encode(d.Version(), nil)
	if v, _ := rec.Value(40); v != "0.5" {
		t.Errorf("ratio field = %q, want 0.5", v)
	}
}

func TestEllipseBy3PointsRounds(t *testing.T) {
	d := New(Millimeters).AddEllipseBy3Points(1, 1, 0, 1, 4, 0, 2, 1, 0)
	e, _ := d.Entity(0)
	if r := e.(encoder.Ellipse).Ratio; r != 0.333 {
		t.Errorf("ratio = %v, want 0.333", r)
	}
	if m := e.(encoder.Ellipse).Major; m.X != 0 || m.Y != 3 {
		t.Errorf("major = %v, want (0, 3, 0)", m)
	}
}

func TestPolylineRejectsMalformedLists(t *testing.T) {
	tests := []struct {
		name   string
		points []float64
	}{
		{"odd", []float64{0, 0, 10}},
		{"single point", []float64{1, 2}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Millimeters).AddPolyline(tt.points)
			if d.Entities() != 0 {
				t.Errorf("Entities() = %d, want 0", d.Entities())
			}
			if err := d.AddPolylineChecked(tt.points); !errors.Is(err, ErrInvalidPointList) {
				t.Errorf("AddPolylineChecked() error = %v", err)
			}
		})
	}
}

func TestPolylineAccepted(t *testing.T) {
	d := New(Millimeters).AddPolyline([]float64{100, 100, 100, 50, 50, 50, 50, 100})
	if d.Entities() != 1 {
		t.Fatalf("Entities() = %d, want 1", d.Entities())
	}

	out := d.Render()
	if strings.Count(out, "0\nLWPOLYLINE\n") != 1 {
		t.Error("want exactly one LWPOLYLINE")
	}
	if !strings.Contains(out, "90\n4\n") {
		t.Error("vertex count 4 missing")
	}
	if !strings.Contains(out, "10\n100\n20\n100\n10\n100\n20\n50\n10\n50\n20\n50\n10\n50\n20\n100\n0\n") {
		t.Errorf("vertices missing:\n%s", out)
	}
}

func TestPolyline3D(t *testing.T) {
	d := New(Millimeters).
		AddPolyline3D([]float64{0, 0, 0, 1, 1}).
		AddPolyline3D([]float64{0, 0, 0}).
		AddPolyline3D([]float64{0, 0, 0, 1, 1, 1}, Closed)

	if d.Entities() != 1 {
		t.Fatalf("Entities() = %d, want 1", d.Entities())
	}
	if err := d.AddPolyline3DChecked([]float64{1, 2}); !errors.Is(err, ErrInvalidPointList) {
		t.Errorf("AddPolyline3DChecked() error = %v", err)
	}

	e, _ := d.Entity(0)
	if flags := e.(encoder.Polyline3D).Flags; flags != int(Closed) {
		t.Errorf("flags = %d, want %d", flags, Closed)
	}
}

func TestSolid(t *testing.T) {
	d := New(Millimeters).
		AddSolid([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}).
		AddSolid([]float64{0, 0, 0, 1, 0})

	if d.Entities() != 1 {
		t.Fatalf("Entities() = %d, want 1", d.Entities())
	}
	e, _ := d.Entity(0)
	s := e.(encoder.Solid)
	if s.Corners[3] != s.Corners[2] {
		t.Errorf("triangle fourth corner = %v, want %v", s.Corners[3], s.Corners[2])
	}
}

// ============================================================================
// Rendering & handles
// ============================================================================

func TestRenderIdempotent(t *testing.T) {
	for _, v := range []encoder.Version{encoder.R12, encoder.R2000} {
		t.Run(v.String(), func(t *testing.T) {
			d := demoDocument(WithVersion(v))
			first := d.Render()
			second := d.Render()
			if first != second {
				t.Error("Render() not idempotent")
			}
		})
	}
}

func TestHandlesDistinctAndIncreasing(t *testing.T) {
	d := demoDocument()
	out := d.Render()

	lines := strings.Split(out, "\n")
	var prev uint64
	seen := map[string]bool{}
	inGenerated := false
	for i := 0; i+1 < len(lines); i += 2 {
		if lines[i] == "2" && (lines[i+1] == "LTYPE" || lines[i+1] == "ENTITIES") {
			inGenerated = true
		}
		if lines[i] == "2" && lines[i+1] == "VIEW" {
			inGenerated = false
		}
		if lines[i] == "2" && lines[i+1] == "OBJECTS" {
			inGenerated = false
		}
		if !inGenerated || lines[i] != "5" {
			continue
		}
		h := lines[i+1]
		if seen[h] {
			t.Fatalf("duplicate handle %s", h)
		}
		seen[h] = true

		n, err := strconv.ParseUint(h, 16, 64)
		if err != nil {
			t.Fatalf("handle %q not hex: %v", h, err)
		}
		if n <= prev {
			t.Fatalf("handle %s not increasing after %X", h, prev)
		}
		if n <= DefaultHandleSeed {
			t.Fatalf("handle %s inside reserved range", h)
		}
		prev = n
	}
	if len(seen) == 0 {
		t.Fatal("no handles found")
	}

	if !strings.Contains(out, "$HANDSEED\n5\n"+d.HandSeed()+"\n") {
		t.Error("$HANDSEED not written")
	}
	seed, _ := strconv.ParseUint(d.HandSeed(), 16, 64)
	if seed <= prev {
		t.Errorf("$HANDSEED %X not above last handle %X", seed, prev)
	}
}

func TestHandlesStableAcrossAdditions(t *testing.T) {
	d := New(Millimeters).AddPoint(0, 0, 0)
	first := d.Render()

	d.AddPoint(1, 1, 1)
	second := d.Render()

	head := first[strings.Index(first, "0\nPOINT\n"):strings.Index(first, "0\nENDSEC\n0\nSECTION\n2\nOBJECTS")]
	if !strings.Contains(second, head) {
		t.Error("first point changed after adding another entity")
	}
}

func TestR12HasNoSubclassMarkers(t *testing.T) {
	out := demoDocument(WithVersion(encoder.R12)).Render()
	lines := strings.Split(out, "\n")
	for i := 0; i+1 < len(lines); i += 2 {
		if lines[i] == "100" {
			t.Fatalf("R12 output contains subclass marker %s", lines[i+1])
		}
	}
	if strings.Contains(out, "LWPOLYLINE") || strings.Contains(out, "ELLIPSE") {
		t.Error("R12 output contains R2000-only entities")
	}
	if !strings.Contains(out, "AC1009") {
		t.Error("R12 output has wrong $ACADVER")
	}
}

func TestUnitsHeader(t *testing.T) {
	out := New(Inches).Render()
	if !strings.Contains(out, "$INSUNITS\n70\n1\n") {
		t.Error("$INSUNITS not 1 for inches")
	}

	u, err := ParseUnits("Light_Years")
	if err != nil || u != LightYears {
		t.Errorf("ParseUnits() = %v, %v", u, err)
	}
	if _, err := ParseUnits("furlongs"); err == nil {
		t.Error("ParseUnits(furlongs) expected error")
	}
}

// ============================================================================
// Encoding & persistence
// ============================================================================

func TestEncodeANSI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"é€✓", "\xe9\x80\\U+2713"},
		{"a😀b", "a\\U+D83D\\U+DE00b"},
	}
	for _, tt := range tests {
		if got := string(EncodeANSI(tt.in)); got != tt.want {
			t.Errorf("EncodeANSI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	d := demoDocument()

	path := filepath.Join(dir, "demo.dxf")
	if !d.Save(path) {
		t.Fatalf("Save() failed: %s", d.LastError())
	}
	if d.LastError() != "" {
		t.Errorf("LastError() = %q after success", d.LastError())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(d.Bytes()) {
		t.Error("saved content differs from Bytes()")
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	d := demoDocument()
	entities, layers := d.Entities(), len(d.Layers())

	path := filepath.Join(t.TempDir(), "missing", "demo.dxf")
	if d.Save(path) {
		t.Fatal("Save() succeeded for missing directory")
	}
	if !strings.HasPrefix(d.LastError(), "Directory not exists:") {
		t.Errorf("LastError() = %q", d.LastError())
	}
	if d.Entities() != entities || len(d.Layers()) != layers {
		t.Error("failed Save() changed document state")
	}
}

func TestSaveWriteFailure(t *testing.T) {
	d := demoDocument()
	entities, layers := d.Entities(), len(d.Layers())

	// the target is an existing directory: the parent exists, the write fails
	target := t.TempDir()
	if d.Save(target) {
		t.Fatal("Save() succeeded onto a directory")
	}
	if !strings.HasPrefix(d.LastError(), "Error on save:") {
		t.Errorf("LastError() = %q", d.LastError())
	}
	if d.Entities() != entities || len(d.Layers()) != layers {
		t.Error("failed Save() changed document state")
	}

	if !d.Save(filepath.Join(target, "ok.dxf")) || d.LastError() != "" {
		t.Errorf("LastError() = %q not cleared by a successful Save()", d.LastError())
	}
}
