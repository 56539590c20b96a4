package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/document"
	"dxf-service/internal/dxf/encoder"
	"dxf-service/internal/dxf/linetype"
)

// ============================================================
// Demo drawings
// ============================================================

func main() {
	out := flag.String("out", ".", "output directory")
	versionName := flag.String("version", "r2000", "dxf version: r12 or r2000")
	flag.Parse()

	version, err := encoder.ParseVersion(*versionName)
	if err != nil {
		log.Fatalf("[DXF] %v", err)
	}

	demos := []struct {
		name  string
		build func(*document.Document)
	}{
		{"demo1.dxf", demo1},
		{"demo2.dxf", demo2},
		{"demo3.dxf", demo3},
	}

	failed := false
	for _, demo := range demos {
		doc := document.New(document.Millimeters, document.WithVersion(version))
		demo.build(doc)

		path := filepath.Join(*out, demo.name)
		if !doc.Save(path) {
			log.Printf("[DXF] %s: %s", demo.name, doc.LastError())
			failed = true
			continue
		}
		log.Printf("[DXF] Done (%s, %d entities)", path, doc.Entities())
	}

	if failed {
		os.Exit(1)
	}
}

// demo1: text, lines, circles, arcs and points on several layers.
func demo1(d *document.Document) {
	d.SetTextStyle("Consolas Regular", "consola").
		AddText(50, 50, 0, "DXF testing", 8, 5).
		SetLayer("cyan", color.Cyan, linetype.Continuous).
		AddLine(25, 0, 0, 100, 0, 0).
		AddLine(100, 0, 0, 100, 75, 0).
		AddLine(75, 100, 0, 0, 100, 0).
		AddLine(0, 100, 0, 0, 25, 0).
		SetLayer("blue", color.Blue, linetype.DashDot).
		AddCircle(0, 0, 0, 25).
		SetLayer("custom", color.RGB(10, 145, 230), linetype.Continuous).
		AddCircle(100, 100, 0, 25).
		SetLayer("red", color.Red, linetype.Continuous).
		AddArc(0, 100, 0, 25, 0, 270).
		SetLayer("magenta", color.Magenta, linetype.Continuous).
		AddArc(100, 0, 0, 25, 180, 90).
		SetLayer("black", color.Default, linetype.Continuous).
		AddPoint(0, 0, 0).
		AddPoint(0, 100, 0).
		AddPoint(100, 100, 0).
		AddPoint(100, 0, 0)
}

// demo2: layer 0 recolored with a dash-dot line type, then a polyline.
func demo2(d *document.Document) {
	d.SetColor(color.RGB(0, 100, 0)).
		SetLineType(linetype.DashDotX2).
		AddCircle(0, 0, 0, 33).
		SetLayer("poly", color.Magenta, linetype.Solid).
		AddPolyline([]float64{
			100, 100,
			100, 50,
			50, 50,
			50, 100,
			30, 100,
			30, 40,
			35, 40,
			35, 20,
		})
}

// demo3: ellipses by axis endpoint and by three points.
func demo3(d *document.Document) {
	d.SetColor(color.RGB(0, 100, 0)).
		AddEllipse(-20, 0, 0, -20, 30, 0, 0.5).
		SetLayer("2", color.Magenta, linetype.Solid).
		AddEllipseBy3Points(20, 0, 0, 20, 30, 0, 35, 0, 0)
}
