package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"

	"dxf-service/internal/dxf/encoder"
	"dxf-service/internal/dxf/linetype"

	"golang.org/x/text/encoding/charmap"
)

// ============================================================
// Handles
// ============================================================

func (d *Document) nextHandle() string {
	d.handleNumber++
	return strings.ToUpper(strconv.FormatUint(d.handleNumber, 16))
}

func (d *Document) ensureHandle(h *string) string {
	if *h == "" {
		*h = d.nextHandle()
	}
	return *h
}

// assignHandles gives every record that has none a fresh handle. The order
// is fixed: line-type table, layer table, style table, entities. Records that
// already hold handles keep them, so repeated renders are identical.
func (d *Document) assignHandles() {
	if d.version.SubclassMarkers() {
		d.ensureHandle(&d.tables.lineTypes)
		d.ensureHandle(&d.tables.byBlock)
		d.ensureHandle(&d.tables.byLayer)
	} else {
		d.ensureHandle(&d.tables.lineTypes)
	}
	for _, lt := range d.lineTypes {
		if _, ok := d.lineTypeHandles[lt]; !ok {
			d.lineTypeHandles[lt] = d.nextHandle()
		}
	}

	d.ensureHandle(&d.tables.layers)
	for _, l := range d.layers {
		d.ensureHandle(&l.handle)
	}

	if d.standard == nil && d.needsStandard() {
		d.standard = &styleEntry{style: encoder.Standard()}
	}
	if d.standard != nil || len(d.styles) > 0 {
		d.ensureHandle(&d.tables.styles)
		if d.standard != nil {
			d.ensureHandle(&d.standard.handle)
		}
		for _, s := range d.styles {
			d.ensureHandle(&s.handle)
		}
	}

	for _, e := range d.entities {
		if e.handles != nil {
			continue
		}
		n := e.entity.HandleCount(d.version)
		e.handles = make([]string, n)
		for i := range e.handles {
			e.handles[i] = d.nextHandle()
		}
	}
}

// needsStandard reports whether some TEXT falls back to STANDARD while no
// style of that name is registered.
func (d *Document) needsStandard() bool {
	if _, ok := d.styleIndex[encoder.StandardStyle]; ok {
		return false
	}
	for _, e := range d.entities {
		if t, ok := e.entity.(encoder.Text); ok && t.Style == "" {
			return true
		}
	}
	return false
}

// HandSeed returns the value of $HANDSEED: the next handle that would be
// allocated.
func (d *Document) HandSeed() string {
	return strings.ToUpper(strconv.FormatUint(d.handleNumber+1, 16))
}

// ============================================================
// Rendering
// ============================================================

// Render returns the DXF document. It is idempotent: handles are assigned
// once, so calling it again without changes yields identical text.
func (d *Document) Render() string {
	d.assignHandles()

	var ltypes []encoder.LineTypeEntry
	if d.version.SubclassMarkers() {
		ltypes = append(ltypes,
			encoder.LineTypeEntry{Handle: d.tables.byBlock, Type: linetype.ByBlock},
			encoder.LineTypeEntry{Handle: d.tables.byLayer, Type: linetype.ByLayer},
		)
	}
	for _, lt := range d.lineTypes {
		ltypes = append(ltypes, encoder.LineTypeEntry{Handle: d.lineTypeHandles[lt], Type: lt})
	}

	layers := make([]encoder.LayerEntry, 0, len(d.layers))
	for _, l := range d.layers {
		layers = append(layers, encoder.LayerEntry{
			Handle:   l.handle,
			Name:     l.Name,
			Color:    l.Color,
			LineType: l.LineType,
		})
	}

	styles := make([]encoder.StyleEntry, 0, len(d.styles)+1)
	if _, registered := d.styleIndex[encoder.StandardStyle]; d.standard != nil && !registered {
		styles = append(styles, encoder.StyleEntry{Handle: d.standard.handle, Style: d.standard.style})
	}
	for _, s := range d.styles {
		styles = append(styles, encoder.StyleEntry{Handle: s.handle, Style: s.style})
	}

	entities := make([]encoder.Record, 0, len(d.entities))
	for _, e := range d.entities {
		entities = append(entities, e.entity.Encode(d.version, e.handles))
	}

	return encoder.Assemble(d.version, encoder.Sections{
		HandSeed:  d.HandSeed(),
		Units:     int(d.units),
		LineTypes: encoder.LineTypeTable(d.version, d.tables.lineTypes, ltypes),
		Layers:    encoder.LayerTable(d.version, d.tables.layers, layers),
		Styles:    encoder.StyleTable(d.version, d.tables.styles, styles),
		Entities:  entities,
	})
}

// String is Render.
func (d *Document) String() string {
	return d.Render()
}

// Bytes returns the rendered document in its code page (ANSI_1252).
// Characters the code page lacks are written as \U+XXXX escapes.
func (d *Document) Bytes() []byte {
	return EncodeANSI(d.Render())
}

// EncodeANSI converts UTF-8 text to Windows-1252, escaping characters that
// have no single-byte form as \U+XXXX.
func EncodeANSI(s string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			buf.WriteByte(b)
			continue
		}
		if r > 0xFFFF {
			// \U+ takes four digits; astral runes go as a surrogate pair
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\U+%04X\U+%04X`, hi, lo)
			continue
		}
		fmt.Fprintf(&buf, `\U+%04X`, r)
	}
	return buf.Bytes()
}

// WriteTo writes the encoded document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// ============================================================
// Persistence
// ============================================================

// Save writes the document to fileName. It returns false when the target
// directory does not exist or the write fails; LastError describes why.
func (d *Document) Save(fileName string) bool {
	d.err = ""

	dir := filepath.Dir(fileName)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		d.err = fmt.Sprintf("Directory not exists: %s", dir)
		return false
	}

	if err := os.WriteFile(fileName, d.Bytes(), 0o644); err != nil {
		d.err = fmt.Sprintf("Error on save: %s", fileName)
		return false
	}
	return true
}

// LastError returns the description of the last failed Save, or "".
func (d *Document) LastError() string {
	return d.err
}
