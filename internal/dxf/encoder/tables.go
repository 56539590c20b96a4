package encoder

import (
	"dxf-service/internal/dxf/color"
	"dxf-service/internal/dxf/linetype"
)

// ============================================================
// Symbol tables
// ============================================================

// LineTypeEntry is one LTYPE table record.
type LineTypeEntry struct {
	Handle string
	Type   linetype.LineType
}

// LayerEntry is one LAYER table record.
type LayerEntry struct {
	Handle   string
	Name     string
	Color    color.Color
	LineType linetype.LineType
}

// TextStyle holds the STYLE table fields.
type TextStyle struct {
	Name            string
	Font            string
	BigFont         string
	Flags           int
	FixedHeight     float64
	WidthFactor     float64
	ObliqueAngle    float64
	GenerationFlags int
	LastHeight      float64
}

// StandardStyle is the style TEXT falls back to when none is set.
const StandardStyle = "STANDARD"

// Standard returns the STANDARD text style definition.
func Standard() TextStyle {
	return TextStyle{
		Name:        StandardStyle,
		Font:        "txt",
		WidthFactor: 1,
		LastHeight:  2.5,
	}
}

// StyleEntry is one STYLE table record.
type StyleEntry struct {
	Handle string
	Style  TextStyle
}

// plot style placeholder object defined by the R2000 template
const plotStyleHandle = "F"

func tableHeader(v Version, name, handle string, count int) *writer {
	return newWriter(v, "TABLE").
		str(2, name).
		handle(handle).
		owner("0").
		subclass("AcDbSymbolTable").
		integer(70, count)
}

// LineTypeTable renders the LTYPE table. Entries are written in the given
// order; names outside the fixed enumeration get an empty pattern.
func LineTypeTable(v Version, handle string, entries []LineTypeEntry) Record {
	w := tableHeader(v, "LTYPE", handle, len(entries))

	for _, e := range entries {
		w.next("LTYPE").
			handle(e.Handle).
			owner(handle).
			subclass("AcDbSymbolTableRecord", "AcDbLinetypeTableRecord").
			str(2, string(e.Type))

		def, ok := linetype.Lookup(e.Type)
		if !ok {
			w.integer(70, 0).str(3, "").integer(72, 65).integer(73, 0).num(40, 0)
			continue
		}

		w.integer(70, 64).
			str(3, def.Label).
			integer(72, 65).
			integer(73, len(def.Elements)).
			num(40, def.Total())
		for _, el := range def.Elements {
			w.num(49, el)
			if v.SubclassMarkers() {
				w.integer(74, 0)
			}
		}
	}

	return w.next("ENDTAB").record()
}

// LayerTable renders the LAYER table.
func LayerTable(v Version, handle string, entries []LayerEntry) Record {
	w := tableHeader(v, "LAYER", handle, len(entries))

	for _, e := range entries {
		w.next("LAYER").
			handle(e.Handle).
			owner(handle).
			subclass("AcDbSymbolTableRecord", "AcDbLayerTableRecord").
			str(2, e.Name).
			integer(70, 64).
			integer(62, int(e.Color)).
			str(6, string(e.LineType))
		if v.SubclassMarkers() {
			w.str(390, plotStyleHandle)
		}
	}

	return w.next("ENDTAB").record()
}

// StyleTable renders the STYLE table. An empty table renders nothing.
func StyleTable(v Version, handle string, entries []StyleEntry) Record {
	if len(entries) == 0 {
		return nil
	}

	w := tableHeader(v, "STYLE", handle, len(entries))

	for _, e := range entries {
		s := e.Style
		w.next("STYLE").
			handle(e.Handle).
			owner(handle).
			subclass("AcDbSymbolTableRecord", "AcDbTextStyleTableRecord").
			str(2, s.Name).
			integer(70, s.Flags).
			num(40, s.FixedHeight).
			num(41, s.WidthFactor).
			num(50, s.ObliqueAngle).
			integer(71, s.GenerationFlags).
			num(42, s.LastHeight).
			str(3, s.Font).
			str(4, s.BigFont)
	}

	return w.next("ENDTAB").record()
}
