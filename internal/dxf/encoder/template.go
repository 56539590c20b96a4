package encoder

import (
	_ "embed"
	"strconv"
	"strings"
)

// ============================================================
// Document templates
// ============================================================

//go:embed templates/r12.dxf
var r12Template string

//go:embed templates/r2000.dxf
var r2000Template string

// Sections holds the generated parts substituted into a template.
type Sections struct {
	HandSeed  string
	Units     int
	LineTypes Record
	Layers    Record
	Styles    Record
	Entities  []Record
}

// Assemble substitutes the sections into the template of version v.
func Assemble(v Version, s Sections) string {
	tpl := r2000Template
	if v == R12 {
		tpl = r12Template
	}

	var entities strings.Builder
	for _, e := range s.Entities {
		e.WriteTo(&entities)
	}

	r := strings.NewReplacer(
		"{HANDSEED}", s.HandSeed,
		"{INSUNITS}", strconv.Itoa(s.Units),
		"{LTYPES_TABLE}", s.LineTypes.String(),
		"{LAYERS_TABLE}", s.Layers.String(),
		"{STYLES_TABLE}", s.Styles.String(),
		"{ENTITIES_SECTION}", entities.String(),
	)
	return r.Replace(tpl)
}
