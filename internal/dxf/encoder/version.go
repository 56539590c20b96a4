package encoder

import (
	"fmt"
	"strings"
)

// ============================================================
// Target Versions
// ============================================================

// Version selects the DXF revision a document is written for. The revisions
// differ in record verbosity, not in content.
type Version int

const (
	R12 Version = iota + 1
	R2000
)

// ACADVer returns the $ACADVER header value.
func (v Version) ACADVer() string {
	if v == R12 {
		return "AC1009"
	}
	return "AC1015"
}

func (v Version) String() string {
	if v == R12 {
		return "R12"
	}
	return "R2000"
}

// SubclassMarkers reports whether records carry 100/AcDb* subclass markers.
func (v Version) SubclassMarkers() bool { return v != R12 }

// LightweightPolylines reports whether 2D polylines are written as LWPOLYLINE.
func (v Version) LightweightPolylines() bool { return v != R12 }

// Ellipses reports whether the ELLIPSE entity exists. Without it ellipses
// are approximated by closed polylines.
func (v Version) Ellipses() bool { return v != R12 }

// ParseVersion accepts "r12", "ac1009", "r2000" or "ac1015" in any case.
// An empty string selects R2000.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "r2000", "2000", "ac1015":
		return R2000, nil
	case "r12", "12", "ac1009":
		return R12, nil
	}
	return 0, fmt.Errorf("unknown dxf version %q", s)
}
