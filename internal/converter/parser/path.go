package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dxf-service/internal/converter/models"
)

// ============================================================
// Path Parser
// ============================================================

var (
	commandRe = regexp.MustCompile(`([MmLlHhVvCcSsQqTtAaZz])([^MmLlHhVvCcSsQqTtAaZz]*)`)
	numberRe  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// arity is the number of arguments consumed per repetition of a command.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'S': 4, 'Q': 4,
	'C': 6,
	'A': 7,
	'Z': 0,
}

// ParsePath flattens SVG path data into subpaths. Curve and arc segments
// are replaced by a straight segment to their end point.
func ParsePath(d string) ([]models.Subpath, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var (
		subpaths       []models.Subpath
		current        = -1
		x, y           float64
		startX, startY float64
	)

	moveTo := func(px, py float64) {
		subpaths = append(subpaths, models.Subpath{})
		current = len(subpaths) - 1
		x, y = px, py
		startX, startY = px, py
		subpaths[current].Points = append(subpaths[current].Points, models.Point{X: x, Y: y})
	}
	lineTo := func(px, py float64) {
		if current < 0 || subpaths[current].Closed {
			moveTo(x, y)
		}
		x, y = px, py
		subpaths[current].Points = append(subpaths[current].Points, models.Point{X: x, Y: y})
	}

	matches := commandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	for _, match := range matches {
		cmd := match[1][0]
		upper := cmd &^ 0x20
		relative := cmd != upper
		args := parseCoords(match[2])
		n := arity[upper]

		if upper == 'Z' {
			if current >= 0 {
				subpaths[current].Closed = true
				x, y = startX, startY
			}
			continue
		}
		if len(args) < n {
			return nil, fmt.Errorf("command %c: expected %d arguments, got %d", cmd, n, len(args))
		}

		for i := 0; i+n <= len(args); i += n {
			a := args[i : i+n]
			var ox, oy float64
			if relative {
				ox, oy = x, y
			}

			switch upper {
			case 'M':
				if i == 0 {
					moveTo(ox+a[0], oy+a[1])
				} else {
					// implicit lineto
					lineTo(ox+a[0], oy+a[1])
				}
			case 'L', 'T':
				lineTo(ox+a[0], oy+a[1])
			case 'H':
				lineTo(ox+a[0], y)
			case 'V':
				lineTo(x, oy+a[0])
			case 'S', 'Q':
				lineTo(ox+a[2], oy+a[3])
			case 'C':
				lineTo(ox+a[4], oy+a[5])
			case 'A':
				lineTo(ox+a[5], oy+a[6])
			}
		}
	}

	return subpaths, nil
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var coords []float64
	for _, part := range numberRe.FindAllString(s, -1) {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}

	return coords
}
