package document

import (
	"fmt"
	"strings"
)

// Units is the $INSUNITS drawing unit code.
type Units int

const (
	Unitless Units = iota
	Inches
	Feet
	Miles
	Millimeters
	Centimeters
	Meters
	Kilometers
	Microinches
	Mils
	Yards
	Angstroms
	Nanometers
	Microns
	Decimeters
	Decameters
	Hectometers
	Gigameters
	AstronomicalUnits
	LightYears
	Parsecs
)

var unitNames = [...]string{
	"unitless", "inches", "feet", "miles", "millimeters", "centimeters", "meters",
	"kilometers", "microinches", "mils", "yards", "angstroms", "nanometers", "microns",
	"decimeters", "decameters", "hectometers", "gigameters", "astronomical_units",
	"light_years", "parsecs",
}

func (u Units) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("units(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnits accepts a unit name such as "millimeters" or "light_years".
// An empty string gives Millimeters.
func ParseUnits(s string) (Units, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Millimeters, nil
	}
	for i, name := range unitNames {
		if name == s {
			return Units(i), nil
		}
	}
	return 0, fmt.Errorf("unknown units %q", s)
}
