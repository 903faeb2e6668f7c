package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Millimeters per unit, for conversion to a canonical internal value.
const (
	mmPerInch  = 25.4
	mmPerCm    = 10.0
	mmPerPoint = 25.4 / 72.0
	mmPerPixel = 25.4 / 96.0
)

// lengthPattern matches a decimal number with an optional CSS unit suffix.
var lengthPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(mm|cm|in|pt|px)?$`)

// Length is a physical page length, stored in millimeters.
// The zero value is a zero-length margin.
type Length struct {
	mm float64
}

// Millimeters constructs a Length from a millimeter value.
func Millimeters(v float64) Length { return Length{mm: v} }

// Inches returns the length converted to inches (Chrome's print unit).
func (l Length) Inches() float64 { return l.mm / mmPerInch }

// Mm returns the length in millimeters.
func (l Length) Mm() float64 { return l.mm }

// String renders the length in its canonical millimeter form.
func (l Length) String() string {
	return strconv.FormatFloat(l.mm, 'f', -1, 64) + "mm"
}

// ParseLength parses a CSS-style length such as "20mm", "2cm", "0.5in",
// "12pt", or "96px". A bare number is interpreted as millimeters.
func ParseLength(s string) (Length, error) {
	m := lengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Length{}, fmt.Errorf("cannot parse length %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, fmt.Errorf("cannot parse length %q: %v", s, err)
	}

	switch m[2] {
	case "", "mm":
		return Millimeters(value), nil
	case "cm":
		return Millimeters(value * mmPerCm), nil
	case "in":
		return Millimeters(value * mmPerInch), nil
	case "pt":
		return Millimeters(value * mmPerPoint), nil
	case "px":
		return Millimeters(value * mmPerPixel), nil
	default:
		return Length{}, fmt.Errorf("unknown length unit in %q", s)
	}
}
