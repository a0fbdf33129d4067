// Package geom provides the coordinate value types produced by shape extraction.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point3D is an immutable 3D coordinate.
type Point3D struct {
	x, y, z float64
}

// Separator marks the boundary between two independent loops inside a flattened
// point sequence. It is not a coordinate.
var Separator = Point3D{x: -99.0, y: -99.0, z: -99.0}

// NewPoint3D creates a point from its components.
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{x: x, y: y, z: z}
}

// X returns the x component.
func (p Point3D) X() float64 { return p.x }

// Y returns the y component.
func (p Point3D) Y() float64 { return p.y }

// Z returns the z component.
func (p Point3D) Z() float64 { return p.z }

// Equal compares all three components exactly, without tolerance.
func (p Point3D) Equal(other Point3D) bool {
	return p.x == other.x && p.y == other.y && p.z == other.z
}

// IsSeparator reports whether p is the loop separator.
func (p Point3D) IsSeparator() bool {
	return p.Equal(Separator)
}

// HasNaN reports whether any component is not-a-number.
func (p Point3D) HasNaN() bool {
	return math.IsNaN(p.x) || math.IsNaN(p.y) || math.IsNaN(p.z)
}

// Translate returns p shifted by dx, dy, dz.
func (p Point3D) Translate(dx, dy, dz float64) Point3D {
	return Point3D{x: p.x + dx, y: p.y + dy, z: p.z + dz}
}

// Flatten returns p with z forced to 0.
func (p Point3D) Flatten() Point3D {
	return Point3D{x: p.x, y: p.y}
}

func (p Point3D) String() string {
	if p.IsSeparator() {
		return "(sep)"
	}
	return fmt.Sprintf("(%g, %g, %g)", p.x, p.y, p.z)
}

// ParseNumber parses a STEP real such as "1." or "-2.5E-3".
// A trailing decimal point gets a zero appended before parsing.
// Unparsable text yields NaN together with the parse error.
func ParseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("failed to parse number %q: %w", text, err)
	}
	return v, nil
}

// SplitLoops splits a flattened sequence on Separator. Empty loops are dropped.
func SplitLoops(points []Point3D) [][]Point3D {
	var loops [][]Point3D
	var current []Point3D
	for _, p := range points {
		if p.IsSeparator() {
			if len(current) > 0 {
				loops = append(loops, current)
			}
			current = nil
			continue
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		loops = append(loops, current)
	}
	return loops
}

// JoinLoops flattens loops, appending Separator after each loop.
func JoinLoops(loops [][]Point3D) []Point3D {
	out := []Point3D{}
	for _, loop := range loops {
		out = append(out, loop...)
		out = append(out, Separator)
	}
	return out
}
