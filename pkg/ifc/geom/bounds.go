package geom

import "math"

// Bounds represents an axis-aligned 3D bounding box
type Bounds struct {
	Min Point3D // Minimum corner
	Max Point3D // Maximum corner
}

// NewBounds creates an empty bounding box
func NewBounds() Bounds {
	return Bounds{
		Min: Point3D{x: math.Inf(1), y: math.Inf(1), z: math.Inf(1)},
		Max: Point3D{x: math.Inf(-1), y: math.Inf(-1), z: math.Inf(-1)},
	}
}

// BoundsOf returns the bounds of a point sequence, skipping separators
func BoundsOf(points []Point3D) Bounds {
	b := NewBounds()
	for _, p := range points {
		b.Expand(p)
	}
	return b
}

// IsEmpty checks if the bounding box is empty
func (b Bounds) IsEmpty() bool {
	return b.Min.x > b.Max.x || b.Min.y > b.Max.y || b.Min.z > b.Max.z
}

// Expand expands the bounding box to include a point. Separators are ignored.
func (b *Bounds) Expand(p Point3D) {
	if p.IsSeparator() || p.HasNaN() {
		return
	}
	b.Min = Point3D{x: math.Min(b.Min.x, p.x), y: math.Min(b.Min.y, p.y), z: math.Min(b.Min.z, p.z)}
	b.Max = Point3D{x: math.Max(b.Max.x, p.x), y: math.Max(b.Max.y, p.y), z: math.Max(b.Max.z, p.z)}
}

// ExpandBox expands to include another bounding box
func (b *Bounds) ExpandBox(other Bounds) {
	if !other.IsEmpty() {
		b.Expand(other.Min)
		b.Expand(other.Max)
	}
}

// Width returns the extent along x
func (b Bounds) Width() float64 {
	return b.Max.x - b.Min.x
}

// Depth returns the extent along y
func (b Bounds) Depth() float64 {
	return b.Max.y - b.Min.y
}

// Height returns the extent along z
func (b Bounds) Height() float64 {
	return b.Max.z - b.Min.z
}

// Center returns the center point of the bounding box
func (b Bounds) Center() Point3D {
	return Point3D{
		x: (b.Min.x + b.Max.x) / 2.0,
		y: (b.Min.y + b.Max.y) / 2.0,
		z: (b.Min.z + b.Max.z) / 2.0,
	}
}
