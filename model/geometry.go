package model

import "math"

// ratioEpsilon is the smallest denominator magnitude SafeRatio will divide by.
const ratioEpsilon = 1e-9

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents an axis-aligned rectangle in top-down coordinates.
// X0/Y0 is the top-left corner, X1/Y1 the bottom-right corner.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints creates a rectangle spanning two points
func NewRectFromPoints(p1, p2 Point) Rect {
	return Rect{
		X0: math.Min(p1.X, p2.X),
		Y0: math.Min(p1.Y, p2.Y),
		X1: math.Max(p1.X, p2.X),
		Y1: math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: (r.X0 + r.X1) / 2,
		Y: (r.Y0 + r.Y1) / 2,
	}
}

// Contains checks if a point is inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 &&
		p.Y >= r.Y0 && p.Y <= r.Y1
}

// ContainsRect checks if other lies entirely inside r
func (r Rect) ContainsRect(other Rect) bool {
	return other.X0 >= r.X0 && other.X1 <= r.X1 &&
		other.Y0 >= r.Y0 && other.Y1 <= r.Y1
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 ||
		r.X0 > other.X1 ||
		r.Y1 < other.Y0 ||
		r.Y0 > other.Y1)
}

// Union returns the smallest rectangle containing both rectangles
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Translate returns the rectangle moved by dx, dy
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		X0: r.X0 + dx,
		Y0: r.Y0 + dy,
		X1: r.X1 + dx,
		Y1: r.Y1 + dy,
	}
}

// Normalize returns the rectangle with X0 <= X1 and Y0 <= Y1
func (r Rect) Normalize() Rect {
	return NewRectFromPoints(Point{r.X0, r.Y0}, Point{r.X1, r.Y1})
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// SafeRatio divides num by den. It reports false, with a zero ratio, when the
// denominator magnitude is too small to divide by or either operand is NaN.
// Every ratio derived from a line or block box goes through it.
func SafeRatio(num, den float64) (float64, bool) {
	if math.IsNaN(num) || math.IsNaN(den) || math.Abs(den) < ratioEpsilon {
		return 0, false
	}
	return num / den, true
}

// Matrix represents a 2D affine transformation matrix
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformRect transforms both corners of a rectangle and returns the
// normalized result
func (m Matrix) TransformRect(r Rect) Rect {
	return NewRectFromPoints(
		m.Transform(Point{r.X0, r.Y0}),
		m.Transform(Point{r.X1, r.Y1}),
	)
}

// Multiply multiplies two matrices
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// PageToPixels returns the transform from PDF user space (origin bottom-left,
// points) to top-down pixel space for a page of the given height in points.
func PageToPixels(pageHeight, scale float64) Matrix {
	return Scale(1, -1).Multiply(Translate(0, pageHeight)).Multiply(Scale(scale, scale))
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
