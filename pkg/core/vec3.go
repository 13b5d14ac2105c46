package core

import (
	"math"
)

// Vec3 represents a 3D vector. It doubles as an RGB color, with X, Y, Z holding R, G, B.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 represents a 2D vector, used for surface (UV) coordinates
type Vec2 struct {
	X, Y float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat returns a vector with all three components set to v
func Splat(v float64) Vec3 {
	return Vec3{v, v, v}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// DivideVec returns component-wise division of two vectors
func (v Vec3) DivideVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X / other.X,
		Y: v.Y / other.Y,
		Z: v.Z / other.Z,
	}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// MaxComponent returns the largest of the three components
func (v Vec3) MaxComponent() float64 {
	return max(v.X, v.Y, v.Z)
}

// IsZero reports whether all three components are exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Get returns the component for axis 0 (X), 1 (Y) or 2 (Z)
func (v Vec3) Get(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Rotate applies rotations around the X, Y and Z axes (in that order).
// Angles are in radians.
func (v Vec3) Rotate(angles Vec3) Vec3 {
	r := v
	if angles.X != 0 {
		c, s := math.Cos(angles.X), math.Sin(angles.X)
		r = Vec3{r.X, r.Y*c - r.Z*s, r.Y*s + r.Z*c}
	}
	if angles.Y != 0 {
		c, s := math.Cos(angles.Y), math.Sin(angles.Y)
		r = Vec3{r.X*c + r.Z*s, r.Y, -r.X*s + r.Z*c}
	}
	if angles.Z != 0 {
		c, s := math.Cos(angles.Z), math.Sin(angles.Z)
		r = Vec3{r.X*c - r.Y*s, r.X*s + r.Y*c, r.Z}
	}
	return r
}

// InverseRotate undoes Rotate: Z, then Y, then X, each with the negated angle
func (v Vec3) InverseRotate(angles Vec3) Vec3 {
	r := v
	if angles.Z != 0 {
		r = r.Rotate(Vec3{0, 0, -angles.Z})
	}
	if angles.Y != 0 {
		r = r.Rotate(Vec3{0, -angles.Y, 0})
	}
	if angles.X != 0 {
		r = r.Rotate(Vec3{-angles.X, 0, 0})
	}
	return r
}

// equalsTolerance absorbs rounding from rotations and normalization
const equalsTolerance = 1e-9

// Equals reports whether two vectors match component-wise within a small tolerance
func (v Vec3) Equals(other Vec3) bool {
	return math.Abs(v.X-other.X) < equalsTolerance &&
		math.Abs(v.Y-other.Y) < equalsTolerance &&
		math.Abs(v.Z-other.Z) < equalsTolerance
}

// Radians converts an angle in degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// ToRadians converts per-axis angles in degrees to radians
func (v Vec3) ToRadians() Vec3 {
	return Vec3{Radians(v.X), Radians(v.Y), Radians(v.Z)}
}
