package vmath

import (
	"github.com/chewxy/math32"
)

// Vec3 is a float32 3D vector in world space (Y up).
type Vec3 struct {
	X, Y, Z float32
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func MagSq(v Vec3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func Mag(v Vec3) float32 {
	return math32.Sqrt(MagSq(v))
}

// Normalize returns the unit vector, or the zero vector for zero input.
func Normalize(v Vec3) Vec3 {
	mag := Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

func Dist(a, b Vec3) float32 {
	return Mag(Sub(a, b))
}

// RotateY rotates v around the Y axis by angle radians (counter-clockwise
// seen from above). Used to turn stick input into the viewer's heading.
func RotateY(v Vec3, angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}
