package shape

import (
	"memory-palace/internal/vmath"
)

// Shape is the closed set of solid types a memory object can take.
type Shape uint8

const (
	Box Shape = iota
	Sphere
	Cylinder
	Cone
)

// Parse maps a stored shape name to a Shape. Unrecognized values fall back
// to Box so old or hand-edited data still loads.
func Parse(s string) Shape {
	switch s {
	case "sphere":
		return Sphere
	case "cylinder":
		return Cylinder
	case "cone":
		return Cone
	default:
		return Box
	}
}

func (s Shape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	default:
		return "box"
	}
}

// All lists every shape in spawn-cycling order.
var All = []Shape{Box, Sphere, Cylinder, Cone}

// defaultExtent is the world-space extent of a freshly spawned object.
// Sphere and cone fit inside the same bounds as the box so switching shape
// keeps the object's footprint.
const defaultExtent = float32(0.5)

// Size returns the default bounding size for the shape.
func (s Shape) Size() vmath.Vec3 {
	return vmath.Vec3{X: defaultExtent, Y: defaultExtent, Z: defaultExtent}
}

// Radius returns the bounding-sphere radius used for sphere ray tests.
func (s Shape) Radius() float32 {
	return defaultExtent * 0.5
}
