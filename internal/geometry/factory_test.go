package geometry

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

const eps = 1e-4

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func vecNear(got rl.Vector3, x, y, z float32) bool {
	return near(got.X, x) && near(got.Y, y) && near(got.Z, z)
}

// The centered solid's midpoint sits at (0, -centerOffset, 0) in model
// space; under any scale the transform must map it exactly to the object
// position, or the outline halo detaches from its solid.
func TestTransformCentersOutlineOnObject(t *testing.T) {
	pos := vmath.Vec3{X: 10, Y: 0, Z: 10}
	for _, sh := range []shape.Shape{shape.Cylinder, shape.Cone} {
		mid := rl.NewVector3(0, -centerOffset(sh), 0)
		for _, scale := range []float32{1, outlineScale} {
			m := transform(sh, pos, scale)
			got := rl.Vector3Transform(mid, m)
			if !vecNear(got, pos.X, pos.Y, pos.Z) {
				t.Errorf("%v at scale %v: midpoint landed at %+v, want %+v", sh, scale, got, pos)
			}
		}
	}
}

func TestTransformNeverScalesPosition(t *testing.T) {
	pos := vmath.Vec3{X: 10, Y: 0, Z: 10}
	m := transform(shape.Cylinder, pos, outlineScale)

	// Model origin is the cylinder's base center: it lands at the scaled
	// offset below the position, with X/Z untouched by the scale.
	got := rl.Vector3Transform(rl.NewVector3(0, 0, 0), m)
	want := outlineScale * centerOffset(shape.Cylinder)
	if !vecNear(got, pos.X, want, pos.Z) {
		t.Errorf("base center at %+v, want (%v, %v, %v)", got, pos.X, want, pos.Z)
	}
}

func TestTransformBoxScalesAboutCenter(t *testing.T) {
	pos := vmath.Vec3{X: -2, Y: 1, Z: 3}
	m := transform(shape.Box, pos, outlineScale)
	corner := rl.NewVector3(0.25, 0.25, 0.25)
	got := rl.Vector3Transform(corner, m)
	if !vecNear(got, pos.X+outlineScale*0.25, pos.Y+outlineScale*0.25, pos.Z+outlineScale*0.25) {
		t.Errorf("box corner at %+v", got)
	}
}

func TestFactoryReusesLitShader(t *testing.T) {
	f := NewFactory()
	f.litShader = rl.Shader{ID: 7}
	f.litLoaded = true

	if got := f.shader(); got.ID != 7 {
		t.Fatalf("shader() = ID %d, want the cached shader (7)", got.ID)
	}
	if got := f.shader(); got.ID != 7 {
		t.Error("second call recompiled instead of reusing the cached shader")
	}
}
