package resolver

import (
	"testing"

	"memory-palace/internal/registry"
	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

func newWorld(t *testing.T) (*registry.Registry, *Resolver) {
	t.Helper()
	reg := registry.New(nil, nil, nil)
	return reg, New(reg)
}

func forwardRay() vmath.Ray {
	return vmath.Ray{Origin: vmath.Vec3{Y: 1}, Dir: vmath.Vec3{Z: -1}}
}

func TestCastNearestWins(t *testing.T) {
	reg, res := newWorld(t)
	far := reg.Create(vmath.Vec3{Y: 1, Z: -8}, "far", 0, shape.Box)
	nearObj := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "near", 0, shape.Box)
	_ = far

	got, dist, hit := res.Cast(forwardRay())
	if !hit {
		t.Fatal("expected a hit")
	}
	if got != nearObj {
		t.Errorf("Cast returned %q, want the nearer object", got.Text)
	}
	if dist <= 0 || dist >= 3 {
		t.Errorf("hit distance = %v, want just under 3", dist)
	}
}

func TestCastTieBreaksByInsertionOrder(t *testing.T) {
	reg, res := newWorld(t)
	// Two fully overlapping objects: identical hit distance.
	first := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "first", 0, shape.Box)
	reg.Create(vmath.Vec3{Y: 1, Z: -3}, "second", 0, shape.Box)

	got, _, hit := res.Cast(forwardRay())
	if !hit || got != first {
		t.Errorf("tie should go to the first inserted object, got %v", got)
	}
}

func TestCastSphereUsesAnalyticTest(t *testing.T) {
	reg, res := newWorld(t)
	// A ray clipping the corner of the sphere's bounding box but missing
	// the sphere itself must miss.
	s := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "ball", 0, shape.Sphere)
	corner := vmath.Ray{
		Origin: vmath.Vec3{X: 0.22, Y: 1.22, Z: 0},
		Dir:    vmath.Vec3{Z: -1},
	}
	if _, _, hit := res.Cast(corner); hit {
		t.Error("corner ray should miss the sphere")
	}

	center := vmath.Ray{Origin: vmath.Vec3{Y: 1}, Dir: vmath.Vec3{Z: -1}}
	got, dist, hit := res.Cast(center)
	if !hit || got != s {
		t.Fatal("center ray should hit the sphere")
	}
	if dist < 2.7 || dist > 2.8 {
		t.Errorf("sphere hit distance = %v, want 3 - radius (2.75)", dist)
	}
}

func TestAimUpdatesHover(t *testing.T) {
	reg, res := newWorld(t)
	a := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "a", 0, shape.Box)

	b := res.Aim(forwardRay())
	if reg.Hovered() != a {
		t.Error("aim hit did not hover the object")
	}
	if !b.Hit || b.Tint != HitTint {
		t.Errorf("beam = %+v, want hit with hit tint", b)
	}
	if b.Length >= DefaultBeamLength {
		t.Errorf("beam length %v not shortened to the hit", b.Length)
	}
}

func TestAimMissClearsHoverNotSelection(t *testing.T) {
	reg, res := newWorld(t)
	a := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "a", 0, shape.Box)
	reg.Select(a)
	res.Aim(forwardRay())
	if reg.Hovered() != a {
		t.Fatal("setup: aim should hover a")
	}

	miss := vmath.Ray{Origin: vmath.Vec3{Y: 1}, Dir: vmath.Vec3{Z: 1}}
	b := res.Aim(miss)
	if reg.Hovered() != nil {
		t.Error("miss did not clear hover")
	}
	if reg.Selected() != a {
		t.Error("miss must not touch selection")
	}
	if b.Hit || b.Length != DefaultBeamLength || b.Tint != NeutralTint {
		t.Errorf("miss beam = %+v, want default length, neutral tint", b)
	}
}

func TestProbeDoesNotTouchHover(t *testing.T) {
	reg, res := newWorld(t)
	a := reg.Create(vmath.Vec3{Y: 1, Z: -3}, "a", 0, shape.Box)
	res.Aim(forwardRay())
	if reg.Hovered() != a {
		t.Fatal("setup: hover a")
	}

	miss := vmath.Ray{Origin: vmath.Vec3{Y: 1}, Dir: vmath.Vec3{Z: 1}}
	res.Probe(miss)
	if reg.Hovered() != a {
		t.Error("probe changed hover state")
	}
}

func TestCastEmptyRegistry(t *testing.T) {
	_, res := newWorld(t)
	if _, _, hit := res.Cast(forwardRay()); hit {
		t.Error("empty registry produced a hit")
	}
}
