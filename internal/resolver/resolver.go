package resolver

import (
	"memory-palace/internal/object"
	"memory-palace/internal/registry"
	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

// Beam feedback: a hit shortens the beam to the hit distance and tints it;
// a miss extends it to the default length in the neutral tint.
const (
	DefaultBeamLength = float32(6)
	HitTint           = uint32(0x4ecdc4)
	NeutralTint       = uint32(0xaaaaaa)
)

// Beam is the per-frame visual state of one hand's aiming ray.
type Beam struct {
	Origin vmath.Vec3
	Dir    vmath.Vec3
	Length float32
	Hit    bool
	Tint   uint32
}

// Resolver finds which live object a directional ray intersects and keeps
// hover feedback current. Static room geometry is never tested: only the
// registry's objects exist to the resolver.
//
// Aiming is continuous (every frame, drives hover and the beam); committing
// is discrete (edge-triggered, drives selection). The resolver only aims;
// the orchestrator commits using Cast.
type Resolver struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Cast returns the nearest object the ray intersects and the hit distance.
// Ties at the same distance go to the earlier object in insertion order.
func (r *Resolver) Cast(ray vmath.Ray) (*object.MemoryObject, float32, bool) {
	var nearest *object.MemoryObject
	var nearestDist float32
	for _, o := range r.reg.Objects() {
		dist, hit := intersect(ray, o)
		if !hit {
			continue
		}
		// Strict < keeps the first object at the minimal distance.
		if nearest == nil || dist < nearestDist {
			nearest = o
			nearestDist = dist
		}
	}
	return nearest, nearestDist, nearest != nil
}

// Aim runs the continuous per-frame pass for the selecting hand: updates
// hover from the ray and returns the beam feedback. A miss clears hover;
// selection is never affected by aiming.
func (r *Resolver) Aim(ray vmath.Ray) Beam {
	o, dist, hit := r.Cast(ray)
	r.reg.Hover(o)
	return beam(ray, dist, hit)
}

// Probe computes beam feedback for a non-selecting hand without touching
// hover state.
func (r *Resolver) Probe(ray vmath.Ray) Beam {
	_, dist, hit := r.Cast(ray)
	return beam(ray, dist, hit)
}

func beam(ray vmath.Ray, dist float32, hit bool) Beam {
	b := Beam{Origin: ray.Origin, Dir: ray.Dir, Length: DefaultBeamLength, Tint: NeutralTint}
	if hit {
		b.Length = dist
		b.Hit = true
		b.Tint = HitTint
	}
	return b
}

// intersect tests the ray against one object's solid. Spheres get the
// analytic test; box, cylinder, and cone use their bounding box.
func intersect(ray vmath.Ray, o *object.MemoryObject) (float32, bool) {
	if o.Shape == shape.Sphere {
		return ray.IntersectSphere(o.Position, o.Shape.Radius())
	}
	return ray.IntersectAABB(vmath.BoxAround(o.Position, o.Shape.Size()))
}
