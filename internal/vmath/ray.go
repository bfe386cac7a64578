package vmath

import (
	"github.com/chewxy/math32"
)

// Ray is a directional probe: origin plus normalized direction.
type Ray struct {
	Origin, Dir Vec3
}

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min, Max Vec3
}

// BoxAround returns the AABB for a box of the given size centered at center.
// Zero size components are treated as 1.
func BoxAround(center, size Vec3) AABB {
	sx, sy, sz := size.X, size.Y, size.Z
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	half := Vec3{sx * 0.5, sy * 0.5, sz * 0.5}
	return AABB{Min: Sub(center, half), Max: Add(center, half)}
}

// IntersectAABB returns the distance along the ray to the box using the slab
// method, and whether the ray hits at all. A ray starting inside the box hits
// at distance 0.
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			// Parallel to this slab; miss unless origin is inside it.
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectSphere returns the distance along the ray to the sphere surface
// and whether the ray hits. Hits behind the origin are misses; a ray starting
// inside the sphere hits at the exit point.
func (r Ray) IntersectSphere(center Vec3, radius float32) (float32, bool) {
	oc := Sub(r.Origin, center)
	b := Dot(oc, r.Dir)
	c := MagSq(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
