package session

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-palace/internal/environment"
	"memory-palace/internal/geometry"
	"memory-palace/internal/input"
	"memory-palace/internal/registry"
	"memory-palace/internal/resolver"
	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

const (
	eyeHeight   = float32(1.6)
	handHeight  = float32(1.3)
	handLateral = float32(0.25)
	handForward = float32(0.3)

	// spawnOffset is how far in front of the right hand a new object
	// appears; floorClamp keeps it above the floor plane.
	spawnOffset = float32(1.2)
	floorClamp  = float32(0.25)

	// proximityRadius is the placement check distance: a spawn landing
	// inside an existing object is lifted until the spot is free.
	proximityRadius = float32(0.75)
	spawnLift       = float32(0.6)

	// walkBound keeps the rig inside the room walls.
	walkBound = float32(11.5)

	defaultText = "new memory"

	beamRadius = float32(0.012)
)

// Session is the per-frame coordination layer: it samples the hands,
// decodes input, moves the rig, keeps aiming feedback current, and
// dispatches decoded commands to the registry and resolver. All of it runs
// on the render loop; a command issued this frame is drawn this frame.
type Session struct {
	reg     *registry.Registry
	res     *resolver.Resolver
	dec     *input.Decoder
	src     input.Source
	palette *shape.Palette

	moveSpeed float32
	rotSpeed  float32

	pos vmath.Vec3 // rig origin on the floor plane
	yaw float32

	room    *environment.Room
	visuals *geometry.Visuals

	leftBeam  resolver.Beam
	rightBeam resolver.Beam
}

// New wires a session. src may sample a gamepad, the keyboard, or nothing
// at all (zero connected hands is a valid, idle session).
func New(reg *registry.Registry, res *resolver.Resolver, src input.Source, palette *shape.Palette,
	room *environment.Room, visuals *geometry.Visuals, moveSpeed, rotSpeed float32) *Session {
	return &Session{
		reg:       reg,
		res:       res,
		dec:       input.NewDecoder(),
		src:       src,
		palette:   palette,
		moveSpeed: moveSpeed,
		rotSpeed:  rotSpeed,
		room:      room,
		visuals:   visuals,
		pos:       vmath.Vec3{Z: 4},
	}
}

// forward is the rig's horizontal facing direction.
func (s *Session) forward() vmath.Vec3 {
	return vmath.RotateY(vmath.Vec3{Z: -1}, s.yaw)
}

// handPose returns the world-space position and aim direction for a hand,
// derived from the rig since desktop sources have no tracking.
func (s *Session) handPose(h input.Hand) (vmath.Vec3, vmath.Vec3) {
	lateral := handLateral
	if h == input.Left {
		lateral = -handLateral
	}
	fwd := s.forward()
	right := vmath.RotateY(vmath.Vec3{X: 1}, s.yaw)
	pos := vmath.Add(s.pos, vmath.Vec3{Y: handHeight})
	pos = vmath.Add(pos, vmath.Scale(right, lateral))
	pos = vmath.Add(pos, vmath.Scale(fwd, handForward))
	return pos, fwd
}

// Update runs once per frame: decode, move, aim, then commit. Commands
// dispatched here are reflected by this frame's Draw.
func (s *Session) Update(dt float32) {
	left, right := s.src.Sample()
	left.Position, left.Forward = s.handPose(input.Left)
	right.Position, right.Forward = s.handPose(input.Right)

	decoded := s.dec.Decode(left, right, s.yaw, dt, s.moveSpeed, s.rotSpeed)
	s.pos = clampWalk(vmath.Add(s.pos, decoded.Move))
	s.yaw += decoded.Yaw

	// Poses moved this frame; recompute before aiming so beams track the rig.
	left.Position, left.Forward = s.handPose(input.Left)
	right.Position, right.Forward = s.handPose(input.Right)
	leftRay := vmath.Ray{Origin: left.Position, Dir: left.Forward}
	rightRay := vmath.Ray{Origin: right.Position, Dir: right.Forward}

	// Continuous aiming: the left (selecting) hand drives hover; the right
	// hand's beam is feedback only.
	s.leftBeam = s.res.Aim(leftRay)
	s.rightBeam = s.res.Probe(rightRay)

	cmd := decoded.Commands
	if cmd.Create {
		s.create(right.Position, right.Forward)
	}
	if cmd.Select {
		if o, _, hit := s.res.Cast(leftRay); hit {
			s.reg.Select(o)
		}
		// A miss leaves the selection unchanged.
	}
	if cmd.Delete {
		if sel := s.reg.Selected(); sel != nil {
			s.reg.Delete(sel)
		}
	}
	if cmd.Save {
		s.reg.Flush()
	}
}

// create spawns the next palette entry forward of the hand, clamped above
// the floor and lifted off any object already occupying the spot.
func (s *Session) create(handPos, handFwd vmath.Vec3) {
	spawn := vmath.Add(handPos, vmath.Scale(handFwd, spawnOffset))
	if spawn.Y < floorClamp {
		spawn.Y = floorClamp
	}
	for i := 0; i < 8 && s.reg.LookupNear(spawn, proximityRadius) != nil; i++ {
		spawn.Y += spawnLift
	}
	entry := s.palette.Next()
	s.reg.Create(spawn, defaultText, entry.Color, entry.Shape)
}

func clampWalk(p vmath.Vec3) vmath.Vec3 {
	if p.X > walkBound {
		p.X = walkBound
	}
	if p.X < -walkBound {
		p.X = -walkBound
	}
	if p.Z > walkBound {
		p.Z = walkBound
	}
	if p.Z < -walkBound {
		p.Z = -walkBound
	}
	return p
}

// Camera returns this frame's first-person camera.
func (s *Session) Camera() rl.Camera3D {
	eye := vmath.Add(s.pos, vmath.Vec3{Y: eyeHeight})
	target := vmath.Add(eye, s.forward())
	return rl.Camera3D{
		Position:   rl.NewVector3(eye.X, eye.Y, eye.Z),
		Target:     rl.NewVector3(target.X, target.Y, target.Z),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the world for this frame: room, objects, beams.
func (s *Session) Draw() {
	cam := s.Camera()
	eye := cam.Position

	s.visuals.Factory.SetView(
		[3]float32{eye.X, eye.Y, eye.Z},
		[3]float32{0.5, 1, 0.5},
	)

	rl.BeginMode3D(cam)
	s.room.Draw()
	for _, o := range s.reg.Objects() {
		if v, ok := o.Visual.(*geometry.Visual); ok {
			v.Draw(cam, o.Position)
		}
	}
	drawBeam(s.leftBeam)
	drawBeam(s.rightBeam)
	rl.EndMode3D()
}

// drawBeam renders one aiming ray as a thin cylinder from the hand to the
// hit point (or the default length on a miss).
func drawBeam(b resolver.Beam) {
	end := vmath.Add(b.Origin, vmath.Scale(b.Dir, b.Length))
	color := rl.NewColor(uint8(b.Tint>>16), uint8(b.Tint>>8), uint8(b.Tint), 200)
	rl.DrawCylinderEx(
		rl.NewVector3(b.Origin.X, b.Origin.Y, b.Origin.Z),
		rl.NewVector3(end.X, end.Y, end.Z),
		beamRadius, beamRadius, 6, color,
	)
}
