package environment

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Static room construction. Built once at startup, drawn every frame,
// never ray-tested: the resolver only ever sees the registry's objects.

const (
	roomExtent = 12 // half-width of the walkable square, meters
	wallHeight = 3
	wallThick  = float32(0.2)

	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120

	pedestalCount  = 8
	pedestalRadius = float32(6)
	pedestalSide   = float32(0.45)
	pedestalHeight = float32(0.8)
)

// Room holds the one-shot static surround: boundary walls and the floor
// grid. It has no state machine; GridVisible is the only toggle.
type Room struct {
	GridVisible bool
	walls       []wall
}

type wall struct {
	pos, size rl.Vector3
	color     rl.Color
}

// Build constructs the room geometry. Call once after the window exists.
func Build(gridVisible bool) *Room {
	wallColor := rl.NewColor(70, 76, 90, 255)
	pedColor := rl.NewColor(92, 98, 112, 255)
	ext := float32(roomExtent)
	span := ext*2 + wallThick
	h := float32(wallHeight)

	walls := []wall{
		{rl.NewVector3(0, h/2, -ext), rl.NewVector3(span, h, wallThick), wallColor},
		{rl.NewVector3(0, h/2, ext), rl.NewVector3(span, h, wallThick), wallColor},
		{rl.NewVector3(-ext, h/2, 0), rl.NewVector3(wallThick, h, span), wallColor},
		{rl.NewVector3(ext, h/2, 0), rl.NewVector3(wallThick, h, span), wallColor},
	}

	// Pedestal ring: decorative placement anchors around the room center.
	size := rl.NewVector3(pedestalSide, pedestalHeight, pedestalSide)
	for i := 0; i < pedestalCount; i++ {
		angle := 2 * math32.Pi * float32(i) / pedestalCount
		sin, cos := math32.Sincos(angle)
		pos := rl.NewVector3(pedestalRadius*cos, pedestalHeight/2, pedestalRadius*sin)
		walls = append(walls, wall{pos, size, pedColor})
	}

	return &Room{GridVisible: gridVisible, walls: walls}
}

// Draw renders the room. Must run between BeginMode3D and EndMode3D,
// before the objects so transparent outlines blend over the walls.
func (r *Room) Draw() {
	for _, w := range r.walls {
		rl.DrawCubeV(w.pos, w.size, w.color)
	}
	if r.GridVisible {
		drawFloorGrid()
	}
}

// drawFloorGrid draws the floor as major/minor lines on the XZ plane.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(170, 170, 170, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -roomExtent; x <= roomExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-roomExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(roomExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -roomExtent; z <= roomExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-roomExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(roomExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
