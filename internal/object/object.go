package object

import (
	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

// Visual is the rendered representation of one memory object: solid mesh,
// outline twin, and floating label. A MemoryObject owns its Visual
// exclusively; Release frees the whole composite at once.
type Visual interface {
	// SetOutline sets the outline twin's opacity (0 hides it) and tint.
	SetOutline(opacity float32, tint uint32)
	// SetLabel regenerates the floating label for new text/color.
	SetLabel(text string, color uint32)
	Release()
}

// MemoryObject is a single user-placed spatial entity.
type MemoryObject struct {
	ID       string
	Position vmath.Vec3
	Rotation vmath.Vec3
	Shape    shape.Shape
	Color    uint32 // 24-bit RGB
	Text     string
	Visual   Visual

	// Transient highlight flags, never persisted.
	Selected bool
	Hovered  bool
}
