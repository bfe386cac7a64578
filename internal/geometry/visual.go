package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-palace/internal/label"
	"memory-palace/internal/object"
	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

// labelLift is how far above the solid's top the label floats.
const labelLift = float32(0.35)

// Visuals builds Visual composites for the registry. One instance shares
// the mesh factory and label renderer across all objects.
type Visuals struct {
	Factory *Factory
	Labels  *label.Renderer
}

// Build implements registry.VisualFactory.
func (v *Visuals) Build(sh shape.Shape, color uint32, text string) object.Visual {
	return &Visual{
		factory:    v.Factory,
		labels:     v.Labels,
		sh:         sh,
		color:      color,
		text:       text,
		labelDirty: text != "",
	}
}

// Visual is the rendered composite for one object: solid mesh, outline
// twin, and floating label. The label texture is created lazily on first
// Draw so object creation stays legal before the window exists (e.g. when
// restoring a saved layout at startup).
type Visual struct {
	factory *Factory
	labels  *label.Renderer
	sh      shape.Shape
	color   uint32
	text    string

	outlineOpacity float32
	outlineTint    uint32

	labelTex   rl.Texture2D
	labelDirty bool
	released   bool
}

// SetOutline implements object.Visual.
func (v *Visual) SetOutline(opacity float32, tint uint32) {
	v.outlineOpacity = opacity
	v.outlineTint = tint
}

// SetLabel implements object.Visual: the label is regenerated on the next
// Draw. Only the label changes; solid geometry is untouched.
func (v *Visual) SetLabel(text string, color uint32) {
	v.text = text
	v.color = color
	v.labelDirty = true
}

// Release frees the composite's GPU resources. Meshes and materials belong
// to the shared factory; only the label texture is owned per object.
func (v *Visual) Release() {
	if v.released {
		return
	}
	v.released = true
	if v.labelTex.ID != 0 {
		rl.UnloadTexture(v.labelTex)
		v.labelTex = rl.Texture2D{}
	}
}

// Draw renders the composite at pos. Must run between BeginMode3D and
// EndMode3D, after Factory.SetView.
func (v *Visual) Draw(cam rl.Camera3D, pos vmath.Vec3) {
	if v.released {
		return
	}
	v.factory.DrawSolid(v.sh, pos, v.color)
	v.factory.DrawOutline(v.sh, pos, v.outlineOpacity, v.outlineTint)

	if v.labelDirty {
		if v.labelTex.ID != 0 {
			rl.UnloadTexture(v.labelTex)
			v.labelTex = rl.Texture2D{}
		}
		if v.text != "" {
			v.labelTex = v.labels.Render(v.text, v.color)
		}
		v.labelDirty = false
	}
	if v.labelTex.ID != 0 {
		top := pos.Y + v.sh.Size().Y*0.5 + labelLift
		v.labels.Draw(cam, v.labelTex, vmath.Vec3{X: pos.X, Y: top, Z: pos.Z})
	}
}
