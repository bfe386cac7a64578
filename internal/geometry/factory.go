package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-palace/internal/shape"
	"memory-palace/internal/vmath"
)

// cached holds mesh and materials for one shape. Created lazily on first
// draw so GPU resources are allocated after the window/OpenGL context
// exists. outlineMtl is the unlit material for the transparent twin.
type cached struct {
	mesh       rl.Mesh
	mtl        rl.Material
	outlineMtl rl.Material
}

// Factory maps shapes to mesh+material pairs and draws solids and their
// outline twins. Pure mapping, no per-object state; unknown shapes fall
// back to the box mesh.
type Factory struct {
	cache    map[shape.Shape]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame

	// One lit shader shared by every solid material, compiled on first use.
	litShader rl.Shader
	litLoaded bool
}

// NewFactory returns a factory with no meshes. Each mesh is created on
// first draw of its shape.
func NewFactory() *Factory {
	return &Factory{
		cache:    make(map[shape.Shape]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing objects so solids get correct shading.
func (f *Factory) SetView(viewPos, lightDir [3]float32) {
	f.viewPos = viewPos
	f.lightDir = lightDir
}

// Mesh resolution for curved shapes.
const (
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 16
	coneSlices     = 16
)

// outlineScale is how much larger the transparent twin is drawn than its
// solid, so the highlight reads as a halo.
const outlineScale = float32(1.12)

// genMesh builds the unit mesh for a shape. Extents match shape.Size:
// curved shapes fit the same bounds as the box so a shape change keeps the
// object's footprint.
func genMesh(s shape.Shape) rl.Mesh {
	ext := s.Size().X
	switch s {
	case shape.Sphere:
		return rl.GenMeshSphere(s.Radius(), sphereRings, sphereSlices)
	case shape.Cylinder:
		return rl.GenMeshCylinder(ext*0.5, ext, cylinderSlices)
	case shape.Cone:
		return rl.GenMeshCone(ext*0.5, ext, coneSlices)
	default:
		return rl.GenMeshCube(ext, ext, ext)
	}
}

// centerOffset shifts a mesh in model space so the object position is the
// solid's center. Raylib cylinders and cones have their base at Y=0, top at
// Y=height, so they need -height/2.
func centerOffset(s shape.Shape) float32 {
	switch s {
	case shape.Cylinder, shape.Cone:
		return -s.Size().Y * 0.5
	default:
		return 0
	}
}

// ensure creates the mesh and materials for a shape if not yet cached.
// Solids use a simple directional-light shader; outlines use the default
// unlit material so tint and alpha come straight from colDiffuse.
func (f *Factory) ensure(s shape.Shape) cached {
	if c, ok := f.cache[s]; ok {
		return c
	}
	mesh := genMesh(s)
	mtl := rl.LoadMaterialDefault()
	if sh := f.shader(); rl.IsShaderValid(sh) {
		mtl.Shader = sh
	}
	outlineMtl := rl.LoadMaterialDefault()
	c := cached{mesh: mesh, mtl: mtl, outlineMtl: outlineMtl}
	f.cache[s] = c
	return c
}

// DrawSolid draws one solid at position in the given 24-bit RGB color.
// Must be called between BeginMode3D and EndMode3D, after SetView.
func (f *Factory) DrawSolid(s shape.Shape, position vmath.Vec3, color uint32) {
	c := f.ensure(s)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rgba(color, 255)
	}
	f.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, transform(s, position, 1))
}

// DrawOutline draws the transparent twin at position. Opacity 0 is skipped
// entirely; the registry keeps idle objects at 0.
func (f *Factory) DrawOutline(s shape.Shape, position vmath.Vec3, opacity float32, tint uint32) {
	if opacity <= 0 {
		return
	}
	c := f.ensure(s)
	alpha := uint8(opacity * 255)
	if albedo := c.outlineMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rgba(tint, alpha)
	}
	rl.DrawMesh(c.mesh, c.outlineMtl, transform(s, position, outlineScale))
}

// shader returns the shared lit shader, compiling it on first call.
func (f *Factory) shader() rl.Shader {
	if !f.litLoaded {
		f.litShader = loadLitShader()
		f.litLoaded = true
	}
	return f.litShader
}

// transform builds the model matrix. MatrixMultiply applies its first
// argument first: offset centers the mesh in model space, scale acts about
// that center, and the translate to the object position comes last so the
// position is never scaled.
func transform(s shape.Shape, position vmath.Vec3, scale float32) rl.Matrix {
	scaleM := rl.MatrixScale(scale, scale, scale)
	transM := rl.MatrixTranslate(position.X, position.Y, position.Z)
	if off := centerOffset(s); off != 0 {
		offsetM := rl.MatrixTranslate(0, off, 0)
		return rl.MatrixMultiply(rl.MatrixMultiply(offsetM, scaleM), transM)
	}
	return rl.MatrixMultiply(scaleM, transM)
}

func rgba(rgb uint32, alpha uint8) rl.Color {
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), alpha)
}
