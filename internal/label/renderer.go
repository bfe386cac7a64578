package label

import (
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-palace/internal/vmath"
)

// Canvas dimensions for rendered labels. Text is wrapped to fit the fixed
// width and centered.
const (
	CanvasWidth  = 512
	CanvasHeight = 256
	fontSize     = 44
	lineSpacing  = 6
	// WrapWidth is the rune budget per line that fits CanvasWidth at
	// fontSize for the bundled font.
	WrapWidth = 18
	// maxLines is how many wrapped lines fit CanvasHeight; longer text is
	// truncated rather than clipped off the top of the canvas.
	maxLines = (CanvasHeight + lineSpacing) / (fontSize + lineSpacing)
	// BillboardSize is the world-space width of a drawn label.
	BillboardSize = float32(0.9)
)

// fontDirs are tried in order so the font is found whether the app runs
// from the repo root or from cmd/palace.
var fontDirs = []string{"assets/fonts", "../../assets/fonts"}

var fontExts = []string{".ttf", ".otf"}

// Renderer turns label text into billboard textures. The font is loaded
// lazily on first use so GPU resources are created after the window exists;
// with no font file present it falls back to raylib's default font.
type Renderer struct {
	font      rl.Font
	haveFont  bool
	triedFont bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// findFont returns the first .ttf/.otf under the candidate font dirs,
// preferring files named "Regular".
func findFont() string {
	for _, dir := range fontDirs {
		var regular, other string
		_ = filepath.Walk(filepath.Clean(dir), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			for _, e := range fontExts {
				if ext != e {
					continue
				}
				if strings.Contains(strings.ToLower(path), "regular") {
					if regular == "" {
						regular = path
					}
				} else if other == "" {
					other = path
				}
			}
			return nil
		})
		if regular != "" {
			return regular
		}
		if other != "" {
			return other
		}
	}
	return ""
}

func (r *Renderer) ensureFont() {
	if r.triedFont {
		return
	}
	r.triedFont = true
	path := findFont()
	if path == "" {
		return
	}
	font := rl.LoadFontEx(path, fontSize, nil)
	if font.Texture.ID == 0 {
		return
	}
	r.font = font
	r.haveFont = true
}

// Render rasterizes text onto a transparent canvas, wrapped at whitespace,
// and returns the GPU texture. The caller owns the texture and must unload
// it when the label is released or regenerated.
func (r *Renderer) Render(text string, color uint32) rl.Texture2D {
	r.ensureFont()
	font := r.font
	if !r.haveFont {
		font = rl.GetFontDefault()
	}

	canvas := rl.GenImageColor(CanvasWidth, CanvasHeight, rl.NewColor(0, 0, 0, 0))
	defer rl.UnloadImage(canvas)

	tint := rgba(color, 255)
	lines := clampLines(Wrap(text, WrapWidth))
	total := len(lines) * (fontSize + lineSpacing)
	y := float32(CanvasHeight-total) / 2
	for _, line := range lines {
		size := rl.MeasureTextEx(font, line, fontSize, 1)
		x := (CanvasWidth - size.X) / 2
		if x < 0 {
			x = 0
		}
		rl.ImageDrawTextEx(canvas, rl.NewVector2(x, y), font, line, fontSize, 1, tint)
		y += fontSize + lineSpacing
	}
	return rl.LoadTextureFromImage(canvas)
}

// Draw renders a label texture as a camera-facing billboard floating at pos.
// Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(cam rl.Camera3D, tex rl.Texture2D, pos vmath.Vec3) {
	if tex.ID == 0 {
		return
	}
	rl.DrawBillboard(cam, tex, rl.NewVector3(pos.X, pos.Y, pos.Z), BillboardSize, rl.White)
}

// Release frees the renderer's font. Call once at shutdown.
func (r *Renderer) Release() {
	if r.haveFont {
		rl.UnloadFont(r.font)
		r.haveFont = false
	}
}

// clampLines drops lines past maxLines so the canvas never overflows.
func clampLines(lines []string) []string {
	if len(lines) > maxLines {
		return lines[:maxLines]
	}
	return lines
}

func rgba(rgb uint32, alpha uint8) rl.Color {
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), alpha)
}
