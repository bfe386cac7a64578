package registry

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"memory-palace/internal/logger"
	"memory-palace/internal/object"
	"memory-palace/internal/shape"
	"memory-palace/internal/store"
	"memory-palace/internal/vmath"
)

// Outline levels and tints for the two highlight states. Selection always
// wins visually over hover on the same object.
const (
	SelectedOpacity = float32(0.85)
	SelectedTint    = uint32(0xffd700)
	HoverOpacity    = float32(0.35)
	HoverTint       = uint32(0xffffff)
)

// VisualFactory builds the rendered composite (solid + outline + label) for
// a new object. The registry owns the returned Visual through the object.
type VisualFactory interface {
	Build(sh shape.Shape, color uint32, text string) object.Visual
}

// Saver is the slice of the persistence store the registry drives.
type Saver interface {
	Save(records []store.Record) error
}

// Registry owns the ordered set of live memory objects plus the selection
// and hover references. All mutation happens on the frame-loop goroutine;
// no locking by design.
//
// Every public mutating operation ends with exactly one store write.
// Selected/hovered are held as ids and re-validated by lookup, so deleting
// an object can never leave a dangling reference.
type Registry struct {
	objects  []*object.MemoryObject
	visuals  VisualFactory
	saver    Saver
	log      *logger.Logger
	selected string
	hovered  string
}

// New returns an empty registry.
func New(visuals VisualFactory, saver Saver, log *logger.Logger) *Registry {
	return &Registry{visuals: visuals, saver: saver, log: log}
}

// Objects returns the live objects in insertion order. The slice is shared;
// callers must not mutate it.
func (r *Registry) Objects() []*object.MemoryObject {
	return r.objects
}

func (r *Registry) Len() int {
	return len(r.objects)
}

// Selected returns the selected object, or nil.
func (r *Registry) Selected() *object.MemoryObject {
	return r.byID(r.selected)
}

// Hovered returns the hovered object, or nil.
func (r *Registry) Hovered() *object.MemoryObject {
	return r.byID(r.hovered)
}

func (r *Registry) byID(id string) *object.MemoryObject {
	if id == "" {
		return nil
	}
	for _, o := range r.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// newID returns a fresh identifier: creation unix-millis plus a random
// suffix. Never reused, even across deletes.
func newID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix
}

// Create builds a new object at position and appends it to the collection.
// Duplicate text, color, or position are allowed; objects may fully overlap.
func (r *Registry) Create(position vmath.Vec3, text string, color uint32, sh shape.Shape) *object.MemoryObject {
	o := r.createNoWrite(position, vmath.Vec3{}, text, color, sh)
	r.write()
	return o
}

func (r *Registry) createNoWrite(position, rotation vmath.Vec3, text string, color uint32, sh shape.Shape) *object.MemoryObject {
	o := &object.MemoryObject{
		ID:       newID(),
		Position: position,
		Rotation: rotation,
		Shape:    sh,
		Color:    color,
		Text:     text,
	}
	if r.visuals != nil {
		o.Visual = r.visuals.Build(sh, color, text)
	}
	r.objects = append(r.objects, o)
	return o
}

// Update edits an object's text, color, and shape. With an unchanged shape
// only the label is regenerated; the solid geometry is untouched since the
// common edit is text/color. A shape change destroys and recreates the
// object, carrying position and rotation over, because the underlying solid
// cannot change type. Returns the live object (the replacement on a shape
// change). A nil or stale target is a no-op.
func (r *Registry) Update(o *object.MemoryObject, text string, color uint32, sh shape.Shape) *object.MemoryObject {
	if o == nil || r.byID(o.ID) == nil {
		return nil
	}
	if sh == o.Shape {
		o.Text = text
		o.Color = color
		if o.Visual != nil {
			o.Visual.SetLabel(text, color)
		}
		r.write()
		return o
	}

	position, rotation := o.Position, o.Rotation
	r.deleteNoWrite(o)
	replacement := r.createNoWrite(position, rotation, text, color, sh)
	r.write()
	return replacement
}

// Delete removes an object, releases its visual, and clears selection or
// hover if they pointed at it. Deleting nil or an absent object is a no-op:
// a just-deleted object may still be referenced by an in-flight callback
// and must not crash the session.
func (r *Registry) Delete(o *object.MemoryObject) {
	if o == nil || r.byID(o.ID) == nil {
		return
	}
	r.deleteNoWrite(o)
	r.write()
}

func (r *Registry) deleteNoWrite(o *object.MemoryObject) {
	for i, live := range r.objects {
		if live.ID == o.ID {
			r.objects = append(r.objects[:i], r.objects[i+1:]...)
			break
		}
	}
	if r.selected == o.ID {
		r.selected = ""
	}
	if r.hovered == o.ID {
		r.hovered = ""
	}
	if o.Visual != nil {
		o.Visual.Release()
	}
}

// Select makes o the single selected object, clearing the previous
// selection's highlight. Passing nil clears selection with no new highlight.
// A stale target is a no-op.
func (r *Registry) Select(o *object.MemoryObject) {
	if o != nil && r.byID(o.ID) == nil {
		return
	}
	if prev := r.byID(r.selected); prev != nil {
		prev.Selected = false
		r.setHighlight(prev)
	}
	r.selected = ""
	if o == nil {
		return
	}
	r.selected = o.ID
	o.Selected = true
	r.setHighlight(o)
}

// Hover marks o as hovered, clearing the previous hover. Hover never
// touches the selected object's highlight: selection wins visually, and
// hovering the selected object leaves its outline in the selected state.
func (r *Registry) Hover(o *object.MemoryObject) {
	if o != nil && r.byID(o.ID) == nil {
		return
	}
	if prev := r.byID(r.hovered); prev != nil {
		prev.Hovered = false
		r.setHighlight(prev)
	}
	r.hovered = ""
	if o == nil {
		return
	}
	r.hovered = o.ID
	o.Hovered = true
	r.setHighlight(o)
}

// setHighlight applies the outline state an object should show given its
// flags. Selection overrides hover; neither means no outline.
func (r *Registry) setHighlight(o *object.MemoryObject) {
	if o.Visual == nil {
		return
	}
	switch {
	case o.Selected:
		o.Visual.SetOutline(SelectedOpacity, SelectedTint)
	case o.Hovered:
		o.Visual.SetOutline(HoverOpacity, HoverTint)
	default:
		o.Visual.SetOutline(0, HoverTint)
	}
}

// ClearAll deletes every object, then writes the (empty) layout once.
func (r *Registry) ClearAll() {
	for len(r.objects) > 0 {
		r.deleteNoWrite(r.objects[0])
	}
	r.write()
}

// LookupNear returns the first object within radius of point, in insertion
// order, or nil. Used for non-ray placement checks.
func (r *Registry) LookupNear(point vmath.Vec3, radius float32) *object.MemoryObject {
	for _, o := range r.objects {
		if vmath.Dist(o.Position, point) <= radius {
			return o
		}
	}
	return nil
}

// Restore rebuilds the registry from persisted records in file order
// without triggering writes. Existing objects are kept; call on an empty
// registry at startup.
func (r *Registry) Restore(records []store.Record) {
	for _, rec := range records {
		r.createNoWrite(
			vmath.Vec3{X: rec.Position[0], Y: rec.Position[1], Z: rec.Position[2]},
			vmath.Vec3{X: rec.Rotation[0], Y: rec.Rotation[1], Z: rec.Rotation[2]},
			rec.Text,
			rec.Color,
			shape.Parse(rec.Shape),
		)
	}
}

// Flush forces an immediate persistence write of the current layout.
func (r *Registry) Flush() {
	r.write()
}

// Records returns the persisted form of the current object list.
func (r *Registry) Records() []store.Record {
	records := make([]store.Record, 0, len(r.objects))
	for _, o := range r.objects {
		records = append(records, store.Record{
			Position: [3]float32{o.Position.X, o.Position.Y, o.Position.Z},
			Rotation: [3]float32{o.Rotation.X, o.Rotation.Y, o.Rotation.Z},
			Text:     o.Text,
			Color:    o.Color,
			Shape:    o.Shape.String(),
		})
	}
	return records
}

// write pushes the full layout to the store. Failures are logged, never
// surfaced: a failed write must not break the interactive loop.
func (r *Registry) write() {
	if r.saver == nil {
		return
	}
	if err := r.saver.Save(r.Records()); err != nil && r.log != nil {
		r.log.Logf("registry: persistence write failed: %v", err)
	}
}
