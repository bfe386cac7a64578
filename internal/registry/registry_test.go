package registry

import (
	"testing"

	"memory-palace/internal/object"
	"memory-palace/internal/shape"
	"memory-palace/internal/store"
	"memory-palace/internal/vmath"
)

// stubVisual records outline state and release calls.
type stubVisual struct {
	opacity   float32
	tint      uint32
	labelText string
	released  bool
	labelGens int
}

func (v *stubVisual) SetOutline(opacity float32, tint uint32) {
	v.opacity = opacity
	v.tint = tint
}

func (v *stubVisual) SetLabel(text string, color uint32) {
	v.labelText = text
	v.labelGens++
}

func (v *stubVisual) Release() { v.released = true }

// stubFactory hands out stubVisuals and remembers them in build order.
type stubFactory struct {
	built []*stubVisual
}

func (f *stubFactory) Build(sh shape.Shape, color uint32, text string) object.Visual {
	v := &stubVisual{labelText: text}
	f.built = append(f.built, v)
	return v
}

// countingSaver counts writes and keeps the last saved layout.
type countingSaver struct {
	writes int
	last   []store.Record
}

func (s *countingSaver) Save(records []store.Record) error {
	s.writes++
	s.last = records
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *stubFactory, *countingSaver) {
	t.Helper()
	f := &stubFactory{}
	s := &countingSaver{}
	return New(f, s, nil), f, s
}

func vis(o *object.MemoryObject) *stubVisual {
	return o.Visual.(*stubVisual)
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		o := r.Create(vmath.Vec3{}, "x", 0xffffff, shape.Box)
		if o.ID == "" {
			t.Fatal("empty id")
		}
		if seen[o.ID] {
			t.Fatalf("duplicate id %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestCreateWritesOnceAndAppends(t *testing.T) {
	r, _, s := newTestRegistry(t)
	o := r.Create(vmath.Vec3{X: 0, Y: 1.2, Z: -1}, "apple", 0x4ecdc4, shape.Box)
	if s.writes != 1 {
		t.Errorf("writes = %d, want 1", s.writes)
	}
	if len(s.last) != 1 {
		t.Fatalf("saved %d records, want 1", len(s.last))
	}
	rec := s.last[0]
	if rec.Text != "apple" || rec.Color != 0x4ecdc4 || rec.Shape != "box" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Position != [3]float32{0, 1.2, -1} {
		t.Errorf("position = %v", rec.Position)
	}
	if rec.Rotation != [3]float32{0, 0, 0} {
		t.Errorf("rotation should default to zero, got %v", rec.Rotation)
	}
	if r.Len() != 1 || r.Objects()[0] != o {
		t.Error("object not appended")
	}
}

func TestSelectionExclusivity(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	a := r.Create(vmath.Vec3{}, "a", 1, shape.Box)
	b := r.Create(vmath.Vec3{}, "b", 2, shape.Box)

	r.Select(a)
	if vis(a).opacity != SelectedOpacity {
		t.Fatalf("a opacity = %v, want %v", vis(a).opacity, SelectedOpacity)
	}
	r.Select(b)
	if vis(a).opacity != 0 {
		t.Errorf("previous selection not cleared: a opacity = %v", vis(a).opacity)
	}
	if vis(b).opacity != SelectedOpacity || vis(b).tint != SelectedTint {
		t.Errorf("b outline = (%v, %#x)", vis(b).opacity, vis(b).tint)
	}
	if r.Selected() != b {
		t.Error("Selected() != b")
	}

	r.Select(nil)
	if vis(b).opacity != 0 || r.Selected() != nil {
		t.Error("Select(nil) did not clear selection")
	}
}

func TestHoverYieldsToSelection(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	a := r.Create(vmath.Vec3{}, "a", 1, shape.Box)

	r.Select(a)
	r.Hover(a)
	if vis(a).opacity != SelectedOpacity || vis(a).tint != SelectedTint {
		t.Errorf("hovering the selected object changed its outline to (%v, %#x)", vis(a).opacity, vis(a).tint)
	}

	// Un-hovering must also leave the selected highlight standing.
	r.Hover(nil)
	if vis(a).opacity != SelectedOpacity {
		t.Errorf("clearing hover dropped the selected highlight: %v", vis(a).opacity)
	}
}

func TestHoverMovesBetweenObjects(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	a := r.Create(vmath.Vec3{}, "a", 1, shape.Box)
	b := r.Create(vmath.Vec3{}, "b", 2, shape.Box)

	r.Hover(a)
	if vis(a).opacity != HoverOpacity || vis(a).tint != HoverTint {
		t.Fatalf("a outline = (%v, %#x)", vis(a).opacity, vis(a).tint)
	}
	r.Hover(b)
	if vis(a).opacity != 0 {
		t.Error("previous hover not cleared")
	}
	if r.Hovered() != b {
		t.Error("Hovered() != b")
	}
}

func TestDeleteClearsReferences(t *testing.T) {
	r, _, s := newTestRegistry(t)
	a := r.Create(vmath.Vec3{}, "a", 1, shape.Box)
	r.Select(a)
	r.Hover(a)

	before := s.writes
	r.Delete(a)
	if s.writes != before+1 {
		t.Errorf("delete wrote %d times, want 1", s.writes-before)
	}
	if r.Selected() != nil || r.Hovered() != nil {
		t.Error("delete left a dangling selected/hovered reference")
	}
	if !vis(a).released {
		t.Error("visual not released")
	}
	if r.Len() != 0 {
		t.Error("object still in registry")
	}

	// Stale references are safe no-ops.
	r.Delete(a)
	r.Hover(a)
	r.Select(a)
	if s.writes != before+1 {
		t.Error("stale delete triggered a write")
	}
	if r.Selected() != nil || r.Hovered() != nil {
		t.Error("stale select/hover took effect")
	}
}

func TestDeleteNilIsNoop(t *testing.T) {
	r, _, s := newTestRegistry(t)
	r.Delete(nil)
	r.Select(nil)
	r.Hover(nil)
	if s.writes != 0 {
		t.Errorf("nil ops wrote %d times", s.writes)
	}
}

func TestUpdateInPlaceKeepsGeometry(t *testing.T) {
	r, f, s := newTestRegistry(t)
	o := r.Create(vmath.Vec3{X: 1}, "old", 0x111111, shape.Sphere)

	before := s.writes
	got := r.Update(o, "new text", 0x222222, shape.Sphere)
	if got != o {
		t.Fatal("same-shape update must mutate in place")
	}
	if o.Text != "new text" || o.Color != 0x222222 {
		t.Errorf("fields not updated: %+v", o)
	}
	if vis(o).labelGens != 1 || vis(o).labelText != "new text" {
		t.Error("label not regenerated exactly once")
	}
	if len(f.built) != 1 {
		t.Errorf("same-shape update built %d new visuals, want 0", len(f.built)-1)
	}
	if s.writes != before+1 {
		t.Errorf("update wrote %d times, want 1", s.writes-before)
	}
}

func TestUpdateShapeChangeRecreates(t *testing.T) {
	r, _, s := newTestRegistry(t)
	o := r.Create(vmath.Vec3{X: 2, Y: 0.5, Z: -3}, "apple", 0x4ecdc4, shape.Box)
	o.Rotation = vmath.Vec3{Y: 1.25}

	before := s.writes
	got := r.Update(o, "apple", 0x4ecdc4, shape.Sphere)
	if got == nil || got == o {
		t.Fatal("shape change must return a replacement object")
	}
	if got.Shape != shape.Sphere {
		t.Errorf("shape = %v, want sphere", got.Shape)
	}
	if got.Position != o.Position || got.Rotation != o.Rotation {
		t.Errorf("transform not carried over: got %+v/%+v", got.Position, got.Rotation)
	}
	if got.ID == o.ID {
		t.Error("replacement reused the old id")
	}
	if r.byID(o.ID) != nil {
		t.Error("original object still in registry")
	}
	if !vis(o).released {
		t.Error("original visual not released")
	}
	if s.writes != before+1 {
		t.Errorf("shape change wrote %d times, want 1", s.writes-before)
	}
}

func TestUpdateStaleTargetIsNoop(t *testing.T) {
	r, _, s := newTestRegistry(t)
	o := r.Create(vmath.Vec3{}, "a", 1, shape.Box)
	r.Delete(o)
	before := s.writes
	if got := r.Update(o, "x", 2, shape.Cone); got != nil {
		t.Error("stale update returned an object")
	}
	if s.writes != before {
		t.Error("stale update triggered a write")
	}
}

func TestClearAllWritesOnce(t *testing.T) {
	r, _, s := newTestRegistry(t)
	objs := make([]*object.MemoryObject, 0, 5)
	for i := 0; i < 5; i++ {
		objs = append(objs, r.Create(vmath.Vec3{}, "x", 0, shape.Box))
	}
	r.Select(objs[2])

	before := s.writes
	r.ClearAll()
	if s.writes != before+1 {
		t.Errorf("ClearAll wrote %d times, want exactly 1", s.writes-before)
	}
	if r.Len() != 0 || r.Selected() != nil {
		t.Error("ClearAll left state behind")
	}
	if len(s.last) != 0 {
		t.Errorf("final write had %d records, want 0", len(s.last))
	}
	for i, o := range objs {
		if !vis(o).released {
			t.Errorf("visual %d not released", i)
		}
	}
}

func TestRestoreReplaysInOrderWithoutWrites(t *testing.T) {
	r, _, s := newTestRegistry(t)
	records := []store.Record{
		{Position: [3]float32{0, 1.2, -1}, Text: "apple", Color: 0x4ecdc4, Shape: "box"},
		{Position: [3]float32{1, 0, 0}, Rotation: [3]float32{0, 0.5, 0}, Text: "pear", Color: 0xff6b6b, Shape: "sphere"},
		{Text: "mystery", Shape: "dodecahedron"},
	}
	r.Restore(records)
	if s.writes != 0 {
		t.Errorf("Restore wrote %d times, want 0", s.writes)
	}
	if r.Len() != 3 {
		t.Fatalf("restored %d objects, want 3", r.Len())
	}
	objs := r.Objects()
	if objs[0].Text != "apple" || objs[1].Text != "pear" {
		t.Error("file order not preserved")
	}
	if objs[2].Shape != shape.Box {
		t.Errorf("unknown shape should fall back to box, got %v", objs[2].Shape)
	}

	// Round trip: restored registry reproduces the normalized records.
	out := r.Records()
	if out[0].Text != "apple" || out[0].Color != 0x4ecdc4 || out[0].Shape != "box" {
		t.Errorf("round-tripped record = %+v", out[0])
	}
	if out[1].Rotation != records[1].Rotation {
		t.Errorf("rotation lost in round trip: %v", out[1].Rotation)
	}
}

func TestLookupNear(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	far := r.Create(vmath.Vec3{X: 10}, "far", 0, shape.Box)
	a := r.Create(vmath.Vec3{X: 1}, "a", 0, shape.Box)
	b := r.Create(vmath.Vec3{X: 1.1}, "b", 0, shape.Box)
	_ = b

	if got := r.LookupNear(vmath.Vec3{X: 1.05}, 0.75); got != a {
		t.Errorf("LookupNear = %v, want first in insertion order (a)", got)
	}
	if got := r.LookupNear(vmath.Vec3{X: 5}, 0.75); got != nil {
		t.Errorf("LookupNear far from everything = %v, want nil", got)
	}
	if got := r.LookupNear(vmath.Vec3{X: 10.5}, 0.75); got != far {
		t.Errorf("LookupNear = %v, want far", got)
	}
}

func TestFlushForcesWrite(t *testing.T) {
	r, _, s := newTestRegistry(t)
	r.Create(vmath.Vec3{}, "x", 0, shape.Box)
	before := s.writes
	r.Flush()
	if s.writes != before+1 {
		t.Errorf("Flush wrote %d times, want 1", s.writes-before)
	}
}
