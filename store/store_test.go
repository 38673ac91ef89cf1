package store

import (
	"testing"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/strokes"
)

func brushAt(x0, y0, x1, y1 float64) *strokes.BrushStroke {
	path, _ := strokes.PenPathFromElements([]strokes.Element{
		strokes.NewElement(inkwell.Pt(x0, y0), 0.5),
		strokes.NewElement(inkwell.Pt(x1, y1), 0.5),
	})
	return strokes.NewBrushStroke(path, strokes.DefaultStyle())
}

func longBrush(y float64, segments int) *strokes.BrushStroke {
	elems := make([]strokes.Element, 0, segments+1)
	for i := 0; i <= segments; i++ {
		elems = append(elems, strokes.NewElement(inkwell.Pt(float64(i*10), y), 0.5))
	}
	path, _ := strokes.PenPathFromElements(elems)
	return strokes.NewBrushStroke(path, strokes.DefaultStyle())
}

func TestInsertRemoveRoundtrip(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	if !key.Valid() {
		t.Fatal("insert returned invalid key")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, ok := s.GetStroke(key); !ok {
		t.Fatal("inserted stroke not retrievable")
	}
	if s.IsTrashed(key) || s.IsSelected(key) {
		t.Error("fresh stroke must be untrashed and unselected")
	}

	if _, ok := s.RemoveStroke(key); !ok {
		t.Fatal("remove failed")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() after remove = %d, want 0", s.Len())
	}
	if _, ok := s.GetStroke(key); ok {
		t.Error("removed key still resolves")
	}
}

func TestReusedSlotGetsNewGeneration(t *testing.T) {
	s := NewStrokeStore()
	old := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.RemoveStroke(old)
	reused := s.InsertStroke(brushAt(50, 50, 60, 60))

	if reused.Idx != old.Idx {
		t.Skip("slot was not reused")
	}
	if reused.Gen == old.Gen {
		t.Fatal("reused slot kept its generation")
	}
	if _, ok := s.GetStroke(old); ok {
		t.Error("stale key resolves to the new occupant")
	}
}

func TestChronoOrderAscending(t *testing.T) {
	s := NewStrokeStore()
	k1 := s.InsertStroke(brushAt(0, 0, 10, 10))
	k2 := s.InsertStroke(brushAt(0, 0, 10, 10))
	k3 := s.InsertStroke(brushAt(0, 0, 10, 10))

	got := s.StrokeKeysAsRendered()
	want := []StrokeKey{k1, k2, k3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("render order = %v, want %v", got, want)
		}
	}

	// Selecting moves a stroke to the top.
	s.SetSelected(k1, true)
	got = s.StrokeKeysAsRendered()
	if got[len(got)-1] != k1 {
		t.Errorf("selected stroke not on top: %v", got)
	}
}

func TestTrashDeselectsAndExcludes(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.SetSelected(key, true)

	s.SetTrashed(key, true)
	if s.IsSelected(key) {
		t.Error("trashing must deselect")
	}
	if len(s.StrokeKeysAsRendered()) != 0 {
		t.Error("trashed stroke still rendered")
	}
	if s.SetSelected(key, true); s.IsSelected(key) {
		t.Error("trashed stroke must not be selectable")
	}

	s.SetTrashed(key, false)
	if len(s.StrokeKeysAsRendered()) != 1 {
		t.Error("restored stroke not rendered")
	}
}

func TestRemoveTrashedStrokes(t *testing.T) {
	s := NewStrokeStore()
	keep := s.InsertStroke(brushAt(0, 0, 10, 10))
	gone := s.InsertStroke(brushAt(20, 20, 30, 30))
	s.SetTrashed(gone, true)

	if n := s.RemoveTrashedStrokes(); n != 1 {
		t.Fatalf("RemoveTrashedStrokes() = %d, want 1", n)
	}
	if _, ok := s.GetStroke(gone); ok {
		t.Error("trashed stroke survived removal")
	}
	if _, ok := s.GetStroke(keep); !ok {
		t.Error("untrashed stroke was removed")
	}
}

func TestUndoRedo(t *testing.T) {
	s := NewStrokeStore()
	if s.CanUndo() {
		t.Error("empty store reports undoable state")
	}

	k1 := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	k2 := s.InsertStroke(brushAt(20, 20, 30, 30))
	s.Record()

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if _, ok := s.GetStroke(k2); ok {
		t.Error("undone stroke still present")
	}
	if _, ok := s.GetStroke(k1); !ok {
		t.Error("older stroke lost by undo")
	}

	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if _, ok := s.GetStroke(k2); !ok {
		t.Error("redo did not restore the stroke")
	}
}

func TestUndoPushesUnrecordedState(t *testing.T) {
	s := NewStrokeStore()
	s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	k2 := s.InsertStroke(brushAt(20, 20, 30, 30))

	// k2 was never recorded; undo must still be able to come back to it.
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if _, ok := s.GetStroke(k2); ok {
		t.Fatal("undo did not remove the unrecorded stroke")
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if _, ok := s.GetStroke(k2); !ok {
		t.Error("redo lost the unrecorded state")
	}
}

func TestRecordTruncatesFuture(t *testing.T) {
	s := NewStrokeStore()
	s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	k2 := s.InsertStroke(brushAt(20, 20, 30, 30))
	s.Record()
	s.Undo()

	s.InsertStroke(brushAt(40, 40, 50, 50))
	s.Record()

	if s.Redo() {
		t.Error("redo succeeded after the future was overwritten")
	}
	if _, ok := s.GetStroke(k2); ok {
		t.Error("overwritten future stroke reappeared")
	}
}

func TestHistoryDepthBounded(t *testing.T) {
	s := NewStrokeStore(WithHistoryMaxLen(5))
	for i := 0; i < 20; i++ {
		s.InsertStroke(brushAt(float64(i), 0, float64(i)+5, 5))
		s.Record()
	}
	undos := 0
	for s.Undo() {
		undos++
	}
	if undos >= 20 {
		t.Fatalf("history depth unbounded: %d undos", undos)
	}
	if undos == 0 {
		t.Fatal("no undos possible")
	}
}

func TestRemoveResurrectRemoveKeepsKeysDistinct(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()

	s.RemoveStroke(key)
	s.Record()

	// Undo resurrects the stroke in the tables, but the slot already sits
	// on the allocator's free list. Removing it again must not free the
	// slot a second time.
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if _, ok := s.GetStroke(key); !ok {
		t.Fatal("undo did not resurrect the stroke")
	}
	s.RemoveStroke(key)

	a := s.InsertStroke(brushAt(0, 0, 10, 10))
	b := s.InsertStroke(brushAt(20, 20, 30, 30))
	if a == b {
		t.Fatalf("two inserts issued the same key %v", a)
	}
	if s.Len() != 2 {
		t.Errorf("store len = %d after 2 inserts, want 2", s.Len())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	before, _ := s.GetStroke(key)
	beforeBounds := before.Bounds()

	s.TranslateStrokes([]StrokeKey{key}, inkwell.Pt(100, 100))
	s.Record()

	s.Undo()
	after, _ := s.GetStroke(key)
	if after.Bounds() != beforeBounds {
		t.Errorf("undo restored bounds %+v, want %+v", after.Bounds(), beforeBounds)
	}
}

func TestModifyStrokeClonesForHistory(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	orig, _ := s.GetStroke(key)

	s.ModifyStroke(key, func(st strokes.Stroke) {
		st.Translate(inkwell.Pt(50, 0))
	})
	modified, _ := s.GetStroke(key)
	if orig == modified {
		t.Fatal("mutation did not clone the stroke")
	}
	if orig.Bounds() == modified.Bounds() {
		t.Error("mutation had no effect")
	}
}

func TestTransformsUpdateSpatialIndex(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))

	s.TranslateStrokes([]StrokeKey{key}, inkwell.Pt(200, 200))
	if got := s.StrokeKeysAsRenderedIntersectingBounds(box(0, 0, 50, 50)); len(got) != 0 {
		t.Errorf("old position still indexed: %v", got)
	}
	if got := s.StrokeKeysAsRenderedIntersectingBounds(box(190, 190, 220, 220)); len(got) != 1 {
		t.Errorf("new position not indexed: %v", got)
	}
}

func TestStrokeKeysAsRenderedInBounds(t *testing.T) {
	s := NewStrokeStore()
	inside := s.InsertStroke(brushAt(10, 10, 20, 20))
	straddle := s.InsertStroke(brushAt(40, 40, 80, 80))
	trashed := s.InsertStroke(brushAt(25, 25, 30, 30))
	s.SetTrashed(trashed, true)

	got := s.StrokeKeysAsRenderedInBounds(box(0, 0, 50, 50))
	if len(got) != 1 || got[0] != inside {
		t.Errorf("contained = %v, want [%v]", got, inside)
	}
	for _, k := range got {
		if k == straddle {
			t.Error("partially contained stroke returned")
		}
	}
}

func TestScaleWithPivotKeepsPivotFixed(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(10, 10, 30, 30))
	pivot := inkwell.Pt(10, 10)

	s.ScaleStrokesWithPivot([]StrokeKey{key}, inkwell.Pt(2, 2), pivot)
	stroke, _ := s.GetStroke(key)
	b := stroke.Bounds()
	// The stroke width scales with the geometry, so the bounds pad grows.
	halfW := strokes.DefaultStyle().Width / 2 * 2
	if diff := b.Min.X - (pivot.X - halfW); diff > 1e-6 || diff < -1e-6 {
		t.Errorf("pivot moved: bounds min %v", b.Min)
	}
}

func TestSplitCollidingStrokes(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(longBrush(0, 10))
	viewport := box(-1000, -1000, 1000, 1000)

	// Erase around the middle of the path.
	eraser := box(45, -2, 55, 2)
	inserted := s.SplitCollidingStrokes(eraser, viewport)

	if s.IsTrashed(key) {
		t.Fatal("original trashed although surviving pieces exist")
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d pieces, want 1", len(inserted))
	}

	first, _ := s.GetStroke(key)
	second, _ := s.GetStroke(inserted[0])
	if first.Bounds().Intersects(eraser.Tightened(1)) {
		t.Errorf("first piece still covers the erased region: %+v", first.Bounds())
	}
	if second.Bounds().Max.X < 90 {
		t.Errorf("second piece too short: %+v", second.Bounds())
	}
}

func TestSplitDiscardsShortPieces(t *testing.T) {
	s := NewStrokeStore()
	// Three segments; erasing the middle leaves two one-segment pieces,
	// both below the survival threshold.
	key := s.InsertStroke(longBrush(0, 3))
	viewport := box(-1000, -1000, 1000, 1000)

	inserted := s.SplitCollidingStrokes(box(12, -2, 18, 2), viewport)
	if len(inserted) != 0 {
		t.Errorf("short pieces survived: %v", inserted)
	}
	if !s.IsTrashed(key) {
		t.Error("original with no surviving piece must be trashed")
	}
}

func TestTrashCollidingRespectsHitboxes(t *testing.T) {
	s := NewStrokeStore()
	// Diagonal stroke: its AABB covers the corner region, its per-segment
	// hitboxes do not.
	elems := make([]strokes.Element, 0, 11)
	for i := 0; i <= 10; i++ {
		elems = append(elems, strokes.NewElement(inkwell.Pt(float64(i*10), float64(i*10)), 0.5))
	}
	path, _ := strokes.PenPathFromElements(elems)
	key := s.InsertStroke(strokes.NewBrushStroke(path, strokes.DefaultStyle()))
	viewport := box(-1000, -1000, 1000, 1000)

	if got := s.TrashCollidingStrokes(box(80, 0, 95, 10), viewport); len(got) != 0 {
		t.Errorf("bounds-only overlap trashed the stroke: %v", got)
	}
	if got := s.TrashCollidingStrokes(box(45, 45, 55, 55), viewport); len(got) != 1 || got[0] != key {
		t.Errorf("hitbox overlap missed: %v", got)
	}
}

func TestDuplicateSelection(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	s.SetSelected(key, true)

	dups := s.DuplicateSelection()
	if len(dups) != 1 {
		t.Fatalf("duplicated %d strokes, want 1", len(dups))
	}
	if s.IsSelected(key) {
		t.Error("original still selected")
	}
	if !s.IsSelected(dups[0]) {
		t.Error("duplicate not selected")
	}

	orig, _ := s.GetStroke(key)
	dup, _ := s.GetStroke(dups[0])
	wantMin := orig.Bounds().Min.Add(strokes.ImportOffset)
	if got := dup.Bounds().Min; got.Distance(wantMin) > 1e-6 {
		t.Errorf("duplicate at %v, want %v", got, wantMin)
	}
}

func TestCutAndPasteContent(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(10, 10, 20, 20))

	content := s.CutStrokeContent([]StrokeKey{key})
	if !s.IsTrashed(key) {
		t.Error("cut must trash the original")
	}
	if len(content.Strokes) != 1 {
		t.Fatalf("content has %d strokes, want 1", len(content.Strokes))
	}

	pasted := s.InsertStrokeContent(content, 1.0, inkwell.Pt(100, 100))
	if len(pasted) != 1 {
		t.Fatalf("pasted %d strokes, want 1", len(pasted))
	}
	if !s.IsSelected(pasted[0]) {
		t.Error("pasted stroke not selected")
	}
	stroke, _ := s.GetStroke(pasted[0])
	if got := stroke.Bounds().Min; got.Distance(inkwell.Pt(100, 100)) > 1e-6 {
		t.Errorf("pasted at %v, want (100,100)", got)
	}
}

func TestChangeStrokeColors(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(0, 0, 10, 10))
	red := inkwell.RGB(1, 0, 0)

	if n := s.ChangeStrokeColors([]StrokeKey{key}, red); n != 1 {
		t.Fatalf("changed %d strokes, want 1", n)
	}
	stroke, _ := s.GetStroke(key)
	if got := stroke.(*strokes.BrushStroke).Style.Color; got != red {
		t.Errorf("color = %+v, want red", got)
	}
}

func TestKeysBelowY(t *testing.T) {
	s := NewStrokeStore()
	s.InsertStroke(brushAt(0, 0, 10, 10))
	below := s.InsertStroke(brushAt(0, 500, 10, 510))

	got := s.KeysBelowY(100)
	if len(got) != 1 || got[0] != below {
		t.Errorf("KeysBelowY = %v, want [%v]", got, below)
	}
}

func TestCalcWidthHeight(t *testing.T) {
	s := NewStrokeStore()
	if s.CalcWidth() != 0 || s.CalcHeight() != 0 {
		t.Error("empty store has non-zero extents")
	}
	s.InsertStroke(brushAt(0, 0, 120, 80))
	halfW := strokes.DefaultStyle().Width / 2
	if got := s.CalcWidth(); got < 120 || got > 120+2*halfW {
		t.Errorf("CalcWidth() = %v", got)
	}
	if got := s.CalcHeight(); got < 80 || got > 80+2*halfW {
		t.Errorf("CalcHeight() = %v", got)
	}
}

func TestPolygonSelection(t *testing.T) {
	s := NewStrokeStore()
	inside := s.InsertStroke(brushAt(10, 10, 20, 20))
	outside := s.InsertStroke(brushAt(200, 200, 220, 220))

	poly := []inkwell.Point{
		inkwell.Pt(0, 0), inkwell.Pt(50, 0), inkwell.Pt(50, 50), inkwell.Pt(0, 50),
	}
	got := s.StrokeHitboxesContainedInPolygon(poly)
	if len(got) != 1 || got[0] != inside {
		t.Fatalf("contained = %v, want [%v]", got, inside)
	}
	for _, k := range got {
		if k == outside {
			t.Error("stroke outside polygon selected")
		}
	}

	crossing := []inkwell.Point{
		inkwell.Pt(15, -5), inkwell.Pt(25, -5), inkwell.Pt(25, 15), inkwell.Pt(15, 15),
	}
	if got := s.StrokeHitboxesIntersectPolygon(crossing); len(got) != 1 || got[0] != inside {
		t.Errorf("intersect = %v, want [%v]", got, inside)
	}
}

func TestCoordHitTest(t *testing.T) {
	s := NewStrokeStore()
	key := s.InsertStroke(brushAt(10, 10, 20, 20))
	s.InsertStroke(brushAt(200, 200, 220, 220))

	if got := s.StrokeHitboxesContainCoord(inkwell.Pt(15, 15)); len(got) != 1 || got[0] != key {
		t.Errorf("contain coord = %v, want [%v]", got, key)
	}
	if got := s.StrokeHitboxesContainCoord(inkwell.Pt(100, 100)); len(got) != 0 {
		t.Errorf("empty space hit %v", got)
	}
	s.SetTrashed(key, true)
	if got := s.StrokeHitboxesContainCoord(inkwell.Pt(15, 15)); len(got) != 0 {
		t.Errorf("trashed stroke hit %v", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := NewStrokeStore()
	s.InsertStroke(brushAt(0, 0, 10, 10))
	s.Record()
	s.Clear()

	if s.Len() != 0 {
		t.Error("strokes survived clear")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("history survived clear")
	}
	if len(s.StrokeKeysAsRenderedIntersectingBounds(box(-100, -100, 100, 100))) != 0 {
		t.Error("spatial index survived clear")
	}
}
