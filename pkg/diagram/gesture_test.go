package diagram

import (
	"math"
	"testing"
)

func TestClickOnNodeWritesNoOverride(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	g.PointerDown(Point{100, 100}, "e1", Point{100, 100}, &v)
	if g.Phase() != GestureDragging {
		t.Fatal("press on a node should enter Dragging")
	}

	// Jiggle within the threshold: still a click, no override emitted.
	if _, write := g.PointerMove(Point{102, 101}, &v); write {
		t.Error("movement below the threshold should not write an override")
	}

	if result := g.PointerUp(Point{102, 101}); result != ResultClick {
		t.Errorf("sub-threshold press-release should be a click, got %v", result)
	}
	if g.Phase() != GestureIdle {
		t.Error("gesture should return to idle after pointer up")
	}
}

func TestDragWritesOverrideAfterThreshold(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	nodePos := Point{100, 100}
	g.PointerDown(Point{100, 100}, "e1", nodePos, &v)

	pos, write := g.PointerMove(Point{150, 80}, &v)
	if !write {
		t.Fatal("movement past the threshold should write an override")
	}
	if math.Abs(pos.X-150) > 1e-9 || math.Abs(pos.Y-80) > 1e-9 {
		t.Errorf("dragged position at zoom 1 should be (150,80), got (%.2f,%.2f)", pos.X, pos.Y)
	}

	if result := g.PointerUp(Point{150, 80}); result != ResultDragged {
		t.Errorf("completed drag should report ResultDragged, got %v", result)
	}
}

func TestDragPreservesGrabOffset(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	// Grab the card 20px right of its centre; the offset must be kept so
	// the card doesn't jump under the pointer.
	g.PointerDown(Point{120, 100}, "e1", Point{100, 100}, &v)
	pos, write := g.PointerMove(Point{170, 100}, &v)
	if !write {
		t.Fatal("expected an override write")
	}
	if math.Abs(pos.X-150) > 1e-9 || math.Abs(pos.Y-100) > 1e-9 {
		t.Errorf("node centre should track pointer minus grab offset, got (%.2f,%.2f)", pos.X, pos.Y)
	}
}

func TestDragAtZoom(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)
	v.SetZoom(2.0)

	nodePos := Point{50, 50}
	down := v.WorldToScreen(nodePos)
	g.PointerDown(down, "e1", nodePos, &v)

	// 40 screen pixels right is 20 world units at zoom 2.
	pos, write := g.PointerMove(Point{down.X + 40, down.Y}, &v)
	if !write {
		t.Fatal("expected an override write")
	}
	if math.Abs(pos.X-70) > 1e-9 || math.Abs(pos.Y-50) > 1e-9 {
		t.Errorf("expected world (70,50), got (%.2f,%.2f)", pos.X, pos.Y)
	}
}

func TestPanMovesViewport(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)
	v.PanX = 10
	v.PanY = 20

	g.PointerDown(Point{200, 200}, "", Point{}, &v)
	if g.Phase() != GesturePanning {
		t.Fatal("press on the background should enter Panning")
	}

	g.PointerMove(Point{230, 210}, &v)
	if math.Abs(v.PanX-40) > 1e-9 || math.Abs(v.PanY-30) > 1e-9 {
		t.Errorf("pan should follow the pointer delta, got (%.2f,%.2f)", v.PanX, v.PanY)
	}

	if result := g.PointerUp(Point{230, 210}); result != ResultPanned {
		t.Errorf("moved background press should be ResultPanned, got %v", result)
	}
}

func TestBackgroundClick(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	g.PointerDown(Point{200, 200}, "", Point{}, &v)
	if result := g.PointerUp(Point{201, 200}); result != ResultClick {
		t.Errorf("motionless background press should be a click, got %v", result)
	}
	if v.PanX != 0 || v.PanY != 0 {
		t.Errorf("background click should leave pan untouched, got (%.2f,%.2f)", v.PanX, v.PanY)
	}
}

func TestSecondPointerDownIgnored(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	g.PointerDown(Point{100, 100}, "e1", Point{100, 100}, &v)
	g.PointerDown(Point{500, 500}, "", Point{}, &v)

	if g.Phase() != GestureDragging {
		t.Error("a second pointer down mid-gesture must not steal ownership")
	}
	if g.DraggingNode() != "e1" {
		t.Errorf("dragging node should remain e1, got %q", g.DraggingNode())
	}
}

func TestPointerLeaveAborts(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	g.PointerDown(Point{100, 100}, "e1", Point{100, 100}, &v)
	g.PointerMove(Point{160, 100}, &v)

	if result := g.PointerLeave(); result != ResultDragged {
		t.Errorf("leave mid-drag should report the drag, got %v", result)
	}
	if g.Phase() != GestureIdle {
		t.Error("pointer leave should reset to idle")
	}

	// Leave while idle is harmless.
	if result := g.PointerLeave(); result != ResultNone {
		t.Errorf("leave while idle should be ResultNone, got %v", result)
	}
}

func TestMaxTravelNotResetByReturn(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGestures(cfg)
	v := NewViewport(cfg)

	// Drag out past the threshold, then return to the press point: still a
	// drag, because displacement is tracked as a maximum.
	g.PointerDown(Point{100, 100}, "e1", Point{100, 100}, &v)
	g.PointerMove(Point{140, 100}, &v)
	g.PointerMove(Point{100, 100}, &v)

	if result := g.PointerUp(Point{100, 100}); result != ResultDragged {
		t.Errorf("round trip past the threshold should still be a drag, got %v", result)
	}
}
