package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/semgraph/pkg/diagram"
	"github.com/ha1tch/semgraph/pkg/model"
	"github.com/ha1tch/semgraph/pkg/modelfile"
)

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	m := modelfile.DemoModel()
	cats := modelfile.DemoCategories()
	v := &Viewer{
		screen: screen,
		d:      diagram.New(m, cats, diagram.DefaultConfig()),
		m:      m,
		cats:   cats,
		config: DefaultConfig(),
	}
	v.updateContainerSize()
	return v
}

func mouse(v *Viewer, x, y int, buttons tcell.ButtonMask) {
	v.handleMouse(tcell.NewEventMouse(x, y, buttons, 0))
}

func TestGestureAbortsInSidebar(t *testing.T) {
	v := newTestViewer(t)
	cw, _ := v.canvasSize()

	// Start a background pan on the canvas.
	mouse(v, 5, 5, tcell.Button1)
	mouse(v, 10, 8, tcell.Button1)
	if v.d.GesturePhase() != diagram.GesturePanning {
		t.Fatalf("expected an active pan, got phase %d", v.d.GesturePhase())
	}

	// Wander into the sidebar with the button still held.
	mouse(v, cw+2, 8, tcell.Button1)
	if v.d.GesturePhase() != diagram.GestureIdle {
		t.Errorf("pointer entering the sidebar mid-gesture should abort it, got phase %d", v.d.GesturePhase())
	}
	mouse(v, cw+2, 8, tcell.ButtonNone)

	// The next canvas press must start a fresh gesture, not be swallowed.
	mouse(v, 5, 5, tcell.Button1)
	if v.d.GesturePhase() != diagram.GesturePanning {
		t.Errorf("press after an off-canvas release should start a new pan, got phase %d", v.d.GesturePhase())
	}
	mouse(v, 5, 5, tcell.ButtonNone)
}

func TestGestureAbortsOnStatusRowRelease(t *testing.T) {
	v := newTestViewer(t)
	_, ch := v.canvasSize()

	mouse(v, 5, 5, tcell.Button1)
	mouse(v, 10, 8, tcell.Button1)

	// Release directly on the status row, without a held move first.
	mouse(v, 10, ch, tcell.ButtonNone)
	if v.d.GesturePhase() != diagram.GestureIdle {
		t.Errorf("release on the status row should end the gesture, got phase %d", v.d.GesturePhase())
	}

	mouse(v, 20, 10, tcell.Button1)
	if v.d.GesturePhase() != diagram.GesturePanning {
		t.Errorf("press after a status-row release should start a new pan, got phase %d", v.d.GesturePhase())
	}
	mouse(v, 20, 10, tcell.ButtonNone)
}

func TestSidebarClickStillTogglesAfterCanvasGesture(t *testing.T) {
	v := newTestViewer(t)
	cw, _ := v.canvasSize()

	mouse(v, 5, 5, tcell.Button1)
	mouse(v, cw+2, 5, tcell.Button1)
	mouse(v, cw+2, 5, tcell.ButtonNone)

	// A fresh press on the first category row toggles it off.
	order := v.d.Index().GroupOrder
	mouse(v, cw+2, 2, tcell.Button1)
	mouse(v, cw+2, 2, tcell.ButtonNone)
	if v.d.Filter().SelectedCategories[order[0]] {
		t.Errorf("sidebar click should toggle %q off", order[0])
	}
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "m.yaml")
	if err := modelfile.Save(modelfile.DemoModel(), modelPath); err != nil {
		t.Fatal(err)
	}
	catsPath := filepath.Join(dir, "cats.yaml")
	if err := os.WriteFile(catsPath, []byte("sales_order: Warehouse\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, cats, err := loadInputs(modelPath, catsPath)
	if err != nil {
		t.Fatalf("loading model with categories: %v", err)
	}
	if cats.Category("sales_order") != "Warehouse" {
		t.Errorf("categories file should assign sales_order to Warehouse, got %q", cats.Category("sales_order"))
	}

	_, cats, err = loadInputs(modelPath, "")
	if err != nil {
		t.Fatalf("loading model without categories: %v", err)
	}
	if cats.Category("sales_order") != model.OtherCategory {
		t.Errorf("without a categories file everything should land in %q", model.OtherCategory)
	}

	_, cats, err = loadInputs("", "")
	if err != nil {
		t.Fatalf("loading demo: %v", err)
	}
	if cats.Category("sales_order") == model.OtherCategory {
		t.Error("demo model should carry its own category assignment")
	}

	if _, _, err := loadInputs(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("missing model file should be an error")
	}
}
