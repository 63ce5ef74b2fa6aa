package diagram

import (
	"math"
	"testing"

	"github.com/ha1tch/semgraph/pkg/model"
)

func stateTestDiagram() *Diagram {
	m := model.New("state-test")
	m.AddEntity(model.Entity{
		ID: "e1", Name: "Sales Order", Type: model.TypeEntity,
		Properties: []model.Property{{ID: "p1", Name: "id", DataType: "STRING", Binding: "orders.order_id"}},
	})
	m.AddEntity(model.Entity{ID: "e2", Name: "Machine", Type: model.TypeDimension})
	m.AddRelationship(model.Relationship{ID: "r1", SourceEntityID: "e1", TargetEntityID: "e2", Type: model.OneToMany})

	cats := model.CategoryMap{"e1": "Sales & Orders", "e2": "Manufacturing"}
	d := New(m, cats, DefaultConfig())
	d.SetContainerSize(800, 600)
	return d
}

func TestDragWritesAndKeepsOverride(t *testing.T) {
	d := stateTestDiagram()

	base, ok := d.ResolvedPosition("e1")
	if !ok {
		t.Fatal("e1 should have a resolved position")
	}

	// Zoom 1, zero pan: screen coordinates equal world coordinates.
	start := d.Viewport().WorldToScreen(base)
	d.PointerDown(start)
	if d.GesturePhase() != GestureDragging {
		t.Fatal("press on a node should start a drag")
	}

	d.PointerMove(Point{start.X + 50, start.Y - 20})
	if result := d.PointerUp(Point{start.X + 50, start.Y - 20}); result != ResultDragged {
		t.Fatalf("expected ResultDragged, got %v", result)
	}

	override, ok := d.Override("e1")
	if !ok {
		t.Fatal("drag should leave an override")
	}
	wantX, wantY := base.X+50, base.Y-20
	if math.Abs(override.X-wantX) > 1e-9 || math.Abs(override.Y-wantY) > 1e-9 {
		t.Errorf("override should be (%.2f,%.2f), got (%.2f,%.2f)", wantX, wantY, override.X, override.Y)
	}

	resolved, _ := d.ResolvedPosition("e1")
	if resolved != override {
		t.Error("resolved position should prefer the override")
	}
}

func TestOverrideSurvivesHideAndReshow(t *testing.T) {
	d := stateTestDiagram()

	base, _ := d.ResolvedPosition("e1")
	start := d.Viewport().WorldToScreen(base)
	d.PointerDown(start)
	d.PointerMove(Point{start.X + 50, start.Y - 20})
	d.PointerUp(Point{start.X + 50, start.Y - 20})

	// Hide the dragged entity's category entirely.
	d.SetCategories([]string{"Manufacturing"})
	if _, visible := d.ResolvedPosition("e1"); visible {
		t.Fatal("e1 should not resolve while its category is hidden")
	}
	if _, kept := d.Override("e1"); !kept {
		t.Fatal("override must survive while the entity is hidden")
	}

	// Re-show: the arranged position comes back, not the base layout.
	d.SetCategories([]string{"Sales & Orders", "Manufacturing"})
	resolved, ok := d.ResolvedPosition("e1")
	if !ok {
		t.Fatal("e1 should resolve again")
	}
	if math.Abs(resolved.X-(base.X+50)) > 1e-9 || math.Abs(resolved.Y-(base.Y-20)) > 1e-9 {
		t.Errorf("re-shown entity should keep its dragged position, got (%.2f,%.2f)", resolved.X, resolved.Y)
	}
}

func TestClearOverrides(t *testing.T) {
	d := stateTestDiagram()

	base, _ := d.ResolvedPosition("e1")
	start := d.Viewport().WorldToScreen(base)
	d.PointerDown(start)
	d.PointerMove(Point{start.X + 60, start.Y})
	d.PointerUp(Point{start.X + 60, start.Y})

	d.ClearOverrides()
	if _, ok := d.Override("e1"); ok {
		t.Error("clear should discard all overrides")
	}
	resolved, _ := d.ResolvedPosition("e1")
	if resolved != base {
		t.Error("resolved position should fall back to the base layout")
	}
}

func TestClickSelectsEntity(t *testing.T) {
	d := stateTestDiagram()

	pos, _ := d.ResolvedPosition("e1")
	screen := d.Viewport().WorldToScreen(pos)
	d.PointerDown(screen)
	if result := d.PointerUp(screen); result != ResultClick {
		t.Fatalf("expected ResultClick, got %v", result)
	}

	sel := d.Selection()
	if sel.Kind != SelectEntity || sel.ID != "e1" {
		t.Errorf("expected entity e1 selected, got %+v", sel)
	}
	if _, ok := d.Override("e1"); ok {
		t.Error("a plain click must not write a position override")
	}
}

func TestBackgroundClickClearsSelection(t *testing.T) {
	d := stateTestDiagram()
	d.Select(Selection{Kind: SelectEntity, ID: "e1"})

	// Far corner of world space: nothing there.
	screen := d.Viewport().WorldToScreen(Point{9000, 9000})
	d.PointerDown(screen)
	d.PointerUp(screen)

	if d.Selection() != NoSelection {
		t.Errorf("background click should clear the selection, got %+v", d.Selection())
	}
}

func TestSelectionIsReplaceOnly(t *testing.T) {
	d := stateTestDiagram()

	d.Select(Selection{Kind: SelectEntity, ID: "e1"})
	d.Select(Selection{Kind: SelectRelationship, ID: "r1"})

	sel := d.Selection()
	if sel.Kind != SelectRelationship || sel.ID != "r1" {
		t.Errorf("second select should fully replace the first, got %+v", sel)
	}
	if sel.IsEntity("e1") {
		t.Error("previous selection must not linger")
	}
}

func TestIndexMemoised(t *testing.T) {
	d := stateTestDiagram()

	first := d.Index()
	second := d.Index()
	if first != second {
		t.Error("unchanged filter should return the same index instance")
	}

	d.SetSearchQuery("machine")
	third := d.Index()
	if third == first {
		t.Error("changed filter should rebuild the index")
	}
	if len(third.Visible) != 1 || third.Visible[0].ID != "e2" {
		t.Errorf("query 'machine' should leave only e2, got %d visible", len(third.Visible))
	}
}

func TestFocusCategory(t *testing.T) {
	d := stateTestDiagram()
	d.FocusCategory("Manufacturing")

	f := d.Filter()
	if !f.SelectedCategories["Manufacturing"] || len(f.SelectedCategories) != 1 {
		t.Errorf("focus should narrow to one category, got %v", f.SelectedCategories)
	}
	if f.FocusedCategory != "Manufacturing" {
		t.Errorf("focused category should be recorded, got %q", f.FocusedCategory)
	}

	v := d.Viewport()
	if math.Abs(v.Zoom-1.2) > 1e-9 {
		t.Errorf("focus should apply the focus zoom, got %.2f", v.Zoom)
	}

	// The focused node's card centre lands at the container centre.
	pos, _ := d.ResolvedPosition("e2")
	screen := v.WorldToScreen(pos)
	if math.Abs(screen.X-400) > 1e-6 || math.Abs(screen.Y-300) > 1e-6 {
		t.Errorf("focused node should centre at (400,300), got (%.2f,%.2f)", screen.X, screen.Y)
	}
}

func TestShowAllRestores(t *testing.T) {
	d := stateTestDiagram()
	d.FocusCategory("Manufacturing")
	d.ShowAll()

	f := d.Filter()
	for _, cat := range d.Config().CategoryOrder {
		if !f.SelectedCategories[cat] {
			t.Errorf("show all should restore category %q", cat)
		}
	}
	v := d.Viewport()
	if v.Zoom != 1.0 || v.PanX != 0 || v.PanY != 0 {
		t.Errorf("show all should reset the viewport, got zoom %.2f pan (%.1f,%.1f)",
			v.Zoom, v.PanX, v.PanY)
	}
}

func TestToggleCategory(t *testing.T) {
	d := stateTestDiagram()

	d.ToggleCategory("Manufacturing")
	if d.Filter().SelectedCategories["Manufacturing"] {
		t.Error("toggle should hide a visible category")
	}
	d.ToggleCategory("Manufacturing")
	if !d.Filter().SelectedCategories["Manufacturing"] {
		t.Error("second toggle should show it again")
	}
}

func TestUnlistedCategoryVisibleByDefault(t *testing.T) {
	m := model.New("warehouse-test")
	m.AddEntity(model.Entity{ID: "e1", Name: "Pallet", Type: model.TypeEntity})
	cats := model.CategoryMap{"e1": "Warehouse"}

	d := New(m, cats, DefaultConfig())
	if got := len(d.Index().Visible); got != 1 {
		t.Fatalf("category outside the configured order should start visible, got %d visible", got)
	}

	d.ToggleCategory("Warehouse")
	if got := len(d.Index().Visible); got != 0 {
		t.Fatalf("toggling the category off should hide its entity, got %d visible", got)
	}

	d.ShowAll()
	if got := len(d.Index().Visible); got != 1 {
		t.Errorf("show all should restore a category outside the configured order, got %d visible", got)
	}
}
