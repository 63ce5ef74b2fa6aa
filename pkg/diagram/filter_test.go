package diagram

import (
	"testing"

	"github.com/ha1tch/semgraph/pkg/model"
)

func filterTestModel() (*model.SemanticModel, model.CategoryMap) {
	m := model.New("filter-test")
	m.AddEntity(model.Entity{ID: "e1", Name: "Sales Order", Type: model.TypeEntity})
	m.AddEntity(model.Entity{ID: "e2", Name: "Order Line", Type: model.TypeEntity})
	m.AddEntity(model.Entity{ID: "e3", Name: "Invoice", Type: model.TypeFact})
	m.AddEntity(model.Entity{ID: "e4", Name: "Shipment", Description: "Created per order fulfilment", Type: model.TypeEntity})
	m.AddEntity(model.Entity{ID: "e5", Name: "Work Order", Type: model.TypeEntity})
	m.AddEntity(model.Entity{ID: "e6", Name: "Machine", Type: model.TypeDimension})
	m.AddEntity(model.Entity{ID: "e7", Name: "Material", Type: model.TypeDimension})

	m.AddRelationship(model.Relationship{ID: "r1", SourceEntityID: "e1", TargetEntityID: "e2", Type: model.OneToMany})
	m.AddRelationship(model.Relationship{ID: "r2", SourceEntityID: "e1", TargetEntityID: "e3", Type: model.OneToOne})
	m.AddRelationship(model.Relationship{ID: "r3", SourceEntityID: "e6", TargetEntityID: "e7", Type: model.ManyToMany})
	m.AddRelationship(model.Relationship{ID: "r4", SourceEntityID: "e1", TargetEntityID: "ghost", Type: model.OneToMany})

	cats := model.CategoryMap{
		"e1": "Sales & Orders",
		"e2": "Sales & Orders",
		"e3": "Sales & Orders",
		"e4": "Sales & Orders",
		"e5": "Manufacturing",
		"e6": "Manufacturing",
		"e7": "Manufacturing",
	}
	return m, cats
}

func visibleIDs(idx *Index) []string {
	ids := make([]string, len(idx.Visible))
	for i, e := range idx.Visible {
		ids[i] = e.ID
	}
	return ids
}

func TestBuildIndexNoFilter(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	idx := BuildIndex(m, cats, NewFilterState(cfg.CategoryOrder), cfg)

	if len(idx.Visible) != 7 {
		t.Errorf("all categories on, no query: expected 7 visible, got %d", len(idx.Visible))
	}
	// r4 dangles and is dropped silently.
	if len(idx.VisibleRelationships) != 3 {
		t.Errorf("expected 3 visible relationships, got %d", len(idx.VisibleRelationships))
	}
}

func TestBuildIndexSearchQuery(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	filter := NewFilterState(cfg.CategoryOrder)
	filter.SearchQuery = "ORDER"

	idx := BuildIndex(m, cats, filter, cfg)

	// Case-insensitive substring over name and description: Sales Order,
	// Order Line, Shipment (description) and Work Order match.
	want := map[string]bool{"e1": true, "e2": true, "e4": true, "e5": true}
	got := visibleIDs(idx)
	if len(got) != len(want) {
		t.Fatalf("query 'ORDER': expected %d visible, got %v", len(want), got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("query 'ORDER': %s should not be visible", id)
		}
	}

	// r2 loses e3, r3 loses both endpoints; only r1 survives.
	if len(idx.VisibleRelationships) != 1 || idx.VisibleRelationships[0].ID != "r1" {
		t.Errorf("expected only r1 visible, got %v", idx.VisibleRelationships)
	}
}

func TestBuildIndexCategoryToggle(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	filter := NewFilterState(cfg.CategoryOrder)
	delete(filter.SelectedCategories, "Sales & Orders")

	idx := BuildIndex(m, cats, filter, cfg)

	for _, e := range idx.Visible {
		if cats.Category(e.ID) == "Sales & Orders" {
			t.Errorf("hidden category entity %s is visible", e.ID)
		}
	}
	if len(idx.Visible) != 3 {
		t.Errorf("expected 3 Manufacturing entities, got %d", len(idx.Visible))
	}
}

func TestBuildIndexGroupsUnfiltered(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	filter := NewFilterState(cfg.CategoryOrder)
	filter.SearchQuery = "order"
	delete(filter.SelectedCategories, "Manufacturing")

	idx := BuildIndex(m, cats, filter, cfg)

	// Sidebar counts ignore both the query and the category toggles.
	if len(idx.Groups["Sales & Orders"]) != 4 {
		t.Errorf("Sales & Orders group should hold 4 regardless of filter, got %d",
			len(idx.Groups["Sales & Orders"]))
	}
	if len(idx.Groups["Manufacturing"]) != 3 {
		t.Errorf("Manufacturing group should hold 3 regardless of filter, got %d",
			len(idx.Groups["Manufacturing"]))
	}
}

func TestBuildIndexGroupOrder(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	idx := BuildIndex(m, cats, NewFilterState(cfg.CategoryOrder), cfg)

	if len(idx.GroupOrder) != 2 {
		t.Fatalf("expected 2 populated groups, got %v", idx.GroupOrder)
	}
	if idx.GroupOrder[0] != "Sales & Orders" || idx.GroupOrder[1] != "Manufacturing" {
		t.Errorf("group order should follow the configured order, got %v", idx.GroupOrder)
	}
}

func TestBuildIndexEmptySelection(t *testing.T) {
	m, cats := filterTestModel()
	cfg := DefaultConfig()
	filter := FilterState{SelectedCategories: map[string]bool{}}

	idx := BuildIndex(m, cats, filter, cfg)
	if len(idx.Visible) != 0 {
		t.Errorf("empty category set should hide everything, got %d visible", len(idx.Visible))
	}
	if len(idx.VisibleRelationships) != 0 {
		t.Errorf("no visible entities means no visible relationships, got %d",
			len(idx.VisibleRelationships))
	}
	if len(idx.Groups["Sales & Orders"]) != 4 {
		t.Errorf("groups stay populated with everything hidden, got %d",
			len(idx.Groups["Sales & Orders"]))
	}
}

func TestFilterStateCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	original := NewFilterState(cfg.CategoryOrder)
	copied := original.clone()

	delete(original.SelectedCategories, "Finance")
	if !copied.SelectedCategories["Finance"] {
		t.Error("mutating the original should not affect the clone")
	}
	if original.equal(copied) {
		t.Error("states differing in selected categories should not compare equal")
	}
}
