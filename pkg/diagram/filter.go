package diagram

import (
	"strings"

	"github.com/ha1tch/semgraph/pkg/model"
)

// FilterState is the active category/search filter.
type FilterState struct {
	// SelectedCategories is the set of visible categories. The empty set
	// is a valid state: everything hidden.
	SelectedCategories map[string]bool

	// SearchQuery is matched case-insensitively as a substring against
	// entity name and description.
	SearchQuery string

	// FocusedCategory is the category the viewport last focused on, or ""
	// when no focus is active.
	FocusedCategory string
}

// NewFilterState returns a filter with every category in the order visible.
func NewFilterState(categoryOrder []string) FilterState {
	selected := make(map[string]bool, len(categoryOrder))
	for _, cat := range categoryOrder {
		selected[cat] = true
	}
	return FilterState{SelectedCategories: selected}
}

// defaultFilter selects every configured category plus any category the
// assignment map introduces beyond the configured order, so nothing is
// hidden until the user filters it out.
func defaultFilter(cats model.CategoryMap, cfg Config) FilterState {
	f := NewFilterState(cfg.CategoryOrder)
	for _, cat := range cats {
		if cat != "" {
			f.SelectedCategories[cat] = true
		}
	}
	return f
}

// clone returns a deep copy, so memoised indexes never alias live state.
func (f FilterState) clone() FilterState {
	selected := make(map[string]bool, len(f.SelectedCategories))
	for k, v := range f.SelectedCategories {
		selected[k] = v
	}
	f.SelectedCategories = selected
	return f
}

func (f FilterState) equal(other FilterState) bool {
	if f.SearchQuery != other.SearchQuery || f.FocusedCategory != other.FocusedCategory {
		return false
	}
	if len(f.SelectedCategories) != len(other.SelectedCategories) {
		return false
	}
	for k, v := range f.SelectedCategories {
		if other.SelectedCategories[k] != v {
			return false
		}
	}
	return true
}

// Index is the derived visibility index: the filtered entity subset, the
// unfiltered category grouping (sidebar counts), and the relationship
// subset whose endpoints are both visible.
type Index struct {
	// Visible holds the filtered entities in original model order.
	Visible []model.Entity

	// Groups maps category to its entities over the UNFILTERED set, in
	// model order. Sidebar counts stay stable while filtering.
	Groups map[string][]model.Entity

	// GroupOrder lists categories with at least one entity, in the fixed
	// configured order.
	GroupOrder []string

	// VisibleRelationships are the relationships whose source and target
	// are both in Visible. Dangling endpoints are silently dropped.
	VisibleRelationships []model.Relationship
}

// BuildIndex derives the visibility index from the model and filter. Pure
// and idempotent: identical inputs produce an identical result.
func BuildIndex(m *model.SemanticModel, cats model.CategoryMap, filter FilterState, cfg Config) *Index {
	idx := &Index{
		Groups: make(map[string][]model.Entity),
	}

	query := strings.ToLower(strings.TrimSpace(filter.SearchQuery))
	visibleIDs := make(map[string]bool)

	for _, e := range m.Entities {
		cat := cats.Category(e.ID)
		idx.Groups[cat] = append(idx.Groups[cat], e)

		if !filter.SelectedCategories[cat] {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		idx.Visible = append(idx.Visible, e)
		visibleIDs[e.ID] = true
	}

	for _, cat := range cfg.CategoryOrder {
		if len(idx.Groups[cat]) > 0 {
			idx.GroupOrder = append(idx.GroupOrder, cat)
		}
	}
	// Categories outside the configured order still get listed, after it.
	for _, e := range m.Entities {
		cat := cats.Category(e.ID)
		if containsString(idx.GroupOrder, cat) {
			continue
		}
		idx.GroupOrder = append(idx.GroupOrder, cat)
	}

	for _, r := range m.Relationships {
		if visibleIDs[r.SourceEntityID] && visibleIDs[r.TargetEntityID] {
			idx.VisibleRelationships = append(idx.VisibleRelationships, r)
		}
	}

	return idx
}

func matchesQuery(e model.Entity, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(e.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(e.Description), lowerQuery)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
