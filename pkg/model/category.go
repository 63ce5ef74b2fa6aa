package model

// OtherCategory is the sentinel category for entities the lookup does not know.
const OtherCategory = "Other"

// CategoryMap assigns a category label to each entity id. It is injected
// configuration, not user data: the layout engine only reads it.
type CategoryMap map[string]string

// Category returns the category for an entity id, falling back to the
// "Other" sentinel for unknown ids.
func (c CategoryMap) Category(entityID string) string {
	if cat, ok := c[entityID]; ok && cat != "" {
		return cat
	}
	return OtherCategory
}

// DefaultCategoryOrder is the fixed category ordering used for the layout
// ring. The order is deliberately not alphabetical: slot positions stay
// stable run to run regardless of which categories are populated.
var DefaultCategoryOrder = []string{
	"Sales & Orders",
	"Manufacturing",
	"Logistics",
	"Finance",
	"Customer",
	OtherCategory,
}
