package diagram

// SelectionKind tags the selection union.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectEntity
	SelectRelationship
	SelectTable
)

// Selection is the current selection: nothing, an entity, a relationship,
// or a physical-table node. At most one selection is active at a time.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// NoSelection is the empty selection.
var NoSelection = Selection{Kind: SelectNone}

// IsEntity reports whether the given entity is selected.
func (s Selection) IsEntity(id string) bool {
	return s.Kind == SelectEntity && s.ID == id
}

// IsRelationship reports whether the given relationship is selected.
func (s Selection) IsRelationship(id string) bool {
	return s.Kind == SelectRelationship && s.ID == id
}

// IsTable reports whether the given physical-table node is selected.
func (s Selection) IsTable(id string) bool {
	return s.Kind == SelectTable && s.ID == id
}
