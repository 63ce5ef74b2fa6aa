// Render-agnostic scene output. The core emits node/edge/table views in
// world coordinates; adapters (SVG, PNG, terminal cells) apply the viewport
// transform and draw. Entities outside the active filter are omitted from
// the scene entirely, not hidden.

package diagram

import "fmt"

// NodeView is a positioned entity card.
type NodeView struct {
	ID       string
	Name     string
	Kind     string // entity type: ENTITY, DIMENSION, FACT
	Category string
	Rect     Rect
	Selected bool
}

// EdgeView is a relationship curve with its cardinality badge.
type EdgeView struct {
	ID       string
	Curve    Curve
	Label    string // cardinality shorthand: 1:1, 1:N, N:1, N:N
	Name     string // optional relationship label
	LabelAt  Point
	HitWidth float64
	Selected bool
}

// TableView is a physical-table node derived from property bindings.
type TableView struct {
	ID       string
	Rect     Rect
	Selected bool
}

// BindingView is a dashed entity→table line. Visual only: bindings are
// never independently selectable.
type BindingView struct {
	EntityID string
	TableID  string
	From     Point
	To       Point
}

// Scene is one frame's worth of drawable content, in world coordinates.
type Scene struct {
	Nodes    []NodeView
	Edges    []EdgeView
	Tables   []TableView
	Bindings []BindingView
	Status   string
}

// Scene builds the current frame from the visibility index, resolved
// positions and selection. Relationships with an endpoint missing from the
// visible set never reach the scene; an empty model yields an empty scene
// with a zero-count status readout rather than an error.
func (d *Diagram) Scene() *Scene {
	idx := d.Index()
	s := &Scene{}

	nodeRects := make(map[string]Rect, len(idx.Visible))
	for _, e := range idx.Visible {
		pos, ok := d.ResolvedPosition(e.ID)
		if !ok {
			continue
		}
		rect := Rect{X: pos.X, Y: pos.Y, W: d.cfg.NodeWidth, H: d.cfg.NodeHeight}
		nodeRects[e.ID] = rect
		base, _ := d.BasePosition(e.ID)
		s.Nodes = append(s.Nodes, NodeView{
			ID:       e.ID,
			Name:     e.Name,
			Kind:     string(e.Type),
			Category: base.Category,
			Rect:     rect,
			Selected: d.selection.IsEntity(e.ID),
		})
	}

	for _, r := range idx.VisibleRelationships {
		source, okS := nodeRects[r.SourceEntityID]
		target, okT := nodeRects[r.TargetEntityID]
		if !okS || !okT {
			continue
		}
		curve := RelationshipCurve(source, target)
		s.Edges = append(s.Edges, EdgeView{
			ID:       r.ID,
			Curve:    curve,
			Label:    r.Type.Shorthand(),
			Name:     r.Label,
			LabelAt:  curve.Midpoint(),
			HitWidth: d.cfg.EdgeHitWidth,
			Selected: d.selection.IsRelationship(r.ID),
		})
	}

	for _, key := range d.tableIDs {
		pos := d.tablePos[key]
		s.Tables = append(s.Tables, TableView{
			ID:       key,
			Rect:     Rect{X: pos.X, Y: pos.Y, W: d.cfg.TableWidth, H: d.cfg.TableHeight},
			Selected: d.selection.IsTable(key),
		})
	}

	for _, e := range idx.Visible {
		entityRect, ok := nodeRects[e.ID]
		if !ok {
			continue
		}
		for _, key := range e.TableKeys() {
			pos, ok := d.tablePos[key]
			if !ok {
				continue
			}
			tableRect := Rect{X: pos.X, Y: pos.Y, W: d.cfg.TableWidth, H: d.cfg.TableHeight}
			from, to := BindingLine(entityRect, tableRect)
			s.Bindings = append(s.Bindings, BindingView{
				EntityID: e.ID,
				TableID:  key,
				From:     from,
				To:       to,
			})
		}
	}

	s.Status = fmt.Sprintf("%d entities, %d relationships",
		len(s.Nodes), len(s.Edges))
	return s
}

// HitTest resolves a screen point to a selection. Resolution order: entity
// cards (topmost first), then physical-table nodes, then relationship
// curves using the wide invisible hit stroke. Binding lines are skipped.
// Empty background resolves to no selection.
func (d *Diagram) HitTest(screen Point) Selection {
	world := d.viewport.ScreenToWorld(screen)

	if id := d.hitEntity(world); id != "" {
		return Selection{Kind: SelectEntity, ID: id}
	}

	d.Index()
	for _, key := range d.tableIDs {
		pos := d.tablePos[key]
		rect := Rect{X: pos.X, Y: pos.Y, W: d.cfg.TableWidth, H: d.cfg.TableHeight}
		if rect.Contains(world) {
			return Selection{Kind: SelectTable, ID: key}
		}
	}

	// Edge hit tolerance is screen-space pixels: thin curves stay equally
	// clickable at every zoom level.
	tolerance := d.cfg.EdgeHitWidth / 2
	if d.viewport.Zoom > 0 {
		tolerance /= d.viewport.Zoom
	}
	scene := d.Scene()
	for _, edge := range scene.Edges {
		if edge.Curve.DistanceTo(world) <= tolerance {
			return Selection{Kind: SelectRelationship, ID: edge.ID}
		}
	}

	return NoSelection
}
