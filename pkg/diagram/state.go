package diagram

import (
	"github.com/ha1tch/semgraph/pkg/model"
)

// Diagram is the single owned state container for the graph view: filter
// state, base layout, the position override layer, viewport, selection and
// the gesture controller. All mutations go through its methods; nothing
// else writes this state. Everything here runs synchronously on the caller
// (UI) thread: layout recomputation completes before any same-frame read of
// position data, so the renderer never sees a torn position map.
type Diagram struct {
	cfg   Config
	model *model.SemanticModel
	cats  model.CategoryMap

	filter      FilterState
	index       *Index
	indexFilter FilterState
	indexDirty  bool

	// base holds the recomputed layout for the current filter; overrides
	// holds user-dragged absolute positions, taking precedence when
	// present. Overrides survive filter changes, including for entities
	// that are currently hidden, so a re-shown entity keeps its arranged
	// position.
	base      map[string]NodePosition
	overrides map[string]Point
	tablePos  map[string]Point
	tableIDs  []string

	viewport  Viewport
	selection Selection
	gestures  Gestures

	containerW float64
	containerH float64
}

// New creates a diagram state container over a model snapshot.
func New(m *model.SemanticModel, cats model.CategoryMap, cfg Config) *Diagram {
	d := &Diagram{
		cfg:        cfg,
		model:      m,
		cats:       cats,
		filter:     defaultFilter(cats, cfg),
		overrides:  make(map[string]Point),
		viewport:   NewViewport(cfg),
		gestures:   NewGestures(cfg),
		indexDirty: true,
	}
	return d
}

// Config returns the diagram configuration.
func (d *Diagram) Config() Config {
	return d.cfg
}

// Model returns the current model snapshot.
func (d *Diagram) Model() *model.SemanticModel {
	return d.model
}

// SetModel replaces the model snapshot. Overrides are kept: positions are
// keyed by entity id and remain valid for ids that persist.
func (d *Diagram) SetModel(m *model.SemanticModel) {
	d.model = m
	d.indexDirty = true
}

// SetContainerSize records the screen-space container dimensions used for
// focus framing.
func (d *Diagram) SetContainerSize(w, h float64) {
	d.containerW = w
	d.containerH = h
}

// Viewport exposes the viewport for reading and for direct zoom operations.
func (d *Diagram) Viewport() *Viewport {
	return &d.viewport
}

// Filter returns a copy of the active filter state.
func (d *Diagram) Filter() FilterState {
	return d.filter.clone()
}

// Index returns the memoised visibility index, rebuilding it (and the base
// layout) only when the model or filter changed since the last call.
func (d *Diagram) Index() *Index {
	if d.index == nil || d.indexDirty || !d.filter.equal(d.indexFilter) {
		d.index = BuildIndex(d.model, d.cats, d.filter, d.cfg)
		d.indexFilter = d.filter.clone()
		d.indexDirty = false
		d.relayout()
	}
	return d.index
}

// relayout recomputes base positions for the visible set and the
// physical-table row beneath them.
func (d *Diagram) relayout() {
	d.base = Layout(d.index.Visible, d.cats, d.cfg)

	// Physical-table nodes: distinct table keys over the visible
	// entities' bindings, first-seen order, laid out in a row under the
	// entity bounding box.
	d.tableIDs = d.tableIDs[:0]
	seen := make(map[string]bool)
	for _, e := range d.index.Visible {
		for _, key := range e.TableKeys() {
			if !seen[key] {
				seen[key] = true
				d.tableIDs = append(d.tableIDs, key)
			}
		}
	}

	d.tablePos = make(map[string]Point, len(d.tableIDs))
	if len(d.tableIDs) == 0 {
		return
	}
	bounds := LayoutBounds(d.base, d.cfg)
	rowY := bounds.MaxY + d.cfg.TableRowGap + d.cfg.TableHeight/2
	step := d.cfg.TableWidth + 40
	startX := -step * float64(len(d.tableIDs)-1) / 2
	if !bounds.Empty() {
		startX += (bounds.MinX + bounds.MaxX) / 2
	}
	for i, key := range d.tableIDs {
		d.tablePos[key] = Point{X: startX + step*float64(i), Y: rowY}
	}
}

// BasePosition returns the computed layout position for an entity, before
// overrides.
func (d *Diagram) BasePosition(id string) (NodePosition, bool) {
	d.Index()
	pos, ok := d.base[id]
	return pos, ok
}

// ResolvedPosition returns the final position for a visible entity: the
// base layout position, replaced by the user override when present.
func (d *Diagram) ResolvedPosition(id string) (Point, bool) {
	d.Index()
	base, ok := d.base[id]
	if !ok {
		return Point{}, false
	}
	if override, ok := d.overrides[id]; ok {
		return override, true
	}
	return base.Point(), true
}

// Override returns the raw override for an entity id, if any.
func (d *Diagram) Override(id string) (Point, bool) {
	p, ok := d.overrides[id]
	return p, ok
}

// ClearOverrides discards all user-dragged positions without touching the
// base layout.
func (d *Diagram) ClearOverrides() {
	d.overrides = make(map[string]Point)
}

// Selection returns the current selection.
func (d *Diagram) Selection() Selection {
	return d.selection
}

// Select replaces the current selection unconditionally; selecting is
// never additive.
func (d *Diagram) Select(s Selection) {
	d.selection = s
}

// SetSearchQuery updates the search filter.
func (d *Diagram) SetSearchQuery(query string) {
	d.filter.SearchQuery = query
}

// SetCategories replaces the visible category set. An empty set is valid:
// everything hidden.
func (d *Diagram) SetCategories(categories []string) {
	selected := make(map[string]bool, len(categories))
	for _, cat := range categories {
		selected[cat] = true
	}
	d.filter.SelectedCategories = selected
	d.filter.FocusedCategory = ""
}

// ToggleCategory flips a single category's visibility.
func (d *Diagram) ToggleCategory(category string) {
	if d.filter.SelectedCategories[category] {
		delete(d.filter.SelectedCategories, category)
	} else {
		d.filter.SelectedCategories[category] = true
	}
	d.filter.FocusedCategory = ""
}

// FocusCategory narrows the filter to a single category and frames the
// viewport on that category's positioned nodes. When the category has no
// visible nodes (fully filtered out by search), the filter still updates
// but the viewport is left untouched.
func (d *Diagram) FocusCategory(category string) {
	d.filter.SelectedCategories = map[string]bool{category: true}
	d.filter.FocusedCategory = category

	idx := d.Index()
	var bounds Bounds
	for _, e := range idx.Visible {
		if pos, ok := d.ResolvedPosition(e.ID); ok {
			bounds.ExtendRect(Rect{X: pos.X, Y: pos.Y, W: d.cfg.NodeWidth, H: d.cfg.NodeHeight})
		}
	}
	d.viewport.Focus(bounds, d.containerW, d.containerH)
}

// ShowAll restores the full category set and resets the viewport.
func (d *Diagram) ShowAll() {
	d.filter = defaultFilter(d.cats, d.cfg)
	d.viewport.Reset()
}

// GesturePhase exposes the active gesture state for status display.
func (d *Diagram) GesturePhase() GesturePhase {
	return d.gestures.Phase()
}

// PointerDown begins a gesture at a screen position. A press on an entity
// card starts a drag of that node; anywhere else starts a background pan.
func (d *Diagram) PointerDown(screen Point) {
	world := d.viewport.ScreenToWorld(screen)
	id := d.hitEntity(world)

	var nodePos Point
	if id != "" {
		nodePos, _ = d.ResolvedPosition(id)
	}
	d.gestures.PointerDown(screen, id, nodePos, &d.viewport)
}

// PointerMove advances the active gesture, panning the viewport or writing
// the dragged node's override.
func (d *Diagram) PointerMove(screen Point) {
	id := d.gestures.DraggingNode()
	pos, write := d.gestures.PointerMove(screen, &d.viewport)
	if write && id != "" {
		d.overrides[id] = pos
	}
}

// PointerUp completes the gesture. A click (movement below the threshold)
// resolves to a selection at the release point; a completed drag leaves
// its override in place.
func (d *Diagram) PointerUp(screen Point) GestureResult {
	result := d.gestures.PointerUp(screen)
	if result == ResultClick {
		d.selection = d.HitTest(screen)
	}
	return result
}

// PointerLeave aborts the active gesture without selecting.
func (d *Diagram) PointerLeave() {
	d.gestures.PointerLeave()
}

// hitEntity returns the topmost visible entity whose card contains the
// world point, or "". Later entities draw on top, so iterate in reverse.
func (d *Diagram) hitEntity(world Point) string {
	idx := d.Index()
	for i := len(idx.Visible) - 1; i >= 0; i-- {
		e := idx.Visible[i]
		pos, ok := d.ResolvedPosition(e.ID)
		if !ok {
			continue
		}
		rect := Rect{X: pos.X, Y: pos.Y, W: d.cfg.NodeWidth, H: d.cfg.NodeHeight}
		if rect.Contains(world) {
			return e.ID
		}
	}
	return ""
}
