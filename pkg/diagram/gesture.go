// Gesture disambiguation: background pan vs node drag vs click-to-select.
// Exactly one gesture owns the pointer at a time; a pointer-down on a node
// starts Dragging and the background pan path never fires for the same
// press. Click vs drag is decided by total pointer displacement against a
// pixel threshold rather than event ordering, so a motionless press-release
// on a node selects it and never leaves a zero-delta position override.

package diagram

// GesturePhase is the current state of the gesture machine.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GesturePanning
	GestureDragging
)

// GestureResult classifies a completed gesture at pointer-up.
type GestureResult int

const (
	ResultNone    GestureResult = iota
	ResultClick                 // press-release below the movement threshold
	ResultPanned                // background pan that moved
	ResultDragged               // node drag that moved; override persisted
)

// Gestures is the pointer gesture state machine. It mutates the viewport
// directly while panning; drag position writes are returned to the caller,
// which owns the override layer.
type Gestures struct {
	phase GesturePhase
	cfg   Config

	downScreen Point
	maxTravel  float64

	panStart Point

	dragID     string
	dragOffset Point
	dragArmed  bool
}

// NewGestures returns an idle gesture controller.
func NewGestures(cfg Config) Gestures {
	return Gestures{cfg: cfg}
}

// Phase returns the current gesture phase.
func (g *Gestures) Phase() GesturePhase {
	return g.phase
}

// DraggingNode returns the id of the node being dragged, or "".
func (g *Gestures) DraggingNode() string {
	if g.phase != GestureDragging {
		return ""
	}
	return g.dragID
}

// PointerDown starts a gesture. A non-empty nodeID starts Dragging with the
// node's current resolved position; an empty nodeID starts a background
// pan. A pointer-down while another gesture is active is ignored: event
// ownership keeps exactly one gesture live.
func (g *Gestures) PointerDown(screen Point, nodeID string, nodePos Point, v *Viewport) {
	if g.phase != GestureIdle {
		return
	}
	g.downScreen = screen
	g.maxTravel = 0

	if nodeID != "" {
		g.phase = GestureDragging
		g.dragID = nodeID
		g.dragArmed = false
		g.dragOffset = v.ScreenToWorld(screen).Sub(nodePos)
		return
	}

	g.phase = GesturePanning
	g.panStart = Point{screen.X - v.PanX, screen.Y - v.PanY}
}

// PointerMove advances the active gesture. While panning it writes the
// viewport pan. While dragging it computes the node's new world position
// from the CURRENT transform (panning is impossible mid-drag because
// Dragging owns the gesture) and reports it once movement has crossed the
// click threshold. The second return is false when no override should be
// written.
func (g *Gestures) PointerMove(screen Point, v *Viewport) (Point, bool) {
	travel := screen.Dist(g.downScreen)
	if travel > g.maxTravel {
		g.maxTravel = travel
	}

	switch g.phase {
	case GesturePanning:
		v.PanX = screen.X - g.panStart.X
		v.PanY = screen.Y - g.panStart.Y

	case GestureDragging:
		if !g.dragArmed && g.maxTravel > g.cfg.ClickThreshold {
			g.dragArmed = true
		}
		if g.dragArmed {
			return v.ScreenToWorld(screen).Sub(g.dragOffset), true
		}
	}
	return Point{}, false
}

// PointerUp ends the gesture and classifies it. Overrides written during a
// drag are left in place; there is no snapping.
func (g *Gestures) PointerUp(screen Point) GestureResult {
	travel := screen.Dist(g.downScreen)
	if travel > g.maxTravel {
		g.maxTravel = travel
	}

	result := ResultNone
	switch g.phase {
	case GesturePanning:
		if g.maxTravel <= g.cfg.ClickThreshold {
			result = ResultClick
		} else {
			result = ResultPanned
		}
	case GestureDragging:
		if g.dragArmed {
			result = ResultDragged
		} else {
			result = ResultClick
		}
	}

	g.reset()
	return result
}

// PointerLeave aborts the gesture as if the pointer were released, without
// producing a click.
func (g *Gestures) PointerLeave() GestureResult {
	result := ResultNone
	switch g.phase {
	case GesturePanning:
		result = ResultPanned
	case GestureDragging:
		if g.dragArmed {
			result = ResultDragged
		}
	}
	g.reset()
	return result
}

func (g *Gestures) reset() {
	g.phase = GestureIdle
	g.dragID = ""
	g.dragArmed = false
	g.maxTravel = 0
}
