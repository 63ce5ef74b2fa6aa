// semedit is the interactive terminal viewer for semantic-model graphs:
// mouse pan/drag/select over the diagram, a category sidebar with counts,
// search filtering and focus framing.
//
// Usage: semedit [model-file [categories-file]]
//
// Both paths are remembered in ~/.semedit.toml; with no arguments the
// viewer reopens the last model, falling back to the built-in demo.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/semgraph/pkg/diagram"
	"github.com/ha1tch/semgraph/pkg/model"
	"github.com/ha1tch/semgraph/pkg/modelfile"
)

// Terminal cells are coarse; the diagram works in pixel-like screen units.
// One cell maps to a fixed pixel block so zoom behaves the same as in the
// graphical renderers.
const (
	cellW = 10.0
	cellH = 20.0
)

// Config is the persisted editor configuration.
type Config struct {
	ModelPath      string `toml:"model_path"`
	CategoriesPath string `toml:"categories_path"`
	SidebarWidth   int    `toml:"sidebar_width"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{SidebarWidth: 28}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".semedit.toml"
	}
	return filepath.Join(home, ".semedit.toml")
}

// LoadConfig loads configuration from the TOML file, falling back to
// defaults when the file is missing or malformed.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(ConfigPath(), &cfg); err != nil {
		return DefaultConfig()
	}
	if cfg.SidebarWidth < 16 {
		cfg.SidebarWidth = 16
	}
	return cfg
}

// SaveConfig writes the configuration back to disk.
func SaveConfig(cfg Config) error {
	f, err := os.Create(ConfigPath())
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Mode is the viewer input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// Viewer holds all viewer state.
type Viewer struct {
	screen tcell.Screen
	d      *diagram.Diagram
	m      *model.SemanticModel
	cats   model.CategoryMap
	config Config

	mode        Mode
	searchInput string
	message     string
	filename    string

	leftMouseDown bool
}

// loadInputs resolves the model and its category assignment. An empty model
// path means the built-in demo, which carries its own assignment; a loaded
// model takes its categories from the optional categories file.
func loadInputs(path, catsPath string) (*model.SemanticModel, model.CategoryMap, error) {
	if path == "" {
		return modelfile.DemoModel(), modelfile.DemoCategories(), nil
	}
	m, err := modelfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	cats := model.CategoryMap{}
	if catsPath != "" {
		cats, err = modelfile.LoadCategories(catsPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return m, cats, nil
}

func main() {
	cfg := LoadConfig()

	path := cfg.ModelPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	catsPath := cfg.CategoriesPath
	if len(os.Args) > 2 {
		catsPath = os.Args[2]
	}

	m, cats, err := loadInputs(path, catsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "semedit: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "semedit: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "semedit: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	v := &Viewer{
		screen:   screen,
		d:        diagram.New(m, cats, diagram.DefaultConfig()),
		m:        m,
		cats:     cats,
		config:   cfg,
		filename: path,
	}
	v.updateContainerSize()
	v.fitView()

	defer func() {
		screen.Fini()
		cfg.ModelPath = path
		cfg.CategoriesPath = catsPath
		cfg.SidebarWidth = v.config.SidebarWidth
		if err := SaveConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "semedit: saving config: %v\n", err)
		}
	}()

	v.run()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.updateContainerSize()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		}
	}
}

// canvasSize returns the canvas area in cells, excluding sidebar and the
// status line.
func (v *Viewer) canvasSize() (int, int) {
	w, h := v.screen.Size()
	return w - v.config.SidebarWidth, h - 1
}

func (v *Viewer) updateContainerSize() {
	cw, ch := v.canvasSize()
	v.d.SetContainerSize(float64(cw)*cellW, float64(ch)*cellH)
}

// fitView frames the whole layout in the canvas on startup and reset.
func (v *Viewer) fitView() {
	cfg := v.d.Config()
	var bounds diagram.Bounds
	for _, e := range v.d.Index().Visible {
		if pos, ok := v.d.ResolvedPosition(e.ID); ok {
			bounds.ExtendRect(diagram.Rect{X: pos.X, Y: pos.Y, W: cfg.NodeWidth, H: cfg.NodeHeight})
		}
	}
	if bounds.Empty() {
		return
	}
	vp := v.d.Viewport()
	cw, ch := v.canvasSize()
	spanX := bounds.MaxX - bounds.MinX
	spanY := bounds.MaxY - bounds.MinY
	zoom := 1.0
	if spanX > 0 && spanY > 0 {
		zx := float64(cw) * cellW / (spanX * 1.1)
		zy := float64(ch) * cellH / (spanY * 1.1)
		zoom = zx
		if zy < zoom {
			zoom = zy
		}
	}
	vp.SetZoom(zoom)
	centre := bounds.Center()
	vp.PanX = float64(cw)*cellW/2 - centre.X*vp.Zoom
	vp.PanY = float64(ch)*cellH/2 - centre.Y*vp.Zoom
}

// cellToScreen converts a terminal cell to diagram screen units, using the
// cell centre.
func cellToScreen(x, y int) diagram.Point {
	return diagram.Point{
		X: (float64(x) + 0.5) * cellW,
		Y: (float64(y) + 0.5) * cellH,
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if v.mode == ModeSearch {
		return v.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if v.d.Filter().SearchQuery != "" {
			v.d.SetSearchQuery("")
			v.showMessage("search cleared")
		} else {
			v.d.Select(diagram.NoSelection)
		}
		return false
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.d.Viewport().PanX += 4 * cellW
		return false
	case tcell.KeyRight:
		v.d.Viewport().PanX -= 4 * cellW
		return false
	case tcell.KeyUp:
		v.d.Viewport().PanY += 2 * cellH
		return false
	case tcell.KeyDown:
		v.d.Viewport().PanY -= 2 * cellH
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case '/':
		v.mode = ModeSearch
		v.searchInput = v.d.Filter().SearchQuery
	case '+', '=':
		v.d.Viewport().WheelTick(1)
	case '-', '_':
		v.d.Viewport().WheelTick(-1)
	case 'r':
		v.d.Viewport().Reset()
		v.fitView()
		v.showMessage("view reset")
	case 'a':
		v.d.ShowAll()
		v.fitView()
		v.showMessage("showing all categories")
	case 'c':
		v.d.ClearOverrides()
		v.showMessage("cleared dragged positions")
	case 'f':
		v.focusSelected()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		idx := int(ev.Rune() - '1')
		order := v.d.Index().GroupOrder
		if idx < len(order) {
			v.d.ToggleCategory(order[idx])
		}
	}
	return false
}

func (v *Viewer) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.mode = ModeNormal
	case tcell.KeyEnter:
		v.d.SetSearchQuery(v.searchInput)
		v.mode = ModeNormal
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.searchInput) > 0 {
			v.searchInput = v.searchInput[:len(v.searchInput)-1]
		}
	default:
		if r := ev.Rune(); r != 0 && ev.Key() == tcell.KeyRune {
			v.searchInput += string(r)
		}
	}
	return false
}

// focusSelected frames the selected entity's category.
func (v *Viewer) focusSelected() {
	sel := v.d.Selection()
	if sel.Kind != diagram.SelectEntity {
		v.showMessage("select an entity to focus its category")
		return
	}
	cat := v.cats.Category(sel.ID)
	v.d.FocusCategory(cat)
	v.showMessage("focused " + cat)
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	cw, ch := v.canvasSize()

	// Sidebar clicks toggle category visibility. A gesture that wanders
	// off the canvas is aborted so the next canvas press starts fresh.
	if x >= cw {
		if v.leftMouseDown {
			v.d.PointerLeave()
		} else if buttons&tcell.Button1 != 0 {
			v.handleSidebarClick(y)
		}
		v.leftMouseDown = buttons&tcell.Button1 != 0
		return
	}

	if y >= ch {
		if v.leftMouseDown {
			v.d.PointerLeave()
		}
		v.leftMouseDown = buttons&tcell.Button1 != 0
		return
	}

	if buttons&tcell.WheelUp != 0 {
		v.d.Viewport().WheelTick(1)
		return
	}
	if buttons&tcell.WheelDown != 0 {
		v.d.Viewport().WheelTick(-1)
		return
	}

	screen := cellToScreen(x, y)
	pressed := buttons&tcell.Button1 != 0

	switch {
	case pressed && !v.leftMouseDown:
		v.d.PointerDown(screen)
	case pressed && v.leftMouseDown:
		v.d.PointerMove(screen)
	case !pressed && v.leftMouseDown:
		if v.d.PointerUp(screen) == diagram.ResultClick {
			v.describeSelection()
		}
	}
	v.leftMouseDown = pressed
}

// handleSidebarClick maps a sidebar row back to its category line.
func (v *Viewer) handleSidebarClick(y int) {
	// Sidebar layout (see drawSidebar): title, blank, then one category per
	// line starting at row 2.
	idx := y - 2
	order := v.d.Index().GroupOrder
	if idx >= 0 && idx < len(order) {
		v.d.ToggleCategory(order[idx])
	}
}

func (v *Viewer) describeSelection() {
	sel := v.d.Selection()
	switch sel.Kind {
	case diagram.SelectEntity:
		if e := v.m.Entity(sel.ID); e != nil {
			v.showMessage(fmt.Sprintf("%s (%s): %s", e.Name, e.Type, e.Description))
		}
	case diagram.SelectRelationship:
		if r := v.m.Relationship(sel.ID); r != nil {
			source := v.m.Entity(r.SourceEntityID)
			target := v.m.Entity(r.TargetEntityID)
			if source != nil && target != nil {
				v.showMessage(fmt.Sprintf("%s %s %s", source.Name, r.Type.Shorthand(), target.Name))
			}
		}
	case diagram.SelectTable:
		v.showMessage("physical table " + sel.ID)
	default:
		v.message = ""
	}
}

func (v *Viewer) showMessage(msg string) {
	v.message = msg
}
