package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/semgraph/pkg/diagram"
	"github.com/ha1tch/semgraph/pkg/model"
)

var (
	renderOut    string
	renderFormat string
	renderWidth  int
	renderHeight int
	renderFocus  string
	renderSearch string
	renderTitle  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default: model name + extension)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "svg", "output format: svg or png")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1200, "canvas width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 800, "canvas height in pixels")
	renderCmd.Flags().StringVar(&renderFocus, "focus", "", "focus the view on one category")
	renderCmd.Flags().StringVar(&renderSearch, "search", "", "filter entities by search query")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "diagram title")
	rootCmd.AddCommand(renderCmd)

	rootCmd.AddCommand(layoutCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [model-file]",
	Short: "Render a model diagram to SVG or PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cats, err := loadModel(args)
		if err != nil {
			return err
		}

		d := newDiagram(m, cats)
		if renderSearch != "" {
			d.SetSearchQuery(renderSearch)
		}
		if renderFocus != "" {
			d.FocusCategory(renderFocus)
		} else {
			centreDiagram(d)
		}

		title := renderTitle
		if title == "" {
			title = m.Name
		}

		out := renderOut
		if out == "" {
			out = "diagram." + renderFormat
		}

		scene := d.Scene()
		switch strings.ToLower(renderFormat) {
		case "svg":
			opts := diagram.DefaultSVGOptions()
			opts.Width, opts.Height, opts.Title = renderWidth, renderHeight, title
			if err := os.WriteFile(out, []byte(diagram.RenderSVG(scene, d.Viewport(), opts)), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
		case "png":
			opts := diagram.DefaultPNGOptions()
			opts.Width, opts.Height, opts.Title = renderWidth, renderHeight, title
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()
			if err := diagram.RenderPNG(scene, d.Viewport(), f, opts); err != nil {
				return fmt.Errorf("rendering PNG: %w", err)
			}
		default:
			return fmt.Errorf("unknown format %q (want svg or png)", renderFormat)
		}

		Good.Printf("Wrote %s (%s)\n", out, scene.Status)
		return nil
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout [model-file]",
	Short: "Print the computed entity positions as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cats, err := loadModel(args)
		if err != nil {
			return err
		}

		cfg := diagram.DefaultConfig()
		idx := diagram.BuildIndex(m, cats, diagram.NewFilterState(cfg.CategoryOrder), cfg)
		positions := diagram.Layout(idx.Visible, cats, cfg)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(positions)
	},
}

// newDiagram builds a diagram state container sized for the render canvas.
func newDiagram(m *model.SemanticModel, cats model.CategoryMap) *diagram.Diagram {
	d := diagram.New(m, cats, diagram.DefaultConfig())
	d.SetContainerSize(float64(renderWidth), float64(renderHeight))
	return d
}

// centreDiagram frames the whole visible layout on the canvas.
func centreDiagram(d *diagram.Diagram) {
	cfg := d.Config()
	var bounds diagram.Bounds
	for _, e := range d.Index().Visible {
		if pos, ok := d.ResolvedPosition(e.ID); ok {
			bounds.ExtendRect(diagram.Rect{X: pos.X, Y: pos.Y, W: cfg.NodeWidth, H: cfg.NodeHeight})
		}
	}
	if bounds.Empty() {
		return
	}
	v := d.Viewport()
	centre := bounds.Center()
	v.PanX = float64(renderWidth)/2 - centre.X*v.Zoom
	v.PanY = float64(renderHeight)/2 - centre.Y*v.Zoom
}
