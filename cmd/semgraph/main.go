// Package main provides the semgraph CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/semgraph/pkg/model"
	"github.com/ha1tch/semgraph/pkg/modelfile"
)

// Version is set at build time via ldflags
var Version = "dev"

// categoriesPath optionally points at a YAML entity-id to category map.
var categoriesPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		Bad.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "semgraph",
	Short: "Semantic model graph toolkit",
	Long: `semgraph renders and queries semantic-model graphs.

Models are YAML or JSON documents of entities, properties and
relationships. Without a model argument, commands run against the
built-in demo model. Rendering produces SVG or PNG diagrams; generation
commands emit BigQuery DDL and LookML deployment text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&categoriesPath, "categories", "",
		"YAML file mapping entity ids to category labels")
	rootCmd.Version = Version
}

// loadModel resolves the optional model-file argument, defaulting to the
// built-in demo. The returned category map comes from --categories, or the
// demo assignment when the demo model is used.
func loadModel(args []string) (*model.SemanticModel, model.CategoryMap, error) {
	if len(args) == 0 {
		cats, err := loadCategories(modelfile.DemoCategories())
		if err != nil {
			return nil, nil, err
		}
		return modelfile.DemoModel(), cats, nil
	}

	m, err := modelfile.Load(args[0])
	if err != nil {
		return nil, nil, err
	}
	cats, err := loadCategories(model.CategoryMap{})
	if err != nil {
		return nil, nil, err
	}
	return m, cats, nil
}

func loadCategories(fallback model.CategoryMap) (model.CategoryMap, error) {
	if categoriesPath == "" {
		return fallback, nil
	}
	return modelfile.LoadCategories(categoriesPath)
}
