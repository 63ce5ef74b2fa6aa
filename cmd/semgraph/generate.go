package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/semgraph/pkg/modelfile"
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(ddlCmd)
	rootCmd.AddCommand(lookmlCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [model-file]",
	Short: "Check a model document for structural problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadModel(args)
		if err != nil {
			return err
		}
		// Load already validates; reaching here means the model is sound.
		Good.Printf("OK: %d entities, %d relationships\n", len(m.Entities), len(m.Relationships))

		// Dangling endpoints are legal but worth flagging.
		for _, r := range m.Relationships {
			if m.Entity(r.SourceEntityID) == nil || m.Entity(r.TargetEntityID) == nil {
				Subtle.Printf("note: relationship %s references a missing entity and will not be drawn\n", r.ID)
			}
		}
		return nil
	},
}

var ddlCmd = &cobra.Command{
	Use:   "ddl [model-file]",
	Short: "Generate BigQuery DDL from the model's bindings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadModel(args)
		if err != nil {
			return err
		}
		fmt.Print(modelfile.GenerateDDL(m))
		return nil
	},
}

var lookmlCmd = &cobra.Command{
	Use:   "lookml [model-file]",
	Short: "Generate LookML views and explores from the model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadModel(args)
		if err != nil {
			return err
		}
		fmt.Print(modelfile.GenerateLookML(m))
		return nil
	},
}
