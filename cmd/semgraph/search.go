package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/semgraph/pkg/catalog"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the physical catalog for tables and columns",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		hits := catalog.NewMock().Search(query)
		if len(hits) == 0 {
			Subtle.Printf("No catalog entries match %q\n", query)
			return nil
		}

		Info.Printf("%d entries match %q:\n", len(hits), query)
		for _, e := range hits {
			fmt.Printf("  %s.%s  %s", e.Table, e.Column, e.DataType)
			if e.Description != "" {
				Subtle.Printf("  %s", e.Description)
			}
			fmt.Println()
		}
		return nil
	},
}
