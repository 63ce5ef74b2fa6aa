package main

import "github.com/fatih/color"

// Output colours, palm-tree style severity helpers.
var (
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Info   = color.New(color.FgCyan)
	Subtle = color.New(color.FgHiBlack)
)
