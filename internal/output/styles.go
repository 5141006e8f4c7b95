// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Palette used by log keys and values.
var (
	ColorCyan    = lipgloss.Color("14")
	ColorGreen   = lipgloss.Color("82")
	ColorDimGray = lipgloss.Color("240")
)

var (
	// StyleNoun highlights names of families, designs and files.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)
	// StyleCount highlights sizes and counts.
	StyleCount = lipgloss.NewStyle().Foreground(ColorGreen)
	// StyleDim is used for secondary keys.
	StyleDim = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// nounKeys and countKeys list the log keys whose values get highlighted.
var (
	nounKeys  = []string{"design", "family", "file", "chip"}
	countKeys = []string{"instances", "components", "lines", "steps", "variants"}
)

// logStyles returns the charm log styles for the global logger.
//
func logStyles() *log.Styles {
	s := log.DefaultStyles()
	for _, k := range nounKeys {
		s.Values[k] = StyleNoun
	}
	for _, k := range countKeys {
		s.Values[k] = StyleCount
	}
	s.Keys["dialect"] = StyleDim
	return s
}
