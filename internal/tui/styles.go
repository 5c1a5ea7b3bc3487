// Package tui renders the catalog browser in a terminal.
package tui

import (
	"catalog-browser/internal/catalog"

	"github.com/charmbracelet/lipgloss"
)

var (
	linkColor   = lipgloss.Color("#3273dc")
	dangerColor = lipgloss.Color("#f14668")
	mutedColor  = lipgloss.Color("#7a7a7a")
	accentColor = lipgloss.Color("#48c78e")
)

// Styles holds the lipgloss styles used by the model.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	TabCursor lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Male      lipgloss.Style
	Female    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		TabActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accentColor),
		TabCursor: lipgloss.NewStyle().Underline(true),
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:      lipgloss.NewStyle().Padding(0, 1),
		Male:      lipgloss.NewStyle().Padding(0, 1).Foreground(linkColor),
		Female:    lipgloss.NewStyle().Padding(0, 1).Foreground(dangerColor),
		Muted:     lipgloss.NewStyle().Foreground(mutedColor),
		Error:     lipgloss.NewStyle().Foreground(dangerColor),
	}
}

// Owner returns the cell style for an owner tone.
func (s Styles) Owner(t catalog.Tone) lipgloss.Style {
	switch t {
	case catalog.ToneMale:
		return s.Male
	case catalog.ToneFemale:
		return s.Female
	default:
		return s.Cell
	}
}
