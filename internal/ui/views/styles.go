package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Query         lipgloss.Style
	SearchBox     lipgloss.Style
	SearchFocused lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardTitle     lipgloss.Style
	Meta          lipgloss.Style
	Label         lipgloss.Style
	Poster        lipgloss.Style
	NoImage       lipgloss.Style
	Chevron       lipgloss.Style
	InfoBox       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Scroll        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:   lipgloss.NewStyle().Faint(true),
		Help:  lipgloss.NewStyle().Faint(true),
		Main:  lipgloss.NewStyle().Padding(0, mainPaddingX),
		Query: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Poster:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		NoImage:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Chevron:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// RatingColor returns the color for an IMDb style "7.8/10" rating
func RatingColor(rating float64) string {
	switch {
	case rating >= 7.5:
		return "78" // green
	case rating >= 5.5:
		return "214" // yellow
	case rating > 0:
		return "203" // red
	default:
		return "241"
	}
}
