package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"moviescroll/internal/domain"
)

// DetailRenderer builds the full-page text of a title for the pager
type DetailRenderer struct{}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer() *DetailRenderer {
	return &DetailRenderer{}
}

// RenderDetailContent renders every field of d with colors for the pager
func (r *DetailRenderer) RenderDetailContent(d domain.ResultDetail) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var detail strings.Builder

	title := d.Title
	if d.Year != "" {
		title = fmt.Sprintf("%s (%s)", d.Title, d.Year)
	}
	detail.WriteString(titleStyle.Render(title))
	detail.WriteString("\n")

	field := func(label, value string) {
		if value == "" || value == domain.PosterAbsent {
			return
		}
		detail.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-9s", label)), descStyle.Render(value)))
	}
	field("IMDb", d.ID)
	field("Genre", strings.Join(d.GenreList(), ", "))
	field("Director", d.Director)
	field("Rating", d.Rating)
	if d.HasPoster() {
		field("Poster", d.Poster)
	} else {
		field("Poster", "No Image")
	}

	if cast := d.CastList(); len(cast) > 0 {
		detail.WriteString(sectionStyle.Render("Cast"))
		detail.WriteString("\n")
		for _, name := range cast {
			detail.WriteString(fmt.Sprintf("  %s\n", descStyle.Render(name)))
		}
	}

	if d.Synopsis != "" && d.Synopsis != domain.PosterAbsent {
		detail.WriteString(sectionStyle.Render("Plot"))
		detail.WriteString("\n")
		detail.WriteString(lipgloss.NewStyle().Width(76).PaddingLeft(2).Render(d.Synopsis))
		detail.WriteString("\n")
	}

	return detail.String()
}

// PagerOps shows content in the ov pager while the program yields the terminal
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
