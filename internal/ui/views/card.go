package views

import (
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"moviescroll/internal/domain"
)

const (
	chevronCollapsed = "▼"
	chevronExpanded  = "▲"
	noImageText      = "No Image"

	// border plus horizontal padding of a card
	cardChromeWidth = 4
	minCardWidth    = 12
)

// CardProps is everything needed to draw one result card
type CardProps struct {
	Detail     domain.ResultDetail
	IsLast     bool
	IsExpanded bool
	IsSelected bool
	Width      int

	// RegisterTrailing is called with the card's id when IsLast is set
	RegisterTrailing func(id string)
}

// CardRenderer handles rendering of result cards
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// Render draws the card described by p
func (r *CardRenderer) Render(p CardProps) string {
	if p.IsLast && p.RegisterTrailing != nil {
		p.RegisterTrailing(p.Detail.ID)
	}

	width := p.Width
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - cardChromeWidth
	d := p.Detail

	lines := []string{r.renderPoster(d, inner)}

	chevron := chevronCollapsed
	if p.IsExpanded {
		chevron = chevronExpanded
	}
	title := ansi.Truncate(d.Title, inner-2, "…")
	lines = append(lines, r.styles.CardTitle.Render(title)+" "+r.styles.Chevron.Render(chevron))

	var meta []string
	if d.Year != "" {
		meta = append(meta, d.Year)
	}
	if g := d.GenreList(); len(g) > 0 {
		meta = append(meta, strings.Join(g, ", "))
	}
	lines = append(lines, r.styles.Meta.Render(ansi.Truncate(strings.Join(meta, " · "), inner, "…")))

	if p.IsExpanded {
		lines = append(lines, r.renderDetails(d, inner)...)
	}

	style := r.styles.Card
	if p.IsSelected {
		style = r.styles.CardSelected
	}
	// lipgloss widths exclude the border
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (r *CardRenderer) renderPoster(d domain.ResultDetail, width int) string {
	if !d.HasPoster() {
		return r.styles.NoImage.Render(ansi.Truncate("▢ "+noImageText, width, "…"))
	}
	return r.styles.Poster.Render(ansi.Truncate("▣ "+path.Base(d.Poster), width, "…"))
}

func (r *CardRenderer) renderDetails(d domain.ResultDetail, width int) []string {
	wrap := lipgloss.NewStyle().Width(width)
	lines := []string{""}

	if present(d.Synopsis) {
		lines = append(lines, wrap.Render(d.Synopsis), "")
	}
	if present(d.Director) {
		lines = append(lines, wrap.Render(r.styles.Label.Render("Director: ")+d.Director))
	}
	if cast := d.CastList(); len(cast) > 0 {
		lines = append(lines, wrap.Render(r.styles.Label.Render("Cast: ")+strings.Join(cast, ", ")))
	}
	if present(d.Rating) {
		score, _ := strconv.ParseFloat(d.Rating, 64)
		rating := lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(score))).Render(d.Rating)
		lines = append(lines, r.styles.Label.Render("Rating: ")+rating)
	}
	return lines
}

// present reports whether an API field carries a value
func present(s string) bool {
	return s != "" && s != domain.PosterAbsent
}
