package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const (
	mainPaddingX = 1

	// HeaderLines is the title, the bordered search box and the banner line
	HeaderLines = 5
	// FooterLines is the status line and the help footer
	FooterLines = 2
	// GridTop and GridLeft locate the grid's first cell on screen
	GridTop  = HeaderLines
	GridLeft = mainPaddingX
)

// GridHeight is the number of lines available to the grid on a screen of height
func GridHeight(height int) int {
	return max(1, height-HeaderLines-FooterLines)
}

// GridWidth is the number of columns available to the grid on a screen of width
func GridWidth(width int) int {
	return max(minCardWidth, width-2*mainPaddingX)
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	SearchInput   string // rendered text input
	SearchFocused bool
	Committed     string
	MinQueryChars int

	Grid         string
	ResultCount  int
	TotalResults int
	MoreBelow    bool

	Loading      bool
	SpinnerFrame string
	Err          string

	ShowHelp  bool
	HelpModel help.Model
	Keys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cardRender  *CardRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cardRender:  NewCardRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Cards returns the card renderer sharing this renderer's styles
func (r *Renderer) Cards() *CardRenderer {
	return r.cardRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(r.renderHelpContent(state), state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	boxStyle := r.styles.SearchBox
	if state.SearchFocused {
		boxStyle = r.styles.SearchFocused
	}
	content.WriteString(boxStyle.Width(GridWidth(state.Width) - 2).Render(state.SearchInput))
	content.WriteString("\n")

	// the banner line is kept even when empty so the grid never shifts
	if state.Err != "" {
		content.WriteString(r.styles.StatusError.Render("✗ " + state.Err))
	}
	content.WriteString("\n")

	gridHeight := GridHeight(state.Height)
	body := state.Grid
	if body == "" {
		body = r.styles.Dim.Render(r.emptyText(state))
	}
	content.WriteString(body)

	if pad := gridHeight - lipgloss.Height(body); pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(r.renderStatusLine(state))
	content.WriteString("\n")
	if state.Keys != nil {
		content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}

	return r.styles.Main.MaxHeight(state.Height).Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("moviescroll")
	if state.Committed == "" {
		return logo
	}

	right := r.styles.Query.Render(fmt.Sprintf("[Search: %s]", state.Committed))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2*mainPaddingX - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	if state.Loading {
		return r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading movies...", state.SpinnerFrame))
	}
	if state.ResultCount == 0 {
		return ""
	}
	status := fmt.Sprintf("Showing %d", state.ResultCount)
	if state.TotalResults > 0 {
		status += fmt.Sprintf(" of %d", state.TotalResults)
	}
	status += " results"
	if state.MoreBelow {
		status += "  ↓ more below"
	}
	return r.styles.Scroll.Render(status)
}

func (r *Renderer) emptyText(state ViewState) string {
	switch {
	case state.Loading:
		return "Searching..."
	case state.Committed == "":
		return fmt.Sprintf("Type at least %d characters to search.", state.MinQueryChars)
	case state.Err != "":
		return "Edit the search to try again."
	default:
		return "No results yet."
	}
}

func (r *Renderer) renderHelpContent(state ViewState) string {
	title := r.styles.Title.Render("moviescroll Help")
	if state.Keys == nil {
		return title
	}
	hm := state.HelpModel
	hm.ShowAll = true
	return title + "\n\n" + hm.View(state.Keys) + "\n\n" + r.styles.Dim.Render("Press ? or Esc to close")
}
