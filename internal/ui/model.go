package ui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moviescroll/internal/config"
	"moviescroll/internal/domain"
	"moviescroll/internal/search"
	"moviescroll/internal/ui/viewport"
	"moviescroll/internal/ui/views"
)

// Fetcher resolves one page of a search
type Fetcher interface {
	Fetch(ctx context.Context, req search.Request) (*domain.Page, error)
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// Model represents the UI state
type Model struct {
	ctx     context.Context
	config  *config.Config
	ctrl    *search.Controller
	fetcher Fetcher

	width    int
	height   int
	focus    focusArea
	selected int // index into the result list
	showHelp bool

	initialQuery string
	inPagerMode  bool // tracks if we're currently in pager mode

	keys     keyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *views.Renderer
	details  *DetailRenderer
	pager    *PagerOps
	observer *viewport.Observer
	layout   *views.Layout

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. ctx bounds every fetch the model starts.
func NewModel(ctx context.Context, cfg *config.Config, ctrl *search.Controller, fetcher Fetcher) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "🔍 "
	input.CharLimit = 120
	input.Focus()

	m := &Model{
		ctx:      ctx,
		config:   cfg,
		ctrl:     ctrl,
		fetcher:  fetcher,
		focus:    focusSearch,
		keys:     newKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		renderer: views.NewRenderer(),
		details:  NewDetailRenderer(),
		pager:    NewPagerOps(),
		observer: viewport.New(),
	}
	m.keys.searching = true
	m.relayout(false)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetInitialQuery pre-fills the search box; the search starts without waiting
// for the quiet period
func (m *Model) SetInitialQuery(q string) {
	m.initialQuery = q
}

// Session returns the controller's current snapshot
func (m *Model) Session() search.Session {
	return m.ctrl.Session()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.initialQuery != "" {
		m.input.SetValue(m.initialQuery)
		m.ctrl.OnInputChange(m.initialQuery)
		if req, ok := m.ctrl.Flush(); ok {
			m.resetView()
			cmds = append(cmds, m.fetchPage(req))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, views.GridWidth(msg.Width)-8)
		m.relayout(true)
		return m, m.checkTrailing()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceMsg:
		req, ok := m.ctrl.Commit(msg.tag)
		if !ok {
			return m, nil
		}
		m.resetView()
		return m, m.fetchPage(req)

	case pageFetchedMsg:
		if !m.ctrl.Complete(msg.req, msg.page, msg.err) {
			return m, nil
		}
		m.relayout(false)
		return m, m.checkTrailing()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to the expanded card
			log.Printf("Detail pager failed for %s: %v, expanding card instead", msg.id, msg.err)
			if !m.Session().IsExpanded(msg.id) {
				m.ctrl.ToggleExpansion(msg.id)
				m.relayout(true)
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		req, ok := m.ctrl.Flush()
		if !ok {
			return m, nil
		}
		m.resetView()
		return m, m.fetchPage(req)

	case key.Matches(msg, m.keys.Results):
		if len(m.Session().Results) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.inputChanged()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.inputChanged())
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.Session().Results
	last := len(results) - 1
	cols := m.layout.Columns()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusSearch)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		if m.selected < cols {
			m.setFocus(focusSearch)
			return m, textinput.Blink
		}
		m.selected -= cols

	case key.Matches(msg, m.keys.Down):
		m.selected = min(m.selected+cols, last)

	case key.Matches(msg, m.keys.Left):
		m.selected = max(m.selected-1, 0)

	case key.Matches(msg, m.keys.Right):
		m.selected = min(m.selected+1, last)

	case key.Matches(msg, m.keys.PageUp):
		m.selected = max(m.selected-cols*m.layout.VisibleRows(), 0)

	case key.Matches(msg, m.keys.PageDown):
		m.selected = min(m.selected+cols*m.layout.VisibleRows(), last)

	case key.Matches(msg, m.keys.Top):
		m.selected = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selected = last

	case key.Matches(msg, m.keys.Toggle):
		if m.selected <= last {
			m.ctrl.ToggleExpansion(results[m.selected].ID)
		}

	case key.Matches(msg, m.keys.Open):
		if m.selected <= last {
			return m, m.showDetailPager(results[m.selected])
		}
		return m, nil

	default:
		return m, nil
	}

	m.relayout(true)
	return m, m.checkTrailing()
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.layout == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.layout.SetOffset(m.layout.Offset() - 1)
		return m, m.checkTrailing()

	case tea.MouseButtonWheelDown:
		m.layout.SetOffset(m.layout.Offset() + 1)
		return m, m.checkTrailing()

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if msg.Y > 0 && msg.Y < views.HeaderLines-1 {
			m.setFocus(focusSearch)
			return m, textinput.Blink
		}
		i, ok := m.layout.CardAt(msg.X-views.GridLeft, msg.Y-views.GridTop)
		if !ok {
			return m, nil
		}
		m.selected = i
		m.focus = focusResults
		m.keys.searching = false
		m.input.Blur()
		m.ctrl.ToggleExpansion(m.Session().Results[i].ID)
		m.relayout(true)
		return m, m.checkTrailing()
	}
	return m, nil
}

// inputChanged records the new text and schedules its commit
func (m *Model) inputChanged() tea.Cmd {
	tag := m.ctrl.OnInputChange(m.input.Value())
	return tea.Tick(m.config.Debounce(), func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
}

// resetView follows a new session: selection, scroll and observation restart
func (m *Model) resetView() {
	m.selected = 0
	m.observer.Disconnect()
	if m.layout != nil {
		m.layout.SetOffset(0)
	}
	m.relayout(false)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.keys.searching = f == focusSearch
	if f == focusSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.relayout(true)
}

// relayout renders every card and measures the grid. When fit is set the
// window scrolls to keep the selected card visible.
func (m *Model) relayout(fit bool) {
	s := m.Session()
	if m.selected >= len(s.Results) {
		m.selected = max(0, len(s.Results)-1)
	}
	if len(s.Results) == 0 && m.focus == focusResults {
		m.focus = focusSearch
		m.keys.searching = true
		m.input.Focus()
	}

	gridWidth := views.GridWidth(m.width)
	cols := views.Columns(gridWidth, views.GridConfig{
		MaxColumns:   m.config.UISettings.MaxColumns,
		MinCardWidth: m.config.UISettings.MinCardWidth,
	})
	cardWidth := gridWidth / cols

	cards := make([]string, len(s.Results))
	ids := make([]string, len(s.Results))
	last := len(s.Results) - 1
	for i, d := range s.Results {
		ids[i] = d.ID
		cards[i] = m.renderer.Cards().Render(views.CardProps{
			Detail:           d,
			IsLast:           i == last,
			IsExpanded:       s.IsExpanded(d.ID),
			IsSelected:       m.focus == focusResults && i == m.selected,
			Width:            cardWidth,
			RegisterTrailing: m.observer.Observe,
		})
	}
	if last < 0 {
		m.observer.Disconnect()
	}

	offset := 0
	if m.layout != nil {
		offset = m.layout.Offset()
	}
	m.layout = views.NewLayout(cards, ids, cols, cardWidth, views.GridHeight(m.height))
	m.layout.SetOffset(offset)
	if fit {
		m.layout.Fit(m.selected)
	}
}

// checkTrailing asks for the next page when the trailing card came into view
func (m *Model) checkTrailing() tea.Cmd {
	if m.width == 0 || !m.observer.Check(m.layout.IsVisible) {
		return nil
	}
	req, ok := m.ctrl.OnTrailingItemVisible()
	if !ok {
		return nil
	}
	return m.fetchPage(req)
}

func (m *Model) fetchPage(req search.Request) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		page, err := fetcher.Fetch(ctx, req)
		return pageFetchedMsg{req: req, page: page, err: err}
	}
}

// showDetailPager returns a command that shows a title using ov pager
func (m *Model) showDetailPager(d domain.ResultDetail) tea.Cmd {
	content := m.details.RenderDetailContent(d)
	program := m.program
	return func() tea.Msg {
		if program == nil {
			return detailPagerMsg{id: d.ID, err: m.pager.ShowInPager(content)}
		}
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return detailPagerMsg{id: d.ID, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	s := m.Session()
	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		SearchInput:   m.input.View(),
		SearchFocused: m.focus == focusSearch,
		Committed:     s.Committed,
		MinQueryChars: m.config.MinQueryLength + 1,
		Grid:          m.layout.Render(),
		ResultCount:   len(s.Results),
		TotalResults:  s.TotalResults,
		MoreBelow:     m.layout.HasMoreBelow(),
		Loading:       s.Loading,
		SpinnerFrame:  m.spinner.View(),
		Err:           s.Err,
		ShowHelp:      m.showHelp,
		HelpModel:     m.help,
		Keys:          m.keys,
	})
}
