package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GridConfig bounds the responsive column count
type GridConfig struct {
	MaxColumns   int
	MinCardWidth int
}

// Columns returns how many cards fit side by side in width
func Columns(width int, cfg GridConfig) int {
	minWidth := cfg.MinCardWidth
	if minWidth < minCardWidth {
		minWidth = minCardWidth
	}
	cols := width / minWidth
	if cfg.MaxColumns > 0 && cols > cfg.MaxColumns {
		cols = cfg.MaxColumns
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Layout is a measured grid of rendered cards and the window of rows that
// fits on screen
type Layout struct {
	cols      int
	cardWidth int
	height    int // lines available to the grid
	offset    int // first visible row

	cards      []string
	rowHeights []int
	index      map[string]int // id -> last index carrying it
}

// NewLayout measures cards laid out cols per row. ids[i] names cards[i].
func NewLayout(cards, ids []string, cols, cardWidth, height int) *Layout {
	if cols < 1 {
		cols = 1
	}
	if height < 1 {
		height = 1
	}
	l := &Layout{
		cols:      cols,
		cardWidth: cardWidth,
		height:    height,
		cards:     cards,
		index:     make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		l.index[id] = i
	}
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		h := 0
		for _, c := range cards[start:end] {
			h = max(h, lipgloss.Height(c))
		}
		l.rowHeights = append(l.rowHeights, h)
	}
	return l
}

// Columns is the number of cards per row
func (l *Layout) Columns() int { return l.cols }

// Rows is the number of rows in the grid
func (l *Layout) Rows() int { return len(l.rowHeights) }

// Offset is the first visible row
func (l *Layout) Offset() int { return l.offset }

// SetOffset scrolls so row is the first visible one, clamped to the grid
func (l *Layout) SetOffset(row int) {
	l.offset = max(0, min(row, l.maxOffset()))
}

// maxOffset is the smallest offset that still shows the last row at the
// bottom of the window
func (l *Layout) maxOffset() int {
	if len(l.rowHeights) == 0 {
		return 0
	}
	used := 0
	row := len(l.rowHeights) - 1
	for ; row >= 0; row-- {
		used += l.rowHeights[row]
		if used > l.height {
			break
		}
	}
	return min(row+1, len(l.rowHeights)-1)
}

// lastVisibleRow is the last row that fits entirely from the current offset.
// The first visible row always counts even when taller than the window.
func (l *Layout) lastVisibleRow() int {
	if len(l.rowHeights) == 0 {
		return -1
	}
	used := 0
	last := l.offset
	for row := l.offset; row < len(l.rowHeights); row++ {
		used += l.rowHeights[row]
		if used > l.height && row > l.offset {
			break
		}
		last = row
	}
	return last
}

// RowOf returns the row holding the card at index
func (l *Layout) RowOf(index int) int {
	return index / l.cols
}

// IsVisible reports whether the card for id is inside the window
func (l *Layout) IsVisible(id string) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	row := l.RowOf(i)
	return row >= l.offset && row <= l.lastVisibleRow()
}

// Fit scrolls the minimum amount needed to bring the card at index into view
func (l *Layout) Fit(index int) {
	if index < 0 || index >= len(l.cards) {
		return
	}
	row := l.RowOf(index)
	if row < l.offset {
		l.offset = row
		return
	}
	for row > l.lastVisibleRow() && l.offset < row {
		l.offset++
	}
}

// CardAt returns the index of the card at grid-relative cell (x, y)
func (l *Layout) CardAt(x, y int) (int, bool) {
	if x < 0 || y < 0 || l.cardWidth <= 0 {
		return 0, false
	}
	col := x / l.cardWidth
	if col >= l.cols {
		return 0, false
	}
	top := 0
	for row := l.offset; row <= l.lastVisibleRow(); row++ {
		h := l.rowHeights[row]
		if y < top+h {
			i := row*l.cols + col
			if i >= len(l.cards) {
				return 0, false
			}
			return i, true
		}
		top += h
	}
	return 0, false
}

// Render joins the visible rows
func (l *Layout) Render() string {
	last := l.lastVisibleRow()
	if last < 0 {
		return ""
	}
	rows := make([]string, 0, last-l.offset+1)
	for row := l.offset; row <= last; row++ {
		start := row * l.cols
		end := min(start+l.cols, len(l.cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, l.cards[start:end]...))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	// a single row taller than the window is cut at the bottom
	if lines := strings.Split(out, "\n"); len(lines) > l.height {
		out = strings.Join(lines[:l.height], "\n")
	}
	return out
}

// HasMoreBelow reports whether rows exist past the window
func (l *Layout) HasMoreBelow() bool {
	return l.lastVisibleRow() < len(l.rowHeights)-1
}

// VisibleRows is the number of rows inside the window
func (l *Layout) VisibleRows() int {
	return l.lastVisibleRow() - l.offset + 1
}
