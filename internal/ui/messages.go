package ui

import (
	"moviescroll/internal/domain"
	"moviescroll/internal/search"
)

// debounceMsg fires when the quiet period after a keystroke has elapsed
type debounceMsg struct {
	tag uint64
}

// pageFetchedMsg carries the outcome of one page fetch
type pageFetchedMsg struct {
	req  search.Request
	page *domain.Page
	err  error
}

// detailPagerMsg contains the result of a detail pager command
type detailPagerMsg struct {
	id  string
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
