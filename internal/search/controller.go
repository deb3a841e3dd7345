// Package search holds the search/paging state machine and the page fetcher.
//
// The Controller is not safe for concurrent use. It is driven from one
// goroutine (the Bubble Tea update loop, or the headless command) and hands
// out Requests that are executed elsewhere and reported back via Complete.
package search

import (
	"log"
	"unicode/utf8"

	"github.com/pkg/errors"

	"moviescroll/internal/domain"
	"moviescroll/internal/eventbus"
)

// Options configures a Controller
type Options struct {
	// MinQueryLength is the length, in characters, a committed query must exceed
	MinQueryLength int
}

// Request identifies one page fetch
type Request struct {
	Query      string
	Page       int
	Generation uint64
}

// Controller owns all search session state
type Controller struct {
	opts    Options
	bus     eventbus.EventBus
	session Session

	inputTag     uint64 // latest debounce tag handed out
	committedTag uint64 // latest tag that was committed or flushed
	inFlight     bool
}

// NewController creates a controller. bus may be nil.
func NewController(opts Options, bus eventbus.EventBus) *Controller {
	if opts.MinQueryLength < 0 {
		opts.MinQueryLength = 0
	}
	return &Controller{
		opts:    opts,
		bus:     bus,
		session: newSession(),
	}
}

// Session returns the current snapshot
func (c *Controller) Session() Session {
	return c.session
}

// OnInputChange records the typed text and returns the debounce tag for it.
// The tag supersedes every tag returned before.
func (c *Controller) OnInputChange(text string) uint64 {
	s := c.session
	s.Query = text
	c.session = s

	c.inputTag++
	return c.inputTag
}

// Commit is called when the quiet period for tag has elapsed. Only the latest
// tag commits, once. A commit of text long enough starts a new session and
// returns the request for its first page.
func (c *Controller) Commit(tag uint64) (Request, bool) {
	if tag != c.inputTag || tag <= c.committedTag {
		return Request{}, false
	}
	c.committedTag = tag

	text := c.session.Query
	if utf8.RuneCountInString(text) <= c.opts.MinQueryLength {
		return Request{}, false
	}

	prev := c.session
	s := newSession()
	s.Query = text
	s.Committed = text
	s.Generation = prev.Generation + 1
	c.session = s
	// a fetch for the previous generation may still be running; its result
	// will be discarded, so it no longer blocks this session
	c.inFlight = false

	c.publish(eventbus.SearchCommittedEvent{Query: text, Generation: s.Generation})

	return c.FetchPage()
}

// Flush commits the latest input immediately instead of waiting for the
// quiet period. The pending timer for that input becomes a no-op.
func (c *Controller) Flush() (Request, bool) {
	return c.Commit(c.inputTag)
}

// FetchPage starts a fetch of the next page of the committed search.
// It is a no-op when nothing is committed, the search box is empty, or a
// fetch is already running.
func (c *Controller) FetchPage() (Request, bool) {
	if c.session.Committed == "" || c.session.Query == "" || c.inFlight {
		return Request{}, false
	}
	c.inFlight = true

	s := c.session
	s.Loading = true
	s.Err = ""
	c.session = s

	req := Request{Query: s.Committed, Page: s.Page, Generation: s.Generation}
	c.publish(eventbus.PageRequestedEvent{Query: req.Query, Page: req.Page, Generation: req.Generation})
	return req, true
}

// OnTrailingItemVisible is called when the last rendered card scrolls into view
func (c *Controller) OnTrailingItemVisible() (Request, bool) {
	s := c.session
	if s.Loading || s.Page == 1 || s.Exhausted() {
		return Request{}, false
	}
	return c.FetchPage()
}

// Complete merges the outcome of req. It reports whether the session changed;
// results for a superseded search are dropped.
func (c *Controller) Complete(req Request, page *domain.Page, err error) bool {
	if req.Generation != c.session.Generation {
		c.publish(eventbus.StaleResultDiscardedEvent{
			Query:      req.Query,
			Page:       req.Page,
			Generation: req.Generation,
			Current:    c.session.Generation,
		})
		return false
	}
	c.inFlight = false

	s := c.session
	s.Loading = false

	var noResults *NoResultsError
	switch {
	case errors.As(err, &noResults):
		s.Err = noResults.Error()
		c.publish(eventbus.NoResultsEvent{Query: req.Query, Page: req.Page, Message: s.Err})

	case err != nil:
		s.Err = FetchFailedMessage
		log.Printf("search: fetching %q page %d: %v", req.Query, req.Page, err)
		c.publish(eventbus.FetchFailedEvent{Query: req.Query, Page: req.Page, Message: s.Err, Err: err})

	case page == nil:
		s.Err = FetchFailedMessage
		log.Printf("search: fetching %q page %d: empty result", req.Query, req.Page)
		c.publish(eventbus.FetchFailedEvent{Query: req.Query, Page: req.Page, Message: s.Err})

	default:
		s = s.withResults(page.Results)
		s.Page++
		s.TotalResults = page.TotalResults
		c.publish(eventbus.PageMergedEvent{
			Query:        req.Query,
			Page:         req.Page,
			Count:        len(page.Results),
			Loaded:       len(s.Results),
			TotalResults: s.TotalResults,
		})
	}

	c.session = s
	return true
}

// ToggleExpansion flips whether the card for id shows its full detail
func (c *Controller) ToggleExpansion(id string) {
	if !c.session.Contains(id) {
		return
	}
	c.session = c.session.withToggled(id)
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
