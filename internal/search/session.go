package search

import "moviescroll/internal/domain"

// Session is an immutable snapshot of the search state.
// Every update builds a new Session; slices and maps reachable from a
// published snapshot are never written again.
type Session struct {
	Query        string // text as typed
	Committed    string // text that survived the debounce window
	Results      []domain.ResultDetail
	Page         int // next page to request, starts at 1
	Loading      bool
	Err          string
	TotalResults int
	Generation   uint64

	expanded map[string]struct{}
}

func newSession() Session {
	return Session{Page: 1}
}

// IsExpanded reports whether the card for id shows its full detail
func (s Session) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// ExpandedIDs returns the expanded ids in result order
func (s Session) ExpandedIDs() []string {
	ids := make([]string, 0, len(s.expanded))
	for _, r := range s.Results {
		if _, ok := s.expanded[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// PagesMerged is the number of pages appended in this session
func (s Session) PagesMerged() int {
	return s.Page - 1
}

// Exhausted reports whether every result the API announced is loaded
func (s Session) Exhausted() bool {
	return s.TotalResults > 0 && len(s.Results) >= s.TotalResults
}

// Contains reports whether a result with id is in the list
func (s Session) Contains(id string) bool {
	for _, r := range s.Results {
		if r.ID == id {
			return true
		}
	}
	return false
}

// withResults returns a copy with details appended
func (s Session) withResults(details []domain.ResultDetail) Session {
	merged := make([]domain.ResultDetail, 0, len(s.Results)+len(details))
	merged = append(merged, s.Results...)
	s.Results = append(merged, details...)
	return s
}

// withToggled returns a copy with id's membership in the expanded set flipped
func (s Session) withToggled(id string) Session {
	next := make(map[string]struct{}, len(s.expanded)+1)
	for k := range s.expanded {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	s.expanded = next
	return s
}
