package domain

import "strings"

// PosterAbsent is the marker OMDb uses when a title has no poster
const PosterAbsent = "N/A"

// ResultSummary is one entry of a search page
type ResultSummary struct {
	ID        string
	Title     string
	MediaType string // movie, series, episode, game
	Poster    string
}

// ResultDetail is the full record of a single title
type ResultDetail struct {
	ID       string
	Title    string
	Year     string
	Poster   string
	Synopsis string
	Director string
	Cast     string // comma separated, as returned by the API
	Genre    string
	Rating   string
}

// HasPoster reports whether the poster is a real URL rather than the absent marker
func (d ResultDetail) HasPoster() bool {
	return hasPoster(d.Poster)
}

// CastList splits Cast into individual names
func (d ResultDetail) CastList() []string {
	return splitList(d.Cast)
}

// GenreList splits Genre into individual genres
func (d ResultDetail) GenreList() []string {
	return splitList(d.Genre)
}

// HasPoster reports whether the poster is a real URL rather than the absent marker
func (s ResultSummary) HasPoster() bool {
	return hasPoster(s.Poster)
}

// SearchPage is the paginated search envelope
type SearchPage struct {
	Summaries    []ResultSummary
	TotalResults int
	Found        bool   // false when the API reported a negative result
	Error        string // reason given with a negative result
}

// Page is one batch of resolved details, merged as a unit
type Page struct {
	Number       int
	Results      []ResultDetail
	TotalResults int
}

func hasPoster(poster string) bool {
	return poster != "" && poster != PosterAbsent
}

func splitList(s string) []string {
	if s == "" || s == PosterAbsent {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
