package omdb

import (
	"strconv"
	"strings"

	"moviescroll/internal/domain"
)

// searchResponse is the wire shape of ?s= queries
type searchResponse struct {
	Search       []searchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

type searchItem struct {
	IMDbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// detailResponse is the wire shape of ?i= queries
type detailResponse struct {
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Plot       string `json:"Plot"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Genre      string `json:"Genre"`
	Rating     string `json:"Rating,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func (r searchResponse) toDomain() *domain.SearchPage {
	page := &domain.SearchPage{
		Found: isTrue(r.Response),
		Error: r.Error,
	}
	if !page.Found {
		return page
	}
	// totalResults arrives as a string; an unparsable value is treated as unknown
	if n, err := strconv.Atoi(strings.TrimSpace(r.TotalResults)); err == nil {
		page.TotalResults = n
	}
	page.Summaries = make([]domain.ResultSummary, 0, len(r.Search))
	for _, item := range r.Search {
		page.Summaries = append(page.Summaries, domain.ResultSummary{
			ID:        item.IMDbID,
			Title:     item.Title,
			MediaType: item.Type,
			Poster:    item.Poster,
		})
	}
	return page
}

func (r detailResponse) toDomain() *domain.ResultDetail {
	rating := r.IMDbRating
	if rating == "" {
		rating = r.Rating
	}
	return &domain.ResultDetail{
		ID:       r.IMDbID,
		Title:    r.Title,
		Year:     r.Year,
		Poster:   r.Poster,
		Synopsis: r.Plot,
		Director: r.Director,
		Cast:     r.Actors,
		Genre:    r.Genre,
		Rating:   rating,
	}
}
