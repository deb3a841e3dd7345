//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeMovie is one title served by the fake OMDb
type fakeMovie struct {
	ID       string
	Title    string
	Year     string
	Director string
	Plot     string
}

// FakeOMDb is an in-process stand-in for the OMDb HTTP API
type FakeOMDb struct {
	*httptest.Server

	mu       sync.Mutex
	movies   map[string][]fakeMovie // query -> all results
	pageSize int
	searches []string
}

// NewFakeOMDb starts a fake API paging results pageSize at a time
func NewFakeOMDb(t *testing.T, pageSize int) *FakeOMDb {
	t.Helper()
	f := &FakeOMDb{movies: make(map[string][]fakeMovie), pageSize: pageSize}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Add registers the results of query
func (f *FakeOMDb) Add(query string, movies ...fakeMovie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[query] = append(f.movies[query], movies...)
}

// Searches returns the "query#page" requests received so far
func (f *FakeOMDb) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

func (f *FakeOMDb) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()
	if q.Get("apikey") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "No API key provided."})
		return
	}

	if id := q.Get("i"); id != "" {
		for _, list := range f.movies {
			for _, m := range list {
				if m.ID == id {
					_ = json.NewEncoder(w).Encode(map[string]string{
						"imdbID": m.ID, "Title": m.Title, "Year": m.Year, "Poster": "N/A",
						"Plot": m.Plot, "Director": m.Director, "Actors": "Jane Doe, John Roe",
						"Genre": "Drama", "imdbRating": "7.1", "Response": "True",
					})
					return
				}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
		return
	}

	query := q.Get("s")
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	f.searches = append(f.searches, query+"#"+strconv.Itoa(page))

	all := f.movies[query]
	start := (page - 1) * f.pageSize
	if start >= len(all) {
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
		return
	}
	end := min(start+f.pageSize, len(all))

	items := make([]map[string]string, 0, end-start)
	for _, m := range all[start:end] {
		items = append(items, map[string]string{"imdbID": m.ID, "Title": m.Title, "Year": m.Year, "Type": "movie", "Poster": "N/A"})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"Search":       items,
		"totalResults": strconv.Itoa(len(all)),
		"Response":     "True",
	})
}
