package search

// Messages shown in the error banner
const (
	DefaultNoResultsMessage = "No movies found"
	FetchFailedMessage      = "Error fetching movies"
)

// NoResultsError is a negative result reported by the search endpoint
type NoResultsError struct {
	Query   string
	Page    int
	Message string
}

func (e *NoResultsError) Error() string {
	if e.Message == "" {
		return DefaultNoResultsMessage
	}
	return e.Message
}
