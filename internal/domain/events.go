package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchCommitted      EventType = "SearchCommitted"
	EventPageRequested        EventType = "PageRequested"
	EventPageMerged           EventType = "PageMerged"
	EventFetchFailed          EventType = "FetchFailed"
	EventNoResults            EventType = "NoResults"
	EventStaleResultDiscarded EventType = "StaleResultDiscarded"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchCommittedEvent is emitted when a query survives the debounce window
type SearchCommittedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchCommittedEvent) Type() EventType { return EventSearchCommitted }

// PageRequestedEvent is emitted when a page fetch begins
type PageRequestedEvent struct {
	Query      string
	Page       int
	Generation uint64
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageMergedEvent is emitted after a page of details is appended to the results
type PageMergedEvent struct {
	Query        string
	Page         int
	Count        int // details appended by this page
	Loaded       int // details accumulated in the session
	TotalResults int
}

func (e PageMergedEvent) Type() EventType { return EventPageMerged }

// FetchFailedEvent is emitted when a search or detail call fails
type FetchFailedEvent struct {
	Query   string
	Page    int
	Message string // what the user sees
	Err     error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// NoResultsEvent is emitted when the API reports a negative result
type NoResultsEvent struct {
	Query   string
	Page    int
	Message string
}

func (e NoResultsEvent) Type() EventType { return EventNoResults }

// StaleResultDiscardedEvent is emitted when a fetch completes for a superseded search
type StaleResultDiscardedEvent struct {
	Query      string
	Page       int
	Generation uint64
	Current    uint64
}

func (e StaleResultDiscardedEvent) Type() EventType { return EventStaleResultDiscarded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	HasAPIKey  bool
	DebounceMs int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
