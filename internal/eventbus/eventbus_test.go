package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishDeliversToSubscribersOfType(t *testing.T) {
	b := New()
	defer b.Close()

	merged := make(chan DomainEvent, 1)
	failed := make(chan DomainEvent, 1)
	b.Subscribe(EventPageMerged, func(e DomainEvent) { merged <- e })
	b.Subscribe(EventFetchFailed, func(e DomainEvent) { failed <- e })

	b.Publish(PageMergedEvent{Query: "batman", Page: 1, Count: 2})

	e := waitFor(t, merged)
	ev, ok := e.(PageMergedEvent)
	require.True(t, ok)
	assert.Equal(t, "batman", ev.Query)
	assert.Equal(t, 2, ev.Count)

	select {
	case <-failed:
		t.Fatal("FetchFailed subscriber should not receive PageMerged")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeliveryKeepsPublishOrder(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 3)
	b.Subscribe(EventPageRequested, func(e DomainEvent) { got <- e })

	for page := 1; page <= 3; page++ {
		b.Publish(PageRequestedEvent{Query: "alien", Page: page})
	}

	for page := 1; page <= 3; page++ {
		ev := waitFor(t, got).(PageRequestedEvent)
		assert.Equal(t, page, ev.Page)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan DomainEvent, 2)
	second := make(chan DomainEvent, 2)
	unsubscribe := b.Subscribe(EventSearchCommitted, func(e DomainEvent) { first <- e })
	b.Subscribe(EventSearchCommitted, func(e DomainEvent) { second <- e })

	unsubscribe()
	b.Publish(SearchCommittedEvent{Query: "heat"})

	waitFor(t, second)
	select {
	case <-first:
		t.Fatal("unsubscribed handler received an event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandlerPanicDoesNotStopDispatcher(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventNoResults, func(e DomainEvent) { panic("boom") })
	b.Subscribe(EventNoResults, func(e DomainEvent) { got <- e })

	b.Publish(NoResultsEvent{Message: "Movie not found!"})

	ev := waitFor(t, got).(NoResultsEvent)
	assert.Equal(t, "Movie not found!", ev.Message)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(ConfigSavedEvent{Path: "x"})
	})
	// second close is a no-op
	b.Close()
}
