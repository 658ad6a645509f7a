package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("activities")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("activities")
	defer cleanup2()

	hub.Publish(Event{Topic: "activities", Event: "check_in", Data: "payload"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "check_in", ev.Event)
			assert.Equal(t, "payload", ev.Data)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestHubTopicsAreIsolated(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("activities")
	defer cleanup()

	hub.Publish(Event{Topic: "other", Event: "noise"})

	select {
	case ev := <-ch:
		t.Fatalf("received event from wrong topic: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("activities")
	require.Equal(t, 1, hub.SubscriberCount("activities"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("activities"))
}

func TestHubSkipsSlowSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("activities")
	defer cleanup()

	// Fill the buffer and keep publishing; the publisher must not block.
	for i := 0; i < 25; i++ {
		hub.Publish(Event{Topic: "activities", Event: "check_in"})
	}

	assert.Len(t, ch, 10)
}
