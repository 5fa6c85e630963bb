package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe(4)
	defer unsub()

	b.Publish(Event{Type: TypeDisplayed, Data: "payload"})

	select {
	case ev := <-ch:
		assert.Equal(t, TypeDisplayed, ev.Type)
		assert.Equal(t, "payload", ev.Data)
		assert.False(t, ev.Time.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := New()
	_, unsub := b.Subscribe(1)
	defer unsub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			b.Publish(Event{Type: TypeDisplayFailed})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe(4)
	unsub()

	b.Publish(Event{Type: TypeDisplayed})

	_, open := <-ch
	require.False(t, open)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New()
	_, unsub := b.Subscribe(1)
	unsub()
	unsub()
}
