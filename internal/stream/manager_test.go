package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch client) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("no payload within 1s")
		return nil
	}
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	m := NewManager()
	go m.Run()

	a := make(client, 1)
	b := make(client, 1)
	m.register <- a
	m.register <- b

	m.Broadcast("snapshot", map[string]string{"hello": "board"})

	want := "event: snapshot\ndata: {\"hello\":\"board\"}\n\n"
	assert.Equal(t, want, string(recv(t, a)))
	assert.Equal(t, want, string(recv(t, b)))
}

func TestBroadcastDropsForSlowConsumer(t *testing.T) {
	m := NewManager()
	go m.Run()

	// Nobody reads stuck, so its buffer is always full.
	stuck := make(client)
	live := make(client, 8)
	m.register <- stuck
	m.register <- live

	m.Broadcast("snapshot", 1)
	m.Broadcast("snapshot", 2)

	// The healthy client still gets both events in order.
	assert.Contains(t, string(recv(t, live)), "data: 1")
	assert.Contains(t, string(recv(t, live)), "data: 2")

	select {
	case payload := <-stuck:
		t.Fatalf("slow consumer unexpectedly received %q", payload)
	default:
	}
}

func TestUnregisterClosesClientChannel(t *testing.T) {
	m := NewManager()
	go m.Run()

	ch := make(client, 1)
	m.register <- ch
	m.unregister <- ch

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed, not carry a payload")
	case <-time.After(time.Second):
		t.Fatal("channel not closed within 1s")
	}

	// Broadcasting after unregister must not block or panic.
	m.Broadcast("snapshot", "after")
}

func TestBroadcastUnmarshalablePayloadIsDropped(t *testing.T) {
	m := NewManager()
	go m.Run()

	ch := make(client, 1)
	m.register <- ch

	m.Broadcast("snapshot", func() {})
	m.Broadcast("snapshot", "ok")

	// Only the marshalable event arrives.
	payload := recv(t, ch)
	require.Contains(t, string(payload), "data: \"ok\"")
}
