package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcastsNewsToSubscribers(t *testing.T) {
	h := NewHub()
	h.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	go h.Run()
	defer h.Stop()

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- c

	h.PublishNews("Queen Alys has seized the throne!")

	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != EventNews {
			t.Fatalf("expected type %s, got %s", EventNews, ev.Type)
		}
		if ev.Message != "Queen Alys has seized the throne!" {
			t.Fatalf("unexpected message: %s", ev.Message)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubDethronedEvent(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- c

	h.NotifyDethroned("Borin", "Alys", "throne challenge")

	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != EventDethroned {
			t.Fatalf("expected type %s, got %s", EventDethroned, ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}
