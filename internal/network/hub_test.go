package network

import (
	"testing"

	"bastion-server/pkg/api"
)

func TestRegisterAndSendTo(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("TDAAAA", "p1")

	b.SendTo("p1", api.ServerEvent{Type: "PING"})

	select {
	case msg := <-ch:
		if msg.Type != "PING" {
			t.Errorf("Expected PING, got %q", msg.Type)
		}
	default:
		t.Fatal("Expected a buffered message")
	}

	// Unknown recipient is a silent no-op
	b.SendTo("ghost", api.ServerEvent{Type: "PING"})
}

func TestBroadcastIsScopedToRoom(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Register("TDAAAA", "p1")
	ch2 := b.Register("TDAAAA", "p2")
	other := b.Register("TDBBBB", "p3")

	b.Broadcast("TDAAAA", api.ServerEvent{Type: "STATE_UPDATE"})

	if len(ch1) != 1 || len(ch2) != 1 {
		t.Errorf("Room members must receive the broadcast: %d/%d", len(ch1), len(ch2))
	}
	if len(other) != 0 {
		t.Error("Broadcast must not leak into other rooms")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("TDAAAA", "p1")

	// Overflow the buffer: extra messages are dropped, not blocked on
	for i := 0; i < cap(ch)+10; i++ {
		b.Broadcast("TDAAAA", api.ServerEvent{Type: "STATE_UPDATE"})
	}

	if len(ch) != cap(ch) {
		t.Errorf("Expected a full buffer (%d), got %d", cap(ch), len(ch))
	}
}

func TestUnregisterClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("TDAAAA", "p1")
	b.Unregister("p1")

	if _, open := <-ch; open {
		t.Error("Unregister must close the subscriber channel")
	}
	if b.HasSubscriber("p1") {
		t.Error("Unregistered player must be forgotten")
	}

	// Double unregister is safe
	b.Unregister("p1")
}

func TestReRegisterReplacesChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("TDAAAA", "p1")
	fresh := b.Register("TDBBBB", "p1")

	if _, open := <-old; open {
		t.Error("Re-register must close the previous channel")
	}

	b.Broadcast("TDBBBB", api.ServerEvent{Type: "PING"})
	if len(fresh) != 1 {
		t.Error("New subscription must receive messages for the new room")
	}
	if got := b.RoomSubscriberCount("TDAAAA"); got != 0 {
		t.Errorf("Old room must have no subscribers, got %d", got)
	}
}
