package web

import (
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/input"
)

func TestEnqueueFinalReplacesQueuedFrames(t *testing.T) {
	c := NewClientConn(nil)
	for i := 0; i < sendQueueSize; i++ {
		if !c.Enqueue([]byte("frame")) {
			t.Fatalf("frame %d rejected", i)
		}
	}
	if c.Enqueue([]byte("frame")) {
		t.Fatal("full queue accepted a frame")
	}

	if !c.EnqueueFinal([]byte("shutdown")) {
		t.Fatal("EnqueueFinal failed on a full queue")
	}
	if len(c.send) != 1 {
		t.Fatalf("%d messages queued, want 1", len(c.send))
	}
	if got := string(<-c.send); got != "shutdown" {
		t.Errorf("queued %q, want shutdown", got)
	}
}

func TestDeliverKey(t *testing.T) {
	keys := make(chan input.Event, 1)
	stop := make(chan struct{})

	if !deliverKey(keys, input.Down(input.KeyArrowLeft), stop) {
		t.Fatal("press not delivered")
	}
	// Full channel: a second press is dropped without blocking.
	if !deliverKey(keys, input.Down(input.KeyArrowRight), stop) {
		t.Fatal("dropped press stopped the pump")
	}

	// A release waits until the game loop catches up.
	released := make(chan bool)
	go func() { released <- deliverKey(keys, input.Up(input.KeyArrowLeft), stop) }()

	select {
	case <-released:
		t.Fatal("release returned while the channel was full")
	case <-time.After(20 * time.Millisecond):
	}

	if ev := <-keys; ev != input.Down(input.KeyArrowLeft) {
		t.Errorf("first event = %+v", ev)
	}
	select {
	case ok := <-released:
		if !ok {
			t.Fatal("release reported stop")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("release never delivered")
	}
	if ev := <-keys; ev != input.Up(input.KeyArrowLeft) {
		t.Errorf("second event = %+v", ev)
	}

	// A blocked release gives up once the session stops.
	keys <- input.Down(input.KeyArrowLeft)
	close(stop)
	if deliverKey(keys, input.Up(input.KeyArrowLeft), stop) {
		t.Error("release after stop reported delivery")
	}
}
