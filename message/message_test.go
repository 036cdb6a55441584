package message_test

import (
	"testing"

	"github.com/agnusemu/amiga500/message"
)

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := message.NewQueue(1)
	q.Post(message.PowerOn)
	q.Post(message.MemLayout)

	select {
	case n := <-q.C():
		if n != message.MemLayout {
			t.Fatalf("expected newest notice to survive, got %v", n)
		}
	default:
		t.Fatal("expected a notice on the queue")
	}
}

func TestStateOrdering(t *testing.T) {
	if !(message.Running > message.Paused) {
		t.Fatal("expected Running to compare greater than Paused")
	}
	if !(message.Paused > message.PoweredOff) {
		t.Fatal("expected Paused to compare greater than PoweredOff")
	}
}
