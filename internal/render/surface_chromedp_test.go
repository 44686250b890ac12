package render

import (
	"context"
	"testing"
	"time"
)

func TestJoinContextCancelledByTrigger(t *testing.T) {
	parent := context.Background()
	trigger, cancelTrigger := context.WithCancel(context.Background())

	joined, stop := joinContext(parent, trigger)
	defer stop()

	select {
	case <-joined.Done():
		t.Fatal("joined context done before either input was cancelled")
	default:
	}

	cancelTrigger()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatal("caller cancellation did not propagate to the joined context")
	}
}

func TestJoinContextCancelledByParent(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())

	joined, stop := joinContext(parent, context.Background())
	defer stop()

	cancelParent()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatal("parent cancellation did not propagate to the joined context")
	}
}

func TestJoinContextStopReleasesWatcher(t *testing.T) {
	trigger, cancelTrigger := context.WithCancel(context.Background())
	defer cancelTrigger()

	joined, stop := joinContext(context.Background(), trigger)
	stop()

	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the joined context")
	}
}
