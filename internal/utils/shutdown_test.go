package utils

import (
	"context"
	"testing"
	"time"
)

func TestShutdown_RunsTasksInReverseOrder(t *testing.T) {
	_, sm := NewShutdownManager(context.Background(), time.Second)

	var order []string
	for _, name := range []string{"mongo", "redis", "http"} {
		name := name
		sm.Register(func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	sm.Shutdown()

	want := []string{"http", "redis", "mongo"}
	if len(order) != len(want) {
		t.Fatalf("ran %d tasks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("task %d = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestShutdown_CancelsContextAndClosesDone(t *testing.T) {
	ctx, sm := NewShutdownManager(context.Background(), time.Second)

	sm.Shutdown()

	select {
	case <-ctx.Done():
	default:
		t.Error("base context not canceled after Shutdown")
	}

	select {
	case <-sm.Done():
	case <-time.After(time.Second):
		t.Error("Done() not closed after Shutdown")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	_, sm := NewShutdownManager(context.Background(), time.Second)

	runs := 0
	sm.Register(func(context.Context) error {
		runs++
		return nil
	})

	sm.Shutdown()
	sm.Shutdown()

	if runs != 1 {
		t.Errorf("task ran %d times, want 1", runs)
	}
}
