package connectivity_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rgt24/orderboard/internal/connectivity"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestMonitor_ProbePublishesTransition(t *testing.T) {
	var up atomic.Bool
	m := connectivity.NewMonitor(func(context.Context) bool { return up.Load() }, time.Minute, noopLogger{})

	ctx := context.Background()

	if m.Probe(ctx) {
		t.Fatalf("want offline on first probe")
	}
	if m.Online() {
		t.Fatalf("want Online()=false")
	}
	// старт с offline — не переход, канал пуст
	select {
	case v := <-m.Transitions():
		t.Fatalf("unexpected transition %v", v)
	default:
	}

	up.Store(true)
	if !m.Probe(ctx) {
		t.Fatalf("want online after backend recovery")
	}

	select {
	case v := <-m.Transitions():
		if !v {
			t.Fatalf("want online transition, got %v", v)
		}
	default:
		t.Fatalf("want published transition")
	}
}

func TestMonitor_RepeatedProbeNoDuplicateTransitions(t *testing.T) {
	m := connectivity.NewMonitor(func(context.Context) bool { return true }, time.Minute, noopLogger{})
	ctx := context.Background()

	m.Probe(ctx)
	m.Probe(ctx)
	m.Probe(ctx)

	<-m.Transitions()
	select {
	case v := <-m.Transitions():
		t.Fatalf("want single transition, got extra %v", v)
	default:
	}
}

func TestMonitor_TransitionsCoalesce(t *testing.T) {
	var up atomic.Bool
	m := connectivity.NewMonitor(func(context.Context) bool { return up.Load() }, time.Minute, noopLogger{})
	ctx := context.Background()

	// никто не читает канал: важен только последний переход
	up.Store(true)
	m.Probe(ctx)
	up.Store(false)
	m.Probe(ctx)

	select {
	case v := <-m.Transitions():
		if v {
			t.Fatalf("want latest transition=false, got %v", v)
		}
	default:
		t.Fatalf("want coalesced transition available")
	}
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	m := connectivity.NewMonitor(func(context.Context) bool { return true }, time.Millisecond, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	// дождаться хотя бы одной пробы из цикла
	deadline := time.Now().Add(time.Second)
	for !m.Online() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !m.Online() {
		t.Fatalf("monitor never probed")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("run did not stop on cancel")
	}
}
