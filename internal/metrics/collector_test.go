package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCollectorCollectsImmediately(t *testing.T) {
	var calls atomic.Int32
	c := NewCollector(func(context.Context) error {
		calls.Add(1)
		return nil
	}, time.Hour)

	c.Start()
	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	c.Stop()

	if calls.Load() != 1 {
		t.Errorf("refresh calls = %d, want 1", calls.Load())
	}
}

func TestCollectorTicks(t *testing.T) {
	var calls atomic.Int32
	c := NewCollector(func(context.Context) error {
		calls.Add(1)
		return errors.New("config volume unavailable")
	}, 5*time.Millisecond)

	c.Start()
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	c.Stop()

	if calls.Load() < 3 {
		t.Errorf("refresh calls = %d, want at least 3", calls.Load())
	}
}

func TestCollectorStopTwice(_ *testing.T) {
	c := NewCollector(nil, time.Millisecond)
	c.Start()
	c.Stop()
	c.Stop()
}
