package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacer_FirstCallImmediate(t *testing.T) {
	p := New(time.Second)
	if !p.Allow() {
		t.Error("First call should be allowed immediately")
	}
}

func TestPacer_SecondCallBlocked(t *testing.T) {
	p := New(time.Hour)
	p.Allow()
	if p.Allow() {
		t.Error("Second immediate call should be blocked")
	}
}

func TestPacer_WaitPaces(t *testing.T) {
	interval := 50 * time.Millisecond
	p := New(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First call is free; the next two wait one interval each.
	if elapsed < 2*interval-10*time.Millisecond {
		t.Errorf("Expected ~%v of pacing, got %v", 2*interval, elapsed)
	}
}

func TestPacer_WaitHonorsContext(t *testing.T) {
	p := New(time.Hour)
	p.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("Expected context deadline error")
	}
}

func TestPacer_NilDisabled(t *testing.T) {
	p := New(0)
	if p != nil {
		t.Fatal("Expected nil pacer for zero interval")
	}
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("Disabled pacer should never block: %v", err)
	}
	if !p.Allow() {
		t.Error("Disabled pacer should always allow")
	}
}
