package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingPoller struct {
	n     atomic.Int32
	block chan struct{}
}

func (p *countingPoller) Poll(ctx context.Context) error {
	p.n.Add(1)
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
		}
	}
	return nil
}

func TestRegisterAll_RejectsSubSecondInterval(t *testing.T) {
	s := NewScheduler(context.Background(), &countingPoller{}, 500*time.Millisecond)
	if err := s.RegisterAll(); err == nil {
		t.Fatal("expected error for sub-second interval")
	}
}

func TestSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &countingPoller{}, 7*time.Second)
	if s.Spec() != "@every 7s" {
		t.Errorf("unexpected spec %q", s.Spec())
	}
	if err := s.RegisterAll(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(s.Cron.Entries()) != 1 {
		t.Errorf("expected 1 entry, got %d", len(s.Cron.Entries()))
	}
}

func TestRunTapeNow(t *testing.T) {
	p := &countingPoller{}
	s := NewScheduler(context.Background(), p, time.Second)
	s.RunTapeNow()
	if p.n.Load() != 1 {
		t.Errorf("expected 1 poll, got %d", p.n.Load())
	}
}

func TestRunTapeNow_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &countingPoller{}
	s := NewScheduler(ctx, p, time.Second)
	s.RunTapeNow()
	if p.n.Load() != 0 {
		t.Errorf("expected no poll after cancel, got %d", p.n.Load())
	}
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &countingPoller{block: make(chan struct{})}
	s := NewScheduler(ctx, p, time.Second)
	if err := s.RegisterAll(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	time.Sleep(3500 * time.Millisecond)
	if got := p.n.Load(); got != 1 {
		t.Errorf("expected a single run while the first is blocked, got %d", got)
	}
	close(p.block)
	s.Stop()
}
