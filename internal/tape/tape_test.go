package tape

import (
	"context"
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"MarketDash/internal/model"
)

type source struct {
	movers []model.Mover
	err    error
}

func (s *source) Movers(context.Context) ([]model.Mover, error) { return s.movers, s.err }

func TestPoll_ReplacesEntries(t *testing.T) {
	src := &source{movers: []model.Mover{
		{Symbol: "AAPL", Price: 181.2, Change: 1.1, PercentChange: 0.61},
		{Symbol: "NVDA", Price: 912.5, Change: -4.25, PercentChange: -0.46},
		{Symbol: "TSLA", Price: 175, Change: 3, PercentChange: 1.74},
	}}
	tp := New(src, nil)

	var pushed []Item
	tp.OnUpdate(func(items []Item) { pushed = items })

	if err := tp.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(tp.Items()) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(tp.Items()))
	}

	src.movers = src.movers[:1]
	if err := tp.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	want := []Item{{Symbol: "AAPL", Text: "AAPL: $181.20 ▲1.10 (0.61%)", Class: "positive"}}
	if diff := pretty.Compare(want, tp.Items()); diff != "" {
		t.Errorf("-want/+got:\n%s", diff)
	}
	if diff := pretty.Compare(want, pushed); diff != "" {
		t.Errorf("pushed -want/+got:\n%s", diff)
	}
}

func TestPoll_FailureKeepsStaleEntries(t *testing.T) {
	src := &source{movers: []model.Mover{{Symbol: "AAPL", Price: 1}}}
	tp := New(src, nil)
	if err := tp.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}

	calls := 0
	tp.OnUpdate(func([]Item) { calls++ })
	src.err = errors.New("HTTP error! status: 500")
	if err := tp.Poll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := tp.Items(); len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Errorf("expected stale entries kept, got %+v", got)
	}
	if calls != 0 {
		t.Error("expected no update on failure")
	}
}

func TestPoll_EmptyListClears(t *testing.T) {
	src := &source{movers: []model.Mover{{Symbol: "AAPL"}}}
	tp := New(src, nil)
	tp.Poll(context.Background())

	src.movers = []model.Mover{}
	tp.Poll(context.Background())
	if len(tp.Items()) != 0 {
		t.Errorf("expected no entries, got %d", len(tp.Items()))
	}
}
