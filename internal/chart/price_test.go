package chart

import (
	"math"
	"testing"
	"time"

	"MarketDash/internal/model"
)

var t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func minutes(prices ...float64) []model.PricePoint {
	out := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Timestamp: t0.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return out
}

func TestPriceChart_RejectsNonIncreasingTimestamps(t *testing.T) {
	b := NewBoard(DefaultMaxPoints)
	pc, err := b.RenderPrice("AAPL", "Apple Inc.", model.RangeDay, minutes(100, 101))
	if err != nil || pc == nil {
		t.Fatalf("render: %v", err)
	}
	last, _ := pc.Last()

	if got := pc.Append(model.PricePoint{Timestamp: last.Timestamp, Price: 500}); got != Stale {
		t.Errorf("equal timestamp: expected Stale, got %v", got)
	}
	if got := pc.Append(model.PricePoint{Timestamp: last.Timestamp.Add(-time.Second), Price: 500}); got != Stale {
		t.Errorf("older timestamp: expected Stale, got %v", got)
	}
	if pc.Len() != 2 {
		t.Errorf("expected 2 points, got %d", pc.Len())
	}
	if got := pc.Append(model.PricePoint{Timestamp: last.Timestamp.Add(time.Second), Price: 102}); got != Appended {
		t.Errorf("newer timestamp: expected Appended, got %v", got)
	}
	if pc.Len() != 3 {
		t.Errorf("expected 3 points, got %d", pc.Len())
	}
}

func TestPriceChart_EvictsOldest(t *testing.T) {
	prices := make([]float64, DefaultMaxPoints)
	for i := range prices {
		prices[i] = 100 + float64(i%7)
	}
	b := NewBoard(DefaultMaxPoints)
	pc, _ := b.RenderPrice("AAPL", "Apple Inc.", model.RangeDay, minutes(prices...))
	first := pc.Points()[0]

	next := model.PricePoint{Timestamp: t0.Add(time.Duration(DefaultMaxPoints) * time.Minute), Price: 99}
	if got := pc.Append(next); got != Appended {
		t.Fatalf("expected Appended, got %v", got)
	}
	pts := pc.Points()
	if len(pts) != DefaultMaxPoints {
		t.Fatalf("expected %d points, got %d", DefaultMaxPoints, len(pts))
	}
	if pts[0].Timestamp.Equal(first.Timestamp) {
		t.Error("expected the oldest point to be evicted")
	}
	if !pts[len(pts)-1].Timestamp.Equal(next.Timestamp) {
		t.Error("expected the new point last")
	}
	x := pc.XAxis()
	if !x.Min.Equal(pts[0].Timestamp) || !x.Max.Equal(next.Timestamp) {
		t.Errorf("x axis not rescaled: %v - %v", x.Min, x.Max)
	}
}

func TestPriceChart_RescalesY(t *testing.T) {
	b := NewBoard(DefaultMaxPoints)
	pc, _ := b.RenderPrice("AAPL", "", model.RangeDay, minutes(100, 105))
	pc.Append(model.PricePoint{Timestamp: t0.Add(time.Hour), Price: 110})

	y := pc.YAxis()
	if math.Abs(y.Min-98) > 1e-9 || math.Abs(y.Max-112) > 1e-9 {
		t.Errorf("expected y 98/112, got %.3f/%.3f", y.Min, y.Max)
	}
	if y.Title != PriceTitle || y.BeginAtZero {
		t.Errorf("unexpected y axis %+v", y)
	}
}

func TestPriceChart_InitialRenderTrimsAndSorts(t *testing.T) {
	pts := minutes(1, 2, 3, 4, 5)
	pts[0], pts[4] = pts[4], pts[0]

	b := NewBoard(3)
	pc, _ := b.RenderPrice("AAPL", "", model.RangeDay, pts)
	got := pc.Points()
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("points not increasing at %d", i)
		}
	}
	if got[2].Price != 5 {
		t.Errorf("expected the newest point kept, got %.1f", got[2].Price)
	}
}

func TestPriceChart_EmptyAndDetached(t *testing.T) {
	b := NewBoard(DefaultMaxPoints)
	pc, _ := b.RenderPrice("AAPL", "", model.RangeDay, minutes(1))
	pc.Reset()
	if got := pc.Append(model.PricePoint{Timestamp: t0.Add(time.Hour), Price: 2}); got != Empty {
		t.Errorf("expected Empty, got %v", got)
	}
	pc.Destroy()
	if got := pc.Append(model.PricePoint{Timestamp: t0.Add(time.Hour), Price: 2}); got != Detached {
		t.Errorf("expected Detached, got %v", got)
	}
}

func TestPointsFromSamples(t *testing.T) {
	samples := []model.PriceSample{
		{Date: "2024-03-01 09:30:00", Price: model.Num(10)},
		{Date: "2024-03-01 09:31:00", Price: model.Value{}},
		{Date: "not a date", Price: model.Num(11)},
		{Date: "2024-03-01 09:32:00", Price: model.Num(12)},
	}
	got := PointsFromSamples(samples, time.UTC)
	if len(got) != 2 || got[1].Price != 12 {
		t.Errorf("unexpected points %+v", got)
	}
}
