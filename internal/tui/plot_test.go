package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"MarketDash/internal/chart"
	"MarketDash/internal/model"
)

func series(prices ...float64) []model.PricePoint {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	out := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Timestamp: start.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return out
}

func priceView(t *testing.T, prices ...float64) chart.PriceView {
	t.Helper()
	b := chart.NewBoard(chart.DefaultMaxPoints)
	pc, err := b.RenderPrice("AAPL", "Apple Inc.", model.RangeDay, series(prices...))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return pc.View()
}

func TestPlotPrice_Empty(t *testing.T) {
	out := plotPrice(chart.PriceView{}, 40, 8)
	if !strings.Contains(out, "no price data") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestPlotPrice_OneDotPerPoint(t *testing.T) {
	v := priceView(t, 100, 110, 120)
	out := plotPrice(v, 40, 6)

	if n := strings.Count(out, plotDot); n != 3 {
		t.Errorf("expected 3 dots, got %d\n%s", n, out)
	}
	if lines := strings.Count(out, "\n"); lines != 6 {
		t.Errorf("expected 6 grid rows, got %d", lines)
	}
	if !strings.Contains(out, fmt.Sprintf("%.2f", v.Y.Max)) {
		t.Errorf("missing y max label in\n%s", out)
	}
	if !strings.Contains(out, "09:30") || !strings.Contains(out, "09:32") {
		t.Errorf("missing x bounds in\n%s", out)
	}
}

func TestPlotPrice_BucketsWhenNarrow(t *testing.T) {
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = 100 + float64(i%7)
	}
	v := priceView(t, prices...)

	width := 30
	out := plotPrice(v, width, 5)

	gutter := len(fmt.Sprintf("%.2f", v.Y.Max))
	if l := len(fmt.Sprintf("%.2f", v.Y.Min)); l > gutter {
		gutter = l
	}
	cols := width - gutter - 2
	if n := strings.Count(out, plotDot); n != cols {
		t.Errorf("expected one dot per column (%d), got %d", cols, n)
	}
}

func TestRangeChange(t *testing.T) {
	if got := rangeChange(priceView(t, 200, 205, 210)); !strings.Contains(got, "+5.00%") {
		t.Errorf("expected +5.00%%, got %q", got)
	}
	if got := rangeChange(priceView(t, 200, 190)); !strings.Contains(got, "-5.00%") {
		t.Errorf("expected -5.00%%, got %q", got)
	}
	if got := rangeChange(priceView(t, 200)); got != "" {
		t.Errorf("a single point has no change, got %q", got)
	}
}
