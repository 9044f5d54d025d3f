// Package chart holds the chart configurations drawn by the dashboard. Charts
// are plain values; the terminal UI decides how to draw them.
package chart

import (
	"sync"

	"MarketDash/internal/model"
)

// Kind is the chart type.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// Canvas names a render target. At most one chart is active per canvas.
type Canvas string

const (
	CanvasPrice        Canvas = "priceChart"
	CanvasMargin       Canvas = "marginChart"
	CanvasBalanceSheet Canvas = "balanceSheetChart"
	CanvasFinancial    Canvas = "financialChart"
)

// Canvases lists every canvas of the dashboard.
var Canvases = []Canvas{CanvasPrice, CanvasMargin, CanvasBalanceSheet, CanvasFinancial}

// Dataset is one labelled series of a quarterly chart.
type Dataset struct {
	Label  string
	Color  string
	Values []model.Value
}

// Chart is a label-per-quarter chart (margin, balance sheet, financial).
type Chart struct {
	Canvas      Canvas
	Kind        Kind
	Labels      []string
	Datasets    []Dataset
	YTitle      string
	BeginAtZero bool

	mu        sync.Mutex
	destroyed bool
}

// Destroy detaches the chart from its canvas.
func (c *Chart) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.mu.Unlock()
}

func (c *Chart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// instance is what a canvas can hold.
type instance interface {
	Destroy()
}
