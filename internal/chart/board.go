package chart

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/model"
)

// ErrUnknownCanvas is returned when rendering onto a canvas the board does not have.
type ErrUnknownCanvas struct {
	Canvas Canvas
}

func (e *ErrUnknownCanvas) Error() string {
	return fmt.Sprintf("%s canvas not found", e.Canvas)
}

// Board owns the dashboard's canvases and the chart bound to each.
type Board struct {
	mu        sync.RWMutex
	canvases  map[Canvas]instance
	maxPoints int
}

// NewBoard creates a board with the given canvases, or all of them when none
// are given.
func NewBoard(maxPoints int, canvases ...Canvas) *Board {
	if len(canvases) == 0 {
		canvases = Canvases
	}
	b := &Board{canvases: make(map[Canvas]instance, len(canvases)), maxPoints: maxPoints}
	for _, c := range canvases {
		b.canvases[c] = nil
	}
	return b
}

// bind destroys whatever is on canvas and binds inst (which may be nil).
func (b *Board) bind(canvas Canvas, inst instance) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.canvases[canvas]
	if !ok {
		err := &ErrUnknownCanvas{Canvas: canvas}
		log.Errorf("render aborted: %v", err)
		return err
	}
	if prev != nil {
		prev.Destroy()
	}
	b.canvases[canvas] = inst
	return nil
}

// RenderPrice replaces the price chart. When no point is plottable the prior
// chart is still destroyed and no chart is created (nil, nil).
func (b *Board) RenderPrice(ticker, label string, rng model.TimeRange, points []model.PricePoint) (*PriceChart, error) {
	if len(points) == 0 {
		if err := b.bind(CanvasPrice, nil); err != nil {
			return nil, err
		}
		log.Warnf("no valid price data available for %s", ticker)
		return nil, nil
	}
	pc := newPriceChart(ticker, label, rng, points, b.maxPoints)
	if err := b.bind(CanvasPrice, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

func (b *Board) RenderMargin(data []model.MarginQuarter) (*Chart, error) {
	c := newMarginChart(data)
	if err := b.bind(CanvasMargin, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *Board) RenderBalanceSheet(data []model.BalanceSheetQuarter) (*Chart, error) {
	c := newBalanceSheetChart(data)
	if err := b.bind(CanvasBalanceSheet, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *Board) RenderFinancial(data []model.QuarterlyFinancials) (*Chart, error) {
	c := newFinancialChart(data)
	if err := b.bind(CanvasFinancial, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Price returns the active price chart, or nil.
func (b *Board) Price() *PriceChart {
	b.mu.RLock()
	defer b.mu.RUnlock()
	pc, _ := b.canvases[CanvasPrice].(*PriceChart)
	return pc
}

// Chart returns the active quarterly chart on canvas, or nil.
func (b *Board) Chart(canvas Canvas) *Chart {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, _ := b.canvases[canvas].(*Chart)
	return c
}
