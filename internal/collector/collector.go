package collector

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/model"
	"MarketDash/internal/recorder"
)

// Collector wraps a Fetcher with the validation the dashboard relies on and
// journals every failed request.
type Collector struct {
	Fetcher  Fetcher
	Recorder recorder.Recorder
}

// NewCollector creates a new Collector. A nil recorder journals nothing.
func NewCollector(fetcher Fetcher, rec recorder.Recorder) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Recorder: rec}
}

// Snapshot fetches the financial snapshot of ticker.
func (c *Collector) Snapshot(ctx context.Context, ticker string) (*model.FinancialSnapshot, error) {
	snap, err := c.Fetcher.FetchStock(ctx, ticker)
	if err != nil {
		c.fail(ticker, "stock", err)
		return nil, err
	}
	return snap, nil
}

// Prices fetches the price series of ticker over rng. A series without points
// is an error.
func (c *Collector) Prices(ctx context.Context, ticker string, rng model.TimeRange) (*model.PriceSeries, error) {
	series, err := c.Fetcher.FetchPriceSeries(ctx, ticker, rng)
	if err != nil {
		c.fail(ticker, "price", err)
		return nil, err
	}
	if len(series.PriceData) == 0 {
		err = fmt.Errorf("fetch price %s/%s: %w", ticker, rng, ErrNoPriceData)
		c.fail(ticker, "price", err)
		return nil, err
	}
	return series, nil
}

// Movers fetches the current top movers.
func (c *Collector) Movers(ctx context.Context) ([]model.Mover, error) {
	movers, err := c.Fetcher.FetchTopMovers(ctx)
	if err != nil {
		c.fail("", "top_movers", err)
		return nil, err
	}
	return movers, nil
}

func (c *Collector) fail(ticker, endpoint string, err error) {
	log.Warnf("%s fetch failed via %s: %v", endpoint, c.Fetcher.Name(), err)
	if rerr := c.Recorder.RecordFetchFailure(&recorder.FetchFailureEvent{
		Ticker:   ticker,
		Endpoint: endpoint,
		Message:  err.Error(),
	}); rerr != nil {
		log.Errorf("record fetch failure: %v", rerr)
	}
}
