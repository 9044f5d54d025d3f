package collector

import (
	"context"

	"MarketDash/internal/model"
)

// Fetcher defines the interface for fetching dashboard data from the backend.
type Fetcher interface {
	FetchTopMovers(ctx context.Context) ([]model.Mover, error)
	FetchStock(ctx context.Context, ticker string) (*model.FinancialSnapshot, error)
	FetchPriceSeries(ctx context.Context, ticker string, rng model.TimeRange) (*model.PriceSeries, error)
	Name() string
}
