package collector

import (
	"context"
	"sync"

	"MarketDash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// A non-nil *Err field makes the matching call fail.
type MockFetcher struct {
	mu sync.Mutex

	Movers    []model.Mover
	Snapshots map[string]*model.FinancialSnapshot
	Series    map[string]*model.PriceSeries // keyed by "TICKER/range"

	MoversErr error
	StockErr  error
	PriceErr  error

	// Hook, when set, runs before every call and may block to simulate latency.
	Hook func(call string)

	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) record(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	hook := m.Hook
	m.mu.Unlock()
	if hook != nil {
		hook(call)
	}
}

// CallLog returns a copy of the calls made so far.
func (m *MockFetcher) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	copy(out, m.Calls)
	return out
}

func (m *MockFetcher) FetchTopMovers(_ context.Context) ([]model.Mover, error) {
	m.record("top_movers")
	if m.MoversErr != nil {
		return nil, m.MoversErr
	}
	out := make([]model.Mover, len(m.Movers))
	copy(out, m.Movers)
	return out, nil
}

func (m *MockFetcher) FetchStock(_ context.Context, ticker string) (*model.FinancialSnapshot, error) {
	m.record("stock/" + ticker)
	if m.StockErr != nil {
		return nil, m.StockErr
	}
	if snap, ok := m.Snapshots[ticker]; ok {
		return snap, nil
	}
	return nil, &APIError{Status: 400, Message: "Invalid ticker symbol"}
}

func (m *MockFetcher) FetchPriceSeries(_ context.Context, ticker string, rng model.TimeRange) (*model.PriceSeries, error) {
	key := ticker + "/" + string(rng)
	m.record("price/" + key)
	if m.PriceErr != nil {
		return nil, m.PriceErr
	}
	if s, ok := m.Series[key]; ok {
		return s, nil
	}
	return &model.PriceSeries{}, nil
}
