// Package session holds the process-wide ticker session.
package session

import (
	"strings"
	"sync"
	"time"

	"MarketDash/internal/chart"
	"MarketDash/internal/model"
)

// State is the ticker session as seen by one reader.
type State struct {
	Ticker      string
	TimeRange   model.TimeRange
	CompanyName string
	Chart       *chart.PriceChart
	LastPrice   model.Value
	LastUpdate  time.Time
	Generation  uint64 // bumped by Begin
	PriceGen    uint64 // bumped by Begin and SetRange
}

// Kind tells which request a token stamps.
type Kind int

const (
	KindSnapshot Kind = iota
	KindPrice
)

// Token stamps a request with the session generation it was issued under.
type Token struct {
	Ticker string
	Range  model.TimeRange
	Gen    uint64
	Kind   Kind
}

// Manager guards the ticker session. It is never persisted.
type Manager struct {
	mu    sync.Mutex
	state State
}

// NewManager creates a session with no ticker and the default range.
func NewManager(defaultRange model.TimeRange) *Manager {
	return &Manager{state: State{TimeRange: defaultRange}}
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// State returns a copy of the current session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin replaces the session wholesale for ticker and returns the tokens of
// the snapshot and price requests it triggers.
func (m *Manager) Begin(ticker string) (snapshot, price Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = State{
		Ticker:     ticker,
		TimeRange:  m.state.TimeRange,
		Generation: m.state.Generation + 1,
		PriceGen:   m.state.PriceGen + 1,
	}
	snapshot = Token{Ticker: ticker, Range: m.state.TimeRange, Gen: m.state.Generation, Kind: KindSnapshot}
	price = Token{Ticker: ticker, Range: m.state.TimeRange, Gen: m.state.PriceGen, Kind: KindPrice}
	return snapshot, price
}

// SetRange changes the time range. When a ticker is selected it returns the
// token of the price request to issue and true.
func (m *Manager) SetRange(r model.TimeRange) (Token, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.TimeRange = r
	if m.state.Ticker == "" {
		return Token{}, false
	}
	m.state.PriceGen++
	return Token{Ticker: m.state.Ticker, Range: r, Gen: m.state.PriceGen, Kind: KindPrice}, true
}

// Fresh reports whether a response stamped with tok is still wanted.
func (m *Manager) Fresh(tok Token) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fresh(tok)
}

func (m *Manager) fresh(tok Token) bool {
	if tok.Ticker != m.state.Ticker {
		return false
	}
	if tok.Kind == KindPrice {
		return tok.Gen == m.state.PriceGen
	}
	return tok.Gen == m.state.Generation
}

// Commit runs fn on the session when tok is still fresh and reports whether
// it ran. fn runs under the session lock, so no Begin or SetRange can
// interleave with it.
func (m *Manager) Commit(tok Token, fn func(st *State)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fresh(tok) {
		return false
	}
	fn(&m.state)
	return true
}

// RecordPrice stores the last streamed price of ticker.
func (m *Manager) RecordPrice(ticker string, price float64, at time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ticker != m.state.Ticker {
		return false
	}
	m.state.LastPrice = model.Num(price)
	m.state.LastUpdate = at
	return true
}
