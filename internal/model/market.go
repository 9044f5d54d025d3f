package model

import (
	"encoding/json"
	"time"
)

// PricePoint is a single plotted price.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// PriceSample is one entry of a price series as sent by the backend.
type PriceSample struct {
	Date  string `json:"date"`
	Price Value  `json:"price"`
}

// PriceSeries is the response of /stock/:ticker/price/:timeRange.
type PriceSeries struct {
	PriceData    []PriceSample `json:"priceData"`
	CurrentPrice Value         `json:"currentPrice"`
	CompanyName  string        `json:"companyName"`
	Error        string        `json:"error,omitempty"`
}

// PriceUpdate is a price_update event from the live stream. Price is kept raw
// because the stream may send a number or a numeric string.
type PriceUpdate struct {
	Timestamp string          `json:"timestamp"`
	Price     json.RawMessage `json:"price"`
}

// Mover is one entry of the top movers list.
type Mover struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
}
