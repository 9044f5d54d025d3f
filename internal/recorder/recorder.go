package recorder

import "time"

// TickEvent records one price_update received from the stream.
type TickEvent struct {
	Ticker  string
	Price   float64
	At      time.Time
	Outcome string // "APPENDED", "STALE", "INVALID", "NO_CHART"
	Raw     string // raw payload, kept for INVALID ticks
}

// TapePollEvent records one poll of the top movers endpoint.
type TapePollEvent struct {
	Count int
	OK    bool
	Error string
}

// FetchFailureEvent records a failed backend request.
type FetchFailureEvent struct {
	Ticker   string
	Endpoint string // "stock", "price", "top_movers"
	Message  string
}

// Recorder journals what the dashboard saw. It is write-only.
type Recorder interface {
	RecordTick(evt *TickEvent) error
	RecordTapePoll(evt *TapePollEvent) error
	RecordFetchFailure(evt *FetchFailureEvent) error
	Close() error
}
