// Package stream keeps the active price chart fed from the backend's
// real-time Socket.IO channel.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"MarketDash/internal/chart"
	"MarketDash/internal/model"
	"MarketDash/internal/recorder"
)

const (
	EventStartStream = "start_stream"
	EventPriceUpdate = "price_update"
)

// State is the connection state of the updater.
type State int

const (
	Disconnected State = iota
	Connecting
	Subscribed
	Stopped
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Subscribed:
		return "subscribed"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Outcome says what happened to one price_update.
type Outcome string

const (
	TickAppended Outcome = "APPENDED"
	TickStale    Outcome = "STALE"
	TickInvalid  Outcome = "INVALID"
	TickNoChart  Outcome = "NO_CHART"
)

// Tick is a processed price_update.
type Tick struct {
	Ticker  string
	Price   float64
	At      time.Time
	Outcome Outcome
}

// DialFunc opens a subscribed-ready stream to url.
type DialFunc func(ctx context.Context, url string) (Stream, error)

// Options configures an Updater.
type Options struct {
	URL            string
	ReconnectDelay time.Duration
	Location       *time.Location // zone of zone-less stream timestamps
	Recorder       recorder.Recorder
	OnTick         func(Tick)
	OnState        func(State)
	Dial           DialFunc
}

// Updater follows one ticker at a time and applies its price updates to the
// bound price chart.
type Updater struct {
	opts Options

	mu         sync.Mutex
	ticker     string
	chart      *chart.PriceChart
	state      State
	stream     Stream
	cancelDial context.CancelFunc
	lastPrice  float64
	lastUpdate time.Time

	wake chan struct{}
}

// NewUpdater creates an updater. It does nothing until Run is called.
func NewUpdater(opts Options) *Updater {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 2 * time.Second
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Dial == nil {
		opts.Dial = func(ctx context.Context, url string) (Stream, error) {
			c, err := Dial(ctx, url)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	return &Updater{opts: opts, wake: make(chan struct{}, 1)}
}

// Follow points the updater at ticker and binds pc as the chart to feed.
// Rebinding the same ticker keeps the subscription. A new ticker clears the
// series still bound to the old one and forces a resubscribe.
func (u *Updater) Follow(ticker string, pc *chart.PriceChart) {
	u.mu.Lock()
	if ticker == u.ticker {
		u.chart = pc
		u.mu.Unlock()
		return
	}
	if u.chart != nil && u.chart != pc && u.chart.Ticker() != ticker {
		u.chart.Reset()
	}
	u.ticker = ticker
	u.chart = pc
	s, cancelDial := u.stream, u.cancelDial
	u.mu.Unlock()

	log.Infof("stream following %s", ticker)
	if s != nil {
		s.Close()
	}
	if cancelDial != nil {
		cancelDial()
	}
	select {
	case u.wake <- struct{}{}:
	default:
	}
}

// Ticker returns the ticker being followed.
func (u *Updater) Ticker() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ticker
}

func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// LastPrice returns the last valid streamed price and its timestamp.
func (u *Updater) LastPrice() (float64, time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastPrice, u.lastUpdate
}

func (u *Updater) setState(s State) {
	u.mu.Lock()
	changed := u.state != s
	u.state = s
	u.mu.Unlock()
	if changed {
		log.Debugf("stream state -> %s", s)
		if u.opts.OnState != nil {
			u.opts.OnState(s)
		}
	}
}

// Run connects, subscribes and reconnects after a fixed delay until ctx is
// cancelled.
func (u *Updater) Run(ctx context.Context) error {
	defer u.setState(Stopped)
	u.setState(Disconnected)

	for {
		ticker := u.Ticker()
		if ticker == "" {
			select {
			case <-ctx.Done():
				return nil
			case <-u.wake:
				continue
			}
		}

		u.setState(Connecting)
		dialCtx, cancelDial := context.WithCancel(ctx)
		u.mu.Lock()
		u.cancelDial = cancelDial
		u.mu.Unlock()
		s, err := u.opts.Dial(dialCtx, u.opts.URL)
		u.mu.Lock()
		u.cancelDial = nil
		u.mu.Unlock()
		cancelDial()
		if err != nil {
			u.setState(Disconnected)
			if ctx.Err() != nil {
				return nil
			}
			if u.Ticker() != ticker {
				continue
			}
			log.Warnf("stream connect failed: %v, retry in %s", err, u.opts.ReconnectDelay)
			if !u.sleep(ctx) {
				return nil
			}
			continue
		}

		err = u.session(ctx, s, ticker)
		u.mu.Lock()
		u.stream = nil
		u.mu.Unlock()
		s.Close()
		u.setState(Disconnected)

		if ctx.Err() != nil {
			return nil
		}
		if u.Ticker() != ticker {
			continue
		}
		log.Warnf("stream for %s dropped: %v, reconnect in %s", ticker, err, u.opts.ReconnectDelay)
		if !u.sleep(ctx) {
			return nil
		}
	}
}

// session subscribes s to ticker and reads events until the stream fails,
// ctx ends or the followed ticker changes.
func (u *Updater) session(ctx context.Context, s Stream, ticker string) error {
	u.mu.Lock()
	if u.ticker != ticker {
		u.mu.Unlock()
		return errors.New("ticker changed while connecting")
	}
	u.stream = s
	u.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	if err := s.Emit(EventStartStream, map[string]string{"ticker": ticker}); err != nil {
		return fmt.Errorf("emit %s: %w", EventStartStream, err)
	}
	u.setState(Subscribed)
	log.Infof("subscribed to %s", ticker)

	for {
		event, args, err := s.Next()
		if err != nil {
			return err
		}
		if event != EventPriceUpdate || len(args) == 0 {
			continue
		}
		var upd model.PriceUpdate
		if err := json.Unmarshal(args[0], &upd); err != nil {
			log.Errorf("invalid price data %s: %v", string(args[0]), err)
			continue
		}
		u.Apply(upd)
	}
}

func (u *Updater) sleep(ctx context.Context) bool {
	t := time.NewTimer(u.opts.ReconnectDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	case <-u.wake:
		return true
	}
}

// Apply processes one price update against the bound chart.
func (u *Updater) Apply(upd model.PriceUpdate) Tick {
	u.mu.Lock()
	pc := u.chart
	tick := Tick{Ticker: u.ticker}
	u.mu.Unlock()

	if pc == nil || pc.Destroyed() || pc.Len() == 0 {
		tick.Outcome = TickNoChart
		return u.finish(tick, "")
	}

	price, err := parsePrice(upd.Price)
	if err != nil {
		log.Errorf("invalid price data %s: %v", string(upd.Price), err)
		tick.Outcome = TickInvalid
		return u.finish(tick, string(upd.Price))
	}
	at, err := model.ParseTimestamp(upd.Timestamp, u.opts.Location)
	if err != nil {
		log.Errorf("invalid price timestamp: %v", err)
		tick.Outcome = TickInvalid
		return u.finish(tick, upd.Timestamp)
	}
	tick.Price, tick.At = price, at

	switch pc.Append(model.PricePoint{Timestamp: at, Price: price}) {
	case chart.Appended:
		tick.Outcome = TickAppended
	case chart.Stale:
		tick.Outcome = TickStale
	default:
		tick.Outcome = TickNoChart
		return u.finish(tick, "")
	}

	u.mu.Lock()
	u.lastPrice, u.lastUpdate = price, at
	u.mu.Unlock()
	return u.finish(tick, "")
}

func (u *Updater) finish(tick Tick, raw string) Tick {
	if err := u.opts.Recorder.RecordTick(&recorder.TickEvent{
		Ticker:  tick.Ticker,
		Price:   tick.Price,
		At:      tick.At,
		Outcome: string(tick.Outcome),
		Raw:     raw,
	}); err != nil {
		log.Errorf("record tick: %v", err)
	}
	if tick.Outcome != TickNoChart && tick.Outcome != TickInvalid && u.opts.OnTick != nil {
		u.opts.OnTick(tick)
	}
	return tick
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(str)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	f, _ := d.Float64()
	return f, nil
}
