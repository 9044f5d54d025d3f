// Package dashboard wires the page: the ticker form, the range buttons and
// the fetches they trigger.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/chart"
	"MarketDash/internal/collector"
	"MarketDash/internal/model"
	"MarketDash/internal/notifier"
	"MarketDash/internal/session"
	"MarketDash/internal/stream"
)

// Follower is pointed at the ticker whose live prices feed the price chart.
type Follower interface {
	Follow(ticker string, pc *chart.PriceChart)
}

// Controller handles user input and applies fetch results to the view.
type Controller struct {
	ctx      context.Context
	col      *collector.Collector
	board    *chart.Board
	sess     *session.Manager
	follower Follower
	view     View
	alerter  notifier.Alerter
	loc      *time.Location

	wg sync.WaitGroup
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Collector *collector.Collector
	Board     *chart.Board
	Session   *session.Manager
	Follower  Follower
	View      View
	Alerter   notifier.Alerter
	Location  *time.Location
}

// NewController creates a controller. Fetches it starts stop with ctx.
func NewController(ctx context.Context, d Deps) *Controller {
	if d.Alerter == nil {
		d.Alerter = notifier.LogAlerter{}
	}
	return &Controller{
		ctx:      ctx,
		col:      d.Collector,
		board:    d.Board,
		sess:     d.Session,
		follower: d.Follower,
		view:     d.View,
		alerter:  d.Alerter,
		loc:      d.Location,
	}
}

// Submit selects ticker and fetches its snapshot and price series in parallel.
func (c *Controller) Submit(raw string) {
	ticker := session.NormalizeTicker(raw)
	if ticker == "" {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.fail(errors.New(""))
		}()
		return
	}
	snapTok, priceTok := c.sess.Begin(ticker)
	log.Infof("loading %s (%s)", ticker, priceTok.Range)

	c.wg.Add(2)
	go c.loadSnapshot(snapTok)
	go c.loadPrices(priceTok)
}

// SelectRange sets the time range and refetches the price series of the
// selected ticker, if any.
func (c *Controller) SelectRange(r model.TimeRange) {
	tok, ok := c.sess.SetRange(r)
	if !ok {
		return
	}
	c.wg.Add(1)
	go c.loadPrices(tok)
}

// HandleTick shows the price of a processed stream update.
func (c *Controller) HandleTick(t stream.Tick) {
	if !c.sess.RecordPrice(t.Ticker, t.Price, t.At) {
		return
	}
	c.view.SetPrice(notifier.FormatPrice(model.Num(t.Price)))
	if t.Outcome == stream.TickAppended {
		c.view.ChartUpdated(chart.CanvasPrice)
	}
}

// Wait blocks until all started fetches have been applied or discarded.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) loadSnapshot(tok session.Token) {
	defer c.wg.Done()

	snap, err := c.col.Snapshot(c.ctx, tok.Ticker)
	if c.ctx.Err() != nil {
		return
	}
	if !c.sess.Fresh(tok) {
		log.Debugf("discard stale snapshot of %s", tok.Ticker)
		return
	}
	if err != nil {
		c.failFresh(tok, err)
		return
	}

	var updated []chart.Canvas
	render := func(ch *chart.Chart, err error) {
		if err != nil {
			log.Errorf("render chart: %v", err)
			return
		}
		updated = append(updated, ch.Canvas)
	}
	// the view is updated under the session lock
	committed := c.sess.Commit(tok, func(st *session.State) {
		st.CompanyName = snap.CompanyName
		if len(snap.MarginData) > 0 {
			render(c.board.RenderMargin(snap.MarginData))
		}
		if len(snap.BalanceSheetData) > 0 {
			render(c.board.RenderBalanceSheet(snap.BalanceSheetData))
		}
		if len(snap.QuarterlyData) > 0 {
			render(c.board.RenderFinancial(snap.QuarterlyData))
		}

		c.view.ShowInfo(InfoPanel{
			Ticker:      tok.Ticker,
			CompanyName: snap.CompanyName,
			StockPrice:  notifier.FormatPrice(snap.StockPrice),
			PERatio:     notifier.FormatRatio(snap.PERatio),
			Industry:    snap.Industry,
			Description: snap.Description,
		})
		for _, canvas := range updated {
			c.view.ChartUpdated(canvas)
		}
	})
	if !committed {
		log.Debugf("discard stale snapshot of %s", tok.Ticker)
	}
}

func (c *Controller) loadPrices(tok session.Token) {
	defer c.wg.Done()

	series, err := c.col.Prices(c.ctx, tok.Ticker, tok.Range)
	if c.ctx.Err() != nil {
		return
	}
	if !c.sess.Fresh(tok) {
		log.Debugf("discard stale %s prices of %s", tok.Range, tok.Ticker)
		return
	}
	if err != nil {
		c.failFresh(tok, err)
		return
	}

	points := chart.PointsFromSamples(series.PriceData, c.loc)
	var pc *chart.PriceChart
	committed := c.sess.Commit(tok, func(st *session.State) {
		pc, err = c.board.RenderPrice(tok.Ticker, series.CompanyName, tok.Range, points)
		if err != nil {
			return
		}
		st.CompanyName = series.CompanyName
		st.LastPrice = series.CurrentPrice
		st.Chart = pc
		if pc != nil {
			if last, ok := pc.Last(); ok {
				st.LastUpdate = last.Timestamp
			}
		}
		c.view.ChartUpdated(chart.CanvasPrice)
		c.view.SetPrice(notifier.FormatPrice(series.CurrentPrice))
	})
	if !committed {
		log.Debugf("discard stale %s prices of %s", tok.Range, tok.Ticker)
		return
	}
	if err != nil {
		log.Errorf("render price chart: %v", err)
		return
	}
	c.follower.Follow(tok.Ticker, pc)
}

// failFresh raises err only while tok is still the current session.
func (c *Controller) failFresh(tok session.Token, err error) {
	if !c.sess.Commit(tok, func(*session.State) { c.fail(err) }) {
		log.Debugf("discard stale failure of %s: %v", tok.Ticker, err)
	}
}

// fail is the single alert path of every failed fetch.
func (c *Controller) fail(err error) {
	c.view.HideInfo()
	c.alerter.Alert(notifier.FormatAlert(collector.Message(err)))
}
