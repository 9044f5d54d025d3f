package chart

import (
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/calculator"
	"MarketDash/internal/model"
)

// DefaultMaxPoints is the size of the live price window.
const DefaultMaxPoints = 390

// PriceTitle is the y axis title of the price chart.
const PriceTitle = "Price ($)"

// TimeAxis is the x axis of the price chart.
type TimeAxis struct {
	TimeScale
	Min, Max time.Time
}

// ValueAxis is a numeric y axis.
type ValueAxis struct {
	Title       string
	Min, Max    float64
	BeginAtZero bool
}

// Outcome says what Append did with a point.
type Outcome int

const (
	Appended Outcome = iota
	Stale            // not after the last plotted point
	Empty            // chart has no points to extend
	Detached         // chart was destroyed
)

func (o Outcome) String() string {
	switch o {
	case Appended:
		return "APPENDED"
	case Stale:
		return "STALE"
	case Empty:
		return "EMPTY"
	case Detached:
		return "DETACHED"
	default:
		return "UNKNOWN"
	}
}

// PriceChart is the time-series line chart of one ticker. Its series is
// bounded to maxPoints; the oldest point is evicted on overflow.
type PriceChart struct {
	mu        sync.RWMutex
	ticker    string
	label     string
	rng       model.TimeRange
	points    []model.PricePoint
	maxPoints int
	x         TimeAxis
	y         ValueAxis
	destroyed bool
}

// PriceView is a consistent copy of a price chart.
type PriceView struct {
	Ticker string
	Label  string
	Range  model.TimeRange
	Points []model.PricePoint
	X      TimeAxis
	Y      ValueAxis
}

func newPriceChart(ticker, label string, rng model.TimeRange, points []model.PricePoint, maxPoints int) *PriceChart {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	sorted := make([]model.PricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	if len(sorted) > maxPoints {
		sorted = sorted[len(sorted)-maxPoints:]
	}
	c := &PriceChart{
		ticker:    ticker,
		label:     label,
		rng:       rng,
		points:    sorted,
		maxPoints: maxPoints,
		x:         TimeAxis{TimeScale: ScaleFor(rng)},
		y:         ValueAxis{Title: PriceTitle},
	}
	c.rescale()
	return c
}

// Append adds p when it is strictly after the last plotted point, evicts the
// oldest point past the bound and rescales both axes.
func (c *PriceChart) Append(p model.PricePoint) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return Detached
	}
	if len(c.points) == 0 {
		return Empty
	}
	if !p.Timestamp.After(c.points[len(c.points)-1].Timestamp) {
		return Stale
	}
	c.points = append(c.points, p)
	if len(c.points) > c.maxPoints {
		c.points = append(c.points[:0], c.points[len(c.points)-c.maxPoints:]...)
	}
	c.rescale()
	return Appended
}

// rescale sets x to [first, last] and y to the padded price range. Callers hold mu.
func (c *PriceChart) rescale() {
	first, last, err := calculator.TimeSpan(c.points)
	if err != nil {
		return
	}
	c.x.Min, c.x.Max = first, last
	if min, max, err := calculator.YBounds(c.points); err == nil {
		c.y.Min, c.y.Max = min, max
	}
}

// Reset clears the series.
func (c *PriceChart) Reset() {
	c.mu.Lock()
	c.points = nil
	c.mu.Unlock()
	log.Debugf("price chart for %s reset", c.ticker)
}

func (c *PriceChart) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.mu.Unlock()
}

func (c *PriceChart) Destroyed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.destroyed
}

func (c *PriceChart) Ticker() string { return c.ticker }

func (c *PriceChart) Range() model.TimeRange { return c.rng }

func (c *PriceChart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.points)
}

// Last returns the last plotted point.
func (c *PriceChart) Last() (model.PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.points) == 0 {
		return model.PricePoint{}, false
	}
	return c.points[len(c.points)-1], true
}

// Points returns a copy of the series.
func (c *PriceChart) Points() []model.PricePoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.PricePoint, len(c.points))
	copy(out, c.points)
	return out
}

func (c *PriceChart) XAxis() TimeAxis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.x
}

func (c *PriceChart) YAxis() ValueAxis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.y
}

// View returns a copy of the whole chart under one lock.
func (c *PriceChart) View() PriceView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pts := make([]model.PricePoint, len(c.points))
	copy(pts, c.points)
	return PriceView{Ticker: c.ticker, Label: c.label, Range: c.rng, Points: pts, X: c.x, Y: c.y}
}

// PointsFromSamples converts backend samples into plottable points. Samples
// with a non-numeric price or an unreadable date are dropped.
func PointsFromSamples(samples []model.PriceSample, loc *time.Location) []model.PricePoint {
	out := make([]model.PricePoint, 0, len(samples))
	for _, s := range samples {
		if !s.Price.Valid {
			continue
		}
		ts, err := model.ParseTimestamp(s.Date, loc)
		if err != nil {
			log.Warnf("skip price sample: %v", err)
			continue
		}
		out = append(out, model.PricePoint{Timestamp: ts, Price: s.Price.Float})
	}
	return out
}
