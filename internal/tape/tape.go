// Package tape keeps the scrolling ticker tape of top movers.
package tape

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/model"
	"MarketDash/internal/notifier"
	"MarketDash/internal/recorder"
)

// MoverSource provides the current top movers.
type MoverSource interface {
	Movers(ctx context.Context) ([]model.Mover, error)
}

// Item is one rendered tape entry.
type Item struct {
	Symbol string
	Text   string
	Class  string // "positive" or "negative"
}

// Tape holds the rendered entries of the last successful poll.
type Tape struct {
	src MoverSource
	rec recorder.Recorder

	mu       sync.RWMutex
	items    []Item
	onUpdate func([]Item)
}

// New creates a tape fed by src. A nil recorder journals nothing.
func New(src MoverSource, rec recorder.Recorder) *Tape {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Tape{src: src, rec: rec}
}

// OnUpdate registers fn to receive the entries after every successful poll.
func (t *Tape) OnUpdate(fn func([]Item)) {
	t.mu.Lock()
	t.onUpdate = fn
	t.mu.Unlock()
}

// Poll fetches the movers once. On success the entries are replaced wholesale;
// on failure the stale entries stay.
func (t *Tape) Poll(ctx context.Context) error {
	movers, err := t.src.Movers(ctx)
	if err != nil {
		log.Errorf("error fetching top movers: %v", err)
		t.record(&recorder.TapePollEvent{OK: false, Error: err.Error()})
		return err
	}

	items := Render(movers)
	t.mu.Lock()
	t.items = items
	fn := t.onUpdate
	t.mu.Unlock()

	t.record(&recorder.TapePollEvent{Count: len(items), OK: true})
	log.Debugf("ticker tape updated with %d movers", len(items))
	if fn != nil {
		fn(Snapshot(items))
	}
	return nil
}

func (t *Tape) record(evt *recorder.TapePollEvent) {
	if err := t.rec.RecordTapePoll(evt); err != nil {
		log.Errorf("record tape poll: %v", err)
	}
}

// Items returns a copy of the current entries.
func (t *Tape) Items() []Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot(t.items)
}

// Render turns movers into tape entries, one per mover, in order.
func Render(movers []model.Mover) []Item {
	items := make([]Item, len(movers))
	for i, m := range movers {
		items[i] = Item{
			Symbol: m.Symbol,
			Text:   notifier.FormatTickerItem(m),
			Class:  notifier.ItemClass(m),
		}
	}
	return items
}

// Snapshot copies items.
func Snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
