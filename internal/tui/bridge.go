package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"MarketDash/internal/chart"
	"MarketDash/internal/dashboard"
	"MarketDash/internal/stream"
	"MarketDash/internal/tape"
)

// Bridge forwards dashboard updates into the running program as messages.
// It implements dashboard.View and notifier.Alerter.
//
// Updates are queued and delivered in order by a pump goroutine, so they
// never block the caller. That makes it safe to call from inside Update.
type Bridge struct {
	mu     sync.Mutex
	queue  []tea.Msg
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
	closed bool
}

func NewBridge() *Bridge {
	return &Bridge{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Attach starts delivering to p. Updates queued before Attach are kept.
func (b *Bridge) Attach(p *tea.Program) {
	go b.pump(p)
}

// Close stops the pump. Later updates are dropped.
func (b *Bridge) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.queue = nil
		b.mu.Unlock()
		close(b.done)
	})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, msg)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) pump(p *tea.Program) {
	for {
		select {
		case <-b.wake:
		case <-b.done:
			return
		}
		b.mu.Lock()
		batch := b.queue
		b.queue = nil
		b.mu.Unlock()
		for _, msg := range batch {
			select {
			case <-b.done:
				return
			default:
			}
			p.Send(msg)
		}
	}
}

func (b *Bridge) ShowInfo(p dashboard.InfoPanel)   { b.send(infoMsg{panel: p}) }
func (b *Bridge) HideInfo()                        { b.send(hideInfoMsg{}) }
func (b *Bridge) SetPrice(text string)             { b.send(priceMsg{text: text}) }
func (b *Bridge) ChartUpdated(canvas chart.Canvas) { b.send(chartMsg{canvas: canvas}) }
func (b *Bridge) TapeReplaced(items []tape.Item)   { b.send(tapeMsg{items: items}) }
func (b *Bridge) StreamStateChanged(s stream.State) {
	b.send(streamMsg{state: s})
}
func (b *Bridge) Alert(text string) { b.send(alertMsg{text: text}) }
