package dashboard

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"MarketDash/internal/chart"
	"MarketDash/internal/notifier"
	"MarketDash/internal/stream"
	"MarketDash/internal/tape"
)

// InfoPanel is the financial info block shown after a successful snapshot.
type InfoPanel struct {
	Ticker      string
	CompanyName string
	StockPrice  string
	PERatio     string
	Industry    string
	Description string
}

// View receives everything the dashboard displays. Implementations must be
// safe for use from several goroutines.
type View interface {
	ShowInfo(p InfoPanel)
	HideInfo()
	SetPrice(text string)
	ChartUpdated(canvas chart.Canvas)
	TapeReplaced(items []tape.Item)
	StreamStateChanged(s stream.State)
}

// LogView writes dashboard updates to the log. Used in headless mode.
type LogView struct {
	Board *chart.Board
}

func (v LogView) ShowInfo(p InfoPanel) {
	text := notifier.FormatInfoPanel(p.CompanyName, p.StockPrice, p.PERatio, p.Industry)
	log.WithField("ticker", p.Ticker).Info(strings.ReplaceAll(text, "\n", ", "))
}

func (v LogView) HideInfo() {}

func (v LogView) SetPrice(text string) {
	log.Infof("current price %s", text)
}

func (v LogView) ChartUpdated(canvas chart.Canvas) {
	if canvas != chart.CanvasPrice || v.Board == nil {
		log.Debugf("%s updated", canvas)
		return
	}
	pc := v.Board.Price()
	if pc == nil {
		log.Info("price chart cleared")
		return
	}
	y := pc.YAxis()
	log.Debugf("price chart %s: %d points, y %.2f..%.2f", pc.Ticker(), pc.Len(), y.Min, y.Max)
}

func (v LogView) TapeReplaced(items []tape.Item) {
	log.Infof("ticker tape: %d movers", len(items))
	for _, it := range items {
		log.Debugf("  %s [%s]", it.Text, it.Class)
	}
}

func (v LogView) StreamStateChanged(s stream.State) {
	log.Infof("stream %s", s)
}
