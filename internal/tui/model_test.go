package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"MarketDash/internal/chart"
	"MarketDash/internal/dashboard"
	"MarketDash/internal/model"
	"MarketDash/internal/stream"
	"MarketDash/internal/tape"
)

type fakeController struct {
	submitted []string
	ranges    []model.TimeRange
}

func (f *fakeController) Submit(ticker string)          { f.submitted = append(f.submitted, ticker) }
func (f *fakeController) SelectRange(r model.TimeRange) { f.ranges = append(f.ranges, r) }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("unexpected model type %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SubmitTicker(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl, chart.NewBoard(chart.DefaultMaxPoints), model.RangeDay, "")

	m = send(t, m, runes("msft"), tea.KeyMsg{Type: tea.KeyEnter})

	if len(ctrl.submitted) != 1 || ctrl.submitted[0] != "msft" {
		t.Errorf("expected submit of msft, got %v", ctrl.submitted)
	}
}

func TestModel_RangeKeysNeedChartFocus(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl, chart.NewBoard(chart.DefaultMaxPoints), model.RangeDay, "AAPL")

	// typed into the form while it has focus
	m = send(t, m, runes("2"))
	if len(ctrl.ranges) != 0 {
		t.Fatalf("range selected while typing: %v", ctrl.ranges)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("2"), runes("4"))
	want := []model.TimeRange{model.RangeMonth, model.RangeYTD}
	if len(ctrl.ranges) != len(want) {
		t.Fatalf("expected %v, got %v", want, ctrl.ranges)
	}
	for i := range want {
		if ctrl.ranges[i] != want[i] {
			t.Errorf("range %d: expected %s, got %s", i, want[i], ctrl.ranges[i])
		}
	}
	if m.rng != model.RangeYTD {
		t.Errorf("expected active range ytd, got %s", m.rng)
	}
}

func TestModel_AlertIsModal(t *testing.T) {
	ctrl := &fakeController{}
	m := New(ctrl, chart.NewBoard(chart.DefaultMaxPoints), model.RangeDay, "ZZZZ")

	m = send(t, m, alertMsg{text: "An error occurred while fetching the data: boom"})
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("alert not shown:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(ctrl.submitted) != 0 {
		t.Errorf("enter on the alert must not submit, got %v", ctrl.submitted)
	}
	if m.alert != "" {
		t.Error("expected alert dismissed")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(ctrl.submitted) != 1 {
		t.Errorf("expected submit after dismissal, got %v", ctrl.submitted)
	}
}

func TestModel_ViewShowsUpdates(t *testing.T) {
	board := chart.NewBoard(chart.DefaultMaxPoints)
	if _, err := board.RenderPrice("AAPL", "Apple Inc.", model.RangeDay, series(180, 181, 182)); err != nil {
		t.Fatalf("render: %v", err)
	}
	m := New(&fakeController{}, board, model.RangeDay, "AAPL")

	m = send(t, m,
		tea.WindowSizeMsg{Width: 100, Height: 50},
		infoMsg{panel: dashboard.InfoPanel{Ticker: "AAPL", CompanyName: "Apple Inc.", StockPrice: "$182.00", PERatio: "31.42"}},
		priceMsg{text: "$182.50"},
		tapeMsg{items: []tape.Item{{Symbol: "NVDA", Text: "NVDA: $900.00 ▲12.00 (1.35%)", Class: "positive"}}},
		streamMsg{state: stream.Subscribed},
	)

	out := m.View()
	for _, want := range []string{"Apple Inc.", "$182.50", "31.42", "NVDA: $900.00", stream.Subscribed.String()} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in view", want)
		}
	}

	m = send(t, m, hideInfoMsg{})
	if strings.Contains(m.View(), "P/E Ratio") {
		t.Error("expected info panel hidden")
	}
}

func TestModel_TapeScrolls(t *testing.T) {
	m := New(&fakeController{}, chart.NewBoard(chart.DefaultMaxPoints), model.RangeDay, "")
	m = send(t, m, tapeMsg{items: []tape.Item{{Text: "A"}, {Text: "B"}}})

	m = send(t, m, scrollMsg{})
	if m.tapeOffset != 1 {
		t.Errorf("expected offset 1, got %d", m.tapeOffset)
	}
	m = send(t, m, scrollMsg{})
	if m.tapeOffset != 0 {
		t.Errorf("expected offset to wrap to 0, got %d", m.tapeOffset)
	}
}
