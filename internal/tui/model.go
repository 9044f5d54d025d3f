// Package tui is the terminal rendition of the dashboard page.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"MarketDash/internal/chart"
	"MarketDash/internal/dashboard"
	"MarketDash/internal/model"
	"MarketDash/internal/notifier"
	"MarketDash/internal/stream"
	"MarketDash/internal/tape"
)

const (
	scrollInterval = 2 * time.Second
	plotHeight     = 12
)

// Controller is what the page drives.
type Controller interface {
	Submit(ticker string)
	SelectRange(r model.TimeRange)
}

type (
	infoMsg     struct{ panel dashboard.InfoPanel }
	hideInfoMsg struct{}
	priceMsg    struct{ text string }
	chartMsg    struct{ canvas chart.Canvas }
	tapeMsg     struct{ items []tape.Item }
	streamMsg   struct{ state stream.State }
	alertMsg    struct{ text string }
	scrollMsg   time.Time
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctrl  Controller
	board *chart.Board

	input  textinput.Model
	tables viewport.Model

	width, height int
	focusChart    bool

	rng        model.TimeRange
	info       *dashboard.InfoPanel
	price      string
	tape       []tape.Item
	tapeOffset int
	state      stream.State
	alert      string
}

// New creates the page model. ticker pre-fills the form.
func New(ctrl Controller, board *chart.Board, rng model.TimeRange, ticker string) Model {
	in := textinput.New()
	in.Placeholder = "AAPL"
	in.CharLimit = 12
	in.Width = 12
	in.SetValue(ticker)
	in.Focus()

	return Model{
		ctrl:   ctrl,
		board:  board,
		input:  in,
		tables: viewport.New(80, 10),
		width:  80,
		height: 40,
		rng:    rng,
	}
}

func scrollCmd() tea.Cmd {
	return tea.Tick(scrollInterval, func(t time.Time) tea.Msg {
		return scrollMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, scrollCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tables.Width = m.width
		m.tables.Height = m.tablesHeight()
		m.tables.SetContent(m.renderTables())
		return m, nil

	case infoMsg:
		p := msg.panel
		m.info = &p
		m.price = p.StockPrice
		m.tables.Height = m.tablesHeight()
		m.tables.SetContent(m.renderTables())
		return m, nil

	case hideInfoMsg:
		m.info = nil
		m.tables.Height = m.tablesHeight()
		m.tables.SetContent(m.renderTables())
		return m, nil

	case priceMsg:
		m.price = msg.text
		return m, nil

	case chartMsg:
		if msg.canvas != chart.CanvasPrice {
			m.tables.SetContent(m.renderTables())
		}
		return m, nil

	case tapeMsg:
		m.tape = msg.items
		m.tapeOffset = 0
		return m, nil

	case streamMsg:
		m.state = msg.state
		return m, nil

	case alertMsg:
		m.alert = msg.text
		return m, nil

	case scrollMsg:
		if len(m.tape) > 0 {
			m.tapeOffset = (m.tapeOffset + 1) % len(m.tape)
		}
		return m, scrollCmd()
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// alerts are modal
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			m.alert = ""
		}
		return m, nil
	}

	if msg.String() == "tab" {
		m.focusChart = !m.focusChart
		if m.focusChart {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	if !m.focusChart {
		if msg.Type == tea.KeyEnter {
			m.ctrl.Submit(m.input.Value())
			return m, nil
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		r := model.Ranges[int(msg.String()[0]-'1')]
		m.rng = r
		m.ctrl.SelectRange(r)
		return m, nil
	case "q":
		return m, tea.Quit
	}
	m.tables, cmd = m.tables.Update(msg)
	return m, cmd
}

func (m Model) tablesHeight() int {
	used := 4 + plotHeight + 2
	if m.info != nil {
		used += 6
	}
	if h := m.height - used; h > 3 {
		return h
	}
	return 3
}

func (m Model) View() string {
	if m.alert != "" {
		box := alertStyle.Render(m.alert + "\n\n" + dimStyle.Render("[enter] OK"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(padRight(" MarketDash", m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderTape())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Ticker: ") + m.input.View() + "  " + m.renderButtons())
	b.WriteString("\n")

	if m.info != nil {
		b.WriteString(m.renderInfo())
		b.WriteString("\n")
	}

	if pc := m.board.Price(); pc != nil {
		v := pc.View()
		b.WriteString(labelStyle.Render(v.Label) + "  " + m.price + "  " + rangeChange(v) + "\n")
		b.WriteString(plotPrice(v, m.width, plotHeight))
	} else {
		b.WriteString(dimStyle.Render("enter a ticker symbol to load its chart"))
	}
	b.WriteString("\n")
	b.WriteString(m.tables.View())
	b.WriteString("\n")

	focus := "form"
	if m.focusChart {
		focus = "charts"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("stream: %s  focus: %s  [tab] switch  [1-4] range  [ctrl+c] quit", m.state, focus)))
	return b.String()
}

func (m Model) renderTape() string {
	if len(m.tape) == 0 {
		return dimStyle.Render("loading top movers...")
	}
	parts := make([]string, 0, len(m.tape))
	for i := range m.tape {
		it := m.tape[(i+m.tapeOffset)%len(m.tape)]
		style := positiveStyle
		if it.Class == "negative" {
			style = negativeStyle
		}
		parts = append(parts, style.Render(it.Text))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "   "))
}

func (m Model) renderButtons() string {
	labels := map[model.TimeRange]string{
		model.RangeDay:   "1 Day",
		model.RangeMonth: "2 Month",
		model.RangeYear:  "3 Year",
		model.RangeYTD:   "4 YTD",
	}
	parts := make([]string, 0, len(model.Ranges))
	for _, r := range model.Ranges {
		style := buttonStyle
		if r == m.rng {
			style = activeButton
		}
		parts = append(parts, style.Render(labels[r]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderInfo() string {
	p := m.info
	title := labelStyle.Render(p.CompanyName) + dimStyle.Render(" ("+p.Ticker+")")
	text := notifier.FormatInfoPanel(title, p.StockPrice, p.PERatio, p.Industry)
	return panelStyle.Width(m.width - 2).Render(text)
}

func (m Model) renderTables() string {
	var parts []string
	if m.info != nil && m.info.Description != "" {
		desc := lipgloss.NewStyle().Width(m.width).Render(m.info.Description)
		parts = append(parts, labelStyle.Render("About")+"\n"+desc)
	}
	for _, canvas := range []chart.Canvas{chart.CanvasMargin, chart.CanvasBalanceSheet, chart.CanvasFinancial} {
		c := m.board.Chart(canvas)
		if c == nil {
			continue
		}
		parts = append(parts, labelStyle.Render(canvasTitles[canvas])+"\n"+renderTable(c))
	}
	return strings.Join(parts, "\n")
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
