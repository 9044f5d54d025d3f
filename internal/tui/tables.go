package tui

import (
	"bytes"

	"github.com/olekukonko/tablewriter"

	"MarketDash/internal/chart"
	"MarketDash/internal/model"
	"MarketDash/internal/notifier"
)

var canvasTitles = map[chart.Canvas]string{
	chart.CanvasMargin:       "Margins",
	chart.CanvasBalanceSheet: "Balance Sheet",
	chart.CanvasFinancial:    "Quarterly Financials",
}

// renderTable lays a quarterly chart out as a table, one row per quarter.
func renderTable(c *chart.Chart) string {
	format := notifier.FormatAmount
	if c.YTitle == chart.PercentTitle {
		format = notifier.FormatPercent
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	header := []string{"Quarter"}
	for _, ds := range c.Datasets {
		header = append(header, ds.Label)
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, label := range c.Labels {
		row := []string{label}
		for _, ds := range c.Datasets {
			var v model.Value
			if i < len(ds.Values) {
				v = ds.Values[i]
			}
			row = append(row, format(v))
		}
		table.Append(row)
	}
	table.Render()
	return buf.String()
}
