package chart

import "MarketDash/internal/model"

const (
	PercentTitle = "Percentage (%)"
	AmountTitle  = "Amount ($)"
)

func newMarginChart(data []model.MarginQuarter) *Chart {
	labels := make([]string, len(data))
	gross := make([]model.Value, len(data))
	operating := make([]model.Value, len(data))
	net := make([]model.Value, len(data))
	for i, q := range data {
		labels[i] = q.Date
		gross[i] = q.GrossMargin
		operating[i] = q.OperatingMargin
		net[i] = q.NetIncomeMargin
	}
	return &Chart{
		Canvas: CanvasMargin,
		Kind:   KindLine,
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Gross Margin", Color: "rgba(75, 192, 192, 1)", Values: gross},
			{Label: "Operating Margin", Color: "rgba(255, 159, 64, 1)", Values: operating},
			{Label: "Net Income Margin", Color: "rgba(153, 102, 255, 1)", Values: net},
		},
		YTitle:      PercentTitle,
		BeginAtZero: true,
	}
}

func newBalanceSheetChart(data []model.BalanceSheetQuarter) *Chart {
	labels := make([]string, len(data))
	ca := make([]model.Value, len(data))
	cl := make([]model.Value, len(data))
	la := make([]model.Value, len(data))
	ll := make([]model.Value, len(data))
	for i, q := range data {
		labels[i] = q.Date
		ca[i] = q.CurrentAssets
		cl[i] = q.CurrentLiabilities
		la[i] = q.LongTermAssets
		ll[i] = q.LongTermLiabilities
	}
	return &Chart{
		Canvas: CanvasBalanceSheet,
		Kind:   KindBar,
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Current Assets", Color: "rgba(75, 192, 192, 0.6)", Values: ca},
			{Label: "Current Liabilities", Color: "rgba(255, 99, 132, 0.6)", Values: cl},
			{Label: "Long Term Assets", Color: "rgba(54, 162, 235, 0.6)", Values: la},
			{Label: "Long Term Liabilities", Color: "rgba(255, 206, 86, 0.6)", Values: ll},
		},
		YTitle:      AmountTitle,
		BeginAtZero: true,
	}
}

func newFinancialChart(data []model.QuarterlyFinancials) *Chart {
	labels := make([]string, len(data))
	sets := [6][]model.Value{}
	for i := range sets {
		sets[i] = make([]model.Value, len(data))
	}
	for i, q := range data {
		labels[i] = q.Date
		sets[0][i] = q.Revenue
		sets[1][i] = q.OperatingIncome
		sets[2][i] = q.NetIncome
		sets[3][i] = q.OperatingCashFlow
		sets[4][i] = q.FreeCashFlow
		sets[5][i] = q.CashBalance
	}
	return &Chart{
		Canvas: CanvasFinancial,
		Kind:   KindBar,
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Revenue", Color: "rgba(75, 192, 192, 0.6)", Values: sets[0]},
			{Label: "Operating Income", Color: "rgba(255, 159, 64, 0.6)", Values: sets[1]},
			{Label: "Net Income", Color: "rgba(153, 102, 255, 0.6)", Values: sets[2]},
			{Label: "Operating Cash Flow", Color: "rgba(255, 205, 86, 0.6)", Values: sets[3]},
			{Label: "Free Cash Flow", Color: "rgba(54, 162, 235, 0.6)", Values: sets[4]},
			{Label: "Cash Balance", Color: "rgba(0, 255, 0, 0.6)", Values: sets[5]},
		},
		YTitle:      AmountTitle,
		BeginAtZero: true,
	}
}
