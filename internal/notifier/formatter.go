package notifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"MarketDash/internal/model"
)

// NotAvailable is shown for values the backend could not provide.
const NotAvailable = "N/A"

// NotFoundMessage is the alert raised for a failure without a message.
const NotFoundMessage = "The stock you are searching for could not be found, remember to type in the company's Ticker symbol"

func fixed2(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

// FormatPrice renders a price as "$x.xx", or N/A.
func FormatPrice(v model.Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return "$" + fixed2(v.Float)
}

// FormatRatio renders a ratio as "x.xx", or N/A.
func FormatRatio(v model.Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return fixed2(v.Float)
}

// FormatPercent renders a percentage as "x.xx%", or N/A.
func FormatPercent(v model.Value) string {
	if !v.Valid {
		return NotAvailable
	}
	return fixed2(v.Float) + "%"
}

// FormatAmount renders a dollar amount with thousands separators, or N/A.
func FormatAmount(v model.Value) string {
	if !v.Valid {
		return NotAvailable
	}
	if v.Float < 0 {
		return "-$" + humanize.CommafWithDigits(math.Abs(v.Float), 2)
	}
	return "$" + humanize.CommafWithDigits(v.Float, 2)
}

// FormatTickerItem renders one ticker tape entry: "SYM: $P.PP ▲C.CC (X.XX%)".
func FormatTickerItem(m model.Mover) string {
	arrow := "▲"
	if m.Change < 0 {
		arrow = "▼"
	}
	return fmt.Sprintf("%s: $%s %s%s (%s%%)",
		m.Symbol, fixed2(m.Price), arrow, fixed2(math.Abs(m.Change)), fixed2(m.PercentChange))
}

// ItemClass is "positive" for a non-negative change, else "negative".
func ItemClass(m model.Mover) string {
	if m.Change >= 0 {
		return "positive"
	}
	return "negative"
}

// FormatAlert builds the alert text for a failed fetch message.
func FormatAlert(msg string) string {
	if msg == "" {
		return NotFoundMessage
	}
	return "An error occurred while fetching the data: " + msg
}

// FormatInfoPanel formats the financial info panel for display.
func FormatInfoPanel(company, price, pe, industry string) string {
	var b strings.Builder
	b.WriteString(company + "\n")
	b.WriteString(fmt.Sprintf("Stock Price: %s\n", price))
	b.WriteString(fmt.Sprintf("P/E Ratio: %s", pe))
	if industry != "" {
		b.WriteString(fmt.Sprintf("\nIndustry: %s", industry))
	}
	return b.String()
}
