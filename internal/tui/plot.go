package tui

import (
	"fmt"
	"strings"

	"MarketDash/internal/calculator"
	"MarketDash/internal/chart"
)

const plotDot = "•"

// plotPrice draws the price series as a dot chart of width x height cells,
// with the y bounds on the left and the x bounds below.
func plotPrice(v chart.PriceView, width, height int) string {
	if len(v.Points) == 0 {
		return dimStyle.Render("no price data")
	}
	if height < 2 {
		height = 2
	}

	top := fmt.Sprintf("%.2f", v.Y.Max)
	bottom := fmt.Sprintf("%.2f", v.Y.Min)
	gutter := len(top)
	if len(bottom) > gutter {
		gutter = len(bottom)
	}
	cols := width - gutter - 2
	if cols < 1 {
		cols = 1
	}

	grid := make([][]bool, height)
	for r := range grid {
		grid[r] = make([]bool, cols)
	}
	n := len(v.Points)
	for col := 0; col < cols; col++ {
		start, end := col*n/cols, (col+1)*n/cols
		if end == start {
			continue
		}
		// last point falling into this column
		pos, err := calculator.Position(v.Points[end-1].Price, v.Y.Max, v.Y.Min)
		if err != nil {
			continue
		}
		row := height - 1 - int(pos*float64(height-1)+0.5)
		grid[row][col] = true
	}

	var b strings.Builder
	for r := 0; r < height; r++ {
		label := ""
		switch r {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s ┤", gutter, label)))
		for c := 0; c < cols; c++ {
			if grid[r][c] {
				b.WriteString(lineStyle.Render(plotDot))
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	first := v.X.Min.Format(v.X.Layout)
	last := v.X.Max.Format(v.X.Layout)
	pad := cols - len(first) - len(last)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(strings.Repeat(" ", gutter+2))
	b.WriteString(axisStyle.Render(first + strings.Repeat(" ", pad) + last))
	return b.String()
}

// rangeChange is the change over the plotted points, e.g. "+1.25%".
func rangeChange(v chart.PriceView) string {
	if len(v.Points) < 2 {
		return ""
	}
	pct, err := calculator.PercentChange(v.Points[0].Price, v.Points[len(v.Points)-1].Price)
	if err != nil {
		return ""
	}
	if pct < 0 {
		return negativeStyle.Render(fmt.Sprintf("%.2f%%", pct))
	}
	return positiveStyle.Render(fmt.Sprintf("+%.2f%%", pct))
}
