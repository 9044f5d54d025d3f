package chart

import "MarketDash/internal/model"

// TimeScale is the x axis granularity of the price chart.
type TimeScale struct {
	Unit          string // "hour", "day" or "month"
	TooltipFormat string // date-fns style, as the backend's web client uses
	Layout        string // the same format as a Go time layout
}

var scales = map[model.TimeRange]TimeScale{
	model.RangeDay:   {Unit: "hour", TooltipFormat: "HH:mm", Layout: "15:04"},
	model.RangeMonth: {Unit: "day", TooltipFormat: "MMM d", Layout: "Jan 2"},
	model.RangeYear:  {Unit: "month", TooltipFormat: "MMM yyyy", Layout: "Jan 2006"},
	model.RangeYTD:   {Unit: "month", TooltipFormat: "MMM yyyy", Layout: "Jan 2006"},
}

var defaultScale = TimeScale{Unit: "day", TooltipFormat: "MMM d, yyyy", Layout: "Jan 2, 2006"}

// ScaleFor returns the time scale for a range. Unknown ranges get the default.
func ScaleFor(r model.TimeRange) TimeScale {
	if s, ok := scales[r]; ok {
		return s
	}
	return defaultScale
}
