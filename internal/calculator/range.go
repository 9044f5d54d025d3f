package calculator

import (
	"errors"
	"math"
	"time"

	"MarketDash/internal/model"
)

// PaddingFraction is the share of the price range added above and below the
// plotted prices when rescaling the y axis.
const PaddingFraction = 0.2

// PriceRange scans the points and returns the highest and lowest price.
func PriceRange(points []model.PricePoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, nil
}

// PaddedBounds widens [low, high] by frac of its width on each side.
// A flat range stays flat.
func PaddedBounds(high, low, frac float64) (min, max float64) {
	pad := (high - low) * frac
	return low - pad, high + pad
}

// YBounds returns the padded y axis bounds over the points.
func YBounds(points []model.PricePoint) (min, max float64, err error) {
	high, low, err := PriceRange(points)
	if err != nil {
		return 0, 0, err
	}
	min, max = PaddedBounds(high, low, PaddingFraction)
	return min, max, nil
}

// TimeSpan returns the timestamps of the first and last point.
func TimeSpan(points []model.PricePoint) (first, last time.Time, err error) {
	if len(points) == 0 {
		return time.Time{}, time.Time{}, errors.New("no points provided")
	}
	return points[0].Timestamp, points[len(points)-1].Timestamp, nil
}

// Position returns where value sits within [low, high] (0.0~1.0).
func Position(value, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (value - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// PercentChange returns the change from first to last in percent.
func PercentChange(first, last float64) (float64, error) {
	if first == 0 {
		return 0, errors.New("first value is zero")
	}
	return (last - first) / first * 100, nil
}
