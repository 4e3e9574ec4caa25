package catalog

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// TrendPoint is one day of aggregated sales.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Sales  float64   `json:"sales"`
	Orders int       `json:"orders"`
}

// ForecastPoint is one projected day of sales.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
}

// ForecastSales projects daily sales for the next horizon days using an
// ordinary least-squares slope over the indexed history. Projection for day
// n+i is mean(history) + slope*(n+i-1), clamped at zero. An illustrative
// projection, not a statistical model.
func ForecastSales(history []TrendPoint, horizon int) []ForecastPoint {
	if len(history) < 2 || horizon <= 0 {
		return nil
	}

	n := len(history)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, point := range history {
		xs[i] = float64(i)
		ys[i] = point.Sales
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	mean := stat.Mean(ys, nil)

	lastDate := history[n-1].Date
	forecast := make([]ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := mean + slope*float64(n+i-1)
		if predicted < 0 {
			predicted = 0
		}
		forecast = append(forecast, ForecastPoint{
			Date:     lastDate.AddDate(0, 0, i),
			Forecast: predicted,
		})
	}
	return forecast
}
