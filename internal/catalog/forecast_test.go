package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func trendSeries(n int, f func(i int) float64) []TrendPoint {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]TrendPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, TrendPoint{Date: start.AddDate(0, 0, i), Sales: f(i)})
	}
	return points
}

func TestForecastSalesLinearSeries(t *testing.T) {
	// Perfectly linear history: slope 2, mean 23 over 14 days.
	history := trendSeries(14, func(i int) float64 { return 10 + 2*float64(i) })

	forecast := ForecastSales(history, 7)
	require.Len(t, forecast, 7)

	// Day n+1 projects mean + slope*n.
	require.InDelta(t, 23+2*14, forecast[0].Forecast, 0.0001)
	require.InDelta(t, 23+2*20, forecast[6].Forecast, 0.0001)

	// Dates continue day by day after the last historical point.
	require.Equal(t, history[13].Date.AddDate(0, 0, 1), forecast[0].Date)
	require.Equal(t, history[13].Date.AddDate(0, 0, 7), forecast[6].Date)
}

func TestForecastSalesClampsNegative(t *testing.T) {
	// Steeply declining series drives the projection below zero.
	history := trendSeries(14, func(i int) float64 { return 1000 - 90*float64(i) })

	forecast := ForecastSales(history, 7)
	require.Len(t, forecast, 7)
	for _, point := range forecast {
		require.GreaterOrEqual(t, point.Forecast, 0.0)
	}
	require.Zero(t, forecast[6].Forecast)
}

func TestForecastSalesDegenerateInput(t *testing.T) {
	require.Nil(t, ForecastSales(nil, 7))
	require.Nil(t, ForecastSales(trendSeries(1, func(int) float64 { return 5 }), 7))
	require.Nil(t, ForecastSales(trendSeries(14, func(int) float64 { return 5 }), 0))
}
