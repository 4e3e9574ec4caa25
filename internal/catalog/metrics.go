package catalog

import (
	"math"
	"time"
)

// Policy constants for replenishment suggestions.
const (
	// DefaultLeadTimeDays is the assumed supplier lead time.
	DefaultLeadTimeDays = 7
	// SafetyStockDays pads the reorder point against demand spikes.
	SafetyStockDays = 3
	// DaysOfStockInfinite is the sentinel for stock with no sales to burn it.
	DaysOfStockInfinite = 999
)

// Margin returns the absolute unit margin.
func Margin(price, cost float64) float64 {
	return price - cost
}

// MarginPercent returns the margin as a share of price, 0 when price is 0.
func MarginPercent(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// ROI returns the return over cost in percent, 0 when cost is 0.
func ROI(price, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (price - cost) / cost * 100
}

// SalesVelocity converts trailing 30 day unit sales to units per day.
func SalesVelocity(sales30d int) float64 {
	return float64(sales30d) / 30
}

// DaysOfStock returns the projected runway in days. Stock without sales
// yields the infinite sentinel; no stock and no sales yields 0.
func DaysOfStock(stock, sales30d int) float64 {
	if sales30d == 0 {
		if stock > 0 {
			return DaysOfStockInfinite
		}
		return 0
	}
	return float64(stock) / SalesVelocity(sales30d)
}

// ReorderPoint suggests the stock level at which to reorder, covering the
// lead time plus safety stock.
func ReorderPoint(sales30d, leadTimeDays int) int {
	daily := SalesVelocity(sales30d)
	return int(math.Ceil(daily*float64(leadTimeDays) + daily*SafetyStockDays))
}

// StockoutDate projects when stock runs out relative to now. The second
// return is false when the product never runs out (stock but no sales).
func StockoutDate(stock, sales30d int, now time.Time) (time.Time, bool) {
	if stock == 0 {
		return now, true
	}
	if sales30d == 0 {
		return time.Time{}, false
	}
	days := DaysOfStock(stock, sales30d)
	return now.Add(time.Duration(days * 24 * float64(time.Hour))), true
}

// StockStatusOf classifies current stock against trailing 30 day sales.
// Evaluation order matters: the stock<=1 and zero-sales cases are decided
// before the generic day-band thresholds.
func StockStatusOf(stock, sales30d int) StockStatus {
	if stock <= 1 {
		return StockCritical
	}
	if sales30d == 0 {
		if stock > 10 {
			return StockOverstock
		}
		return StockNormal
	}
	days := DaysOfStock(stock, sales30d)
	switch {
	case days <= 3:
		return StockCritical
	case days <= 7:
		return StockAlert
	case days <= 15:
		return StockLow
	case days > 60:
		return StockOverstock
	default:
		return StockNormal
	}
}

// InventoryValuation totals stock at cost and at price.
type InventoryValuation struct {
	TotalCost       float64 `json:"totalCost"`
	TotalPrice      float64 `json:"totalPrice"`
	PotentialProfit float64 `json:"potentialProfit"`
}

// Valuation computes the inventory valuation over a product set.
func Valuation(products []Product) InventoryValuation {
	var v InventoryValuation
	for _, p := range products {
		v.TotalCost += float64(p.StockTotal) * p.Cost
		v.TotalPrice += float64(p.StockTotal) * p.Price
	}
	v.PotentialProfit = v.TotalPrice - v.TotalCost
	return v
}
