package catalog

import "gonum.org/v1/gonum/stat"

// SupplierRollup holds aggregates over one supplier's product subset.
type SupplierRollup struct {
	TotalProducts int     `json:"totalProducts"`
	TotalStock    int     `json:"totalStock"`
	TotalCost     float64 `json:"totalCost"`
	TotalSales    float64 `json:"totalSales"`
	AvgMargin     float64 `json:"avgMargin"`
	AvgROI        float64 `json:"avgROI"`
}

// RollupSupplier aggregates the given product subset. Averages are 0 when
// the subset is empty.
func RollupSupplier(products []Product) SupplierRollup {
	r := SupplierRollup{TotalProducts: len(products)}
	for _, p := range products {
		r.TotalStock += p.StockTotal
		r.TotalCost += float64(p.StockTotal) * p.Cost
		r.TotalSales += p.SalesAmount30
		r.AvgMargin += p.MarginPercent
		r.AvgROI += p.ROI
	}
	if r.TotalProducts > 0 {
		r.AvgMargin /= float64(r.TotalProducts)
		r.AvgROI /= float64(r.TotalProducts)
	}
	return r
}

// ProductsForSupplier filters products whose supplier name matches.
func ProductsForSupplier(products []Product, supplierName string) []Product {
	var subset []Product
	for _, p := range products {
		if p.SupplierName == supplierName {
			subset = append(subset, p)
		}
	}
	return subset
}

// WeightedAvgMargin is the sales-amount-weighted mean of margin percent
// across all products, 0 when total sales amount is 0.
func WeightedAvgMargin(products []Product) float64 {
	margins := make([]float64, 0, len(products))
	weights := make([]float64, 0, len(products))
	var total float64
	for _, p := range products {
		margins = append(margins, p.MarginPercent)
		weights = append(weights, p.SalesAmount30)
		total += p.SalesAmount30
	}
	if total <= 0 {
		return 0
	}
	return stat.Mean(margins, weights)
}

// AvgMargin is the unweighted mean of margin percent, 0 on an empty set.
func AvgMargin(products []Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range products {
		sum += p.MarginPercent
	}
	return sum / float64(len(products))
}
