package catalog

import "sort"

// ABCClassOf maps a cumulative sales percent to its Pareto class.
func ABCClassOf(cumulativePercent float64) ABCClass {
	if cumulativePercent <= 80 {
		return ClassA
	}
	if cumulativePercent <= 95 {
		return ClassB
	}
	return ClassC
}

// Pareto ranks products by 30 day sales amount and classifies them A/B/C by
// cumulative share. The sort is stable so equal-sales products keep their
// relative order. A zero sales total yields 0% shares across the board.
func Pareto(products []Product) []ParetoItem {
	sorted := make([]Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SalesAmount30 > sorted[j].SalesAmount30
	})

	var total float64
	for _, p := range sorted {
		total += p.SalesAmount30
	}

	items := make([]ParetoItem, 0, len(sorted))
	cumulative := 0.0
	for _, p := range sorted {
		percent := 0.0
		if total > 0 {
			percent = p.SalesAmount30 / total * 100
		}
		cumulative += percent
		items = append(items, ParetoItem{
			Product:           p,
			SalesAmount:       p.SalesAmount30,
			SalesPercent:      percent,
			CumulativePercent: cumulative,
			ABCClass:          ABCClassOf(cumulative),
		})
	}
	return items
}

// ABCBucket summarises one Pareto class.
type ABCBucket struct {
	Count   int     `json:"count"`
	Sales   float64 `json:"sales"`
	Percent float64 `json:"percent"`
}

// ABCSummary aggregates Pareto items per class.
func ABCSummary(items []ParetoItem) map[ABCClass]ABCBucket {
	summary := map[ABCClass]ABCBucket{
		ClassA: {},
		ClassB: {},
		ClassC: {},
	}

	var total float64
	for _, item := range items {
		total += item.SalesAmount
	}

	for _, item := range items {
		bucket := summary[item.ABCClass]
		bucket.Count++
		bucket.Sales += item.SalesAmount
		summary[item.ABCClass] = bucket
	}

	if total > 0 {
		for class, bucket := range summary {
			bucket.Percent = bucket.Sales / total * 100
			summary[class] = bucket
		}
	}
	return summary
}
