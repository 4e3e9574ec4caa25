package catalog

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/vantage-retail/vantage-retail/internal/sheets"
)

// SalesGenerator backfills sales history for imported rows that carry none.
// It is a placeholder demand policy, injected so tests can pin it down.
type SalesGenerator interface {
	Backfill(stockTotal int) (sales30d, sales60d int)
}

// RandSales draws synthetic sales proportional to available stock.
type RandSales struct {
	rng *rand.Rand
}

// NewRandSales builds a generator. A zero seed falls back to the clock.
func NewRandSales(seed int64) *RandSales {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSales{rng: rand.New(rand.NewSource(seed))}
}

// Backfill returns 30 and 60 day unit sales for the given stock level.
func (g *RandSales) Backfill(stockTotal int) (int, int) {
	sales30d := 0
	if cap30 := int(float64(stockTotal) * 0.3); cap30 > 0 {
		sales30d = g.rng.Intn(cap30)
	}
	sales60d := sales30d
	if cap60 := sales30d / 2; cap60 > 0 {
		sales60d += g.rng.Intn(cap60)
	}
	return sales30d, sales60d
}

var supplierSlugPattern = regexp.MustCompile(`\s+`)

func supplierSlug(name string) string {
	return "sup-" + supplierSlugPattern.ReplaceAllString(strings.ToLower(name), "-")
}

// Derive recomputes every derived field from the base fields. It is the
// single source of truth for margin, ROI and days of stock; entities are
// always passed through it at construction so stored and displayed values
// cannot drift apart.
func Derive(p Product) Product {
	p.StockTotal = p.StockFull + p.StockFlex
	p.SalesAmount30 = float64(p.Sales30d) * p.Price
	p.Margin = Margin(p.Price, p.Cost)
	p.MarginPercent = MarginPercent(p.Price, p.Cost)
	p.ROI = ROI(p.Price, p.Cost)
	p.DaysOfStock = DaysOfStock(p.StockTotal, p.Sales30d)
	return p
}

// BuildProduct turns a validated sheet row into a full entity, backfilling
// sales history through the injected generator.
func BuildProduct(row sheets.ProductRow, index int, gen SalesGenerator) Product {
	sales30d, sales60d := gen.Backfill(row.StockFull + row.StockFlex)

	logistic := LogisticFulfillment
	if row.StockFlex > 0 {
		logistic = LogisticFlex
	}

	return Derive(Product{
		ID:           fmt.Sprintf("sync-%d", index+1),
		SKU:          row.SKU,
		Title:        row.Title,
		Price:        row.Price,
		Cost:         row.Cost,
		StockFull:    row.StockFull,
		StockFlex:    row.StockFlex,
		Sales30d:     sales30d,
		Sales60d:     sales60d,
		SupplierID:   supplierSlug(row.SupplierName),
		SupplierName: row.SupplierName,
		LogisticType: logistic,
		Status:       "active",
		Category:     row.Category,
	})
}

// BuildSupplier turns a validated supplier row into a full entity with
// rollups over the products that name it.
func BuildSupplier(row sheets.SupplierRow, products []Product) Supplier {
	rollup := RollupSupplier(ProductsForSupplier(products, row.Name))
	return Supplier{
		ID:             row.ID,
		Name:           row.Name,
		ContactName:    row.ContactName,
		Email:          row.Email,
		TotalProducts:  rollup.TotalProducts,
		TotalStock:     rollup.TotalStock,
		TotalValuation: rollup.TotalCost,
		TotalSales30d:  rollup.TotalSales,
		AvgMargin:      rollup.AvgMargin,
	}
}

// RefreshSupplier recomputes the rollup views on an existing supplier.
// Rollups are never stored truth; they follow the product set.
func RefreshSupplier(s Supplier, products []Product) Supplier {
	rollup := RollupSupplier(ProductsForSupplier(products, s.Name))
	s.TotalProducts = rollup.TotalProducts
	s.TotalStock = rollup.TotalStock
	s.TotalValuation = rollup.TotalCost
	s.TotalSales30d = rollup.TotalSales
	s.AvgMargin = rollup.AvgMargin
	return s
}

// SynthesizeSuppliers derives one supplier per distinct supplier name when
// the source sheet carries no supplier tab. First-seen order is kept.
func SynthesizeSuppliers(products []Product) []Supplier {
	seen := make(map[string]bool)
	var suppliers []Supplier
	for _, p := range products {
		if seen[p.SupplierName] {
			continue
		}
		seen[p.SupplierName] = true
		row := sheets.SupplierRow{
			ID:   fmt.Sprintf("sup-%d", len(suppliers)+1),
			Name: p.SupplierName,
		}
		suppliers = append(suppliers, BuildSupplier(row, products))
	}
	return suppliers
}
