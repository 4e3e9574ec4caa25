package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

type fakeCatalog struct {
	products  []catalog.Product
	suppliers []catalog.Supplier
	alerts    []catalog.Alert
	orders    []catalog.Order
	err       error
}

func (f *fakeCatalog) Source(ctx context.Context) (string, error) {
	return catalog.SourceSeed, f.err
}

func (f *fakeCatalog) Products(ctx context.Context) ([]catalog.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) Suppliers(ctx context.Context) ([]catalog.Supplier, error) {
	return f.suppliers, f.err
}

func (f *fakeCatalog) Alerts(ctx context.Context) ([]catalog.Alert, error) {
	return f.alerts, f.err
}

func (f *fakeCatalog) Orders(ctx context.Context) ([]catalog.Order, error) {
	return f.orders, f.err
}

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func fixtureCatalog() *fakeCatalog {
	mk := func(id, category, supplierID string, price, cost float64, stock, sales int) catalog.Product {
		return catalog.Derive(catalog.Product{
			ID:         id,
			Title:      id,
			Category:   category,
			SupplierID: supplierID,
			Price:      price,
			Cost:       cost,
			StockFull:  stock,
			Sales30d:   sales,
		})
	}
	return &fakeCatalog{
		products: []catalog.Product{
			mk("p-steady", "Periféricos", "sup-1", 1000, 400, 50, 60),
			mk("p-burning", "Periféricos", "sup-1", 2000, 1000, 2, 30),
			mk("p-week-left", "Audio", "sup-2", 500, 250, 10, 45),
			mk("p-dead-stock", "Hogar", "sup-2", 800, 900, 30, 0),
			mk("p-sold-out", "Audio", "sup-2", 100, 50, 0, 5),
		},
		suppliers: []catalog.Supplier{
			{ID: "sup-1", Name: "Tecno Import SpA"},
			{ID: "sup-2", Name: "ImportAsia Chile"},
		},
		alerts: []catalog.Alert{
			{ID: "al-1", Severity: catalog.SeverityCritical},
			{ID: "al-2", Severity: catalog.SeverityInfo},
			{ID: "al-3", Severity: catalog.SeverityInfo, Resolved: true},
		},
		orders: []catalog.Order{
			{ID: "o-1", Status: catalog.OrderPaid, TotalAmount: 10000, LogisticType: catalog.LogisticFulfillment, CreatedAt: testNow},
			{ID: "o-2", Status: catalog.OrderPaid, TotalAmount: 5000, LogisticType: catalog.LogisticFlex, CreatedAt: testNow.AddDate(0, 0, -1)},
			{ID: "o-3", Status: catalog.OrderPaid, TotalAmount: 20000, LogisticType: catalog.LogisticFulfillment, CreatedAt: testNow.AddDate(0, 0, -2)},
			{ID: "o-4", Status: catalog.OrderCancelled, TotalAmount: 99999, LogisticType: catalog.LogisticFulfillment, CreatedAt: testNow},
		},
	}
}

func newTestService(c Catalog) *Service {
	svc := NewService(c)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestKPIs(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	kpis, err := svc.KPIs(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, kpis.TotalProducts)
	require.Equal(t, 92, kpis.TotalStock)
	require.InDelta(t, 51500.0, kpis.StockValuation, 0.0001)
	require.InDelta(t, 143000.0, kpis.Sales30d, 0.0001)
	require.Equal(t, 3, kpis.Orders30d)
	require.InDelta(t, 143000.0/3, kpis.AvgTicket, 0.0001)
	require.InDelta(t, 39.5, kpis.AvgMargin, 0.0001)
	require.Equal(t, 3, kpis.CriticalProducts)
	require.Equal(t, 2, kpis.AlertsCount)
}

func TestStockDistribution(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	buckets, err := svc.StockDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 5)

	require.Equal(t, "Crítico", buckets[0].Status)
	require.Equal(t, 2, buckets[0].Count)
	require.InDelta(t, 40.0, buckets[0].Percent, 0.0001)

	require.Equal(t, "Alerta", buckets[1].Status)
	require.Equal(t, 1, buckets[1].Count)
	require.Equal(t, "Bajo", buckets[2].Status)
	require.Zero(t, buckets[2].Count)
	require.Equal(t, "Normal", buckets[3].Status)
	require.Equal(t, 1, buckets[3].Count)
	require.Equal(t, "Sobrestock", buckets[4].Status)
	require.Equal(t, 1, buckets[4].Count)
}

func TestCategoriesSortedBySales(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)

	require.Equal(t, "Periféricos", categories[0].Category)
	require.InDelta(t, 120000.0, categories[0].Sales, 0.0001)
	require.Equal(t, 2, categories[0].Count)
	require.Equal(t, "Audio", categories[1].Category)
	require.InDelta(t, 23000.0, categories[1].Sales, 0.0001)
	require.Equal(t, "Hogar", categories[2].Category)
	require.Zero(t, categories[2].Sales)
}

func TestCriticalProductsSortedByRunway(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	critical, err := svc.CriticalProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, critical, 3)

	require.Equal(t, "p-sold-out", critical[0].ID)
	require.Equal(t, catalog.StockCritical, critical[0].StockStatus)
	require.Equal(t, "p-burning", critical[1].ID)
	require.Equal(t, "p-week-left", critical[2].ID)
	require.Equal(t, catalog.StockAlert, critical[2].StockStatus)
}

func TestTopProducts(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	top, err := svc.TopProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	// Equal revenue keeps input order.
	require.Equal(t, "p-steady", top[0].ID)
	require.Equal(t, "p-burning", top[1].ID)
}

func TestParetoView(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	view, err := svc.Pareto(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Items, 5)
	require.InDelta(t, 60000.0, view.Items[0].SalesAmount, 0.0001)

	var counted int
	for _, bucket := range view.Summary {
		counted += bucket.Count
	}
	require.Equal(t, 5, counted)
}

func TestSupplierProducts(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	supplier, products, err := svc.SupplierProducts(context.Background(), "sup-1")
	require.NoError(t, err)
	require.Equal(t, "Tecno Import SpA", supplier.Name)
	require.Len(t, products, 2)

	_, _, err = svc.SupplierProducts(context.Background(), "sup-404")
	require.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSalesByChannel(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	channels, err := svc.SalesByChannel(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 3)

	require.Equal(t, "FULL", channels[0].Label)
	require.InDelta(t, 30000.0, channels[0].Sales, 0.0001)
	require.Equal(t, 2, channels[0].Orders)
	require.InDelta(t, 30000.0/35000*100, channels[0].Percent, 0.0001)

	require.Equal(t, "FLEX", channels[1].Label)
	require.Equal(t, 1, channels[1].Orders)

	// Cancelled orders never count.
	require.Equal(t, "Centro", channels[2].Label)
	require.Zero(t, channels[2].Sales)
}

func TestSalesTrendWindow(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	trend, err := svc.SalesTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, TrendWindowDays)

	// Oldest first, today last.
	last := trend[len(trend)-1]
	require.Equal(t, testNow.Day(), last.Date.Day())
	require.InDelta(t, 10000.0, last.Sales, 0.0001)
	require.Equal(t, 1, last.Orders)

	twoDaysAgo := trend[len(trend)-3]
	require.InDelta(t, 20000.0, twoDaysAgo.Sales, 0.0001)

	// Days without paid orders stay at zero.
	require.Zero(t, trend[0].Sales)
	require.Zero(t, trend[0].Orders)
}

func TestForecastView(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	view, err := svc.Forecast(context.Background())
	require.NoError(t, err)
	require.Len(t, view.History, TrendWindowDays)
	require.Len(t, view.Forecast, ForecastHorizonDays)

	require.Len(t, view.StockoutRisk, 3)
	require.Equal(t, "p-sold-out", view.StockoutRisk[0].ID)
	require.Zero(t, view.StockoutRisk[0].DaysUntilStockout)
	require.Equal(t, "p-burning", view.StockoutRisk[1].ID)
	require.Equal(t, 2, view.StockoutRisk[1].DaysUntilStockout)
	require.True(t, view.StockoutRisk[1].NeedsReorder)
	require.Equal(t, "p-week-left", view.StockoutRisk[2].ID)

	// Healthy and no-sales products never show up.
	for _, r := range view.StockoutRisk {
		require.NotEqual(t, "p-steady", r.ID)
		require.NotEqual(t, "p-dead-stock", r.ID)
	}
}

func TestInsights(t *testing.T) {
	svc := newTestService(fixtureCatalog())

	insights, err := svc.Insights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 3)

	require.Equal(t, "danger", insights[0].Type)
	require.Contains(t, insights[0].Title, "3 productos")

	require.Equal(t, "warning", insights[1].Type)
	require.Contains(t, insights[1].Title, "p-steady")

	require.Equal(t, "info", insights[2].Type)
	require.Contains(t, insights[2].Title, "$51.500")
}

func TestServicePropagatesErrors(t *testing.T) {
	svc := newTestService(&fakeCatalog{err: errors.New("store down")})

	_, err := svc.KPIs(context.Background())
	require.Error(t, err)
	_, err = svc.Forecast(context.Background())
	require.Error(t, err)
}
