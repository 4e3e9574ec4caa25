package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

type fakeCatalog struct {
	alerts   []catalog.Alert
	products []catalog.Product
	err      error
}

func (f *fakeCatalog) Alerts(ctx context.Context) ([]catalog.Alert, error) {
	return f.alerts, f.err
}

func (f *fakeCatalog) Products(ctx context.Context) ([]catalog.Product, error) {
	return f.products, f.err
}

func alertFixture() []catalog.Alert {
	return []catalog.Alert{
		{ID: "al-1", Type: catalog.AlertSlowRotation, Severity: catalog.SeverityInfo},
		{ID: "al-2", Type: catalog.AlertLowStock, Severity: catalog.SeverityWarning},
		{ID: "al-3", Type: catalog.AlertOutOfStock, Severity: catalog.SeverityCritical},
		{ID: "al-4", Type: catalog.AlertPriceChange, Severity: catalog.SeverityInfo, Resolved: true},
		{ID: "al-5", Type: catalog.AlertLowStock, Severity: catalog.SeverityCritical},
	}
}

func TestActiveFiltersAndSorts(t *testing.T) {
	svc := NewService(&fakeCatalog{alerts: alertFixture()})

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 4)

	// Critical first, then warning, then info. Equal severities keep their
	// original order.
	require.Equal(t, "al-3", active[0].ID)
	require.Equal(t, "al-5", active[1].ID)
	require.Equal(t, "al-2", active[2].ID)
	require.Equal(t, "al-1", active[3].ID)
}

func TestGroupByType(t *testing.T) {
	svc := NewService(&fakeCatalog{alerts: alertFixture()})

	grouped, err := svc.GroupByType(context.Background())
	require.NoError(t, err)
	require.Len(t, grouped[catalog.AlertLowStock], 2)
	require.Len(t, grouped[catalog.AlertOutOfStock], 1)
	// Resolved alerts never appear.
	require.Empty(t, grouped[catalog.AlertPriceChange])
}

func TestSummarize(t *testing.T) {
	svc := NewService(&fakeCatalog{alerts: alertFixture()})

	summary, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, summary.Total)
	require.Equal(t, 2, summary.BySeverity[catalog.SeverityCritical])
	require.Equal(t, 1, summary.BySeverity[catalog.SeverityWarning])
	require.Equal(t, 1, summary.BySeverity[catalog.SeverityInfo])
	require.Equal(t, 2, summary.ByType[catalog.AlertLowStock])
}

func TestUrgentProducts(t *testing.T) {
	products := []catalog.Product{
		catalog.Derive(catalog.Product{ID: "p-plenty", StockFull: 50, Sales30d: 10}),
		catalog.Derive(catalog.Product{ID: "p-out", StockFull: 0, Sales30d: 5}),
		catalog.Derive(catalog.Product{ID: "p-last-unit", StockFull: 1, Sales30d: 8}),
		catalog.Derive(catalog.Product{ID: "p-burning", StockFull: 2, Sales30d: 30}),
	}
	svc := NewService(&fakeCatalog{products: products})

	urgent, err := svc.UrgentProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, urgent, 3)

	// Ascending runway: out of stock first.
	require.Equal(t, "p-out", urgent[0].ID)
	require.Equal(t, "p-burning", urgent[1].ID)
	require.Equal(t, "p-last-unit", urgent[2].ID)
}

func TestServicePropagatesErrors(t *testing.T) {
	svc := NewService(&fakeCatalog{err: errors.New("store down")})

	_, err := svc.Active(context.Background())
	require.Error(t, err)
	_, err = svc.UrgentProducts(context.Background())
	require.Error(t, err)
}
