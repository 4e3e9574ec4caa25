// Package dashboard aggregates the active dataset into the read models the
// dashboard views render.
package dashboard

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
	"github.com/vantage-retail/vantage-retail/internal/format"
)

// TrendWindowDays is the trailing window for the daily sales trend.
const TrendWindowDays = 14

// ForecastHorizonDays is how far the sales projection extends.
const ForecastHorizonDays = 7

// StockoutRiskWindowDays bounds the stockout risk list.
const StockoutRiskWindowDays = 14

// ErrSupplierNotFound signals a lookup for an unknown supplier.
var ErrSupplierNotFound = errors.New("dashboard: supplier not found")

// Catalog is the active dataset read side.
type Catalog interface {
	Source(ctx context.Context) (string, error)
	Products(ctx context.Context) ([]catalog.Product, error)
	Suppliers(ctx context.Context) ([]catalog.Supplier, error)
	Alerts(ctx context.Context) ([]catalog.Alert, error)
	Orders(ctx context.Context) ([]catalog.Order, error)
}

// KPIs is the dashboard header card row.
type KPIs struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalStock       int     `json:"totalStock"`
	StockValuation   float64 `json:"stockValuation"`
	Sales30d         float64 `json:"sales30d"`
	Orders30d        int     `json:"orders30d"`
	AvgTicket        float64 `json:"avgTicket"`
	AvgMargin        float64 `json:"avgMargin"`
	CriticalProducts int     `json:"criticalProducts"`
	AlertsCount      int     `json:"alertsCount"`
}

// StatusBucket is one slice of the stock distribution donut.
type StatusBucket struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CategorySummary aggregates one category row.
type CategorySummary struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Stock    int     `json:"stock"`
	Sales    float64 `json:"sales"`
}

// CriticalProduct is a product annotated with its runway status.
type CriticalProduct struct {
	catalog.Product
	StockStatus catalog.StockStatus `json:"stockStatus"`
}

// ChannelSales aggregates paid orders per fulfilment channel.
type ChannelSales struct {
	Channel catalog.LogisticType `json:"channel"`
	Label   string               `json:"label"`
	Sales   float64              `json:"sales"`
	Orders  int                  `json:"orders"`
	Percent float64              `json:"percent"`
}

// ParetoView bundles the ranked items with the ABC summary.
type ParetoView struct {
	Items   []catalog.ParetoItem                   `json:"items"`
	Summary map[catalog.ABCClass]catalog.ABCBucket `json:"summary"`
}

// StockoutRisk annotates a product with its projected stockout.
type StockoutRisk struct {
	catalog.Product
	StockoutDate      time.Time `json:"stockoutDate"`
	DaysUntilStockout int       `json:"daysUntilStockout"`
	ReorderPoint      int       `json:"reorderPoint"`
	NeedsReorder      bool      `json:"needsReorder"`
}

// ForecastView bundles history, projection and the stockout risk list.
type ForecastView struct {
	History      []catalog.TrendPoint    `json:"history"`
	Forecast     []catalog.ForecastPoint `json:"forecast"`
	StockoutRisk []StockoutRisk          `json:"stockoutRisk"`
}

// Insight is a ready-to-render observation about the dataset.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var statusLabels = map[catalog.StockStatus]string{
	catalog.StockCritical:  "Crítico",
	catalog.StockAlert:     "Alerta",
	catalog.StockLow:       "Bajo",
	catalog.StockNormal:    "Normal",
	catalog.StockOverstock: "Sobrestock",
}

var statusOrder = []catalog.StockStatus{
	catalog.StockCritical,
	catalog.StockAlert,
	catalog.StockLow,
	catalog.StockNormal,
	catalog.StockOverstock,
}

var channelLabels = map[catalog.LogisticType]string{
	catalog.LogisticFulfillment: "FULL",
	catalog.LogisticFlex:        "FLEX",
	catalog.LogisticDropOff:     "Centro",
}

type Service struct {
	catalog Catalog
	now     func() time.Time
}

func NewService(c Catalog) *Service {
	return &Service{catalog: c, now: time.Now}
}

// KPIs computes the header metrics over the active dataset.
func (s *Service) KPIs(ctx context.Context) (KPIs, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return KPIs{}, err
	}
	orders, err := s.catalog.Orders(ctx)
	if err != nil {
		return KPIs{}, err
	}
	alerts, err := s.catalog.Alerts(ctx)
	if err != nil {
		return KPIs{}, err
	}

	var k KPIs
	k.TotalProducts = len(products)
	for _, p := range products {
		k.TotalStock += p.StockTotal
		k.StockValuation += float64(p.StockTotal) * p.Cost
		k.Sales30d += p.SalesAmount30
		k.AvgMargin += p.MarginPercent

		status := catalog.StockStatusOf(p.StockTotal, p.Sales30d)
		if status == catalog.StockCritical || status == catalog.StockAlert {
			k.CriticalProducts++
		}
	}
	if len(products) > 0 {
		k.AvgMargin /= float64(len(products))
	}

	for _, o := range orders {
		if o.Status == catalog.OrderPaid {
			k.Orders30d++
		}
	}
	if k.Orders30d > 0 {
		k.AvgTicket = k.Sales30d / float64(k.Orders30d)
	}

	for _, a := range alerts {
		if !a.Resolved {
			k.AlertsCount++
		}
	}
	return k, nil
}

// StockDistribution buckets products by runway status, in severity order.
func (s *Service) StockDistribution(ctx context.Context) ([]StatusBucket, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[catalog.StockStatus]int, len(statusOrder))
	for _, p := range products {
		counts[catalog.StockStatusOf(p.StockTotal, p.Sales30d)]++
	}
	buckets := make([]StatusBucket, 0, len(statusOrder))
	for _, status := range statusOrder {
		bucket := StatusBucket{Status: statusLabels[status], Count: counts[status]}
		if len(products) > 0 {
			bucket.Percent = float64(counts[status]) / float64(len(products)) * 100
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// Categories aggregates products per category, biggest sellers first.
func (s *Service) Categories(ctx context.Context) ([]CategorySummary, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*CategorySummary)
	order := make([]string, 0)
	for _, p := range products {
		summary, ok := byName[p.Category]
		if !ok {
			summary = &CategorySummary{Category: p.Category}
			byName[p.Category] = summary
			order = append(order, p.Category)
		}
		summary.Count++
		summary.Stock += p.StockTotal
		summary.Sales += p.SalesAmount30
	}
	categories := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		categories = append(categories, *byName[name])
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Sales > categories[j].Sales
	})
	return categories, nil
}

// CriticalProducts lists products in the critical or alert band, soonest to
// run out first.
func (s *Service) CriticalProducts(ctx context.Context) ([]CriticalProduct, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	critical := make([]CriticalProduct, 0)
	for _, p := range products {
		status := catalog.StockStatusOf(p.StockTotal, p.Sales30d)
		if status == catalog.StockCritical || status == catalog.StockAlert {
			critical = append(critical, CriticalProduct{Product: p, StockStatus: status})
		}
	}
	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].DaysOfStock < critical[j].DaysOfStock
	})
	return critical, nil
}

// TopProducts returns the limit best sellers by 30 day revenue.
func (s *Service) TopProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	ranked := make([]catalog.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SalesAmount30 > ranked[j].SalesAmount30
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Pareto ranks products by revenue share with their ABC classification.
func (s *Service) Pareto(ctx context.Context) (ParetoView, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return ParetoView{}, err
	}
	items := catalog.Pareto(products)
	return ParetoView{Items: items, Summary: catalog.ABCSummary(items)}, nil
}

// Suppliers returns the active supplier list with rollups.
func (s *Service) Suppliers(ctx context.Context) ([]catalog.Supplier, error) {
	return s.catalog.Suppliers(ctx)
}

// SupplierProducts looks up one supplier and its products.
func (s *Service) SupplierProducts(ctx context.Context, supplierID string) (catalog.Supplier, []catalog.Product, error) {
	suppliers, err := s.catalog.Suppliers(ctx)
	if err != nil {
		return catalog.Supplier{}, nil, err
	}
	var supplier *catalog.Supplier
	for i := range suppliers {
		if suppliers[i].ID == supplierID {
			supplier = &suppliers[i]
			break
		}
	}
	if supplier == nil {
		return catalog.Supplier{}, nil, ErrSupplierNotFound
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return catalog.Supplier{}, nil, err
	}
	owned := make([]catalog.Product, 0)
	for _, p := range products {
		if p.SupplierID == supplierID {
			owned = append(owned, p)
		}
	}
	return *supplier, owned, nil
}

// SalesByChannel aggregates paid orders per fulfilment channel.
func (s *Service) SalesByChannel(ctx context.Context) ([]ChannelSales, error) {
	orders, err := s.catalog.Orders(ctx)
	if err != nil {
		return nil, err
	}
	channels := []ChannelSales{
		{Channel: catalog.LogisticFulfillment, Label: channelLabels[catalog.LogisticFulfillment]},
		{Channel: catalog.LogisticFlex, Label: channelLabels[catalog.LogisticFlex]},
		{Channel: catalog.LogisticDropOff, Label: channelLabels[catalog.LogisticDropOff]},
	}
	var total float64
	for _, o := range orders {
		if o.Status != catalog.OrderPaid {
			continue
		}
		for i := range channels {
			if channels[i].Channel == o.LogisticType {
				channels[i].Sales += o.TotalAmount
				channels[i].Orders++
				total += o.TotalAmount
			}
		}
	}
	if total > 0 {
		for i := range channels {
			channels[i].Percent = channels[i].Sales / total * 100
		}
	}
	return channels, nil
}

// SalesTrend sums paid orders per day over the trailing window, oldest first.
// Days without orders appear with zeros.
func (s *Service) SalesTrend(ctx context.Context) ([]catalog.TrendPoint, error) {
	orders, err := s.catalog.Orders(ctx)
	if err != nil {
		return nil, err
	}
	today := dayOf(s.now())
	trend := make([]catalog.TrendPoint, 0, TrendWindowDays)
	for i := TrendWindowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		point := catalog.TrendPoint{Date: day}
		for _, o := range orders {
			if o.Status == catalog.OrderPaid && dayOf(o.CreatedAt).Equal(day) {
				point.Sales += o.TotalAmount
				point.Orders++
			}
		}
		trend = append(trend, point)
	}
	return trend, nil
}

// Forecast projects the next week of sales and lists products at stockout
// risk inside the risk window, soonest first.
func (s *Service) Forecast(ctx context.Context) (ForecastView, error) {
	trend, err := s.SalesTrend(ctx)
	if err != nil {
		return ForecastView{}, err
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return ForecastView{}, err
	}

	now := s.now()
	risk := make([]StockoutRisk, 0)
	for _, p := range products {
		date, ok := catalog.StockoutDate(p.StockTotal, p.Sales30d, now)
		if !ok {
			continue
		}
		days := int(math.Ceil(date.Sub(now).Hours() / 24))
		if days > StockoutRiskWindowDays {
			continue
		}
		reorder := catalog.ReorderPoint(p.Sales30d, catalog.DefaultLeadTimeDays)
		risk = append(risk, StockoutRisk{
			Product:           p,
			StockoutDate:      date,
			DaysUntilStockout: days,
			ReorderPoint:      reorder,
			NeedsReorder:      p.StockTotal <= reorder,
		})
	}
	sort.SliceStable(risk, func(i, j int) bool {
		return risk[i].DaysUntilStockout < risk[j].DaysUntilStockout
	})

	return ForecastView{
		History:      trend,
		Forecast:     catalog.ForecastSales(trend, ForecastHorizonDays),
		StockoutRisk: risk,
	}, nil
}

// Insights derives ready-to-render observations from the active dataset.
func (s *Service) Insights(ctx context.Context) ([]Insight, error) {
	kpis, err := s.KPIs(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	insights := make([]Insight, 0, 3)
	if kpis.CriticalProducts > 0 {
		insights = append(insights, Insight{
			Type:  "danger",
			Title: format.Number(float64(kpis.CriticalProducts)) + " productos con stock crítico",
			Description: "Estos productos pueden quedarse sin stock en los próximos días. " +
				"Revisa las alertas para tomar acción.",
		})
	}

	items := catalog.Pareto(products)
	if len(items) > 0 && kpis.Sales30d > 0 {
		top := items[0]
		if top.SalesPercent >= 30 {
			insights = append(insights, Insight{
				Type:  "warning",
				Title: "Ventas concentradas en " + top.Product.Title,
				Description: "Un solo producto genera el " + format.Percent(top.SalesPercent, 1) +
					" de las ventas (" + format.CLP(top.SalesAmount) + " en 30 días).",
			})
		}
	}

	insights = append(insights, Insight{
		Type:  "info",
		Title: "Valorización de inventario: " + format.CLP(kpis.StockValuation),
		Description: "Stock total de " + format.Number(float64(kpis.TotalStock)) +
			" unidades con margen promedio de " + format.Percent(kpis.AvgMargin, 1) + ".",
	})
	return insights, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
