// Package alerts classifies and orders the alert feed. Alert generation
// happens upstream; this layer only filters, sorts and summarizes.
package alerts

import (
	"context"
	"sort"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

// Catalog is the read side this service consumes.
type Catalog interface {
	Alerts(ctx context.Context) ([]catalog.Alert, error)
	Products(ctx context.Context) ([]catalog.Product, error)
}

var severityRank = map[catalog.AlertSeverity]int{
	catalog.SeverityCritical: 0,
	catalog.SeverityWarning:  1,
	catalog.SeverityInfo:     2,
}

// Summary counts active alerts by severity and type.
type Summary struct {
	Total      int                           `json:"total"`
	BySeverity map[catalog.AlertSeverity]int `json:"by_severity"`
	ByType     map[catalog.AlertType]int     `json:"by_type"`
}

type Service struct {
	catalog Catalog
}

func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

// Active returns unresolved alerts ordered critical, warning, info. The sort
// is stable so alerts of equal severity keep their feed order.
func (s *Service) Active(ctx context.Context) ([]catalog.Alert, error) {
	all, err := s.catalog.Alerts(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]catalog.Alert, 0, len(all))
	for _, a := range all {
		if !a.Resolved {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return severityRank[active[i].Severity] < severityRank[active[j].Severity]
	})
	return active, nil
}

// GroupByType buckets active alerts by their kind.
func (s *Service) GroupByType(ctx context.Context) (map[catalog.AlertType][]catalog.Alert, error) {
	active, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[catalog.AlertType][]catalog.Alert)
	for _, a := range active {
		grouped[a.Type] = append(grouped[a.Type], a)
	}
	return grouped, nil
}

// Summarize counts active alerts per severity and per type.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	active, err := s.Active(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		Total:      len(active),
		BySeverity: make(map[catalog.AlertSeverity]int),
		ByType:     make(map[catalog.AlertType]int),
	}
	for _, a := range active {
		summary.BySeverity[a.Severity]++
		summary.ByType[a.Type]++
	}
	return summary, nil
}

// UrgentProducts returns products needing immediate attention: runway status
// critical or no stock at all, soonest-to-run-out first.
func (s *Service) UrgentProducts(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	urgent := make([]catalog.Product, 0)
	for _, p := range products {
		status := catalog.StockStatusOf(p.StockTotal, p.Sales30d)
		if status == catalog.StockCritical || p.StockTotal == 0 {
			urgent = append(urgent, p)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].DaysOfStock < urgent[j].DaysOfStock
	})
	return urgent, nil
}
