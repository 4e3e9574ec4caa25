// Package seed loads the embedded demo dataset shown before any spreadsheet
// has been synced. Dates in the data files are stored as day offsets and
// resolved against the load time, so trend windows stay populated no matter
// when the server starts.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

//go:embed data/*.json
var dataFS embed.FS

type seedOrder struct {
	ID           string               `json:"id"`
	Status       catalog.OrderStatus  `json:"status"`
	Buyer        string               `json:"buyer_nickname"`
	TotalAmount  float64              `json:"total_amount"`
	Items        []catalog.OrderItem  `json:"items"`
	LogisticType catalog.LogisticType `json:"logistic_type"`
	DaysAgo      int                  `json:"days_ago"`
}

type seedAlert struct {
	ID           string                `json:"id"`
	ProductID    string                `json:"product_id"`
	ProductTitle string                `json:"product_title"`
	Type         catalog.AlertType     `json:"type"`
	Severity     catalog.AlertSeverity `json:"severity"`
	Message      string                `json:"message"`
	Notified     bool                  `json:"notified"`
	Resolved     bool                  `json:"resolved"`
	DaysAgo      int                   `json:"days_ago"`
}

// Load parses the embedded dataset and recomputes every derived field, so the
// JSON never has to carry values the metrics engine owns.
func Load(now time.Time) (catalog.Seed, error) {
	var products []catalog.Product
	if err := loadFile("data/products.json", &products); err != nil {
		return catalog.Seed{}, err
	}
	for i := range products {
		products[i] = catalog.Derive(products[i])
	}

	var suppliers []catalog.Supplier
	if err := loadFile("data/suppliers.json", &suppliers); err != nil {
		return catalog.Seed{}, err
	}
	for i := range suppliers {
		suppliers[i] = catalog.RefreshSupplier(suppliers[i], products)
	}

	var rawOrders []seedOrder
	if err := loadFile("data/orders.json", &rawOrders); err != nil {
		return catalog.Seed{}, err
	}
	orders := make([]catalog.Order, 0, len(rawOrders))
	for _, o := range rawOrders {
		orders = append(orders, catalog.Order{
			ID:           o.ID,
			Status:       o.Status,
			Buyer:        o.Buyer,
			TotalAmount:  o.TotalAmount,
			Items:        o.Items,
			LogisticType: o.LogisticType,
			CreatedAt:    now.AddDate(0, 0, -o.DaysAgo),
		})
	}

	var rawAlerts []seedAlert
	if err := loadFile("data/alerts.json", &rawAlerts); err != nil {
		return catalog.Seed{}, err
	}
	alerts := make([]catalog.Alert, 0, len(rawAlerts))
	for _, a := range rawAlerts {
		alerts = append(alerts, catalog.Alert{
			ID:           a.ID,
			ProductID:    a.ProductID,
			ProductTitle: a.ProductTitle,
			Type:         a.Type,
			Severity:     a.Severity,
			Message:      a.Message,
			Notified:     a.Notified,
			Resolved:     a.Resolved,
			CreatedAt:    now.AddDate(0, 0, -a.DaysAgo),
		})
	}

	return catalog.Seed{
		Products:  products,
		Suppliers: suppliers,
		Orders:    orders,
		Alerts:    alerts,
	}, nil
}

func loadFile(name string, target any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("seed: parse %s: %w", name, err)
	}
	return nil
}
