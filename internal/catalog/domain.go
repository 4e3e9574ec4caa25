// Package catalog holds the active dataset entities and the derived-metrics
// engine shared by every dashboard view.
package catalog

import "time"

// StockStatus buckets a product by runway given current stock and sales.
type StockStatus string

const (
	// StockCritical means the product is about to run out.
	StockCritical StockStatus = "critical"
	// StockAlert means roughly a week of runway remains.
	StockAlert StockStatus = "alert"
	// StockLow means about two weeks of runway remain.
	StockLow StockStatus = "low"
	// StockNormal is the healthy band.
	StockNormal StockStatus = "normal"
	// StockOverstock means stock greatly exceeds demand.
	StockOverstock StockStatus = "overstock"
)

// ABCClass is the Pareto classification bucket.
type ABCClass string

const (
	// ClassA covers products up to 80% of cumulative sales.
	ClassA ABCClass = "A"
	// ClassB covers the 80-95% band.
	ClassB ABCClass = "B"
	// ClassC covers the long tail.
	ClassC ABCClass = "C"
)

// LogisticType enumerates fulfilment channels.
type LogisticType string

const (
	LogisticFulfillment LogisticType = "fulfillment"
	LogisticFlex        LogisticType = "flex"
	LogisticDropOff     LogisticType = "xd_drop_off"
)

// Product is a catalog entity with derived fields computed at construction.
// Derived fields are never mutated in place afterwards.
type Product struct {
	ID            string       `json:"id"`
	SKU           string       `json:"sku"`
	Title         string       `json:"title"`
	Price         float64      `json:"price"`
	Cost          float64      `json:"cost"`
	StockFull     int          `json:"stock_full"`
	StockFlex     int          `json:"stock_flex"`
	StockTotal    int          `json:"stock_total"`
	Sales30d      int          `json:"sales_30d"`
	Sales60d      int          `json:"sales_60d"`
	SalesAmount30 float64      `json:"sales_amount_30d"`
	Margin        float64      `json:"margin"`
	MarginPercent float64      `json:"margin_percent"`
	ROI           float64      `json:"roi"`
	DaysOfStock   float64      `json:"days_of_stock"`
	SupplierID    string       `json:"supplier_id"`
	SupplierName  string       `json:"supplier_name"`
	LogisticType  LogisticType `json:"logistic_type"`
	Status        string       `json:"status"`
	Category      string       `json:"category"`
}

// Supplier aggregates rollups over the products that reference it. The
// rollups are views over the product set, recomputed whenever it changes.
type Supplier struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	TotalProducts  int     `json:"total_products"`
	TotalStock     int     `json:"total_stock"`
	TotalValuation float64 `json:"total_valuation"`
	TotalSales30d  float64 `json:"total_sales_30d"`
	AvgMargin      float64 `json:"avg_margin"`
}

// AlertType is the closed enumeration of alert kinds.
type AlertType string

const (
	AlertLowStock       AlertType = "low_stock"
	AlertOutOfStock     AlertType = "out_of_stock"
	AlertNegativeMargin AlertType = "negative_margin"
	AlertSlowRotation   AlertType = "slow_rotation"
	AlertPriceChange    AlertType = "price_change"
)

// AlertSeverity orders alerts: critical sorts before warning before info.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Alert references a product. Generation is external; the core only
// filters, sorts and classifies.
type Alert struct {
	ID           string        `json:"id"`
	ProductID    string        `json:"product_id"`
	ProductTitle string        `json:"product_title,omitempty"`
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	Message      string        `json:"message"`
	Notified     bool          `json:"notified"`
	Resolved     bool          `json:"resolved"`
	CreatedAt    time.Time     `json:"created_at"`
}

// OrderStatus enumerates order states.
type OrderStatus string

const (
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is a seed-only sales document used for trend and channel views.
type Order struct {
	ID           string       `json:"id"`
	Status       OrderStatus  `json:"status"`
	Buyer        string       `json:"buyer_nickname"`
	TotalAmount  float64      `json:"total_amount"`
	Items        []OrderItem  `json:"items"`
	LogisticType LogisticType `json:"logistic_type"`
	CreatedAt    time.Time    `json:"date_created"`
}

// ParetoItem wraps a product with its share of total sales after the
// descending stable sort. Computed, never stored.
type ParetoItem struct {
	Product           Product  `json:"product"`
	SalesAmount       float64  `json:"salesAmount"`
	SalesPercent      float64  `json:"salesPercent"`
	CumulativePercent float64  `json:"cumulativePercent"`
	ABCClass          ABCClass `json:"abcClass"`
}
