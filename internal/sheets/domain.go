// Package sheets fetches published spreadsheet tabs and validates their rows
// into typed records for the sync pipeline.
package sheets

import "errors"

// Row is a loosely typed sheet row keyed by lower-cased column header.
// Cell values are numbers, strings or nil as delivered by the wire format.
type Row map[string]any

// ProductRow is a validated product sheet row.
type ProductRow struct {
	SKU          string  `json:"sku"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	StockFull    int     `json:"stock_full"`
	StockFlex    int     `json:"stock_flex"`
	Category     string  `json:"category"`
	SupplierName string  `json:"supplier_name"`
}

// SupplierRow is a validated supplier sheet row.
type SupplierRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// RowError describes a validation failure for a single row. Row 0 signals a
// structural (missing column) error for the whole sheet.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// ErrInvalidLocator indicates the locator string carries no spreadsheet ID.
var ErrInvalidLocator = errors.New("sheets: invalid spreadsheet locator")

// ErrNotFound indicates the spreadsheet does not exist.
var ErrNotFound = errors.New("sheets: spreadsheet not found")

// ErrNotPublic indicates the spreadsheet is not published to the web.
var ErrNotPublic = errors.New("sheets: spreadsheet not public")

// ErrUnreachable indicates a transport level failure.
var ErrUnreachable = errors.New("sheets: source unreachable")

// ErrFetch indicates a non-2xx response outside the dedicated cases.
var ErrFetch = errors.New("sheets: fetch failed")

// ErrParse indicates the payload body could not be decoded.
var ErrParse = errors.New("sheets: malformed payload")

// UserMessage translates adapter errors into actionable user-facing text.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLocator):
		return "The link does not look like a spreadsheet URL. Paste the full URL from the address bar."
	case errors.Is(err, ErrNotFound):
		return "Spreadsheet not found. Check that the URL is correct."
	case errors.Is(err, ErrNotPublic):
		return "The spreadsheet is not public. Publish it via File > Share > Publish to web."
	case errors.Is(err, ErrUnreachable):
		return "Connection error. Check your internet connection."
	case errors.Is(err, ErrParse):
		return "The spreadsheet returned data we could not read. Try republishing it."
	case err != nil:
		return "Could not load the spreadsheet. Try again in a moment."
	}
	return ""
}
