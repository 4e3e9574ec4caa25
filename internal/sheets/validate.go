package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var productColumns = []string{"sku", "title", "price", "cost", "stock_full", "category", "supplier_name"}

var supplierColumns = []string{"id", "name"}

// ValidateProductRows checks product rows against the required schema and
// coerces passing rows into typed records. Errors accumulate; they never stop
// processing of later rows. The first failing field short-circuits its row.
func ValidateProductRows(rows []Row) ([]ProductRow, []RowError) {
	products := make([]ProductRow, 0, len(rows))
	errs := []RowError{}

	if missing := missingColumns(rows, productColumns); missing != nil {
		return products, append(errs, structuralError(missing))
	}

	for i, row := range rows {
		rowNum := i + 2 // data starts at sheet row 2, below the header

		sku, ok := textField(row, "sku")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "sku", Message: "sku is required"})
			continue
		}
		title, ok := textField(row, "title")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "title", Message: "title is required"})
			continue
		}
		price, ok := numberField(row["price"])
		if !ok || price < 0 {
			errs = append(errs, RowError{Row: rowNum, Column: "price", Message: "price must be a number >= 0"})
			continue
		}
		cost, ok := numberField(row["cost"])
		if !ok || cost < 0 {
			errs = append(errs, RowError{Row: rowNum, Column: "cost", Message: "cost must be a number >= 0"})
			continue
		}
		stockFull, ok := numberField(row["stock_full"])
		if !ok || stockFull < 0 {
			errs = append(errs, RowError{Row: rowNum, Column: "stock_full", Message: "stock_full must be a number >= 0"})
			continue
		}

		stockFlex := 0.0
		if flex, ok := numberField(row["stock_flex"]); ok && flex > 0 {
			stockFlex = flex
		}

		category, ok := textField(row, "category")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "category", Message: "category is required"})
			continue
		}
		supplierName, ok := textField(row, "supplier_name")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "supplier_name", Message: "supplier_name is required"})
			continue
		}

		products = append(products, ProductRow{
			SKU:          sku,
			Title:        title,
			Price:        price,
			Cost:         cost,
			StockFull:    int(stockFull),
			StockFlex:    int(stockFlex),
			Category:     category,
			SupplierName: supplierName,
		})
	}

	return products, errs
}

// ValidateSupplierRows checks supplier rows; contact_name and email are
// optional pass-through fields.
func ValidateSupplierRows(rows []Row) ([]SupplierRow, []RowError) {
	suppliers := make([]SupplierRow, 0, len(rows))
	errs := []RowError{}

	if missing := missingColumns(rows, supplierColumns); missing != nil {
		return suppliers, append(errs, structuralError(missing))
	}

	for i, row := range rows {
		rowNum := i + 2

		id, ok := textField(row, "id")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "id", Message: "id is required"})
			continue
		}
		name, ok := textField(row, "name")
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Column: "name", Message: "name is required"})
			continue
		}

		supplier := SupplierRow{ID: id, Name: name}
		if contact, ok := textField(row, "contact_name"); ok {
			supplier.ContactName = contact
		}
		if email, ok := textField(row, "email"); ok {
			supplier.Email = email
		}
		suppliers = append(suppliers, supplier)
	}

	return suppliers, errs
}

// missingColumns reports required columns absent from the first row, in
// declaration order. Nil when the sheet is empty or complete.
func missingColumns(rows []Row, required []string) []string {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0]
	var missing []string
	for _, col := range required {
		if _, ok := first[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func structuralError(missing []string) RowError {
	joined := strings.Join(missing, ", ")
	return RowError{
		Row:     0,
		Column:  joined,
		Message: fmt.Sprintf("missing required columns: %s", joined),
	}
}

func textField(row Row, col string) (string, bool) {
	value, ok := row[col]
	if !ok || value == nil {
		return "", false
	}
	text := strings.TrimSpace(stringify(value))
	if text == "" {
		return "", false
	}
	return text, true
}

// numberField coerces a cell to float64. Nil and blank cells count as zero,
// matching how the dashboard's spreadsheet columns behave for empty cells.
func numberField(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
