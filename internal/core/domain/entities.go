package domain

import "time"

// Ref is a populated reference embedded in API responses, e.g. the category
// a product belongs to. Only the fields the dashboard renders are kept.
type Ref struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Category groups products.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Supplier is a vendor products are sourced from.
type Supplier struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// Product is a stocked item. Category and Supplier arrive populated.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category Ref     `json:"categoryId"`
	Supplier Ref     `json:"supplierId"`
}

// Transaction types.
const (
	StockIn  = "stock-in"
	StockOut = "stock-out"
)

// Transaction records a stock movement against a product.
type Transaction struct {
	ID          string    `json:"_id"`
	Product     Ref       `json:"productId"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	User        Ref       `json:"userId"`
}

// Audit log actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditLog is one entry of the write trail the API keeps.
type AuditLog struct {
	ID          string    `json:"_id"`
	Action      string    `json:"action"`
	PerformedBy Ref       `json:"performedBy"`
	Model       string    `json:"model"`
	ModelID     string    `json:"modelId"`
	Timestamp   time.Time `json:"timestamp"`
}
