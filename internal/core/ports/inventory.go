package ports

import (
	"context"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
)

// LoginResult is the unwrapped payload of a successful login call.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// CategoryInput carries the fields of the category create/update forms.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupplierInput carries the fields of the supplier create/update forms.
type SupplierInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// ProductInput carries the fields of the product create/update forms.
// CategoryID and SupplierID are plain IDs; the API populates them on read.
type ProductInput struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
	SupplierID string  `json:"supplierId"`
}

// TransactionInput carries the fields of the stock movement form.
type TransactionInput struct {
	ProductID   string `json:"productId"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// Inventory is the read/write surface of the remote inventory API as the
// dashboard consumes it. Reads are served through a shared cache; writes
// invalidate the cached lists they affect, so a read issued after a
// successful write observes fresh data.
type Inventory interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	Categories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in CategoryInput) error
	UpdateCategory(ctx context.Context, id string, in CategoryInput) error
	DeleteCategory(ctx context.Context, id string) error

	Products(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) error
	UpdateProduct(ctx context.Context, id string, in ProductInput) error
	DeleteProduct(ctx context.Context, id string) error

	Suppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, in SupplierInput) error
	UpdateSupplier(ctx context.Context, id string, in SupplierInput) error
	DeleteSupplier(ctx context.Context, id string) error

	Transactions(ctx context.Context) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, in TransactionInput) error
	UpdateTransaction(ctx context.Context, id string, in TransactionInput) error
	DeleteTransaction(ctx context.Context, id string) error

	AuditLogs(ctx context.Context) ([]domain.AuditLog, error)
}
